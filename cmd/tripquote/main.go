package main

import (
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"

	"github.com/smallbiznis/tripquote/internal/migration"
	"github.com/smallbiznis/tripquote/internal/observability"
	"github.com/smallbiznis/tripquote/internal/server"
	"github.com/smallbiznis/tripquote/pkg/db"
)

func main() {
	fx.New(
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		migration.Module,
		server.Module,
	).Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
