package discount

import (
	"github.com/smallbiznis/tripquote/internal/discount/repository"
	"github.com/smallbiznis/tripquote/internal/discount/service"
	"go.uber.org/fx"
)

var Module = fx.Module("discount",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.NewService),
)
