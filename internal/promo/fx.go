package promo

import (
	"github.com/smallbiznis/tripquote/internal/promo/repository"
	"github.com/smallbiznis/tripquote/internal/promo/service"
	"go.uber.org/fx"
)

var Module = fx.Module("promo",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.NewService),
)
