package durationcoefficient

import "go.uber.org/fx"

var Module = fx.Module("durationcoefficient",
	fx.Provide(NewRepository),
)
