package agecoefficient

import "go.uber.org/fx"

var Module = fx.Module("agecoefficient",
	fx.Provide(NewRepository),
)
