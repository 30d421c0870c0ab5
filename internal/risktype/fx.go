package risktype

import "go.uber.org/fx"

var Module = fx.Module("risktype",
	fx.Provide(NewRepository),
)
