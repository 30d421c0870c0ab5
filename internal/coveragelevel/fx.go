package coveragelevel

import "go.uber.org/fx"

var Module = fx.Module("coveragelevel",
	fx.Provide(NewRepository),
)
