package country

import "go.uber.org/fx"

var Module = fx.Module("country",
	fx.Provide(NewRepository),
	fx.Decorate(NewCachedRepository),
)
