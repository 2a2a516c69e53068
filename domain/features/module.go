package features

import (
	"go.uber.org/fx"
)

// Module provides the features domain
var Module = fx.Module("features",
	fx.Provide(NewRepository),
	fx.Provide(NewService),
	fx.Provide(NewHandler),
	fx.Invoke(RegisterRoutes),
)
