package analytics

import (
	"go.uber.org/fx"
)

// Module provides the analytics domain
var Module = fx.Module("analytics",
	fx.Provide(NewRepository),
	fx.Provide(NewService),
	fx.Provide(NewHandler),
	fx.Invoke(RegisterRoutes),
)
