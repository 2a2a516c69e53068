package dependencies

import (
	"go.uber.org/fx"
)

// Module provides the dependencies domain
var Module = fx.Module("dependencies",
	fx.Provide(NewRepository),
	fx.Provide(NewService),
	fx.Provide(NewHandler),
	fx.Invoke(RegisterRoutes),
)
