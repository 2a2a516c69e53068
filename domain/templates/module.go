package templates

import (
	"go.uber.org/fx"
)

// Module provides the templates domain
var Module = fx.Module("templates",
	fx.Provide(NewRepository),
	fx.Provide(NewHandler),
	fx.Invoke(RegisterRoutes),
)
