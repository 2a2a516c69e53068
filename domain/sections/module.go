package sections

import (
	"go.uber.org/fx"
)

// Module provides the sections domain
var Module = fx.Module("sections",
	fx.Provide(NewRepository),
	fx.Provide(NewService),
	fx.Provide(NewHandler),
	fx.Invoke(RegisterRoutes),
)
