package tags

import (
	"go.uber.org/fx"
)

// Module provides the tags domain
var Module = fx.Module("tags",
	fx.Provide(NewRepository),
	fx.Provide(NewHandler),
	fx.Invoke(RegisterRoutes),
)
