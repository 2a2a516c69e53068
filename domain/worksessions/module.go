package worksessions

import (
	"go.uber.org/fx"
)

// Module provides the work sessions domain
var Module = fx.Module("worksessions",
	fx.Provide(NewRepository),
	fx.Provide(NewHandler),
	fx.Invoke(RegisterRoutes),
)
