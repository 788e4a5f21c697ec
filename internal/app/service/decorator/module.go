package decorator

import "go.uber.org/fx"

// Module exposes the decorator approval workflow via Fx.
var Module = fx.Options(
	fx.Provide(NewService),
)
