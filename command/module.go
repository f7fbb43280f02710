package command

import "go.uber.org/fx"

var Module = fx.Provide(NewRegistry)
