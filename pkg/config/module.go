package config

import "go.uber.org/fx"

func Module(opts ...Option) fx.Option {
	return fx.Provide(func() (*Config, error) {
		return Load(opts...)
	})
}
