package config_fx

import (
	"go.uber.org/fx"
	"tripgen/internal/infra"
)

var Module = fx.Provide(infra.LoadConfig)
