package bootstrap

import (
	"companion-booking/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
		// Sub-configs so constructors can depend on just the slice they need.
		func(cfg config.Config) config.ServerConfig { return cfg.Server },
		func(cfg config.Config) config.GoogleConfig { return cfg.Google },
		func(cfg config.Config) config.WebhookConfig { return cfg.Webhook },
		func(cfg config.Config) config.BookingConfig { return cfg.Booking },
	),
)
