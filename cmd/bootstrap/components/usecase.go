package components

import (
	"companion-booking/internal/infra/google"
	"companion-booking/internal/pkg/clock"
	"companion-booking/internal/pkg/config"
	"companion-booking/internal/pkg/keylock"
	"companion-booking/internal/pkg/oauthstate"
	"companion-booking/internal/usecase"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseProviderModule,
	usecaseCoreModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	keylock.New,
	func(cfg config.Config) *oauthstate.Signer {
		return oauthstate.NewSigner(cfg.JWT.Secret)
	},
	func() usecase.TaskRunner {
		return usecase.GoRunner{}
	},
)

var usecaseProviderModule = fx.Module("usecase/provider",
	fx.Provide(
		fx.Annotate(
			google.NewClient,
			fx.As(new(usecase.ProviderAuthClient)),
			fx.As(new(usecase.ProviderCalendarClient)),
		),
	),
)

var usecaseCoreModule = fx.Module("usecase/core",
	fx.Provide(
		usecase.NewCredentialVault,
		usecase.NewCalendarGateway,
		usecase.NewAvailabilityReconciler,
		usecase.NewWebhookIngester,
		usecase.NewCalendarConnectUseCase,
		usecase.NewBookingUseCase,
		usecase.NewQuotaUseCase,
		usecase.NewAuthUseCase,
		usecase.NewTokenValidator,
	),
)
