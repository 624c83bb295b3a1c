package components

import (
	"companion-booking/internal/handler"
	"companion-booking/internal/handler/api"
	"companion-booking/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewBookingHandler,
		api.NewAvailabilityHandler,
		api.NewQuotaHandler,
		api.NewOAuthHandler,
		api.NewWebhookHandler,
		middleware.NewAuthMiddleware,
		NewHandlers,
	),
	fx.Invoke(handler.NewRouter),
)

func NewHandlers(
	authHandler *api.AuthHandler,
	bookingHandler *api.BookingHandler,
	availabilityHandler *api.AvailabilityHandler,
	quotaHandler *api.QuotaHandler,
	oauthHandler *api.OAuthHandler,
	webhookHandler *api.WebhookHandler,
) handler.Handlers {
	return handler.Handlers{
		Auth:         authHandler,
		Booking:      bookingHandler,
		Availability: availabilityHandler,
		Quota:        quotaHandler,
		OAuth:        oauthHandler,
		Webhook:      webhookHandler,
	}
}
