package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"golang.org/x/time/rate"

	"companion-booking/internal/handler/api"
	"companion-booking/internal/handler/middleware"
	"companion-booking/internal/metrics"
	"companion-booking/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Auth         *api.AuthHandler
	Booking      *api.BookingHandler
	Availability *api.AvailabilityHandler
	Quota        *api.QuotaHandler
	OAuth        *api.OAuthHandler
	Webhook      *api.WebhookHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, handlers Handlers, authMiddleware *middleware.AuthMiddleware) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, cfg, handlers, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(metrics.Middleware())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, cfg config.Config, handlers Handlers, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", healthCheck)
	engine.GET("/metrics", gin.WrapH(metrics.Handler()))

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Provider redirect target; the signed state parameter is the only auth.
	engine.GET("/auth/google/callback", handlers.OAuth.Callback)

	limiter := middleware.NewIPRateLimiter(rate.Limit(cfg.Webhook.RatePerSecond), cfg.Webhook.RateBurst)
	webhooks := engine.Group("/webhooks")
	webhooks.Use(limiter.Middleware())
	{
		addRoutes(webhooks, []route{
			{Method: http.MethodGet, Path: "/calendar", Handler: handlers.Webhook.Challenge},
			{Method: http.MethodPost, Path: "/calendar", Handler: handlers.Webhook.Notify},
			{Method: http.MethodPost, Path: "/billing", Handler: handlers.Webhook.BillingEvent},
		})
	}

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/login", Handler: handlers.Auth.Login},
			})
		}

		appointments := apiGroup.Group("/appointments")
		appointments.Use(authMiddleware.RequireAuth())
		{
			addRoutes(appointments, []route{
				{Method: http.MethodPost, Path: "", Handler: handlers.Booking.Create},
				{Method: http.MethodGet, Path: "", Handler: handlers.Booking.List},
				{Method: http.MethodGet, Path: "/:id", Handler: handlers.Booking.Get},
				{Method: http.MethodDelete, Path: "/:id", Handler: handlers.Booking.Cancel},
			})
		}

		companions := apiGroup.Group("/companions")
		companions.Use(authMiddleware.RequireAuth())
		{
			addRoutes(companions, []route{
				{Method: http.MethodGet, Path: "/:id/availability", Handler: handlers.Availability.Slots},
				{Method: http.MethodGet, Path: "/:id/calendar/connect", Handler: handlers.OAuth.Authorize},
			})
		}

		quota := apiGroup.Group("/quota")
		quota.Use(authMiddleware.RequireAuth())
		{
			addRoutes(quota, []route{
				{Method: http.MethodGet, Path: "", Handler: handlers.Quota.Get},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
