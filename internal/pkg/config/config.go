package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.), security settings
// - default: Values common across all environments (timezone, timeout, etc.), standard settings
// -----------------------------------------------------------------------------

type Config struct {
	Server  ServerConfig
	DB      DBConfig
	CORS    CORSConfig
	Log     LogConfig
	JWT     JWTConfig
	Google  GoogleConfig
	Webhook WebhookConfig
	Booking BookingConfig
}

type ServerConfig struct {
	Port         string `envconfig:"PORT" required:"true"`
	DashboardURL string `envconfig:"DASHBOARD_URL" default:"http://localhost:3000/dashboard"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"UTC"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"UTC"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"0"`
}

type JWTConfig struct {
	Secret   string `envconfig:"JWT_SECRET" required:"true"`
	Duration string `envconfig:"JWT_DURATION" default:"24h"`
}

// GoogleConfig points the calendar gateway at the provider. The endpoint URLs
// are overridable so tests can target an httptest server.
type GoogleConfig struct {
	ClientID        string        `envconfig:"GOOGLE_CLIENT_ID" required:"true"`
	ClientSecret    string        `envconfig:"GOOGLE_CLIENT_SECRET" required:"true"`
	RedirectURL     string        `envconfig:"GOOGLE_REDIRECT_URL" required:"true"`
	AuthURL         string        `envconfig:"GOOGLE_AUTH_URL" default:"https://accounts.google.com/o/oauth2/auth"`
	TokenURL        string        `envconfig:"GOOGLE_TOKEN_URL" default:"https://oauth2.googleapis.com/token"`
	CalendarBaseURL string        `envconfig:"GOOGLE_CALENDAR_BASE_URL" default:"https://www.googleapis.com/calendar/v3"`
	Scopes          []string      `envconfig:"GOOGLE_SCOPES" default:"https://www.googleapis.com/auth/calendar.readonly"`
	CallTimeout     time.Duration `envconfig:"GOOGLE_CALL_TIMEOUT" default:"10s"`
}

type WebhookConfig struct {
	// CallbackURL is the public address registered with the provider's watch API.
	CallbackURL   string        `envconfig:"WEBHOOK_CALLBACK_URL" required:"true"`
	SharedSecret  string        `envconfig:"WEBHOOK_SHARED_SECRET" default:""`
	BillingSecret string        `envconfig:"BILLING_WEBHOOK_SECRET" required:"true"`
	ChannelTTL    time.Duration `envconfig:"WEBHOOK_CHANNEL_TTL" default:"168h"`
	HorizonDays   int           `envconfig:"WEBHOOK_HORIZON_DAYS" default:"7"`
	RatePerSecond float64       `envconfig:"WEBHOOK_RATE_PER_SECOND" default:"5"`
	RateBurst     int           `envconfig:"WEBHOOK_RATE_BURST" default:"10"`
}

type BookingConfig struct {
	SlotMinutes   int           `envconfig:"BOOKING_SLOT_MINUTES" default:"30"`
	SlotLockWait  time.Duration `envconfig:"BOOKING_SLOT_LOCK_WAIT" default:"5s"`
	ReconcileWait time.Duration `envconfig:"BOOKING_RECONCILE_WAIT" default:"60s"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func (c *BookingConfig) SlotLength() time.Duration {
	return time.Duration(c.SlotMinutes) * time.Minute
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port:         "8889", // Test port
			DashboardURL: "http://localhost:3000/dashboard",
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "UTC",
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "UTC",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 0,
		},
		JWT: JWTConfig{
			Secret:   "test-secret",
			Duration: "24h",
		},
		Webhook: WebhookConfig{
			CallbackURL: "http://localhost:8889/webhooks/calendar",
			ChannelTTL:  168 * time.Hour,
			HorizonDays: 7,
		},
		Booking: BookingConfig{
			SlotMinutes:   30,
			SlotLockWait:  5 * time.Second,
			ReconcileWait: 60 * time.Second,
		},
	}
}
