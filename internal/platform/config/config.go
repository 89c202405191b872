package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	// Stateless signed session tokens
	SessionTokenSecret         string
	SessionTokenExpiryDuration time.Duration

	// DB-backed session records
	SessionRecordExpiryDuration time.Duration
	SessionCookieName           string
	SessionSweepInterval        time.Duration

	// Password reset flow
	ResetTokenExpiryDuration time.Duration
	ResetMaxRequestsPerHour  int
	ResetURLBase             string `mapstructure:"RESET_URL_BASE"`

	// API access tokens (JWT)
	APITokenSecret string
	APITokenIssuer string

	// Outbound mail
	SMTPAddr string `mapstructure:"SMTP_ADDR"`
	SMTPFrom string `mapstructure:"SMTP_FROM"`
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("SESSION_TOKEN_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("SESSION_TOKEN_EXPIRY_DURATION", "24h")
	viper.SetDefault("SESSION_RECORD_EXPIRY_DURATION", "168h")
	viper.SetDefault("SESSION_COOKIE_NAME", "pksid")
	viper.SetDefault("SESSION_SWEEP_INTERVAL", "1h")
	viper.SetDefault("RESET_TOKEN_EXPIRY_DURATION", "15m")
	viper.SetDefault("RESET_MAX_REQUESTS_PER_HOUR", 3)
	viper.SetDefault("RESET_URL_BASE", "http://localhost:3000/reset-password")
	viper.SetDefault("API_TOKEN_SECRET", "default_insecure_api_token_secret_please_change_this_!@#$")
	viper.SetDefault("API_TOKEN_ISSUER", "pinkeep-backend")
	viper.SetDefault("SMTP_ADDR", "")
	viper.SetDefault("SMTP_FROM", "noreply@pinkeep.local")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	cfg.SessionTokenSecret = viper.GetString("SESSION_TOKEN_SECRET")
	if cfg.SessionTokenSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: SESSION_TOKEN_SECRET not set. Using default insecure key. THIS IS NOT FOR PRODUCTION.")
	}

	cfg.SessionTokenExpiryDuration = parseDurationWithDefault("SESSION_TOKEN_EXPIRY_DURATION", 24*time.Hour)

	cfg.SessionRecordExpiryDuration = parseDurationWithDefault("SESSION_RECORD_EXPIRY_DURATION", 7*24*time.Hour)
	cfg.SessionCookieName = viper.GetString("SESSION_COOKIE_NAME")
	cfg.SessionSweepInterval = parseDurationWithDefault("SESSION_SWEEP_INTERVAL", time.Hour)

	cfg.ResetTokenExpiryDuration = parseDurationWithDefault("RESET_TOKEN_EXPIRY_DURATION", 15*time.Minute)
	cfg.ResetMaxRequestsPerHour = viper.GetInt("RESET_MAX_REQUESTS_PER_HOUR")
	if cfg.ResetMaxRequestsPerHour <= 0 {
		log.Println("Warning: RESET_MAX_REQUESTS_PER_HOUR must be positive. Defaulting to 3.")
		cfg.ResetMaxRequestsPerHour = 3
	}
	cfg.ResetURLBase = viper.GetString("RESET_URL_BASE")

	cfg.APITokenSecret = viper.GetString("API_TOKEN_SECRET")
	if cfg.APITokenSecret == "default_insecure_api_token_secret_please_change_this_!@#$" {
		log.Println("Warning: API_TOKEN_SECRET is not set, using default insecure secret. THIS IS NOT FOR PRODUCTION.")
	}
	cfg.APITokenIssuer = viper.GetString("API_TOKEN_ISSUER")

	cfg.SMTPAddr = viper.GetString("SMTP_ADDR")
	cfg.SMTPFrom = viper.GetString("SMTP_FROM")
	if cfg.SMTPAddr == "" {
		log.Println("Warning: SMTP_ADDR not set. Password reset emails will be logged instead of sent.")
	}

	return cfg, nil
}

func parseDurationWithDefault(key string, fallback time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback.String())
		}
		return fallback
	}
	return d
}
