package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

const (
	DefaultItemTitle         = "Sistema Solidario"
	DefaultItemPrice         = 2500.0
	DefaultSubscriptionPrice = 3000.0
	DefaultReferralFee       = 500.0
)

const defaultSQLitePath = "solidario.db"

type Config struct {
	// server
	Port   string
	AppEnv string

	// database; empty DatabaseURL falls back to a local sqlite file
	DatabaseURL string
	SQLitePath  string

	// payment gateway
	MPAccessToken   string
	MPBaseURL       string
	MPWebhookSecret string
	WebhookVerify   bool

	// public URLs used when composing preferences and affiliate links
	BaseURL  string
	FrontURL string

	// catalog
	ItemTitle         string
	ItemPrice         float64
	SubscriptionPrice float64
	ReferralFee       float64

	// mail account
	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	MailFrom string
}

func getEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvIntOrDefault(envVar string, defaultVal int) int {
	valStr := os.Getenv(envVar)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil || val <= 0 {
		log.Printf("Warning: Invalid %s '%s'. Using default %d. Error: %v", envVar, valStr, defaultVal, err)
		return defaultVal
	}
	return val
}

func getEnvFloatOrDefault(envVar string, defaultVal float64) float64 {
	valStr := os.Getenv(envVar)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.ParseFloat(valStr, 64)
	if err != nil || val <= 0 {
		log.Printf("Warning: Invalid %s '%s'. Using default %g. Error: %v", envVar, valStr, defaultVal, err)
		return defaultVal
	}
	return val
}

func getEnvBoolOrDefault(envVar string, defaultVal bool) bool {
	valStr := os.Getenv(envVar)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.ParseBool(valStr)
	if err != nil {
		log.Printf("Warning: Invalid %s '%s'. Using default %t. Error: %v", envVar, valStr, defaultVal, err)
		return defaultVal
	}
	return val
}

func LoadConfig() (Config, error) {
	smtpUser := getEnvOrDefault("SMTP_USER", "")

	cfg := Config{
		Port:   getEnvOrDefault("PORT", "8080"),
		AppEnv: getEnvOrDefault("APP_ENV", "development"),

		DatabaseURL: os.Getenv("DATABASE_URL"),
		SQLitePath:  getEnvOrDefault("SQLITE_PATH", defaultSQLitePath),

		MPAccessToken:   getEnvOrDefault("MP_ACCESS_TOKEN", "TEST-TOKEN"),
		MPBaseURL:       getEnvOrDefault("MP_BASE_URL", "https://api.mercadopago.com"),
		MPWebhookSecret: os.Getenv("MP_WEBHOOK_SECRET"),
		WebhookVerify:   getEnvBoolOrDefault("WEBHOOK_VERIFY", true),

		BaseURL:  getEnvOrDefault("BASE_URL", "http://localhost:8080"),
		FrontURL: getEnvOrDefault("FRONT_URL", "https://tu-dominio.com"),

		ItemTitle:         getEnvOrDefault("ITEM_TITLE", DefaultItemTitle),
		ItemPrice:         getEnvFloatOrDefault("ITEM_PRICE", DefaultItemPrice),
		SubscriptionPrice: getEnvFloatOrDefault("SUBSCRIPTION_PRICE", DefaultSubscriptionPrice),
		ReferralFee:       getEnvFloatOrDefault("REFERRAL_FEE", DefaultReferralFee),

		SMTPHost: getEnvOrDefault("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort: getEnvIntOrDefault("SMTP_PORT", 587),
		SMTPUser: smtpUser,
		SMTPPass: getEnvOrDefault("SMTP_PASS", ""),
		MailFrom: getEnvOrDefault("MAIL_FROM", smtpUser),
	}

	return cfg, nil
}

// IsProduction reports whether the process runs with the production profile.
func (c Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// DatabaseDSN resolves the DSN handed to the database layer. In production a
// postgres DSN without an explicit sslmode gets sslmode=require appended,
// matching the hosted-postgres setup this service deploys to.
func (c Config) DatabaseDSN() string {
	if c.DatabaseURL == "" {
		return c.SQLitePath
	}
	dsn := c.DatabaseURL
	if c.IsProduction() && !strings.Contains(dsn, "sslmode=") {
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		dsn += sep + "sslmode=require"
	}
	return dsn
}

// UsesPostgres reports whether DATABASE_URL selects the postgres driver.
func (c Config) UsesPostgres() bool {
	return c.DatabaseURL != ""
}
