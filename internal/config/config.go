package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	AppPort    string
	AppEnv     string

	JWTSecret   string
	JWTTTL      time.Duration
	ClientURL   string
	CORSOrigins []string

	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	MailFrom string
	OTPTTL   time.Duration

	InternalKey string

	Pricing PricingConfig
}

// PricingConfig holds the checkout constants. Defaults match the storefront's
// published rates: free shipping above 500, flat fee 50, 10% tax, 10% coupon.
type PricingConfig struct {
	FreeShippingThreshold decimal.Decimal
	FlatShippingFee       decimal.Decimal
	TaxRate               decimal.Decimal
	CouponRate            decimal.Decimal
}

var errMissingEnv = errors.New("environment variables not loaded properly")

// Load reads .env (when present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DBHost:     os.Getenv("DB_HOST"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBPort:     envOr("DB_PORT", "5432"),
		AppPort:    envOr("APP_PORT", "7000"),
		AppEnv:     envOr("APP_ENV", "development"),

		JWTSecret:   os.Getenv("JWT_SECRET"),
		JWTTTL:      envDuration("JWT_TTL", 7*24*time.Hour),
		ClientURL:   envOr("CLIENT_URL", "http://localhost:5173"),
		CORSOrigins: splitList(envOr("CORS_ORIGINS", "http://localhost:5173")),

		SMTPHost: os.Getenv("SMTP_HOST"),
		SMTPPort: envInt("SMTP_PORT", 587),
		SMTPUser: os.Getenv("SMTP_USER"),
		SMTPPass: os.Getenv("SMTP_PASS"),
		MailFrom: envOr("MAIL_FROM", os.Getenv("SMTP_USER")),
		OTPTTL:   envDuration("OTP_TTL", 10*time.Minute),

		InternalKey: os.Getenv("INTERNAL_SECRET_KEY"),

		Pricing: PricingConfig{
			FreeShippingThreshold: envDecimal("FREE_SHIPPING_THRESHOLD", decimal.NewFromInt(500)),
			FlatShippingFee:       envDecimal("FLAT_SHIPPING_FEE", decimal.NewFromInt(50)),
			TaxRate:               envDecimal("TAX_RATE", decimal.RequireFromString("0.10")),
			CouponRate:            envDecimal("COUPON_RATE", decimal.RequireFromString("0.10")),
		},
	}

	if cfg.DBHost == "" || cfg.JWTSecret == "" {
		return nil, errMissingEnv
	}

	return cfg, nil
}

func LoadConfig() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatal(err)
	}
	return cfg
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return def
	}
	return v
}

func envDuration(key string, def time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil || v <= 0 {
		return def
	}
	return v
}

func envDecimal(key string, def decimal.Decimal) decimal.Decimal {
	v, err := decimal.NewFromString(os.Getenv(key))
	if err != nil || v.IsNegative() {
		return def
	}
	return v
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
