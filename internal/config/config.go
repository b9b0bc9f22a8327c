package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds the full application configuration, populated from
// environment variables
type Config struct {
	App        AppConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	JWT        JWTConfig
	Email      EmailConfig
	PayHere    PayHereConfig
	Commission CommissionConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
	MaxConns int
	MinConns int
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret            string
	AccessTokenExpiry int // minutes
}

type EmailConfig struct {
	SMTPHost string
	SMTPPort string
	From     string
}

// =====================================================
// PAYHERE CONFIGURATION
// =====================================================

type PayHereConfig struct {
	MerchantID string // Merchant ID issued by PayHere
	Secret     string // Merchant secret for MD5 signatures
	ReturnURL  string // Frontend redirect after payment
	CancelURL  string // Frontend redirect after cancel
	NotifyURL  string // Backend webhook URL
	Sandbox    bool   // Use sandbox checkout endpoint
}

// CommissionConfig seeds default commission bounds when the database row is
// first created by migrations; runtime values come from commission_config.
type CommissionConfig struct {
	DefaultRate    float64
	DefaultFloor   float64
	DefaultCeiling float64
}

// Load reads config from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "RentHub API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "renthub"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			MaxConns: getEnvInt("DB_MAX_CONNS", 25),
			MinConns: getEnvInt("DB_MIN_CONNS", 5),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret:            getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
			AccessTokenExpiry: getEnvInt("JWT_ACCESS_EXPIRY", 60*24),
		},
		Email: EmailConfig{
			SMTPHost: getEnv("SMTP_HOST", "localhost"),
			SMTPPort: getEnv("SMTP_PORT", "1025"),
			From:     getEnv("EMAIL_FROM", "noreply@renthub.dev"),
		},
		PayHere: PayHereConfig{
			MerchantID: getEnv("PAYHERE_MERCHANT_ID", ""),
			Secret:     getEnv("PAYHERE_SECRET", ""),
			ReturnURL:  getEnv("PAYHERE_RETURN_URL", "http://localhost:3000/payment/return"),
			CancelURL:  getEnv("PAYHERE_CANCEL_URL", "http://localhost:3000/payment/cancel"),
			NotifyURL:  getEnv("PAYHERE_NOTIFY_URL", "http://localhost:8080/api/v1/webhooks/payhere"),
			Sandbox:    getEnvBool("PAYHERE_SANDBOX", true),
		},
		Commission: CommissionConfig{
			DefaultRate:    getEnvFloat("COMMISSION_DEFAULT_RATE", 5),
			DefaultFloor:   getEnvFloat("COMMISSION_DEFAULT_FLOOR", 500),
			DefaultCeiling: getEnvFloat("COMMISSION_DEFAULT_CEILING", 10000),
		},
	}

	// Validate critical config
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks required settings per environment
func (c *Config) Validate() error {
	if c.App.Environment == "production" {
		if c.JWT.Secret == "your-secret-key-change-in-production" {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD must be set in production")
		}
		if c.PayHere.MerchantID == "" || c.PayHere.Secret == "" {
			return fmt.Errorf("PAYHERE_MERCHANT_ID and PAYHERE_SECRET must be set in production")
		}
		if c.PayHere.Sandbox {
			fmt.Println("WARNING: PayHere sandbox mode enabled in production")
		}
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}
