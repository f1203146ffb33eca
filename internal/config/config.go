package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// devJWTSecret is only ever used outside production.
const devJWTSecret = "tacticalgear-dev-secret"

// Config holds all application configuration
type Config struct {
	MongoURL    string
	DBName      string
	Port        string
	GoEnv       string
	LogLevel    string
	CORSOrigins []string
	JWTSecret   string

	RedisAddress  string
	RedisPassword string

	StripeSecretKey     string
	StripeWebhookSecret string

	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string

	AdminEmail    string
	AdminPassword string

	AllowSeed bool
}

// Load reads .env.<GO_ENV> (falling back to .env) into the process
// environment and then builds the Config from it.
func Load() (*Config, error) {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	envFile := fmt.Sprintf(".env.%s", env)
	if err := godotenv.Load(envFile); err != nil {
		if err := godotenv.Load(); err != nil {
			logrus.Debug("No .env file found, using system environment variables")
		}
	} else {
		logrus.Infof("Loaded configuration from %s", envFile)
	}

	return FromEnv()
}

// FromEnv builds and validates a Config from the current environment only.
func FromEnv() (*Config, error) {
	goEnv := getEnv("GO_ENV", "development")

	smtpPort, err := strconv.Atoi(getEnv("SMTP_PORT", "587"))
	if err != nil {
		return nil, fmt.Errorf("SMTP_PORT must be a number: %w", err)
	}

	allowSeed := goEnv != "production"
	if raw := os.Getenv("ALLOW_SEED"); raw != "" {
		allowSeed, err = strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("ALLOW_SEED must be a boolean: %w", err)
		}
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" && goEnv != "production" {
		jwtSecret = devJWTSecret
	}

	config := &Config{
		MongoURL:    getEnv("MONGO_URL", ""),
		DBName:      getEnv("DB_NAME", ""),
		Port:        getEnv("PORT", "8001"),
		GoEnv:       goEnv,
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "*")),
		JWTSecret:   jwtSecret,

		RedisAddress:  getEnv("REDIS_ADDRESS", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),

		StripeSecretKey:     getEnv("STRIPE_SECRET_KEY", ""),
		StripeWebhookSecret: getEnv("STRIPE_WEBHOOK_SECRET", ""),

		CloudinaryCloudName: getEnv("CLOUDINARY_CLOUD_NAME", ""),
		CloudinaryAPIKey:    getEnv("CLOUDINARY_API_KEY", ""),
		CloudinaryAPISecret: getEnv("CLOUDINARY_API_SECRET", ""),

		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     smtpPort,
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		SMTPFrom:     getEnv("SMTP_FROM", "no-reply@tacticalgear.local"),

		AdminEmail:    getEnv("ADMIN_EMAIL", ""),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),

		AllowSeed: allowSeed,
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks that all required configuration values are set
func (c *Config) Validate() error {
	var missing []string
	if c.MongoURL == "" {
		missing = append(missing, "MONGO_URL")
	}
	if c.DBName == "" {
		missing = append(missing, "DB_NAME")
	}
	if c.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	if (c.AdminEmail == "") != (c.AdminPassword == "") {
		return errors.New("ADMIN_EMAIL and ADMIN_PASSWORD must be set together")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.GoEnv == "production"
}

func (c *Config) IsTest() bool {
	return c.GoEnv == "test"
}

func (c *Config) RedisEnabled() bool {
	return c.RedisAddress != ""
}

func (c *Config) StripeEnabled() bool {
	return c.StripeSecretKey != ""
}

func (c *Config) CloudinaryEnabled() bool {
	return c.CloudinaryCloudName != "" && c.CloudinaryAPIKey != "" && c.CloudinaryAPISecret != ""
}

func (c *Config) SMTPEnabled() bool {
	return c.SMTPHost != ""
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
