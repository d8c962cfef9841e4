package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all configuration values
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Payment   PaymentConfig
	Mail      MailConfig
	Jobs      JobsConfig
	RateLimit RateLimitConfig
	Cache     CacheConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port string
	Env  string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Driver      string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	SQLitePath  string
	AutoMigrate bool
}

// URL returns the database connection URL
func (c DatabaseConfig) URL() string {
	return "postgres://" + c.User + ":" + c.Password + "@" + c.Host + ":" + strconv.Itoa(c.Port) + "/" + c.DBName + "?sslmode=" + c.SSLMode
}

// IsSQLite reports whether the sqlite driver is selected
func (c DatabaseConfig) IsSQLite() bool {
	return c.Driver == "sqlite"
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	URL      string
	Password string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret        string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

// PaymentConfig holds checkout and fee settings
type PaymentConfig struct {
	CheckoutSecret    string
	DefaultFeePercent float64
	Currency          string
}

// MailConfig holds SMTP settings for notifications. An empty host disables mail.
type MailConfig struct {
	Host             string
	Port             int
	Username         string
	Password         string
	From             string
	AdminNotifyEmail string
}

// Enabled reports whether an SMTP host is configured
func (c MailConfig) Enabled() bool {
	return c.Host != ""
}

// JobsConfig holds background job schedules
type JobsConfig struct {
	Enabled           bool
	BookingExpirySpec string
	ReminderSpec      string
	StaleAfter        time.Duration
}

// RateLimitConfig limits requests per client IP on public auth routes
type RateLimitConfig struct {
	Limit  int
	Window time.Duration
}

// CacheConfig holds cache lifetimes
type CacheConfig struct {
	ServiceCatalogTTL time.Duration
	IdempotencyTTL    time.Duration
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
			Env:  getEnv("SERVER_ENV", "development"),
		},
		Database: DatabaseConfig{
			Driver:      getEnv("DB_DRIVER", "postgres"),
			Host:        getEnv("DB_HOST", "localhost"),
			Port:        getEnvAsInt("DB_PORT", 5432),
			User:        getEnv("DB_USER", "postgres"),
			Password:    getEnv("DB_PASSWORD", "postgres"),
			DBName:      getEnv("DB_NAME", "careconnect"),
			SSLMode:     getEnv("DB_SSLMODE", "disable"),
			SQLitePath:  getEnv("DB_SQLITE_PATH", "careconnect.db"),
			AutoMigrate: getEnvAsBool("DB_AUTO_MIGRATE", false),
		},
		Redis: RedisConfig{
			URL:      getEnv("REDIS_URL", "redis://localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
		},
		JWT: JWTConfig{
			Secret:        getEnv("JWT_SECRET", "change-this-in-production"),
			AccessExpiry:  getEnvAsDuration("JWT_ACCESS_EXPIRY", 15*time.Minute),
			RefreshExpiry: getEnvAsDuration("JWT_REFRESH_EXPIRY", 7*24*time.Hour),
		},
		Payment: PaymentConfig{
			CheckoutSecret:    getEnv("CHECKOUT_SECRET", ""),
			DefaultFeePercent: getEnvAsFloat("PLATFORM_FEE_PERCENT", 15),
			Currency:          getEnv("WALLET_CURRENCY", "INR"),
		},
		Mail: MailConfig{
			Host:             getEnv("SMTP_HOST", ""),
			Port:             getEnvAsInt("SMTP_PORT", 587),
			Username:         getEnv("SMTP_USERNAME", ""),
			Password:         getEnv("SMTP_PASSWORD", ""),
			From:             getEnv("SMTP_FROM", "no-reply@careconnect.local"),
			AdminNotifyEmail: getEnv("ADMIN_NOTIFY_EMAIL", ""),
		},
		Jobs: JobsConfig{
			Enabled:           getEnvAsBool("JOBS_ENABLED", true),
			BookingExpirySpec: getEnv("JOB_BOOKING_EXPIRY_SPEC", "@every 15m"),
			ReminderSpec:      getEnv("JOB_REVIEW_REMINDER_SPEC", "0 9 * * *"),
			StaleAfter:        getEnvAsDuration("JOB_BOOKING_STALE_AFTER", 48*time.Hour),
		},
		RateLimit: RateLimitConfig{
			Limit:  getEnvAsInt("RATE_LIMIT_AUTH", 20),
			Window: getEnvAsDuration("RATE_LIMIT_WINDOW", time.Minute),
		},
		Cache: CacheConfig{
			ServiceCatalogTTL: getEnvAsDuration("CACHE_SERVICES_TTL", 5*time.Minute),
			IdempotencyTTL:    getEnvAsDuration("IDEMPOTENCY_TTL", 24*time.Hour),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
