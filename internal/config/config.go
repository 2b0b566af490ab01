package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	AppMode  string
	Port     string
	Timezone string
	Database DatabaseConfig
	JWT      JWTConfig
	Cookie   CookieConfig
	Admin    AdminConfig
	Reports  ReportsConfig
	Cron     CronConfig
	Notify   NotifyConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Driver   string
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	// Path is the file used when Driver is sqlite
	Path string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	RefreshSecret    string
	AccessTokenMins  int
	RefreshTokenDays int
}

// CookieConfig holds cookie configuration
type CookieConfig struct {
	Secure   bool
	SameSite string
	Domain   string
}

// AdminConfig holds the service token and the seeded admin account
type AdminConfig struct {
	Token        string
	SeedUsername string
	SeedEmail    string
	SeedPassword string
}

// ReportsConfig holds dashboard cache settings
type ReportsConfig struct {
	CacheTTL  time.Duration
	CacheSize int64
}

// CronConfig holds schedules for background jobs (robfig/cron with seconds)
type CronConfig struct {
	Enabled      bool
	PaymentSweep string
	DueReminder  string
	TokenPurge   string
}

// NotifyConfig holds outbound notification settings
type NotifyConfig struct {
	WebhookURL string
	Timeout    time.Duration
}

// Global config instance
var AppConfig *Config

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	// Load .env file (ignore error if file doesn't exist in production)
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	// Get APP_MODE (default to "dev") - trim spaces for Windows compatibility
	appMode := strings.TrimSpace(getEnv("APP_MODE", "dev"))
	if appMode != "dev" && appMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", appMode)
	}

	db := loadDatabaseConfig(appMode)
	switch db.Driver {
	case "mysql", "postgres", "sqlite":
	default:
		return nil, fmt.Errorf("invalid DB_DRIVER: '%s' (must be 'mysql', 'postgres' or 'sqlite')", db.Driver)
	}

	tz := getEnv("TIMEZONE", "Local")
	if _, err := time.LoadLocation(tz); err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE: '%s': %w", tz, err)
	}

	config := &Config{
		AppMode:  appMode,
		Port:     getEnv("PORT", "3000"),
		Timezone: tz,
		Database: db,
		JWT:      loadJWTConfig(appMode),
		Cookie:   loadCookieConfig(appMode),
		Admin:    loadAdminConfig(),
		Reports:  loadReportsConfig(),
		Cron:     loadCronConfig(),
		Notify:   loadNotifyConfig(),
	}

	if config.IsProd() && config.JWT.Secret == "default_secret" {
		log.Println("⚠️ PROD_JWT_SECRET is not set, using the default secret")
	}

	// Set global config
	AppConfig = config

	log.Printf("✅ Configuration loaded successfully [MODE: %s, DB: %s]", appMode, db.Driver)
	return config, nil
}

// loadDatabaseConfig loads database config based on mode
func loadDatabaseConfig(mode string) DatabaseConfig {
	prefix := "DEV_"
	if mode == "prod" {
		prefix = "PROD_"
	}

	driver := strings.ToLower(strings.TrimSpace(getEnv("DB_DRIVER", "mysql")))
	defaultPort := "3306"
	if driver == "postgres" {
		defaultPort = "5432"
	}

	return DatabaseConfig{
		Driver:   driver,
		Host:     getEnv(prefix+"DB_HOST", "localhost"),
		Port:     getEnv(prefix+"DB_PORT", defaultPort),
		User:     getEnv(prefix+"DB_USER", "root"),
		Password: getEnv(prefix+"DB_PASS", ""),
		DBName:   getEnv(prefix+"DB_NAME", "rentdesk"),
		Path:     getEnv(prefix+"DB_PATH", "rentdesk.db"),
	}
}

// loadJWTConfig loads JWT config based on mode
func loadJWTConfig(mode string) JWTConfig {
	prefix := "DEV_"
	if mode == "prod" {
		prefix = "PROD_"
	}

	accessMins, _ := strconv.Atoi(getEnv("ACCESS_TOKEN_MINUTES", "15"))
	refreshDays, _ := strconv.Atoi(getEnv("REFRESH_TOKEN_DAYS", "7"))

	return JWTConfig{
		Secret:           getEnv(prefix+"JWT_SECRET", "default_secret"),
		RefreshSecret:    getEnv(prefix+"JWT_REFRESH_SECRET", "default_refresh_secret"),
		AccessTokenMins:  accessMins,
		RefreshTokenDays: refreshDays,
	}
}

// loadCookieConfig loads cookie config based on mode
func loadCookieConfig(mode string) CookieConfig {
	prefix := "DEV_"
	if mode == "prod" {
		prefix = "PROD_"
	}

	secure, _ := strconv.ParseBool(getEnv(prefix+"COOKIE_SECURE", "false"))

	return CookieConfig{
		Secure:   secure,
		SameSite: getEnv("COOKIE_SAMESITE", "lax"),
		Domain:   getEnv("COOKIE_DOMAIN", ""),
	}
}

func loadAdminConfig() AdminConfig {
	return AdminConfig{
		Token:        getEnv("ADMIN_TOKEN", ""),
		SeedUsername: getEnv("SEED_ADMIN_USERNAME", "admin"),
		SeedEmail:    getEnv("SEED_ADMIN_EMAIL", "admin@rentdesk.local"),
		SeedPassword: getEnv("SEED_ADMIN_PASSWORD", ""),
	}
}

func loadReportsConfig() ReportsConfig {
	ttl, err := strconv.Atoi(getEnv("REPORT_CACHE_TTL_SECONDS", "60"))
	if err != nil || ttl < 0 {
		ttl = 60
	}
	size, err := strconv.ParseInt(getEnv("REPORT_CACHE_SIZE", "500"), 10, 64)
	if err != nil || size <= 0 {
		size = 500
	}
	return ReportsConfig{
		CacheTTL:  time.Duration(ttl) * time.Second,
		CacheSize: size,
	}
}

func loadCronConfig() CronConfig {
	enabled, _ := strconv.ParseBool(getEnv("CRON_ENABLED", "true"))
	return CronConfig{
		Enabled:      enabled,
		PaymentSweep: getEnv("CRON_PAYMENT_SWEEP", "0 5 0 * * *"),
		DueReminder:  getEnv("CRON_DUE_REMINDER", "0 30 8 * * *"),
		TokenPurge:   getEnv("CRON_TOKEN_PURGE", "@every 1h"),
	}
}

func loadNotifyConfig() NotifyConfig {
	secs, err := strconv.Atoi(getEnv("NOTIFY_TIMEOUT_SECONDS", "10"))
	if err != nil || secs <= 0 {
		secs = 10
	}
	return NotifyConfig{
		WebhookURL: getEnv("NOTIFY_WEBHOOK_URL", ""),
		Timeout:    time.Duration(secs) * time.Second,
	}
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// Location returns the configured business timezone
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// GetAllowedOrigins returns allowed origins for CORS
func (c *Config) GetAllowedOrigins() string {
	origins := getEnv("ALLOWED_ORIGINS", "")
	if origins == "" {
		if c.IsDev() {
			return "*"
		}
		return "http://localhost:5173"
	}
	return origins
}
