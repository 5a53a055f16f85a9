package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port    string
	GinMode string
	SiteURL string
	// Locale routing
	DefaultLocale string
	LocalePrefix  string // "always" or "as-needed"
	// Email provider (Resend is preferred over SMTP when both are set)
	ResendAPIKey     string
	SMTPHost         string
	SMTPPort         string
	SMTPUsername     string
	SMTPPassword     string
	ContactEmailFrom string
	ContactEmailTo   string
	// Redis Configuration
	RedisURL      string
	RedisPassword string
	// Rate Limiting Configuration
	RateLimitWindowSeconds int
	ContactRateLimit       int
	// Security Configuration
	DBUrl           string
	SecurityLogToDB bool
	AllowedOrigins  []string
	// SiteFile overrides the embedded site profile when set
	SiteFile string
	// StaticDir is served under /static (images, resume, css)
	StaticDir string
}

func LoadConfig() (*Config, error) {
	// .env is only present locally
	_ = godotenv.Load()

	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		GinMode:       getEnv("GIN_MODE", "debug"),
		SiteURL:       strings.TrimRight(getEnv("SITE_URL", ""), "/"),
		DefaultLocale: getEnv("DEFAULT_LOCALE", "en"),
		LocalePrefix:  getEnv("LOCALE_PREFIX", "always"),
		// Email provider
		ResendAPIKey:     getEnv("RESEND_API_KEY", ""),
		SMTPHost:         getEnv("SMTP_HOST", ""),
		SMTPPort:         getEnv("SMTP_PORT", "587"),
		SMTPUsername:     getEnv("SMTP_USERNAME", ""),
		SMTPPassword:     getEnv("SMTP_PASSWORD", ""),
		ContactEmailFrom: getEnv("CONTACT_EMAIL_FROM", ""),
		ContactEmailTo:   getEnv("CONTACT_EMAIL_TO", ""),
		// Redis
		RedisURL:      getEnv("REDIS_URL", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		// Rate limiting (5 contact submissions per minute per IP)
		RateLimitWindowSeconds: getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		ContactRateLimit:       getEnvInt("CONTACT_RATE_LIMIT", 5),
		// Security
		DBUrl:           getEnv("DATABASE_URL", ""),
		SecurityLogToDB: getEnvBool("SECURITY_LOG_TO_DB", false),
		AllowedOrigins:  getEnvList("ALLOWED_ORIGINS"),
		SiteFile:        getEnv("SITE_FILE", ""),
		StaticDir:       getEnv("STATIC_DIR", "public"),
	}

	if cfg.ResendAPIKey == "" && cfg.SMTPHost == "" {
		log.Println("WARNING: neither RESEND_API_KEY nor SMTP_HOST is set. Contact form will be unavailable.")
	}

	if cfg.RedisURL == "" {
		log.Println("WARNING: REDIS_URL not configured. Rate limiting will use in-memory fallback.")
	}

	return cfg, nil
}

// IsProduction reports whether gin runs in release mode.
func (c *Config) IsProduction() bool {
	return c.GinMode == "release"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvBool returns a boolean environment variable or fallback if not set/invalid
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}

// getEnvList splits a comma separated variable, dropping empty items
func getEnvList(key string) []string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return nil
	}
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimRight(strings.TrimSpace(item), "/"); item != "" {
			out = append(out, item)
		}
	}
	return out
}
