package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	ServerAddress string
	Environment   string

	// Supabase configuration. Leaving URL or key empty puts the
	// application into self-contained demo mode.
	SupabaseURL        string
	SupabaseServiceKey string

	// Authentication
	JWTSecret string
	JWTIssuer string

	// Logging
	LogLevel string

	// HTTP
	EnableCORS     bool
	AllowedOrigins []string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerAddress: getEnv("SERVER_ADDRESS", ":8080"),
		Environment:   getEnv("ENVIRONMENT", "development"),

		SupabaseURL:        getEnv("SUPABASE_URL", ""),
		SupabaseServiceKey: getEnv("SUPABASE_SERVICE_ROLE_KEY", ""),

		JWTSecret: getEnv("SUPABASE_JWT_SECRET", ""),
		JWTIssuer: getEnv("JWT_ISSUER", ""),

		LogLevel:       getEnv("LOG_LEVEL", "info"),
		EnableCORS:     getEnvBool("ENABLE_CORS", true),
		AllowedOrigins: getEnvList("ALLOWED_ORIGINS", []string{"http://localhost:3000", "http://localhost:5173"}),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks required configuration
func (c *Config) Validate() error {
	if c.SupabaseConfigured() && c.JWTSecret == "" {
		return fmt.Errorf("SUPABASE_JWT_SECRET is required when Supabase is configured")
	}
	if c.Environment == "production" && !c.SupabaseConfigured() {
		return fmt.Errorf("demo mode is not allowed in production; set SUPABASE_URL and SUPABASE_SERVICE_ROLE_KEY")
	}
	return nil
}

// SupabaseConfigured reports whether a real backend is configured
func (c *Config) SupabaseConfigured() bool {
	return c.SupabaseURL != "" && c.SupabaseServiceKey != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				out = append(out, trimmed)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return defaultValue
}
