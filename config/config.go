package config

import (
	"os"
	"strconv"
	"strings"
)

// Defaults mirror the original deployment's .env_admin values.
const (
	DefaultCaloriesThreshold = 2100
	DefaultCostThreshold     = 1000
	DefaultAdminUser         = "admin"
)

type Config struct {
	MongoURI          string
	Database          string
	Port              string
	JWTSecret         string
	TokenDomain       string // issuer claim on generated tokens
	AdminUser         string // identity granted the admin role
	CaloriesThreshold float64
	CostThreshold     float64
	AllowedOrigins    []string
}

// Load reads the configuration from environment variables. Call once at
// startup (after godotenv) and pass the result down; nothing else in the
// process holds mutable global state.
func Load() *Config {
	return &Config{
		MongoURI:          getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		Database:          getEnv("MONGODB_DATABASE", "foodtracker"),
		Port:              getEnv("PORT", "8080"),
		JWTSecret:         getEnv("JWT_SECRET", ""),
		TokenDomain:       getEnv("TOKEN_DOMAIN", "food-tracker"),
		AdminUser:         getEnv("ADMIN_USER", DefaultAdminUser),
		CaloriesThreshold: getEnvFloat("CALORIES_THRESHOLD", DefaultCaloriesThreshold),
		CostThreshold:     getEnvFloat("COST_THRESHOLD", DefaultCostThreshold),
		AllowedOrigins:    parseOrigins(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func parseOrigins(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
