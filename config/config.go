package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// insecureDefaultSecret is the fallback signing secret used when JWT_SECRET
// is unset. It exists for local development only and must never reach
// production.
const insecureDefaultSecret = "my_super_secret_key_12345"

type Config struct {
	ServerPort int
	Database   DatabaseConfig
	JWTSecret  string
	CORSOrigin string
	Production bool
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	UseSSL   bool
}

func LoadConfig() Config {
	if os.Getenv("ENV") == "dev" {
		godotenv.Load()
	}

	dbConfig := DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnvInt("DB_PORT", 5432),
		User:     getEnv("DB_USER", "ems"),
		Password: getEnv("DB_PASSWORD", "password"),
		DBName:   getEnv("DB_NAME", "ems_db"),
		UseSSL:   getEnvBool("DB_USE_SSL", false),
	}

	return Config{
		ServerPort: getEnvInt("SERVER_PORT", 8040),
		Database:   dbConfig,
		JWTSecret:  getEnv("JWT_SECRET", insecureDefaultSecret),
		CORSOrigin: getEnv("CORS_ORIGIN", "http://localhost:3000"),
		Production: os.Getenv("ENV") == "production",
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if valueStr, exists := os.LookupEnv(key); exists {
		var value int
		fmt.Sscanf(valueStr, "%d", &value)
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if valueStr, exists := os.LookupEnv(key); exists {
		return valueStr == "true" || valueStr == "1"
	}
	return defaultValue
}
