package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort     string
	DBHost         string
	DBPort         string
	DBUser         string
	DBPassword     string
	DBName         string
	AuthURL        string
	AuthServiceKey string
	JWTSecret      string
}

func Load() *Config {
	// Optional .env for local development; deployments rely on real env vars.
	_ = godotenv.Load()

	return &Config{
		ServerPort:     getEnv("SERVER_PORT", "8080"),
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", "5432"),
		DBUser:         getEnv("DB_USER", "clubhouse"),
		DBPassword:     getEnv("DB_PASSWORD", "clubhouse_dev_password"),
		DBName:         getEnv("DB_NAME", "clubhouse"),
		AuthURL:        getEnv("AUTH_URL", "http://localhost:9999"),
		AuthServiceKey: getEnv("AUTH_SERVICE_KEY", ""),
		JWTSecret:      getEnv("JWT_SECRET", "dev-secret-change-me"),
	}
}

func getEnv(key, fallback string) string {
	val, exists := os.LookupEnv(key)

	if exists {
		return val
	}

	return fallback
}
