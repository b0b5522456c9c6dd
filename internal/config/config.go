package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	DBDSN         string
	LogFile       string
	AdminEmail    string
	AdminPassword string
}

func Load() Config {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := Config{
		Port:          getEnv("PORT", "8080"),
		DBDSN:         getEnv("DB_DSN", "farmgate.db"),
		LogFile:       getEnv("LOG_FILE", "./farmgate.log"),
		AdminEmail:    getEnv("ADMIN_EMAIL", "admin@farmgate.test"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
	}
	log.Printf("[config] PORT=%s DB_DSN=%s LOG_FILE=%s ADMIN_EMAIL=%s", cfg.Port, cfg.DBDSN, cfg.LogFile, cfg.AdminEmail)
	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
