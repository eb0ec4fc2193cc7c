package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

type Config struct {
	APP_ADDR              string
	DATABASE_URL          string
	SQLITE_PATH           string
	CATALOG_PASSWORD      string
	CATALOG_PASSWORD_HASH string
	SESSION_SECRET        string
	KAFKA_ADDRESS         string
	ES_URL                string
	ES_USER               string
	ES_PASSWORD           string
	ES_INDEX              string
	LOG_LEVEL             string
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Notice: .env file not found: %v. Using system environment variables", err)
	}

	config := &Config{
		APP_ADDR:              getDefault("APP_ADDR", ":8080"),
		DATABASE_URL:          os.Getenv("DATABASE_URL"),
		SQLITE_PATH:           getDefault("SQLITE_PATH", "exclucatalog.db"),
		CATALOG_PASSWORD:      os.Getenv("CATALOG_PASSWORD"),
		CATALOG_PASSWORD_HASH: os.Getenv("CATALOG_PASSWORD_HASH"),
		SESSION_SECRET:        getDefault("SESSION_SECRET", "dev-session-secret"),
		KAFKA_ADDRESS:         os.Getenv("KAFKA_ADDRESS"),
		ES_URL:                os.Getenv("ES_URL"),
		ES_USER:               os.Getenv("ES_USER"),
		ES_PASSWORD:           os.Getenv("ES_PASSWORD"),
		ES_INDEX:              getDefault("ES_INDEX", "catalog_products"),
		LOG_LEVEL:             getDefault("LOG_LEVEL", "info"),
	}

	return config, nil
}

func getDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
