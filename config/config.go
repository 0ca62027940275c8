package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port      string
	DBType    string
	Postgres  string
	SQLite    string
	JWTSecret string
	// TokenExpireMinutes is the access token lifetime.
	TokenExpireMinutes int
	// BooksAPIURL is the external catalog endpoint (Google Books volumes).
	BooksAPIURL   string
	AllowedOrigin string
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg := &Config{
		Port:               os.Getenv("PORT"),
		DBType:             os.Getenv("DB_TYPE"),
		Postgres:           os.Getenv("POSTGRES_URL"),
		SQLite:             os.Getenv("SQLITE_PATH"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		TokenExpireMinutes: getEnvAsInt("TOKEN_EXPIRE_MINUTES", 60),
		BooksAPIURL:        os.Getenv("BOOKS_API_URL"),
		AllowedOrigin:      os.Getenv("CORS_ALLOWED_ORIGIN"),
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.DBType == "" {
		cfg.DBType = "sqlite"
	}
	if cfg.BooksAPIURL == "" {
		cfg.BooksAPIURL = "https://www.googleapis.com/books/v1/volumes"
	}
	if cfg.AllowedOrigin == "" {
		cfg.AllowedOrigin = "*"
	}
	if cfg.JWTSecret == "" {
		log.Println("JWT_SECRET not set, using insecure development default")
		cfg.JWTSecret = "dev-secret-change-me"
	}
	return cfg
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
