package config

import (
	"errors"
	"os"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	Env         string
	Port        string
	DatabaseURL string
	JWTSecret   string

	AdminUsername     string
	AdminPasswordHash string

	// SalonPhone receives the "new reservation" WhatsApp notices.
	SalonPhone string
}

// Load reads configuration from the environment, with .env as a
// convenience for local development.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Env:               getEnv("APP_ENV", "development"),
		Port:              getEnv("PORT", "8080"),
		DatabaseURL:       getEnv("DATABASE_URL", "peluqueria.db"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		AdminUsername:     getEnv("ADMIN_USERNAME", "admin"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		SalonPhone:        getEnv("SALON_PHONE", "5491123456789"),
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is empty")
	}

	// ADMIN_PASSWORD is accepted as a plain fallback and hashed at
	// startup so local setups do not need a bcrypt tool.
	if cfg.AdminPasswordHash == "" {
		plain := os.Getenv("ADMIN_PASSWORD")
		if plain == "" {
			return nil, errors.New("ADMIN_PASSWORD_HASH or ADMIN_PASSWORD must be set")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		cfg.AdminPasswordHash = string(hash)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
