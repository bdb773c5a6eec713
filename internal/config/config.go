package config

import (
	"github.com/kelseyhightower/envconfig"
)

type App struct {
	// DB
	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBUser     string `envconfig:"DB_USER" default:"postgres"`
	DBPassword string `envconfig:"DB_PASSWORD" required:"true"`
	DBName     string `envconfig:"DB_NAME" default:"rental"`
	DBPort     string `envconfig:"DB_PORT" default:"5432"`
	// Redis
	RedisURL string `envconfig:"REDIS_URL" default:"redis://redis:6379"`
	// JWT
	JWTSecret string `envconfig:"JWT_SECRET" required:"true"`
	// Payment handoff: operator WhatsApp number, international format without "+"
	OperatorWhatsApp string `envconfig:"OPERATOR_WHATSAPP"`
	// Optional seed admin created on first migration
	AdminEmail    string `envconfig:"ADMIN_EMAIL"`
	AdminPassword string `envconfig:"ADMIN_PASSWORD"`

	Port string `envconfig:"PORT" default:"8080"`
}

func Load() (App, error) {
	var c App
	err := envconfig.Process("", &c)
	return c, err
}
