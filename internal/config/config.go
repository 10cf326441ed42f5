package config

import (
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Environment keys read by Load.
const (
	AppPortKey         = "APP_PORT"
	DatabaseDriverKey  = "DATABASE_DRIVER"
	DatabaseDSNKey     = "DATABASE_DSN"
	JWTSecretKey       = "JWT_SECRET"
	RabbitMQURLKey     = "RABBITMQ_URL"
	RabbitMQQueueKey   = "RABBITMQ_QUEUE"
	RabbitMQConsumeKey = "RABBITMQ_CONSUME"
	SeedDataKey        = "SEED_DATA"
	StorageKey         = "STORAGE"

	// EnvFilePathKey names an optional .env file applied before reading the environment.
	EnvFilePathKey     = "ENV_PATH"
	DefaultEnvFilePath = ".env"
)

// Storage backends for products.
const (
	StorageGORM   = "gorm"
	StorageMemory = "memory"
)

// Config represents the application configuration.
type Config struct {
	AppPort  string `validate:"required"`
	Database Database
	JWT      JWT
	RabbitMQ RabbitMQ
	SeedData bool
	Storage  string `validate:"oneof=gorm memory"`
}

// Database selects the gorm dialector and its DSN.
type Database struct {
	Driver string `validate:"oneof=postgres sqlite"`
	DSN    string `validate:"required"`
}

// JWT holds the HMAC secret used to sign and check tokens.
type JWT struct {
	Secret string `validate:"required"`
}

// RabbitMQ settings. An empty URL disables product events.
type RabbitMQ struct {
	URL     string `validate:"omitempty,url"`
	Queue   string `validate:"required"`
	Consume bool
}

// Enabled reports whether a broker is configured.
func (r RabbitMQ) Enabled() bool {
	return r.URL != ""
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(AppPortKey, ":8080")
	v.SetDefault(DatabaseDriverKey, "postgres")
	v.SetDefault(DatabaseDSNKey, "host=127.0.0.1 user=postgres password=postgres dbname=northwind port=5432 sslmode=disable")
	v.SetDefault(RabbitMQURLKey, "")
	v.SetDefault(RabbitMQQueueKey, "product_events")
	v.SetDefault(RabbitMQConsumeKey, false)
	v.SetDefault(SeedDataKey, false)
	v.SetDefault(StorageKey, StorageGORM)
}

// ApplyEnvFile loads environment variables from the given .env files.
func ApplyEnvFile(files ...string) error {
	if err := godotenv.Load(files...); err != nil {
		return fmt.Errorf("failed to load env file: %w", err)
	}
	return nil
}

// Load applies the optional .env file, reads the environment through v and
// validates the result.
func Load(v *viper.Viper) (*Config, error) {
	v.SetDefault(EnvFilePathKey, DefaultEnvFilePath)
	v.AutomaticEnv()
	if err := ApplyEnvFile(v.GetString(EnvFilePathKey)); err != nil {
		// the variables may be set some other way
		log.Printf("Skipping env file: %v", err)
	}

	SetDefaults(v)

	cfg := &Config{
		AppPort: v.GetString(AppPortKey),
		Database: Database{
			Driver: v.GetString(DatabaseDriverKey),
			DSN:    v.GetString(DatabaseDSNKey),
		},
		JWT: JWT{
			Secret: v.GetString(JWTSecretKey),
		},
		RabbitMQ: RabbitMQ{
			URL:     v.GetString(RabbitMQURLKey),
			Queue:   v.GetString(RabbitMQQueueKey),
			Consume: v.GetBool(RabbitMQConsumeKey),
		},
		SeedData: v.GetBool(SeedDataKey),
		Storage:  v.GetString(StorageKey),
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}
