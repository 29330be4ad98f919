package config

import (
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	DriverMongo  = "mongo"
	DriverMemory = "memory"
)

// Set at build time with -ldflags "-X productapi/config.Version=...".
var (
	Version   = "dev"
	BuildDate = ""
)

type Config struct {
	Port string `validate:"required,numeric"`

	StorageDriver  string        `validate:"oneof=mongo memory"`
	MongoURI       string        `validate:"required_if=StorageDriver mongo"`
	DBName         string        `validate:"required"`
	CollectionName string        `validate:"required"`
	DBTimeout      time.Duration `validate:"gt=0"`

	APIToken string `validate:"required"`

	LogLevel        string        `validate:"oneof=debug info warn error"`
	GinMode         string        `validate:"oneof=debug release test"`
	ShutdownTimeout time.Duration `validate:"gt=0"`

	Version   string
	UpdatedAt string
}

// LoadEnv reads a .env file into the environment when one exists.
func LoadEnv() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logrus.WithError(err).Warn("could not read .env file")
	}
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:            GetEnv("PORT", "8080"),
		StorageDriver:   GetEnv("STORAGE_DRIVER", DriverMongo),
		MongoURI:        os.Getenv("MONGO_URI"),
		DBName:          GetEnv("DB_NAME", "shop"),
		CollectionName:  GetEnv("COLLECTION_NAME", "products"),
		DBTimeout:       getEnvAsDuration("DB_TIMEOUT", 5*time.Second),
		APIToken:        os.Getenv("API_TOKEN"),
		LogLevel:        GetEnv("LOG_LEVEL", "info"),
		GinMode:         GetEnv("GIN_MODE", "release"),
		ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		Version:         GetEnv("APP_VERSION", Version),
		UpdatedAt:       GetEnv("APP_UPDATED_AT", BuildDate),
	}
	if cfg.UpdatedAt == "" {
		cfg.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(err, "invalid configuration")
	}
	return nil
}

func GetEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}
