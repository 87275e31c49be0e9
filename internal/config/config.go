package config

import (
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all runtime configuration, populated from the environment.
type Config struct {
	Port        int    `envconfig:"PORT" default:"8080"`
	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`
	JWTSecret   string `envconfig:"JWT_SECRET"`

	Storage StorageConfig
}

// StorageConfig configures the S3-compatible object store. Every field is
// required: the server refuses to start with a partially configured store
// rather than failing on the first upload.
type StorageConfig struct {
	Endpoint       string `envconfig:"STORAGE_ENDPOINT" required:"true"`
	Region         string `envconfig:"STORAGE_REGION" required:"true"`
	AccessKey      string `envconfig:"STORAGE_ACCESS_KEY" required:"true"`
	SecretKey      string `envconfig:"STORAGE_SECRET_KEY" required:"true"`
	BucketName     string `envconfig:"STORAGE_BUCKET_NAME" required:"true"`
	PublicEndpoint string `envconfig:"STORAGE_PUBLIC_ENDPOINT" required:"true"`
	UseSSL         bool   `envconfig:"STORAGE_USE_SSL" default:"true"`
}

// Load reads configuration from the environment, merging in a .env file if
// one is present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
