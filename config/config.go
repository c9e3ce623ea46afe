package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	// HTTP server configuration
	Server struct {
		// Port the prediction API listens on
		Port string `env:"PORT" envDefault:"8000"`

		// Gin mode: debug, release or test
		GinMode string `env:"GIN_MODE" envDefault:"release"`

		// Origins allowed to call the API from a browser
		AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`

		// Time given to in-flight requests on shutdown
		ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	}

	// Models configuration
	Models struct {
		// Directory holding model_sale.json and model_rent.json
		Dir string `env:"MODEL_DIR" envDefault:"models"`
	}

	// Logging configuration
	Logging struct {
		Level string `env:"LOG_LEVEL" envDefault:"info"`
	}
}

// LoadConfig reads an optional .env file and then parses the environment.
// Variables already set in the environment win over the .env file.
func LoadConfig(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load env file: %w", err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}
