package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	// PathEnv names the variable holding the config file path.
	PathEnv = "IDEASTASH_CONFIG"
	// DefaultPath is read when present and no path was given.
	DefaultPath = "ideastash.yaml"
	dotEnvFile  = ".env"
)

// Load reads the configuration.
// Priority: ENV > .env > YAML > defaults (via env-default tags).
// The YAML file is path, else $IDEASTASH_CONFIG, else ./ideastash.yaml when it
// exists. An explicitly named file must exist.
func Load(path string) (*Config, error) {
	if err := loadDotEnv(dotEnvFile); err != nil {
		return nil, err
	}

	explicit := path != ""
	if !explicit {
		path = os.Getenv(PathEnv)
		explicit = path != ""
	}
	if !explicit {
		path = DefaultPath
	}

	var cfg Config
	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if explicit {
		return nil, fmt.Errorf("config: file %s: %w", path, err)
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

// loadDotEnv exports the variables of file without overriding the environment.
// A missing file is not an error.
func loadDotEnv(file string) error {
	err := godotenv.Load(file)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("config: read %s: %w", file, err)
}
