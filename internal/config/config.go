// Package config loads the command line configuration from a YAML file,
// a .env file and IDEASTASH_* environment variables.
package config

// Config is the root configuration of the ideastash command.
type Config struct {
	Storage     StorageConfig     `yaml:"storage"`
	Entitlement EntitlementConfig `yaml:"entitlement"`
	Log         LogConfig         `yaml:"log"`
	// Seed is the first-run policy: "samples" installs the sample ideas,
	// "none" starts empty.
	Seed string `yaml:"seed" env:"IDEASTASH_SEED" env-default:"samples"`
}

// StorageConfig selects and configures the persistence adapter.
type StorageConfig struct {
	Adapter    string      `yaml:"adapter"     env:"IDEASTASH_ADAPTER"     env-default:"fs"`
	DataDir    string      `yaml:"data_dir"    env:"IDEASTASH_DATA_DIR"`
	Versioning bool        `yaml:"versioning"  env:"IDEASTASH_VERSIONING"  env-default:"false"`
	SQLitePath string      `yaml:"sqlite_path" env:"IDEASTASH_SQLITE_PATH"`
	Redis      RedisConfig `yaml:"redis"`
}

// RedisConfig holds the redis adapter connection settings.
type RedisConfig struct {
	Addr     string `yaml:"addr"     env:"IDEASTASH_REDIS_ADDR"     env-default:"localhost:6379"`
	Password string `yaml:"password" env:"IDEASTASH_REDIS_PASSWORD"`
	DB       int    `yaml:"db"       env:"IDEASTASH_REDIS_DB"       env-default:"0"`
	Prefix   string `yaml:"prefix"   env:"IDEASTASH_REDIS_PREFIX"   env-default:"ideastash:"`
}

// EntitlementConfig selects the entitlement provider.
type EntitlementConfig struct {
	Provider string `yaml:"provider" env:"IDEASTASH_ENTITLEMENT" env-default:"local"`
}

// LogConfig controls the slog handler.
type LogConfig struct {
	Level  string `yaml:"level"  env:"IDEASTASH_LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"IDEASTASH_LOG_FORMAT" env-default:"text"`
}
