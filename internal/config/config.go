package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// The values are read by Viper from a config file or environment variables.
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	State  StateConfig  `mapstructure:"state"`
	AI     AIConfig     `mapstructure:"ai"`
	Backup BackupConfig `mapstructure:"backup"`
}

type ServerConfig struct {
	Address string `mapstructure:"address"`
}

// StateConfig selects and parameterizes the state store backend.
type StateConfig struct {
	Backend string `mapstructure:"backend"` // "file", "mongo" or "memory"
	// File backend
	Path string `mapstructure:"path"`
	// Mongo backend
	URI      string `mapstructure:"uri"`
	Database string `mapstructure:"database"`
}

// AIConfig parameterizes the plan generation gateway.
type AIConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	BaseURL string        `mapstructure:"base_url"` // any OpenAI-compatible endpoint
	Model   string        `mapstructure:"model"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// BackupConfig parameterizes state snapshot uploads to S3-compatible storage.
// Backups are disabled unless enabled explicitly.
type BackupConfig struct {
	Enabled         bool   `mapstructure:"enabled"`
	Endpoint        string `mapstructure:"endpoint"`
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	BucketName      string `mapstructure:"bucket_name"`
	UseSSL          bool   `mapstructure:"use_ssl"`
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Environment variable handling: state.path -> STATE_PATH, ai.api_key -> AI_API_KEY
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))

	viper.SetDefault("server.address", ":8080")
	viper.SetDefault("state.backend", "file")
	viper.SetDefault("state.path", "fitcoach_state.json")
	viper.SetDefault("state.uri", "mongodb://localhost:27017")
	viper.SetDefault("state.database", "fitcoach")
	viper.SetDefault("ai.model", "gpt-4o-mini")
	viper.SetDefault("ai.timeout", "30s")
	viper.SetDefault("backup.enabled", false)
	viper.SetDefault("backup.use_ssl", true)

	err = viper.ReadInConfig()
	// A missing config file is fine; defaults and env vars carry the load.
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		err = nil
	} else if err != nil {
		return
	}

	err = viper.Unmarshal(&config)
	return
}
