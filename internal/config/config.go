package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/at-ishikawa/dailyword/internal/language"
	"github.com/at-ishikawa/dailyword/internal/validate"
)

const (
	DriverFile     = "file"
	DriverSQLite   = "sqlite"
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

type Config struct {
	Content  ContentConfig  `mapstructure:"content"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Database DatabaseConfig `mapstructure:"database"`
	Tutor    TutorConfig    `mapstructure:"tutor"`
	Reminder ReminderConfig `mapstructure:"reminder"`
}

type ContentConfig struct {
	DefaultLanguage  language.Code `mapstructure:"default_language" validate:"required,langcode"`
	CatalogDirectory string        `mapstructure:"catalog_directory" validate:"omitempty,dir"`
}

type StorageConfig struct {
	Driver        string        `mapstructure:"driver" validate:"oneof=file sqlite mysql postgres"`
	Directory     string        `mapstructure:"directory" validate:"required_if=Driver file"`
	SQLitePath    string        `mapstructure:"sqlite_path" validate:"required_if=Driver sqlite"`
	WriteAttempts uint          `mapstructure:"write_attempts" validate:"min=1"`
	WriteDelay    time.Duration `mapstructure:"write_delay"`
}

type DatabaseConfig struct {
	Host            string            `mapstructure:"host"`
	Port            int               `mapstructure:"port"`
	Database        string            `mapstructure:"database"`
	Username        string            `mapstructure:"username"`
	Password        string            `mapstructure:"password"`
	TLS             bool              `mapstructure:"tls"`
	SSLMode         string            `mapstructure:"ssl_mode" validate:"omitempty,oneof=disable require verify-ca verify-full"`
	Params          map[string]string `mapstructure:"params"`
	MaxOpenConns    int               `mapstructure:"max_open_conns"`
	MaxIdleConns    int               `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int               `mapstructure:"conn_max_lifetime_seconds"`
}

// TutorConfig controls the simulated typing pause before each tutor reply.
type TutorConfig struct {
	MinTypingDelay time.Duration `mapstructure:"min_typing_delay" validate:"gte=0"`
	MaxTypingDelay time.Duration `mapstructure:"max_typing_delay" validate:"gtefield=MinTypingDelay"`
}

type ReminderConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	At      string `mapstructure:"at" validate:"clock"`
}

type ConfigLoader struct {
	viper     *viper.Viper
	validator *validate.Validator
	envFile   string
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validator, err := validate.New()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/dailyword")
	}

	return &ConfigLoader{
		viper:     v,
		validator: validator,
		envFile:   ".env",
	}, nil
}

// WithEnvFile changes the dotenv file read before environment variables are bound.
func (loader *ConfigLoader) WithEnvFile(path string) *ConfigLoader {
	loader.envFile = path
	return loader
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	// Variables already set in the environment win over the dotenv file
	if loader.envFile != "" {
		if err := godotenv.Load(loader.envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("godotenv.Load(%s) > %w", loader.envFile, err)
		}
	}

	v.SetDefault("content.default_language", string(language.Default))
	v.SetDefault("content.catalog_directory", "")
	v.SetDefault("storage.driver", DriverFile)
	v.SetDefault("storage.directory", "data")
	v.SetDefault("storage.sqlite_path", filepath.Join("data", "dailyword.db"))
	v.SetDefault("storage.write_attempts", 3)
	v.SetDefault("storage.write_delay", 50*time.Millisecond)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.database", "dailyword")
	v.SetDefault("database.username", "user")
	v.SetDefault("tutor.min_typing_delay", 800*time.Millisecond)
	v.SetDefault("tutor.max_typing_delay", 1600*time.Millisecond)
	v.SetDefault("reminder.enabled", false)
	v.SetDefault("reminder.at", "09:00")

	envBindings := []struct {
		key string
		env string
	}{
		{key: "storage.driver", env: "DAILYWORD_STORAGE_DRIVER"},
		{key: "storage.directory", env: "DAILYWORD_STORAGE_DIRECTORY"},
		{key: "database.host", env: "DAILYWORD_DB_HOST"},
		{key: "database.username", env: "DAILYWORD_DB_USERNAME"},
		// Only from the environment, never from the config file in practice
		{key: "database.password", env: "DAILYWORD_DB_PASSWORD"},
	}
	for _, binding := range envBindings {
		if err := v.BindEnv(binding.key, binding.env); err != nil {
			return nil, fmt.Errorf("failed to bind %s environment variable: %w", binding.env, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := loader.validator.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}
