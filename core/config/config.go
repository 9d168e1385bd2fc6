package config

import (
	"reflect"
	"strings"

	"election-results/core/database"
	"election-results/core/feed"
	"election-results/core/logger"
	"election-results/core/server"
	"election-results/core/storage"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Server holds configuration for the HTTP results API.
	Server server.Config `mapstructure:"server"`
	// Feed holds configuration for the upstream results feeds.
	Feed feed.Config `mapstructure:"feed"`
	// Data holds configuration for local CSV output.
	Data DataConfig `mapstructure:"data"`
	// Storage holds configuration for the archive object storage (e.g., S3, Minio).
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the results database.
	Database database.Config `mapstructure:"database"`
}

// DataConfig holds configuration for local CSV output.
type DataConfig struct {
	// Dir is the directory CSV files are written to and loaded from.
	Dir string `mapstructure:"dir" default:"data"`
	// ConsoleLimit is the number of races printed per category.
	ConsoleLimit int `mapstructure:"console_limit" default:"5"`
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. FEED_ELECTION_DATE -> feed.election_date)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, field.Tag.Get("default"))
	}
}
