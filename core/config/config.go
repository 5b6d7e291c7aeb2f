package config

import (
	"reflect"
	"strings"

	"launcher-agent/core/history"
	"launcher-agent/core/logger"
	"launcher-agent/core/prefs"
	"launcher-agent/core/server"
	"launcher-agent/feature/launch"
	"launcher-agent/feature/patches"
	"launcher-agent/feature/roster"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Server holds configuration for the HTTP boundary exposed to the shell.
	Server server.Config `mapstructure:"server"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Launcher holds configuration for the game-client launch supervisor.
	Launcher launch.Config `mapstructure:"launcher"`
	// Roster holds configuration for the remote server roster endpoint.
	Roster roster.Config `mapstructure:"roster"`
	// Patches holds configuration for the plugin-configuration document.
	Patches patches.Config `mapstructure:"patches"`
	// Prefs holds configuration for the user preferences document.
	Prefs prefs.Config `mapstructure:"prefs"`
	// History holds configuration for the optional launch-history database.
	History history.Config `mapstructure:"history"`
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	// 1. Load .env file if it exists
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. LAUNCHER_PATH -> launcher.path)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	config.Launcher.ExpandPaths()
	config.Patches.ExpandPath()

	return &config, nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	// If it's a pointer, get the element
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		// Skip if no tag
		if tag == "" {
			continue
		}

		// Build the key
		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		// If it's a nested struct, recurse
		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		defaultValue := field.Tag.Get("default")
		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, defaultValue)
	}
}
