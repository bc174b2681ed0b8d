package config

import (
	"reflect"
	"strings"

	"subscriber-desk/core/database"
	"subscriber-desk/core/grid"
	"subscriber-desk/core/logger"
	"subscriber-desk/core/server"
	"subscriber-desk/core/storage"
	"subscriber-desk/core/upstream"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application, divided into
// partial configurations per concern.
type Config struct {
	// Server holds configuration for the HTTP server and its accounts.
	Server server.Config `mapstructure:"server"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Upstream holds configuration for the provisioning API.
	Upstream upstream.Config `mapstructure:"upstream"`
	// Grid holds configuration for the roster grid source.
	Grid grid.Config `mapstructure:"grid"`
	// Storage holds configuration for the object storage backing the
	// grid's object backend.
	Storage storage.Config `mapstructure:"storage"`
	// Database holds configuration for the optional audit database.
	Database database.Config `mapstructure:"database"`
	// AuditEnabled turns the audit trail on.
	AuditEnabled bool `mapstructure:"audit_enabled" default:"false"`
}

// LoadConfig loads configuration from environment variables and an
// optional .env file.
func LoadConfig(path string) (*Config, error) {
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Missing .env is fine (e.g. production).
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Register defaults from struct tags so AutomaticEnv sees the keys.
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (UPSTREAM_URL -> upstream.url).
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindValues walks the struct tags and registers every key's default
// value in Viper, recursing into nested sections.
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

		// Register the default (even empty) so AutomaticEnv picks the
		// key up.
		v.SetDefault(key, field.Tag.Get("default"))
	}
}
