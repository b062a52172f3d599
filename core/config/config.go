package config

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/sakuffo/event-automation/core/gapi"
	"github.com/sakuffo/event-automation/core/logger"
	"github.com/sakuffo/event-automation/core/wix"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Wix holds credentials and connection settings for the Wix APIs.
	Wix wix.Config `mapstructure:"wix"`
	// Google holds the Sheets/Drive settings and service-account blob.
	Google gapi.Config `mapstructure:"google"`
	// Sync holds run behavior settings for the orchestrator.
	Sync SyncConfig `mapstructure:"sync"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
}

// SyncConfig holds run behavior settings for the sync orchestrator.
type SyncConfig struct {
	// Timezone is the IANA zone events are entered in; remote UTC
	// timestamps are converted into it for identity matching.
	Timezone string `mapstructure:"timezone" default:"America/Toronto"`
	// RequestDelayMS is the courtesy pause after each mutating API call.
	RequestDelayMS int `mapstructure:"request_delay_ms" default:"1000"`
	// PageSize is the page size for remote event listing.
	PageSize int `mapstructure:"page_size" default:"200"`
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

	// Map environment variables to nested keys (e.g. WIX_API_KEY -> wix.api_key)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// ValidationErrors returns every missing or malformed required setting at
// once, named by its environment variable.
func (c *Config) ValidationErrors() []string {
	var errs []string
	if c.Wix.APIKey == "" {
		errs = append(errs, "WIX_API_KEY is missing")
	}
	if c.Wix.SiteID == "" {
		errs = append(errs, "WIX_SITE_ID is missing")
	}
	if c.Google.SheetID == "" {
		errs = append(errs, "GOOGLE_SHEET_ID is missing")
	}
	if c.Google.Credentials == "" {
		errs = append(errs, "GOOGLE_CREDENTIALS is missing")
	} else if c.Google.ClientEmail() == "" {
		errs = append(errs, "GOOGLE_CREDENTIALS is not valid JSON or missing client_email")
	}
	if _, err := time.LoadLocation(c.Sync.Timezone); err != nil {
		errs = append(errs, fmt.Sprintf("SYNC_TIMEZONE %q is not a valid IANA timezone", c.Sync.Timezone))
	}
	return errs
}

// EnsureValid returns a single error enumerating every validation failure,
// or nil when the configuration is complete.
func (c *Config) EnsureValid() error {
	errs := c.ValidationErrors()
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(errs, "; "))
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
