// Package config provides configuration management for the event sync tool.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file (via godotenv).
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings,
// divided into subsections:
//   - Wix: API key, site id, account id, base URL
//   - Google: spreadsheet id, sheet range, service-account credentials blob
//   - Sync: timezone, inter-call delay, listing page size
//   - Log: logging level and format
//
// Required settings are validated all-or-nothing per run: ValidationErrors
// reports every missing item at once so a misconfigured environment can be
// fixed in one pass, before any network call is made.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := cfg.EnsureValid(); err != nil {
//	    log.Fatal(err)
//	}
package config
