package wix

// Config holds credentials and connection settings for the Wix APIs.
type Config struct {
	// APIKey authenticates every request (Authorization header).
	APIKey string `mapstructure:"api_key" default:""`
	// SiteID selects the Wix site the events belong to.
	SiteID string `mapstructure:"site_id" default:""`
	// AccountID is required by some APIs (e.g. Site Media uploads).
	AccountID string `mapstructure:"account_id" default:""`
	// BaseURL is the API root. Overridable for tests.
	BaseURL string `mapstructure:"base_url" default:"https://www.wixapis.com"`
	// TimeoutSeconds is the per-request timeout.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
