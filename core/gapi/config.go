package gapi

import "encoding/json"

// Config holds the Google access settings for the sync process.
type Config struct {
	// SheetID is the spreadsheet to read event rows from.
	SheetID string `mapstructure:"sheet_id" default:""`
	// Credentials is the raw service-account JSON blob.
	Credentials string `mapstructure:"credentials" default:""`
	// SheetRange is the A1-notation cell range; first row must be headers.
	SheetRange string `mapstructure:"sheet_range" default:"Sheet1!A1:Z100"`
}

// ClientEmail returns the service account email from the credentials blob,
// or "" when the blob is missing, malformed, or lacks client_email.
func (c Config) ClientEmail() string {
	if c.Credentials == "" {
		return ""
	}
	var parsed struct {
		ClientEmail string `json:"client_email"`
	}
	if err := json.Unmarshal([]byte(c.Credentials), &parsed); err != nil {
		return ""
	}
	return parsed.ClientEmail
}
