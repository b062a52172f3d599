package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCredentials = `{"type":"service_account","client_email":"sync@project.iam.gserviceaccount.com"}`

func setValidEnv(t *testing.T) {
	t.Helper()
	t.Setenv("WIX_API_KEY", "test-key")
	t.Setenv("WIX_SITE_ID", "test-site")
	t.Setenv("GOOGLE_SHEET_ID", "sheet-123")
	t.Setenv("GOOGLE_CREDENTIALS", testCredentials)
}

func TestLoadConfigDefaults(t *testing.T) {
	setValidEnv(t)

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "https://www.wixapis.com", cfg.Wix.BaseURL)
	assert.Equal(t, 30, cfg.Wix.TimeoutSeconds)
	assert.Equal(t, "Sheet1!A1:Z100", cfg.Google.SheetRange)
	assert.Equal(t, "America/Toronto", cfg.Sync.Timezone)
	assert.Equal(t, 1000, cfg.Sync.RequestDelayMS)
	assert.Equal(t, 200, cfg.Sync.PageSize)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestLoadConfigFromEnv(t *testing.T) {
	setValidEnv(t)
	t.Setenv("SYNC_TIMEZONE", "Europe/Berlin")
	t.Setenv("SYNC_PAGE_SIZE", "50")
	t.Setenv("GOOGLE_SHEET_RANGE", "Events!A1:M500")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "test-key", cfg.Wix.APIKey)
	assert.Equal(t, "test-site", cfg.Wix.SiteID)
	assert.Equal(t, "sheet-123", cfg.Google.SheetID)
	assert.Equal(t, "Europe/Berlin", cfg.Sync.Timezone)
	assert.Equal(t, 50, cfg.Sync.PageSize)
	assert.Equal(t, "Events!A1:M500", cfg.Google.SheetRange)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.NoError(t, cfg.EnsureValid())
}

func TestValidationReportsEverythingAtOnce(t *testing.T) {
	cfg := &Config{}
	cfg.Sync.Timezone = "Mars/Olympus_Mons"

	errs := cfg.ValidationErrors()
	require.Len(t, errs, 5)

	joined := ""
	for _, e := range errs {
		joined += e + "\n"
	}
	assert.Contains(t, joined, "WIX_API_KEY")
	assert.Contains(t, joined, "WIX_SITE_ID")
	assert.Contains(t, joined, "GOOGLE_SHEET_ID")
	assert.Contains(t, joined, "GOOGLE_CREDENTIALS")
	assert.Contains(t, joined, "SYNC_TIMEZONE")

	err := cfg.EnsureValid()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "WIX_API_KEY")
	assert.Contains(t, err.Error(), "SYNC_TIMEZONE")
}

func TestValidationRejectsBadCredentialsJSON(t *testing.T) {
	cfg := &Config{}
	cfg.Wix.APIKey = "k"
	cfg.Wix.SiteID = "s"
	cfg.Google.SheetID = "sheet"
	cfg.Google.Credentials = "not json"
	cfg.Sync.Timezone = "UTC"

	errs := cfg.ValidationErrors()
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "GOOGLE_CREDENTIALS")
}

func TestValidationAcceptsCompleteConfig(t *testing.T) {
	cfg := &Config{}
	cfg.Wix.APIKey = "k"
	cfg.Wix.SiteID = "s"
	cfg.Google.SheetID = "sheet"
	cfg.Google.Credentials = testCredentials
	cfg.Sync.Timezone = "America/Toronto"

	assert.Empty(t, cfg.ValidationErrors())
	assert.NoError(t, cfg.EnsureValid())
}
