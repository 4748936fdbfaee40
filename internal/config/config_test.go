package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets every CRMSHEET_ variable for the test. A variable that
// is set but empty still overrides YAML values.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, kv := range os.Environ() {
		name, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(name, "CRMSHEET_") {
			t.Setenv(name, "")
			os.Unsetenv(name)
		}
	}
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, BackendSQLite, cfg.Backend)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 3, cfg.Sheets.MaxRetries)
	assert.Equal(t, time.Second, cfg.Sheets.RetryWaitMin)
	assert.Equal(t, 8*time.Second, cfg.Sheets.RetryWaitMax)
	assert.Equal(t, "Companies", cfg.Sheets.Names.Companies)
	assert.Equal(t, "UserPreferences", cfg.Sheets.Names.UserPreferences)
	assert.Equal(t, "https://sheets.googleapis.com", cfg.Sheets.BaseURL)
	assert.Equal(t, filepath.Join(os.Getenv("HOME"), ".crmsheet", "crm.db"), cfg.DBPath)
}

func TestLoad_EnvOverridesYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
backend: sheets
db_path: /tmp/ignored.db
author: owner@example.com
cache_ttl: 1m
sheets:
  spreadsheet_id: sheet-from-yaml
  names:
    companies: Firmy
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	t.Setenv("CRMSHEET_AUTHOR", "env@example.com")
	t.Setenv("CRMSHEET_SHEETS_TOKEN", "secret")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, BackendSheets, cfg.Backend)
	assert.Equal(t, "env@example.com", cfg.Author)
	assert.Equal(t, "sheet-from-yaml", cfg.Sheets.SpreadsheetID)
	assert.Equal(t, "secret", cfg.Sheets.AccessToken)
	assert.Equal(t, time.Minute, cfg.CacheTTL)
	assert.Equal(t, "Firmy", cfg.Sheets.Names.Companies)
	assert.Equal(t, "Contacts", cfg.Sheets.Names.Contacts)
}

func TestLoad_SheetsWithoutTokenFails(t *testing.T) {
	clearEnv(t)
	t.Setenv("CRMSHEET_BACKEND", "sheets")
	t.Setenv("CRMSHEET_SPREADSHEET_ID", "abc")

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CRMSHEET_SHEETS_TOKEN")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"sqlite", Config{Backend: BackendSQLite}, false},
		{"unknown backend", Config{Backend: "postgres"}, true},
		{"sheets missing id", Config{Backend: BackendSheets, Sheets: SheetsConfig{AccessToken: "t"}}, true},
		{"sheets complete", Config{Backend: BackendSheets, Sheets: SheetsConfig{SpreadsheetID: "s", AccessToken: "t"}}, false},
		{"negative ttl", Config{Backend: BackendSQLite, CacheTTL: -time.Second}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDefaultSheetNamesMatchTags(t *testing.T) {
	clearEnv(t)
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultSheetNames(), cfg.Sheets.Names)
}
