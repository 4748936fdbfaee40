package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	BackendSQLite = "sqlite"
	BackendSheets = "sheets"
)

// Config holds all configuration for crmsheet.
// Values come from an optional YAML file with environment variable
// overrides. The sheets access token is read from the environment only.
type Config struct {
	// Backend selects the record store: "sqlite" or "sheets".
	Backend string `yaml:"backend" env:"CRMSHEET_BACKEND" env-default:"sqlite"`
	// DBPath is the SQLite file. Defaults to ~/.crmsheet/crm.db.
	DBPath string `yaml:"db_path" env:"CRMSHEET_DB" env-default:""`
	// Author is the email stamped on history entries, activities and tags.
	Author string `yaml:"author" env:"CRMSHEET_AUTHOR" env-default:""`

	LogLevel    string `yaml:"log_level" env:"CRMSHEET_LOG_LEVEL" env-default:"info"`
	LogUseCases bool   `yaml:"log_use_cases" env:"CRMSHEET_LOG_USE_CASES" env-default:"false"`

	// CacheTTL bounds how long a loaded sheet is reused before it is read again.
	CacheTTL time.Duration `yaml:"cache_ttl" env:"CRMSHEET_CACHE_TTL" env-default:"5m"`

	Sheets SheetsConfig `yaml:"sheets"`
}

// SheetsConfig configures the spreadsheet-backed record store.
type SheetsConfig struct {
	SpreadsheetID string `yaml:"spreadsheet_id" env:"CRMSHEET_SPREADSHEET_ID" env-default:""`
	AccessToken   string `yaml:"-" env:"CRMSHEET_SHEETS_TOKEN"` // Secret - not in YAML
	BaseURL       string `yaml:"base_url" env:"CRMSHEET_SHEETS_BASE_URL" env-default:"https://sheets.googleapis.com"`

	MaxRetries     int           `yaml:"max_retries" env:"CRMSHEET_SHEETS_MAX_RETRIES" env-default:"3"`
	RetryWaitMin   time.Duration `yaml:"retry_wait_min" env:"CRMSHEET_SHEETS_RETRY_WAIT_MIN" env-default:"1s"`
	RetryWaitMax   time.Duration `yaml:"retry_wait_max" env:"CRMSHEET_SHEETS_RETRY_WAIT_MAX" env-default:"8s"`
	RequestTimeout time.Duration `yaml:"request_timeout" env:"CRMSHEET_SHEETS_TIMEOUT" env-default:"30s"`

	Names SheetNames `yaml:"names"`
}

// SheetNames maps each collection onto its sheet tab.
type SheetNames struct {
	Companies           string `yaml:"companies" env-default:"Companies"`
	Contacts            string `yaml:"contacts" env-default:"Contacts"`
	Activities          string `yaml:"activities" env-default:"Activities"`
	CompanyHistory      string `yaml:"company_history" env-default:"CompanyHistory"`
	ContactHistory      string `yaml:"contact_history" env-default:"ContactHistory"`
	CompanyTags         string `yaml:"company_tags" env-default:"CompanyTags"`
	ContactTags         string `yaml:"contact_tags" env-default:"ContactTags"`
	CompanyTagRelations string `yaml:"company_tag_relations" env-default:"CompanyTagRelations"`
	ContactTagRelations string `yaml:"contact_tag_relations" env-default:"ContactTagRelations"`
	UserPreferences     string `yaml:"user_preferences" env-default:"UserPreferences"`
}

// DefaultSheetNames returns the sheet names used when none are configured.
func DefaultSheetNames() SheetNames {
	return SheetNames{
		Companies:           "Companies",
		Contacts:            "Contacts",
		Activities:          "Activities",
		CompanyHistory:      "CompanyHistory",
		ContactHistory:      "ContactHistory",
		CompanyTags:         "CompanyTags",
		ContactTags:         "ContactTags",
		CompanyTagRelations: "CompanyTagRelations",
		ContactTagRelations: "ContactTagRelations",
		UserPreferences:     "UserPreferences",
	}
}

// DefaultPath returns CRMSHEET_CONFIG or ~/.crmsheet/config.yaml.
func DefaultPath() string {
	if p := os.Getenv("CRMSHEET_CONFIG"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(home, ".crmsheet", "config.yaml")
}

// Load reads configuration from the YAML file at path with environment
// variable overrides. A missing file is not an error: the environment and
// defaults are used instead.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
	} else if errors.Is(err, fs.ErrNotExist) {
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}
	} else {
		return nil, fmt.Errorf("checking config file: %w", err)
	}

	if cfg.DBPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("finding home directory: %w", err)
		}
		cfg.DBPath = filepath.Join(home, ".crmsheet", "crm.db")
	}
	cfg.Backend = strings.ToLower(strings.TrimSpace(cfg.Backend))

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate rejects an unknown backend and an incomplete sheets setup.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendSQLite:
	case BackendSheets:
		if c.Sheets.SpreadsheetID == "" {
			return fmt.Errorf("sheets backend requires spreadsheet_id")
		}
		if c.Sheets.AccessToken == "" {
			return fmt.Errorf("sheets backend requires CRMSHEET_SHEETS_TOKEN")
		}
		if c.Sheets.MaxRetries < 0 {
			return fmt.Errorf("max_retries must not be negative")
		}
	default:
		return fmt.Errorf("unknown backend %q (want sqlite or sheets)", c.Backend)
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("cache_ttl must not be negative")
	}
	return nil
}
