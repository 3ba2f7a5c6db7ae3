package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

type ServerConfig struct {
	Port string `toml:"port"`
	// MaxUploadMB bounds the multipart memory used per upload request.
	MaxUploadMB int64 `toml:"max_upload_mb"`
}

type BackendConfig struct {
	BaseURL string  `toml:"base_url"`
	MaxRPS  float64 `toml:"max_rps"`
}

type DashboardConfig struct {
	DefaultName string `toml:"default_name"`
	FrameHeight int    `toml:"frame_height"`
}

type MetricsConfig struct {
	Enabled bool `toml:"enabled"`
}

// Elements names the page elements each flow reads from or writes into.
type Elements struct {
	FileInput      string `toml:"file_input"`
	UploadButton   string `toml:"upload_button"`
	ExtractedText  string `toml:"extracted_text"`
	Entities       string `toml:"entities"`
	Profile        string `toml:"profile"`
	PatientList    string `toml:"patient_list"`
	SearchInput    string `toml:"search_input"`
	SearchButton   string `toml:"search_button"`
	SearchResults  string `toml:"search_results"`
	ExportButton   string `toml:"export_button"`
	DashboardName  string `toml:"dashboard_name"`
	DashboardList  string `toml:"dashboard_list"`
	DashboardEmbed string `toml:"dashboard_embed"`
	Alert          string `toml:"alert"`
}

type Config struct {
	Server    ServerConfig    `toml:"server"`
	Backend   BackendConfig   `toml:"backend"`
	Dashboard DashboardConfig `toml:"dashboard"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Elements  Elements        `toml:"elements"`
}

func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        "8080",
			MaxUploadMB: 32,
		},
		Backend: BackendConfig{
			BaseURL: "http://localhost:5000",
		},
		Dashboard: DashboardConfig{
			DefaultName: "Patient Records Dashboard",
			FrameHeight: 600,
		},
		Elements: Elements{
			FileInput:      "file-input",
			UploadButton:   "upload-btn",
			ExtractedText:  "extracted-text",
			Entities:       "entities",
			Profile:        "patient-profile",
			PatientList:    "patient-list",
			SearchInput:    "search-input",
			SearchButton:   "search-btn",
			SearchResults:  "search-results",
			ExportButton:   "export-btn",
			DashboardName:  "dashboardName",
			DashboardList:  "dashboardList",
			DashboardEmbed: "dashboardEmbed",
			Alert:          "alert",
		},
	}
}

// Load reads a TOML file over the defaults. Keys missing from the file keep
// their default value.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}
	return cfg, nil
}

// LoadFromEnv loads CONFIG_PATH (default config/config.toml), falls back to
// defaults when that file does not exist, then applies environment overrides.
func LoadFromEnv() (*Config, error) {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "config/config.toml"
	}

	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		cfg, err = Default(), nil
	}
	if err != nil {
		return nil, err
	}

	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

// ApplyEnv overrides settings from the environment.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := getenv("PORT"); v != "" {
		c.Server.Port = v
	}
	if v := getenv("BACKEND_URL"); v != "" {
		c.Backend.BaseURL = v
	}
	if v := getenv("BACKEND_MAX_RPS"); v != "" {
		rps, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid BACKEND_MAX_RPS %q: %w", v, err)
		}
		c.Backend.MaxRPS = rps
	}
	if v := getenv("METRICS_ENABLED"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid METRICS_ENABLED %q: %w", v, err)
		}
		c.Metrics.Enabled = enabled
	}
	if v := getenv("DEFAULT_DASHBOARD_NAME"); v != "" {
		c.Dashboard.DefaultName = v
	}
	return nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.Backend.BaseURL) == "" {
		return fmt.Errorf("backend.base_url is required")
	}
	if c.Backend.MaxRPS < 0 {
		return fmt.Errorf("backend.max_rps must not be negative")
	}
	if c.Server.MaxUploadMB <= 0 {
		return fmt.Errorf("server.max_upload_mb must be positive")
	}
	return nil
}
