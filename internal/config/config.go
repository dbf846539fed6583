package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"pulse/internal/analysis"
)

// Config represents the application configuration
type Config struct {
	Device  DeviceConfig  `json:"device"`
	Athlete AthleteConfig `json:"athlete"`
	Scoring ScoringConfig `json:"scoring"`
}

// DeviceConfig holds device-data API credentials
type DeviceConfig struct {
	BaseURL      string `json:"base_url"`
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
}

// AthleteConfig holds athlete-specific settings
type AthleteConfig struct {
	MaxHR float64 `json:"max_hr"`
}

// ScoringConfig overrides selected scoring constants
type ScoringConfig struct {
	BaselineWindowDays int     `json:"baseline_window_days"`
	SleepTargetMinutes float64 `json:"sleep_target_minutes"`
}

// ErrNoConfig is returned when the config file doesn't exist
var ErrNoConfig = errors.New("config file not found")

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	p := analysis.DefaultParams()
	return Config{
		Athlete: AthleteConfig{
			MaxHR: p.MaxHR,
		},
		Scoring: ScoringConfig{
			BaselineWindowDays: p.BaselineWindowDays,
			SleepTargetMinutes: p.SleepTargetMinutes,
		},
	}
}

// Params maps the configuration onto the scoring constants passed into the
// analysis pipeline.
func (c *Config) Params() analysis.Params {
	p := analysis.DefaultParams()
	if c.Athlete.MaxHR > 0 {
		p.MaxHR = c.Athlete.MaxHR
	}
	if c.Scoring.BaselineWindowDays > 0 {
		p.BaselineWindowDays = c.Scoring.BaselineWindowDays
	}
	if c.Scoring.SleepTargetMinutes > 0 {
		p.SleepTargetMinutes = c.Scoring.SleepTargetMinutes
	}
	return p
}

// Load reads the configuration from ~/.pulse/config.json
func Load() (*Config, error) {
	path, err := getConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, ErrNoConfig
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// Apply defaults for missing values
	defaults := DefaultConfig()
	if cfg.Athlete.MaxHR == 0 {
		cfg.Athlete.MaxHR = defaults.Athlete.MaxHR
	}
	if cfg.Scoring.BaselineWindowDays == 0 {
		cfg.Scoring.BaselineWindowDays = defaults.Scoring.BaselineWindowDays
	}
	if cfg.Scoring.SleepTargetMinutes == 0 {
		cfg.Scoring.SleepTargetMinutes = defaults.Scoring.SleepTargetMinutes
	}

	return &cfg, nil
}

// Save writes the configuration to ~/.pulse/config.json
func Save(cfg *Config) error {
	path, err := getConfigPath()
	if err != nil {
		return err
	}

	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// CreateExample creates an example config file if none exists
func CreateExample() error {
	path, err := getConfigPath()
	if err != nil {
		return err
	}

	// Check if config already exists
	if _, err := os.Stat(path); err == nil {
		return nil // Config exists, don't overwrite
	}

	example := DefaultConfig()
	example.Device = DeviceConfig{
		ClientID:     "YOUR_CLIENT_ID",
		ClientSecret: "YOUR_CLIENT_SECRET",
	}

	return Save(&example)
}

// Validate checks if the config has sane values. Device credentials are only
// required for sync, so they are checked separately by ValidateDevice.
func (c *Config) Validate() error {
	if c.Athlete.MaxHR < 100 || c.Athlete.MaxHR > 230 {
		return fmt.Errorf("athlete.max_hr (%v) must be between 100 and 230", c.Athlete.MaxHR)
	}
	if c.Scoring.BaselineWindowDays < 1 {
		return fmt.Errorf("scoring.baseline_window_days (%d) must be at least 1", c.Scoring.BaselineWindowDays)
	}
	if c.Scoring.SleepTargetMinutes < 240 || c.Scoring.SleepTargetMinutes > 720 {
		return fmt.Errorf("scoring.sleep_target_minutes (%v) must be between 240 and 720", c.Scoring.SleepTargetMinutes)
	}
	return nil
}

// ValidateDevice checks that API credentials are configured.
func (c *Config) ValidateDevice() error {
	if c.Device.ClientID == "" || c.Device.ClientID == "YOUR_CLIENT_ID" {
		return errors.New("device.client_id is required - get it from your device vendor's developer portal")
	}
	if c.Device.ClientSecret == "" || c.Device.ClientSecret == "YOUR_CLIENT_SECRET" {
		return errors.New("device.client_secret is required - get it from your device vendor's developer portal")
	}
	return nil
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".pulse", "config.json"), nil
}

// GetConfigDir returns the path to the config directory
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".pulse"), nil
}
