package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	_, err := Load()
	if !errors.Is(err, ErrNoConfig) {
		t.Errorf("Load with no file = %v, want ErrNoConfig", err)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.Athlete.MaxHR = 185
	cfg.Device.ClientID = "abc"
	if err := Save(&cfg); err != nil {
		t.Fatalf("saving: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("loading: %v", err)
	}
	if loaded.Athlete.MaxHR != 185 {
		t.Errorf("MaxHR = %v, want 185", loaded.Athlete.MaxHR)
	}
	if loaded.Device.ClientID != "abc" {
		t.Errorf("ClientID = %q, want abc", loaded.Device.ClientID)
	}
}

func TestLoadBackfillsDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".pulse")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	// Partial config: only device credentials set.
	partial := `{"device": {"client_id": "abc", "client_secret": "xyz"}}`
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte(partial), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("loading: %v", err)
	}
	if cfg.Athlete.MaxHR != 190 {
		t.Errorf("MaxHR = %v, want default 190", cfg.Athlete.MaxHR)
	}
	if cfg.Scoring.BaselineWindowDays != 14 {
		t.Errorf("BaselineWindowDays = %d, want default 14", cfg.Scoring.BaselineWindowDays)
	}
	if cfg.Scoring.SleepTargetMinutes != 480 {
		t.Errorf("SleepTargetMinutes = %v, want default 480", cfg.Scoring.SleepTargetMinutes)
	}
}

func TestLoadRejectsMalformedJSON(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".pulse")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(); err == nil {
		t.Error("expected a parse error for malformed config")
	}
}

func TestCreateExampleDoesNotOverwrite(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	if err := CreateExample(); err != nil {
		t.Fatalf("creating example: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("loading example: %v", err)
	}
	cfg.Athlete.MaxHR = 200
	if err := Save(cfg); err != nil {
		t.Fatalf("saving edit: %v", err)
	}

	// A second CreateExample must leave the edited file alone.
	if err := CreateExample(); err != nil {
		t.Fatalf("re-creating example: %v", err)
	}
	cfg, _ = Load()
	if cfg.Athlete.MaxHR != 200 {
		t.Errorf("CreateExample overwrote an existing config: MaxHR = %v", cfg.Athlete.MaxHR)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"defaults are valid", func(c *Config) {}, false},
		{"max hr too low", func(c *Config) { c.Athlete.MaxHR = 99 }, true},
		{"max hr too high", func(c *Config) { c.Athlete.MaxHR = 231 }, true},
		{"window below 1", func(c *Config) { c.Scoring.BaselineWindowDays = 0 }, true},
		{"sleep target too short", func(c *Config) { c.Scoring.SleepTargetMinutes = 239 }, true},
		{"sleep target too long", func(c *Config) { c.Scoring.SleepTargetMinutes = 721 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateDevice(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.ValidateDevice(); err == nil {
		t.Error("empty credentials should fail")
	}

	cfg.Device.ClientID = "YOUR_CLIENT_ID"
	cfg.Device.ClientSecret = "YOUR_CLIENT_SECRET"
	if err := cfg.ValidateDevice(); err == nil {
		t.Error("placeholder credentials should fail")
	}

	cfg.Device.ClientID = "real-id"
	cfg.Device.ClientSecret = "real-secret"
	if err := cfg.ValidateDevice(); err != nil {
		t.Errorf("real credentials should pass, got %v", err)
	}
}

func TestParamsOverrides(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Athlete.MaxHR = 180
	cfg.Scoring.BaselineWindowDays = 7
	cfg.Scoring.SleepTargetMinutes = 450

	p := cfg.Params()
	if p.MaxHR != 180 || p.BaselineWindowDays != 7 || p.SleepTargetMinutes != 450 {
		t.Errorf("overrides not applied: %+v", p)
	}

	// Zero values fall through to the defaults.
	empty := Config{}
	p = empty.Params()
	if p.MaxHR != 190 || p.BaselineWindowDays != 14 || p.SleepTargetMinutes != 480 {
		t.Errorf("zero config should use defaults: %+v", p)
	}
}
