package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// isolate points HOME at an empty directory so a developer's
// ~/.diecast.yaml cannot leak into the test.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(home)
	return home
}

// TestLoadConfig verifies defaults.
func TestLoadConfig(t *testing.T) {
	home := isolate(t)

	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	if config.LogFormat != "auto" {
		t.Errorf("LogFormat = %q, want auto", config.LogFormat)
	}
	if config.LogOutput != "stderr" {
		t.Errorf("LogOutput = %q, want stderr", config.LogOutput)
	}
	if want := filepath.Join(home, ".diecast"); config.DataDir != want {
		t.Errorf("DataDir = %q, want %q", config.DataDir, want)
	}
	if config.AutoReloadInterval != time.Hour {
		t.Errorf("AutoReloadInterval = %v, want 1h", config.AutoReloadInterval)
	}
	if config.Catalog != "" {
		t.Errorf("Catalog = %q, want embedded default", config.Catalog)
	}
}

// TestConfig_EnvironmentVariables verifies DIECAST_ variables are read.
func TestConfig_EnvironmentVariables(t *testing.T) {
	isolate(t)
	t.Setenv("DIECAST_OUTPUT", "json")
	t.Setenv("DIECAST_VERBOSE", "true")
	t.Setenv("DIECAST_INCLUDE_OLD_CASES", "true")
	t.Setenv("DIECAST_CATALOG", "/tmp/catalog.yaml")
	t.Setenv("DIECAST_LOG_LEVEL", "warn")

	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	if config.Output != "json" {
		t.Errorf("Output = %q, want json", config.Output)
	}
	if !config.Verbose {
		t.Error("DIECAST_VERBOSE not loaded")
	}
	if !config.IncludeOldCases {
		t.Error("DIECAST_INCLUDE_OLD_CASES not loaded")
	}
	if config.Catalog != "/tmp/catalog.yaml" {
		t.Errorf("Catalog = %q", config.Catalog)
	}
	if config.EnvLogLevel != "warn" {
		t.Errorf("EnvLogLevel = %q, want warn", config.EnvLogLevel)
	}
	if config.LogLevel != "" {
		t.Errorf("LogLevel = %q, want empty until --log-level is given", config.LogLevel)
	}
}

// TestConfig_File verifies the config file is read and env wins over it.
func TestConfig_File(t *testing.T) {
	home := isolate(t)
	content := []byte("data_dir: /srv/diecast\noutput: yaml\nlanguage: de\n")
	if err := os.WriteFile(filepath.Join(home, ".diecast.yaml"), content, 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DIECAST_OUTPUT", "wide")

	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	if config.DataDir != "/srv/diecast" {
		t.Errorf("DataDir = %q, want /srv/diecast", config.DataDir)
	}
	if config.Output != "wide" {
		t.Errorf("Output = %q, want env override wide", config.Output)
	}
	if config.Language != "de" {
		t.Errorf("Language = %q, want de", config.Language)
	}
	if config.ConfigFile == "" {
		t.Error("ConfigFile not recorded")
	}
}

// TestConfig_ExplicitFileMissing verifies a missing --config file fails.
func TestConfig_ExplicitFileMissing(t *testing.T) {
	home := isolate(t)
	if _, err := loadConfig(filepath.Join(home, "nope.yaml")); err == nil {
		t.Error("loadConfig() with a missing explicit file should fail")
	}
}
