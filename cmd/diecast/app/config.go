package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable diecast reads.
const EnvPrefix = "DIECAST"

// Config holds the application configuration loaded from various sources
// including config files, environment variables, and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Output  string

	// Config file
	ConfigFile string

	// Collection configuration
	Catalog            string
	CatalogToken       string
	CatalogAuth        string
	DataDir            string
	IncludeOldCases    bool
	AutoReload         bool
	AutoReloadInterval time.Duration
	Language           string

	// Logging configuration. LogLevel is the explicit --log-level flag;
	// EnvLogLevel comes from the environment or config file and loses
	// to -v and -q.
	LogLevel    string
	EnvLogLevel string
	LogFormat   string
	LogOutput   string
	LogFields   string
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (applied later by setupCommand)
// 2. Environment variables (DIECAST_*)
// 3. .env files
// 4. Config file (~/.diecast.yaml)
// 5. Defaults
func LoadConfig() (*Config, error) {
	return loadConfig("")
}

// loadConfig is LoadConfig with an explicit config file, as given by
// --config.
func loadConfig(configFile string) (*Config, error) {
	// Load .env files first (before Viper env binding)
	loadEnvFiles()

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	v.SetDefault("output", "")
	v.SetDefault("log_format", "auto")
	v.SetDefault("log_output", "stderr")
	v.SetDefault("auto_reload_interval", time.Hour)
	v.SetDefault("data_dir", defaultDataDir())

	if configFile == "" {
		configFile = v.GetString("config")
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(home)
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".diecast")
	}

	if err := v.ReadInConfig(); err != nil {
		// a missing default config file is fine; an explicit one is not
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	config := &Config{
		Verbose: v.GetBool("verbose"),
		Quiet:   v.GetBool("quiet"),
		NoColor: v.GetBool("no_color"),
		Output:  v.GetString("output"),

		ConfigFile: v.ConfigFileUsed(),

		Catalog:            v.GetString("catalog"),
		CatalogToken:       v.GetString("catalog_token"),
		CatalogAuth:        v.GetString("catalog_auth"),
		DataDir:            v.GetString("data_dir"),
		IncludeOldCases:    v.GetBool("include_old_cases"),
		AutoReload:         v.GetBool("auto_reload"),
		AutoReloadInterval: v.GetDuration("auto_reload_interval"),
		Language:           v.GetString("language"),

		EnvLogLevel: firstNonEmpty(v.GetString("log_level"), os.Getenv("LOG_LEVEL")),
		LogFormat:   v.GetString("log_format"),
		LogOutput:   v.GetString("log_output"),
		LogFields:   v.GetString("log_fields"),
	}

	return config, nil
}

// loadEnvFiles loads environment variables from .env files.
func loadEnvFiles() {
	// .env.local overrides .env
	envFiles := []string{
		".env",
		".env.local",
	}

	for _, envFile := range envFiles {
		_ = godotenv.Load(envFile)
	}
}

// defaultDataDir returns ~/.diecast, or "" (in-memory) without a home
// directory.
func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".diecast")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
