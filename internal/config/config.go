package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"github.com/wsgen-labs/wsgen/internal/branding"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Keys understood by the CLI.
const (
	KeyPrefix          = "key_prefix"
	KeyPlaceholderHost = "placeholder.host"
	KeyPlaceholderOrg  = "placeholder.org"
	KeyPrimaryBranch   = "branches.primary"
	KeyFallbackBranch  = "branches.fallback"
	KeyReachability    = "reachability.backend"
	KeyTemplateDir     = "template.dir"
	KeyTemplateExclude = "template.exclude"
	KeyGitMinVersion   = "git.min_version"
	KeyLogLevel        = "log.level"
)

// Reachability backends.
const (
	BackendGitCLI = "git"
	BackendGoGit  = "go-git"
)

const (
	defaultKeyPrefix     = "SGM"
	defaultGitMinVersion = "2.13.0"
)

// Settings is the typed view of the configuration used by the create workflow.
type Settings struct {
	KeyPrefix   string `mapstructure:"key_prefix"`
	Placeholder struct {
		Host string `mapstructure:"host"`
		Org  string `mapstructure:"org"`
	} `mapstructure:"placeholder"`
	Branches struct {
		Primary  string `mapstructure:"primary"`
		Fallback string `mapstructure:"fallback"`
	} `mapstructure:"branches"`
	Reachability struct {
		Backend string `mapstructure:"backend"`
	} `mapstructure:"reachability"`
	Template struct {
		Dir     string   `mapstructure:"dir"`
		Exclude []string `mapstructure:"exclude"`
	} `mapstructure:"template"`
	Git struct {
		MinVersion string `mapstructure:"min_version"`
	} `mapstructure:"git"`
	Log struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`
}

// Dir returns the path to the config directory (~/.wsgen/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.wsgen/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

func setDefaults() {
	viper.SetDefault(KeyPrefix, defaultKeyPrefix)
	viper.SetDefault(KeyPlaceholderHost, "github.com")
	viper.SetDefault(KeyPlaceholderOrg, "your-org")
	viper.SetDefault(KeyPrimaryBranch, "main")
	viper.SetDefault(KeyFallbackBranch, "master")
	viper.SetDefault(KeyReachability, BackendGitCLI)
	viper.SetDefault(KeyTemplateDir, "")
	viper.SetDefault(KeyTemplateExclude, []string{})
	viper.SetDefault(KeyGitMinVersion, defaultGitMinVersion)
	viper.SetDefault(KeyLogLevel, "info")
}

// Load initializes Viper to read from the config file and environment.
// Nested keys map to env vars with dots replaced, e.g. WSGEN_PLACEHOLDER_HOST.
func Load() {
	setDefaults()
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// Current decodes the loaded configuration into Settings and validates it.
func Current() (*Settings, error) {
	var s Settings
	if err := viper.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks the settings that would otherwise produce broken artifacts.
func (s *Settings) Validate() error {
	if strings.TrimSpace(s.KeyPrefix) == "" {
		return fmt.Errorf("config %s must not be empty", KeyPrefix)
	}
	for _, r := range s.KeyPrefix {
		if !(r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '_') {
			return fmt.Errorf("config %s %q must contain only A-Z, 0-9 and _", KeyPrefix, s.KeyPrefix)
		}
	}
	if s.Branches.Primary == "" || s.Branches.Fallback == "" {
		return fmt.Errorf("config %s and %s must not be empty", KeyPrimaryBranch, KeyFallbackBranch)
	}
	switch s.Reachability.Backend {
	case BackendGitCLI, BackendGoGit:
	default:
		return fmt.Errorf("config %s must be %q or %q, got %q",
			KeyReachability, BackendGitCLI, BackendGoGit, s.Reachability.Backend)
	}
	return nil
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
