package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/modforge-labs/modforge/internal/branding"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Recognized configuration keys.
const (
	KeyDiscoveryRoot    = "discovery.root"
	KeyDiscoveryUserDir = "discovery.user_dir"
	KeyDiscoveryCache   = "discovery.cache"
	KeyLogLevel         = "log.level"
)

// Keys lists every recognized key.
var Keys = []string{KeyDiscoveryRoot, KeyDiscoveryUserDir, KeyDiscoveryCache, KeyLogLevel}

// Dir returns the path to the config directory: $MODFORGE_HOME when set,
// otherwise ~/.modforge/.
func Dir() string {
	if v := os.Getenv(branding.EnvVar("HOME")); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.modforge/config.yaml).
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

// Load initializes Viper to read from the config file and environment.
// Nested keys map to env vars with dots replaced by underscores, so
// discovery.root is overridden by MODFORGE_DISCOVERY_ROOT.
func Load() {
	LoadFile(FilePath())
}

// LoadFile is Load with an explicit config file path.
func LoadFile(path string) {
	viper.SetConfigFile(path)
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault(KeyDiscoveryCache, false)
	viper.SetDefault(KeyLogLevel, 0)

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// DiscoveryRoot returns the configured primary provider directory, or ""
// when the executable-relative default should be used.
func DiscoveryRoot() string {
	return viper.GetString(KeyDiscoveryRoot)
}

// UserDir returns the configured user provider directory, or "" for the default.
func UserDir() string {
	return viper.GetString(KeyDiscoveryUserDir)
}

// CacheEnabled reports whether one process may reuse its discovery snapshot
// across calls. Nothing is persisted between invocations.
func CacheEnabled() bool {
	return viper.GetBool(KeyDiscoveryCache)
}

// LogLevel returns the configured verbosity used when no -v flag is given.
func LogLevel() int {
	return viper.GetInt(KeyLogLevel)
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if err := EnsureDir(); err != nil {
		return err
	}
	return SetFile(FilePath(), key, value)
}

// SetFile is Set with an explicit config file path. Only the file's own
// contents plus the new key are written; defaults and environment
// overrides stay out of the file.
func SetFile(configFile, key, value string) error {
	file := viper.New()
	file.SetConfigFile(configFile)
	file.SetConfigType(fileType)
	if _, err := os.Stat(configFile); err == nil {
		if err := file.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file %s: %w", configFile, err)
		}
	}

	file.Set(key, value)
	if err := file.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	viper.Set(key, value)
	return nil
}
