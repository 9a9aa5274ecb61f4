package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/spektral-labs/spektral-go/internal/branding"
	"github.com/spf13/viper"
)

// mu serializes access to the shared viper instance: Load resets it, so
// concurrent callers must not interleave with reads or writes.
var mu sync.Mutex

const (
	fileName = "config"
	fileType = "json"
)

// Recognized keys. Other keys in the file are preserved and ignored.
const (
	KeyDatasetFolder = "dataset_folder"
	KeyMirror        = "mirror"
)

// Dir returns the path to the Spektral config directory (~/.spektral/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.spektral/config.json).
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
// Call it before Get; it is safe to call repeatedly and from concurrent
// goroutines (the file is re-read, so tests can point $HOME somewhere else
// between calls).
func Load() {
	mu.Lock()
	defer mu.Unlock()

	viper.Reset()
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()

	// Ignore error if the config file is absent or malformed; callers
	// fall back to built-in defaults.
	_ = viper.ReadInConfig()
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	mu.Lock()
	defer mu.Unlock()
	return viper.GetString(key)
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if err := EnsureDir(); err != nil {
		return err
	}

	mu.Lock()
	defer mu.Unlock()

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
