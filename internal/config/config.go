// Package config resolves the active model and server address and persists
// the user's model preference.
//
// Model precedence: SHLAMA_MODEL env var > saved model file > built-in default.
// Server precedence: OLLAMA_HOST env var > built-in default.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/shlama/shlama/internal/constants"
)

// Environment variable names
const (
	// EnvModel overrides the persisted/default model
	EnvModel = "SHLAMA_MODEL"
	// EnvServerURL overrides the default Ollama base URL
	EnvServerURL = "OLLAMA_HOST"
)

// modelFileName is the single-line file holding the saved model preference.
const modelFileName = "model"

// Config holds the resolved application configuration. It is built once at
// startup and passed by parameter; nothing mutates it afterwards.
type Config struct {
	// Model is the Ollama model used for generation
	Model string
	// ServerURL is the Ollama base URL (scheme://host:port, no trailing slash)
	ServerURL string
	// MenuModels are the curated entries offered by the selection menu
	MenuModels []string
}

// Load resolves the configuration from environment, saved preference and
// built-in defaults. A missing model file means "no saved preference" and is
// not an error.
func Load() *Config {
	return load(Dir())
}

func load(dir string) *Config {
	cfg := &Config{
		Model:      constants.DefaultModel,
		ServerURL:  normalizeServerURL(os.Getenv(EnvServerURL)),
		MenuModels: constants.DefaultMenuModels,
	}

	if saved := readSavedModel(dir); saved != "" {
		cfg.Model = saved
	}
	if env := strings.TrimSpace(os.Getenv(EnvModel)); env != "" {
		cfg.Model = env
	}

	if models := loadMenuModels(dir); len(models) > 0 {
		cfg.MenuModels = models
	}

	return cfg
}

// Dir returns the per-user configuration directory for shlama.
func Dir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		home, herr := os.UserHomeDir()
		if herr != nil {
			return ".shlama"
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "shlama")
}

// SaveModel persists name as the model preference, creating the config
// directory if absent. Write failures are returned, never swallowed.
func SaveModel(name string) error {
	return saveModel(Dir(), name)
}

func saveModel(dir, name string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory %s: %w", dir, err)
	}
	path := filepath.Join(dir, modelFileName)
	if err := os.WriteFile(path, []byte(name+"\n"), 0644); err != nil {
		return fmt.Errorf("failed to save model preference to %s: %w", path, err)
	}
	return nil
}

// readSavedModel returns the trimmed content of the model file, or "" when
// the file is absent or unreadable.
func readSavedModel(dir string) string {
	data, err := os.ReadFile(filepath.Join(dir, modelFileName))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// normalizeServerURL applies the Ollama convention of accepting a bare
// host:port in OLLAMA_HOST and returns a base URL without a trailing slash.
func normalizeServerURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return constants.DefaultServerURL
	}
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}
	return strings.TrimSuffix(raw, "/")
}
