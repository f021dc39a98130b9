package config

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// MenuFileName is the optional config file overriding the curated model menu.
const MenuFileName = "config.yaml"

// fileConfig is the on-disk structure of config.yaml. Only the selection-menu
// entries are configurable; model and server resolution are env/file/default.
type fileConfig struct {
	Models []string `yaml:"models,omitempty"`
}

// loadMenuModels reads the curated menu override from dir. Absence or a parse
// failure falls back to the built-in list (returns nil).
func loadMenuModels(dir string) []string {
	data, err := os.ReadFile(filepath.Join(dir, MenuFileName))
	if err != nil {
		return nil
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil
	}

	var models []string
	for _, m := range fc.Models {
		m = strings.TrimSpace(m)
		if m != "" {
			models = append(models, m)
		}
	}
	return models
}
