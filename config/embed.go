package config

import (
	"embed"
	"os"
	"path/filepath"
	"strings"
)

//go:embed *.yaml
var DefaultsFS embed.FS

// Load reads name from the working directory first and falls back to the
// embedded defaults.
func Load(name string) ([]byte, error) {
	clean := cleanConfigPath(name)
	if data, err := os.ReadFile(name); err == nil {
		return data, nil
	}
	if data, err := os.ReadFile(diskConfigPath(clean)); err == nil {
		return data, nil
	}
	return DefaultsFS.ReadFile(clean)
}

func cleanConfigPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "config/"); ok {
		return after
	}
	return filepath.Base(s)
}

func diskConfigPath(clean string) string {
	return filepath.Join("config", filepath.FromSlash(clean))
}
