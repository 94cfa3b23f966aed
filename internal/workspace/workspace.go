package workspace

import (
	"fmt"
	"os"
	"path/filepath"

	"ai_text_analyzer/internal/config"
)

const BaseDirName = ".ata"

const (
	configFile = "config.yaml"
	dbFile     = "analyses.db"
)

func DefaultRoot() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home: %w", err)
	}
	return filepath.Join(home, BaseDirName), nil
}

func EnsureDefault() (string, error) {
	root, err := DefaultRoot()
	if err != nil {
		return "", err
	}
	return EnsureAt(root)
}

// EnsureAt creates the workspace layout under base and writes the default
// configuration file if none exists yet. An existing file is left untouched.
func EnsureAt(base string) (string, error) {
	paths := []string{
		filepath.Join(base, "configs"),
		filepath.Join(base, "data"),
		filepath.Join(base, "reports"),
	}

	for _, p := range paths {
		if err := os.MkdirAll(p, 0o755); err != nil {
			return "", fmt.Errorf("mkdir %s: %w", p, err)
		}
	}

	cfgPath := ConfigPath(base)
	if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
		if err := WriteConfig(cfgPath, config.Default()); err != nil {
			return "", err
		}
	}

	return base, nil
}

// WriteConfig serializes cfg as YAML to path.
func WriteConfig(path string, cfg config.Config) error {
	raw, err := config.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func ConfigPath(root string) string {
	return filepath.Join(root, "configs", configFile)
}

func DBPath(root string) string {
	return filepath.Join(root, "data", dbFile)
}
