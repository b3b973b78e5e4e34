package data

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tailscale/hujson"
)

// ConfigFileName sits next to the templates in the data directory. It is user-managed and
// never written by the program.
const ConfigFileName = "config.json"

const (
	ThemeDark  = "dark"
	ThemeLight = "light"

	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

var ErrConfig = errors.New("invalid config")

type Config struct {
	Theme     string `json:"theme,omitempty"`
	Backend   string `json:"backend,omitempty"`
	Normalize bool   `json:"normalize,omitempty"`
}

func DefaultConfig() Config {
	return Config{
		Theme:   ThemeDark,
		Backend: BackendJSON,
	}
}

// LoadConfig reads the config file at path over the defaults. A missing file is fine unless
// mustExist is set. The file may use comments and trailing commas.
func LoadConfig(path string, mustExist bool) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !mustExist {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("%w: %w", ErrConfig, err)
	}

	fileCfg, err := ParseConfig(raw)
	if err != nil {
		return Config{}, fmt.Errorf("%w %s: %w", ErrConfig, path, err)
	}
	cfg = cfg.Merge(fileCfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%w %s: %w", ErrConfig, path, err)
	}
	return cfg, nil
}

// ConfigPath returns the default config location inside dir, or "" if dir is empty
func ConfigPath(dir string) string {
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, ConfigFileName)
}

func ParseConfig(raw []byte) (Config, error) {
	standardized, err := hujson.Standardize(raw)
	if err != nil {
		return Config{}, fmt.Errorf("invalid JSONC: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(standardized, &cfg); err != nil {
		return Config{}, fmt.Errorf("invalid JSON: %w", err)
	}
	return cfg, nil
}

// Merge returns c with every field set in overlay replacing its own
func (c Config) Merge(overlay Config) Config {
	if overlay.Theme != "" {
		c.Theme = overlay.Theme
	}
	if overlay.Backend != "" {
		c.Backend = overlay.Backend
	}
	if overlay.Normalize {
		c.Normalize = true
	}
	return c
}

func (c Config) Validate() error {
	switch c.Theme {
	case ThemeDark, ThemeLight:
	default:
		return fmt.Errorf("theme must be %q or %q, got %q", ThemeDark, ThemeLight, c.Theme)
	}
	switch c.Backend {
	case BackendJSON, BackendSQLite:
	default:
		return fmt.Errorf("backend must be %q or %q, got %q", BackendJSON, BackendSQLite, c.Backend)
	}
	return nil
}

// NewGateway returns the Gateway selected by c, rooted at dir
func (c Config) NewGateway(dir string) Gateway {
	if c.Backend == BackendSQLite {
		return NewSQLStore(dir)
	}
	return NewJSONFile(dir)
}
