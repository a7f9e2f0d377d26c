package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

const (
	dirName        = ".shortlist"
	configFileName = "config.yaml"

	DriverJSON   = "json"
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

// ErrUnknownDriver is returned by Validate for an unsupported storage driver.
var ErrUnknownDriver = errors.New("unknown storage driver")

type Config struct {
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
	UI      UIConfig      `yaml:"ui"`
}

type StorageConfig struct {
	Driver string `yaml:"driver"` // json | sqlite | memory
	Path   string `yaml:"path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"` // empty: stderr for commands, nothing for the TUI
}

type UIConfig struct {
	AccentDefault string `yaml:"accent_default"`
	NoColor       bool   `yaml:"no_color"`
}

// Dir is ~/.shortlist.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home: %w", err)
	}
	return filepath.Join(home, dirName), nil
}

// DefaultPath returns $SHORTLIST_CONFIG or ~/.shortlist/config.yaml.
func DefaultPath() (string, error) {
	if p := strings.TrimSpace(os.Getenv("SHORTLIST_CONFIG")); p != "" {
		return p, nil
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

func Default() Config {
	return Config{
		Storage: StorageConfig{Driver: DriverJSON},
		Log:     LogConfig{Level: "info"},
		UI:      UIConfig{AccentDefault: "210"},
	}
}

// Load reads path over the defaults (a missing file is fine), then applies
// SHORTLIST_DATA and SHORTLIST_DRIVER, then fills in the data path.
func Load(path string) (Config, error) {
	cfg := Default()

	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if v := strings.TrimSpace(os.Getenv("SHORTLIST_DATA")); v != "" {
		cfg.Storage.Path = v
	}
	if v := strings.TrimSpace(os.Getenv("SHORTLIST_DRIVER")); v != "" {
		cfg.Storage.Driver = v
	}
	if err := cfg.Normalize(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Normalize lower-cases the driver, expands "~" and fills the default data
// path for the driver. Call it again after overriding fields.
func (c *Config) Normalize() error {
	c.Storage.Driver = strings.ToLower(strings.TrimSpace(c.Storage.Driver))
	if c.Storage.Driver == "" {
		c.Storage.Driver = DriverJSON
	}
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Storage.Path == "" && c.Storage.Driver != DriverMemory {
		dir, err := Dir()
		if err != nil {
			return err
		}
		name := "shortlist.json"
		if c.Storage.Driver == DriverSQLite {
			name = "shortlist.db"
		}
		c.Storage.Path = filepath.Join(dir, name)
	}
	var err error
	if c.Storage.Path, err = expandHome(c.Storage.Path); err != nil {
		return err
	}
	if c.Log.File, err = expandHome(c.Log.File); err != nil {
		return err
	}
	return nil
}

func (c Config) Validate() error {
	switch c.Storage.Driver {
	case DriverJSON, DriverSQLite, DriverMemory:
	default:
		return fmt.Errorf("%w: %q (want json, sqlite or memory)", ErrUnknownDriver, c.Storage.Driver)
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	return nil
}

// Logger builds a production zap logger. Output goes to Log.File when set,
// otherwise to fallback ("stderr"); an empty fallback gives a no-op logger.
func (c Config) Logger(verbose bool, fallback string) (*zap.Logger, error) {
	out := c.Log.File
	if out == "" {
		out = fallback
	}
	if out == "" {
		return zap.NewNop(), nil
	}
	zc := zap.NewProductionConfig()
	level, err := zapcore.ParseLevel(c.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	if verbose {
		level = zapcore.DebugLevel
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = []string{out}
	zc.ErrorOutputPaths = []string{"stderr"}
	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

func expandHome(p string) (string, error) {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~")), nil
}
