package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	FileName         = "pulse.yaml"
	DataDirEnv       = "PULSE_DATA_DIR"
	FlagStoreSQLite  = "sqlite"
	FlagStoreFile    = "file"
	defaultVersion   = "1.0.0"
	defaultStartup   = 2 * time.Second
	defaultFeedback  = 1500 * time.Millisecond
	defaultRefresh   = time.Second
	defaultLogLevel  = "info"
	defaultFlagStore = FlagStoreSQLite
)

type Config struct {
	DataDir       string
	StateDir      string
	DBPath        string
	FlagsPath     string
	LogPath       string
	AppVersion    string
	FlagStore     string
	LogLevel      string
	StartupDelay  time.Duration
	FeedbackDelay time.Duration
	RefreshDelay  time.Duration
}

// fileConfig mirrors pulse.yaml. Durations are Go duration strings.
type fileConfig struct {
	AppVersion string `yaml:"app_version"`
	FlagStore  string `yaml:"flag_store"`
	LogLevel   string `yaml:"log_level"`
	Delays     struct {
		Startup  string `yaml:"startup"`
		Feedback string `yaml:"feedback"`
		Refresh  string `yaml:"refresh"`
	} `yaml:"delays"`
}

// DefaultDataDir returns $PULSE_DATA_DIR, or the working directory.
func DefaultDataDir() string {
	if v := strings.TrimSpace(os.Getenv(DataDirEnv)); v != "" {
		return v
	}
	return "."
}

func New(dataDir string) (Config, error) {
	if dataDir == "" {
		return Config{}, fmt.Errorf("data dir is required")
	}
	stateDir := filepath.Join(dataDir, ".pulse")
	cfg := Config{
		DataDir:       dataDir,
		StateDir:      stateDir,
		DBPath:        filepath.Join(stateDir, "pulse.db"),
		FlagsPath:     filepath.Join(stateDir, "flags.json"),
		LogPath:       filepath.Join(stateDir, "pulse.log"),
		AppVersion:    defaultVersion,
		FlagStore:     defaultFlagStore,
		LogLevel:      defaultLogLevel,
		StartupDelay:  defaultStartup,
		FeedbackDelay: defaultFeedback,
		RefreshDelay:  defaultRefresh,
	}
	if err := cfg.loadFile(filepath.Join(dataDir, FileName)); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(b, &fc); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}

	if fc.AppVersion != "" {
		c.AppVersion = fc.AppVersion
	}
	if fc.LogLevel != "" {
		c.LogLevel = fc.LogLevel
	}
	switch strings.ToLower(strings.TrimSpace(fc.FlagStore)) {
	case "":
	case FlagStoreSQLite:
		c.FlagStore = FlagStoreSQLite
	case FlagStoreFile:
		c.FlagStore = FlagStoreFile
	default:
		return fmt.Errorf("unsupported flag_store %q", fc.FlagStore)
	}

	for _, d := range []struct {
		name string
		raw  string
		dst  *time.Duration
	}{
		{"startup", fc.Delays.Startup, &c.StartupDelay},
		{"feedback", fc.Delays.Feedback, &c.FeedbackDelay},
		{"refresh", fc.Delays.Refresh, &c.RefreshDelay},
	} {
		if d.raw == "" {
			continue
		}
		v, err := time.ParseDuration(d.raw)
		if err != nil {
			return fmt.Errorf("parse %s delay: %w", d.name, err)
		}
		if v < 0 {
			return fmt.Errorf("%s delay must be non-negative", d.name)
		}
		*d.dst = v
	}
	return nil
}

// Immediate returns a copy with every simulated delay removed. CLI commands
// use it so one-shot invocations do not wait on UI pacing.
func (c Config) Immediate() Config {
	c.StartupDelay = 0
	c.FeedbackDelay = 0
	c.RefreshDelay = 0
	return c
}
