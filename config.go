package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/slzatz/pexlite/screen"
	"github.com/slzatz/pexlite/tasks"
)

// Config is everything a run can be told from the config file or flags.
type Config struct {
	Timeout   time.Duration `toml:"timeout" yaml:"timeout"`
	Refresh   time.Duration `toml:"refresh" yaml:"refresh"`
	Provider  string        `toml:"provider" yaml:"provider"`
	ProcRoot  string        `toml:"proc_root" yaml:"proc_root"`
	MaxTasks  int           `toml:"max_tasks" yaml:"max_tasks"`
	Debug     bool          `toml:"debug" yaml:"debug"`
	LogFile   string        `toml:"log_file" yaml:"log_file"`
	HistoryDB string        `toml:"history_db" yaml:"history_db"`
	NoHistory bool          `toml:"no_history" yaml:"no_history"`
	CgoSQLite bool          `toml:"cgo_sqlite" yaml:"cgo_sqlite"`
	HelpStyle string        `toml:"help_style" yaml:"help_style"`
	Theme     screen.Theme  `toml:"theme" yaml:"theme"`
}

const (
	providerMock = "mock"
	providerProc = "proc"
)

func DefaultConfig() Config {
	provider := providerMock
	if runtime.GOOS == "linux" {
		provider = providerProc
	}
	return Config{
		Timeout:   time.Second,
		Refresh:   2 * time.Second,
		Provider:  provider,
		ProcRoot:  "/proc",
		MaxTasks:  tasks.MaxTasks,
		LogFile:   stateFile("pexlite.log"),
		HistoryDB: stateFile("history.db"),
		HelpStyle: "dark",
		Theme:     screen.DefaultTheme(),
	}
}

func stateFile(name string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "state", "pexlite", name)
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "pexlite", "config.toml")
}

// LoadConfig starts from the defaults and overlays the file at path. A
// missing file is only an error when the user named it.
func LoadConfig(path string, explicit bool) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = decodeYAML(path, &cfg)
	default:
		err = decodeTOML(path, &cfg)
	}
	if errors.Is(err, fs.ErrNotExist) && !explicit {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

func decodeTOML(path string, cfg *Config) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("unknown keys %v", undecoded)
	}
	return nil
}

func decodeYAML(path string, cfg *Config) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Validate rejects settings the loop cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("timeout must be positive, got %v", c.Timeout))
	}
	if c.Refresh <= 0 {
		errs = append(errs, fmt.Errorf("refresh must be positive, got %v", c.Refresh))
	}
	if c.MaxTasks <= 0 {
		errs = append(errs, fmt.Errorf("max tasks must be positive, got %d", c.MaxTasks))
	}
	switch c.Provider {
	case providerMock, providerProc:
	default:
		errs = append(errs, fmt.Errorf("unknown provider %q (want %s or %s)", c.Provider, providerMock, providerProc))
	}
	if c.Provider == providerProc && c.ProcRoot == "" {
		errs = append(errs, errors.New("proc provider needs a proc root"))
	}
	return errors.Join(errs...)
}

func newProvider(cfg Config) tasks.Provider {
	if cfg.Provider == providerProc {
		return tasks.Proc{Root: cfg.ProcRoot}
	}
	return tasks.Mock{}
}
