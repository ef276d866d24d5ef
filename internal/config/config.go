// Package config builds the typed fpane configuration from built-in
// defaults, a TOML file and FPANE_ environment variables, in that order of
// precedence.
package config

import (
	"path/filepath"
	"time"

	"github.com/mitchellh/go-homedir"

	"github.com/dshills/fpane/internal/config/loader"
	"github.com/dshills/fpane/internal/entry"
	"github.com/dshills/fpane/internal/input/keymap"
	"github.com/dshills/fpane/internal/logging"
)

// Default locations. Both go through homedir expansion.
const (
	DefaultConfigFile = "~/.config/fpane/config.toml"
	DefaultStateDir   = "~/.local/state/fpane"
)

// EnvPrefix prefixes every environment variable read.
const EnvPrefix = "FPANE_"

// Config is the complete fpane configuration.
type Config struct {
	Browser BrowserConfig
	Marks   MarksConfig
	Watch   WatchConfig
	Log     LogConfig
	Keys    KeysConfig
}

// BrowserConfig controls the directory listing.
type BrowserConfig struct {
	ShowHidden bool
	DirsFirst  bool
	Sort       entry.SortKey
	ScrollOff  int
}

// MarksConfig controls mark persistence.
type MarksConfig struct {
	Persist  bool
	StateDir string
}

// WatchConfig controls automatic reloads.
type WatchConfig struct {
	Enabled  bool
	Debounce time.Duration
}

// LogConfig controls the log file.
type LogConfig struct {
	Level logging.Level
	// File defaults to fpane.log in the state directory.
	File string
}

// KeysConfig holds key binding overrides, key notation to action name.
type KeysConfig struct {
	Normal map[string]string
	Visual map[string]string
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Browser: BrowserConfig{DirsFirst: true, Sort: entry.ByName, ScrollOff: 2},
		Marks:   MarksConfig{Persist: true},
		Watch:   WatchConfig{Enabled: true, Debounce: 150 * time.Millisecond},
		Log:     LogConfig{Level: logging.LevelInfo},
	}
}

// Listing returns the options used to read directories.
func (c *Config) Listing() entry.Options {
	return entry.Options{
		ShowHidden: c.Browser.ShowHidden,
		DirsFirst:  c.Browser.DirsFirst,
		Sort:       c.Browser.Sort,
	}
}

// LogFile returns the log file path.
func (c *Config) LogFile() string {
	if c.Log.File != "" {
		return c.Log.File
	}
	return filepath.Join(c.Marks.StateDir, "fpane.log")
}

// Keymaps returns the user override keymaps, normal mode first. Load has
// already validated them.
func (c *Config) Keymaps() ([]*keymap.Keymap, error) {
	var out []*keymap.Keymap
	for _, mk := range []struct {
		mode  string
		table map[string]string
	}{
		{"normal", c.Keys.Normal},
		{"visual", c.Keys.Visual},
	} {
		if len(mk.table) == 0 {
			continue
		}
		km, err := keymap.FromConfig(mk.mode, mk.table)
		if err != nil {
			return nil, &ValidationError{Path: "keys." + mk.mode, Message: err.Error(), Code: ErrCodeInvalidEnum}
		}
		out = append(out, km)
	}
	return out, nil
}

// Options configures Load.
type Options struct {
	// File is the TOML file to read. Empty means DefaultConfigFile; a
	// missing file is not an error.
	File string
	// FS reads the file. Defaults to the OS file system.
	FS loader.FileSystem
	// Env reads environment overrides. Nil uses FPANE_ variables; use
	// NoEnv to skip the environment.
	Env loader.Loader
	// Overrides win over every other source, keyed by dotted path such as
	// "browser.show_hidden". Command line flags land here.
	Overrides map[string]any
}

type noEnv struct{}

func (noEnv) Load() (map[string]any, error) { return nil, nil }

// NoEnv is an environment source that contributes nothing.
var NoEnv loader.Loader = noEnv{}

// Load reads and validates the configuration.
func Load(opts Options) (*Config, error) {
	path := opts.File
	if path == "" {
		path = DefaultConfigFile
	}
	path, err := homedir.Expand(path)
	if err != nil {
		return nil, err
	}
	fsys := opts.FS
	if fsys == nil {
		fsys = loader.DefaultFS()
	}
	env := opts.Env
	if env == nil {
		env = loader.NewEnvLoader(EnvPrefix)
	}

	file, err := loader.NewTOMLLoaderWithFS(fsys, path).Load()
	if err != nil {
		return nil, err
	}
	if err := checkKnown(file); err != nil {
		return nil, err
	}
	fromEnv, err := env.Load()
	if err != nil {
		return nil, err
	}

	merged := loader.DeepMerge(loader.DeepMerge(nil, file), fromEnv)
	for p, v := range opts.Overrides {
		loader.SetByPath(merged, p, v)
	}

	cfg := Default()
	if err := decode(cfg, merged); err != nil {
		return nil, err
	}
	if err := cfg.resolvePaths(); err != nil {
		return nil, err
	}
	if _, err := cfg.Keymaps(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) resolvePaths() error {
	if c.Marks.StateDir == "" {
		c.Marks.StateDir = DefaultStateDir
	}
	var err error
	if c.Marks.StateDir, err = homedir.Expand(c.Marks.StateDir); err != nil {
		return &ValidationError{Path: "marks.state_dir", Message: err.Error(), Value: c.Marks.StateDir}
	}
	if c.Log.File != "" {
		if c.Log.File, err = homedir.Expand(c.Log.File); err != nil {
			return &ValidationError{Path: "log.file", Message: err.Error(), Value: c.Log.File}
		}
	}
	return nil
}
