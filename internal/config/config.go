// Package config handles configuration loading from TOML files and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"
	"github.com/xonecas/xtermng/internal/constants"
)

// FileName is the config file inside the data directory.
const FileName = "config.toml"

// Config is the root configuration structure.
type Config struct {
	Terminal TerminalConfig `toml:"terminal"`
	Zoom     ZoomConfig     `toml:"zoom"`
	UI       UIConfig       `toml:"ui"`
	Log      LogConfig      `toml:"log"`
}

// TerminalConfig controls how pane shells are spawned.
type TerminalConfig struct {
	// Shell is a command line such as "/bin/zsh -l". Empty means $SHELL,
	// then constants.DefaultShell.
	Shell string `toml:"shell"`
	// Term is exported to children as TERM.
	Term string `toml:"term"`
	// WorkingDir is where both shells start. Defaults to the home directory.
	WorkingDir string `toml:"working_dir"`
}

// TermOrDefault returns the configured TERM value or constants.DefaultTerm.
func (t TerminalConfig) TermOrDefault() string {
	if t.Term == "" {
		return constants.DefaultTerm
	}
	return t.Term
}

// WorkingDirOrDefault returns the configured working directory or $HOME.
func (t TerminalConfig) WorkingDirOrDefault() (string, error) {
	if t.WorkingDir != "" {
		return expandHome(t.WorkingDir)
	}
	return os.UserHomeDir()
}

// ZoomConfig holds the shared font-scale settings.
type ZoomConfig struct {
	Step    float64 `toml:"step"`
	Default float64 `toml:"default"`
}

// StepOrDefault returns the zoom increment or constants.ZoomStep if unset.
func (z ZoomConfig) StepOrDefault() float64 {
	if z.Step == 0 {
		return constants.ZoomStep
	}
	return z.Step
}

// DefaultOrDefault returns the reset zoom level or constants.DefaultZoom if unset.
func (z ZoomConfig) DefaultOrDefault() float64 {
	if z.Default == 0 {
		return constants.DefaultZoom
	}
	return z.Default
}

// UIConfig holds user-interface settings.
type UIConfig struct {
	// Theme is a Chroma style name; UI chrome colors are derived from it.
	// Defaults to "vulcan" if unset.
	Theme string `toml:"theme"`
	// Title is the window title.
	Title string `toml:"title"`
	// Icon overrides the icon path. Missing files are tolerated.
	Icon string `toml:"icon"`
}

// ThemeOrDefault returns the configured theme or "vulcan" if unset.
func (u UIConfig) ThemeOrDefault() string {
	if u.Theme == "" {
		return "vulcan"
	}
	return u.Theme
}

// TitleOrDefault returns the configured window title or the application name.
func (u UIConfig) TitleOrDefault() string {
	if u.Title == "" {
		return constants.AppName
	}
	return u.Title
}

// LogConfig controls the zerolog output.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// LevelOrDefault parses the configured level, defaulting to info.
func (l LogConfig) LevelOrDefault() zerolog.Level {
	if l.Level == "" {
		return zerolog.InfoLevel
	}
	lvl, err := zerolog.ParseLevel(l.Level)
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}

// Load reads configuration from a TOML file and applies environment variable
// overrides. A missing file is not an error: defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		_, err := toml.DecodeFile(path, cfg)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	applyEnvOverrides(cfg, os.Getenv)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate returns an error if the configuration is invalid.
func (c *Config) Validate() error {
	var errs []error

	step := c.Zoom.StepOrDefault()
	if step < constants.MinZoomStep {
		errs = append(errs, fmt.Errorf("zoom.step=%v must be at least %v", c.Zoom.Step, constants.MinZoomStep))
	}
	if def := c.Zoom.DefaultOrDefault(); step >= constants.MinZoomStep && def < step {
		errs = append(errs, fmt.Errorf("zoom.default=%v must not be below zoom.step=%v", def, step))
	}

	if strings.ContainsAny(c.Terminal.Term, " \t\n=") {
		errs = append(errs, fmt.Errorf("terminal.term=%q must be a single terminfo name", c.Terminal.Term))
	}

	if c.Log.Level != "" {
		if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
			errs = append(errs, fmt.Errorf("log.level=%q is invalid: %v", c.Log.Level, err))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the configuration.
func applyEnvOverrides(cfg *Config, getenv func(string) string) {
	for _, setter := range []struct {
		env   string
		apply func(string)
	}{
		{"XTERMNG_SHELL", func(v string) {
			if v != "" {
				cfg.Terminal.Shell = v
			}
		}},
		{"XTERMNG_THEME", func(v string) {
			if v != "" {
				cfg.UI.Theme = v
			}
		}},
		{"XTERMNG_LOG_LEVEL", func(v string) {
			if v != "" {
				cfg.Log.Level = v
			}
		}},
	} {
		setter.apply(getenv(setter.env))
	}
}

// DataDir returns the path to the XtermNG data directory (~/.xtermng).
func DataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, constants.DataDirName), nil
}

// EnsureDataDir creates the data directory if it doesn't exist.
func EnsureDataDir() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return "", err
	}
	return dir, nil
}

// Path returns the default config file location.
func Path() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, FileName), nil
}

// IconPath returns the icon location: the configured override or
// ~/.xtermng/icon/xtermng.png.
func (c *Config) IconPath() (string, error) {
	if c.UI.Icon != "" {
		return expandHome(c.UI.Icon)
	}
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, constants.IconDir, constants.IconFile), nil
}

// LogPath returns the log file location: the configured override or
// ~/.xtermng/xtermng.log.
func (c *Config) LogPath() (string, error) {
	if c.Log.File != "" {
		return expandHome(c.Log.File)
	}
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "xtermng.log"), nil
}

func expandHome(p string) (string, error) {
	if p != "~" && !hasHomePrefix(p) {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	if p == "~" {
		return home, nil
	}
	return filepath.Join(home, p[2:]), nil
}

func hasHomePrefix(p string) bool {
	return len(p) >= 2 && p[0] == '~' && p[1] == '/'
}
