// Package config loads modinst settings from a TOML file.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"

	"github.com/project-echo/mod-installer/internal/messages"
	"github.com/project-echo/mod-installer/internal/placement"
	"github.com/project-echo/mod-installer/internal/release"
)

const (
	// DefaultStateDir holds the config file, install record, lock and log.
	DefaultStateDir = "~/.modinst"
	// DefaultConfigFile is the config file name inside DefaultStateDir.
	DefaultConfigFile     = "config.toml"
	defaultLogFile        = "modinst.log"
	defaultTimeoutSeconds = 30
	defaultLogMaxSizeMB   = 5
	defaultLogMaxBackups  = 3
)

// ErrUnknownMod is returned by LookupMod for names that are neither presets nor owner/repo.
var ErrUnknownMod = errors.New("unknown mod")

// Config is the root of config.toml.
type Config struct {
	Release ReleaseConfig `toml:"release"`
	Paths   PathsConfig   `toml:"paths"`
	Log     LogConfig     `toml:"log"`
	Mods    []Mod         `toml:"mods"`
}

// ReleaseConfig controls GitHub release lookups and downloads.
type ReleaseConfig struct {
	APIBaseURL string `toml:"api_base_url"`
	UserAgent  string `toml:"user_agent"`
	// TimeoutSeconds bounds each HTTP request; 0 disables the timeout.
	TimeoutSeconds *int `toml:"timeout_seconds"`
}

// PathsConfig overrides platform default directories and the state directory.
type PathsConfig struct {
	Steam    string `toml:"steam"`
	Epic     string `toml:"epic"`
	StateDir string `toml:"state_dir"`
}

// LogConfig controls the rotating log file.
type LogConfig struct {
	File       string `toml:"file"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
}

// Mod is a named shortcut for a GitHub repository.
type Mod struct {
	Name  string `toml:"name"`
	Title string `toml:"title"`
	Repo  string `toml:"repo"`
}

// Presets are the mods known without any config file.
var Presets = []Mod{
	{Name: "dark-roles", Title: "The Dark Roles", Repo: "Project-Echo-Development/The-Dark-Roles"},
	{Name: "endless-host-roles", Title: "Endless Host Roles", Repo: "Gurge44/EndlessHostRoles"},
	{Name: "town-of-host", Title: "Town Of Host", Repo: "tukasa0001/TownOfHost"},
	{Name: "project-lotus", Title: "Project Lotus", Repo: "Lotus-AU/LotusContinued"},
	{Name: "tou-mira", Title: "Town Of Us: Mira", Repo: "AU-Avengers/TOU-Mira"},
	{Name: "toh-enhanced", Title: "TOH Enhanced", Repo: "EnhancedNetwork/TownofHost-Enhanced"},
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	timeout := defaultTimeoutSeconds
	cfg := &Config{
		Release: ReleaseConfig{
			APIBaseURL:     release.DefaultBaseURL,
			UserAgent:      release.DefaultUserAgent,
			TimeoutSeconds: &timeout,
		},
		Paths: PathsConfig{StateDir: DefaultStateDir},
		Log: LogConfig{
			MaxSizeMB:  defaultLogMaxSizeMB,
			MaxBackups: defaultLogMaxBackups,
		},
	}
	cfg.Mods = append(cfg.Mods, Presets...)
	return cfg
}

// applyDefaults fills fields left empty by the config file and merges the presets
// under the file's own mods. File mods win on name clashes.
func (c *Config) applyDefaults() {
	defaults := Default()
	if strings.TrimSpace(c.Release.APIBaseURL) == "" {
		c.Release.APIBaseURL = defaults.Release.APIBaseURL
	}
	if strings.TrimSpace(c.Release.UserAgent) == "" {
		c.Release.UserAgent = defaults.Release.UserAgent
	}
	if c.Release.TimeoutSeconds == nil {
		c.Release.TimeoutSeconds = defaults.Release.TimeoutSeconds
	}
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaults.Paths.StateDir
	}
	if c.Log.MaxSizeMB == 0 {
		c.Log.MaxSizeMB = defaults.Log.MaxSizeMB
	}
	if c.Log.MaxBackups == 0 {
		c.Log.MaxBackups = defaults.Log.MaxBackups
	}

	seen := make(map[string]struct{}, len(c.Mods))
	for _, mod := range c.Mods {
		seen[strings.ToLower(mod.Name)] = struct{}{}
	}
	for _, preset := range Presets {
		if _, ok := seen[preset.Name]; ok {
			continue
		}
		c.Mods = append(c.Mods, preset)
	}
}

// Timeout returns the per-request HTTP timeout; zero means none.
func (c *Config) Timeout() time.Duration {
	if c.Release.TimeoutSeconds == nil {
		return defaultTimeoutSeconds * time.Second
	}
	return time.Duration(*c.Release.TimeoutSeconds) * time.Second
}

// StateDir returns the expanded state directory.
func (c *Config) StateDir() (string, error) {
	dir := c.Paths.StateDir
	if strings.TrimSpace(dir) == "" {
		dir = DefaultStateDir
	}
	return expand(dir)
}

// LogFile returns the expanded log file path, defaulting to modinst.log in the state directory.
func (c *Config) LogFile() (string, error) {
	if strings.TrimSpace(c.Log.File) != "" {
		return expand(c.Log.File)
	}
	dir, err := c.StateDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, defaultLogFile), nil
}

// PlacementDefaults returns the built-in platform directories for goos with the
// configured overrides applied.
func (c *Config) PlacementDefaults(goos string) (placement.Defaults, error) {
	home, err := homedir.Dir()
	if err != nil {
		return placement.Defaults{}, fmt.Errorf(messages.ConfigResolveHomeFmt, err)
	}
	steam, err := expand(c.Paths.Steam)
	if err != nil {
		return placement.Defaults{}, err
	}
	epic, err := expand(c.Paths.Epic)
	if err != nil {
		return placement.Defaults{}, err
	}
	return placement.DefaultsFor(goos, home).WithOverrides(steam, epic), nil
}

// LookupMod resolves a preset name (case-insensitive) or a literal owner/repo.
func (c *Config) LookupMod(arg string) (Mod, error) {
	name := strings.TrimSpace(arg)
	for _, mod := range c.Mods {
		if strings.EqualFold(mod.Name, name) {
			return mod, nil
		}
	}
	if err := release.ValidateRepo(name); err == nil {
		for _, mod := range c.Mods {
			if strings.EqualFold(mod.Repo, name) {
				return mod, nil
			}
		}
		return Mod{Name: name, Title: name, Repo: name}, nil
	}
	return Mod{}, fmt.Errorf(messages.ConfigUnknownModFmt, ErrUnknownMod, arg)
}

func expand(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", nil
	}
	expanded, err := homedir.Expand(path)
	if err != nil {
		return "", fmt.Errorf(messages.ConfigExpandPathFmt, path, err)
	}
	return filepath.Clean(expanded), nil
}
