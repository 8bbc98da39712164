package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/project-echo/mod-installer/internal/messages"
	"github.com/project-echo/mod-installer/internal/release"
)

// Validate checks the values present in the file. Empty fields are allowed and
// are filled with defaults after validation.
func (c *Config) Validate(path string) error {
	var errs []error
	if c.Release.TimeoutSeconds != nil && *c.Release.TimeoutSeconds < 0 {
		errs = append(errs, errors.New(messages.ConfigTimeoutNegative))
	}
	if c.Log.MaxSizeMB < 0 {
		errs = append(errs, errors.New(messages.ConfigLogSizeNegative))
	}
	if c.Log.MaxBackups < 0 {
		errs = append(errs, errors.New(messages.ConfigLogBackupsNegative))
	}

	seen := make(map[string]int, len(c.Mods))
	for i, mod := range c.Mods {
		name := strings.ToLower(strings.TrimSpace(mod.Name))
		if name == "" {
			errs = append(errs, fmt.Errorf(messages.ConfigModNameRequiredFmt, i))
			continue
		}
		if _, ok := seen[name]; ok {
			errs = append(errs, fmt.Errorf(messages.ConfigModDuplicateFmt, i, mod.Name))
		}
		seen[name] = i
		if err := release.ValidateRepo(mod.Repo); err != nil {
			errs = append(errs, fmt.Errorf(messages.ConfigModRepoInvalidFmt, i, mod.Name, err))
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf(messages.ConfigInvalidConfigFmt, path, errors.Join(errs...))
}
