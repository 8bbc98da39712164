// Package placement resolves the directory a mod archive is installed into.
package placement

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/project-echo/mod-installer/internal/messages"
)

// ErrNoPlatformSelected is returned when neither Steam nor Epic was chosen.
var ErrNoPlatformSelected = errors.New(messages.PlacementNoPlatform)

// ErrNoDefaultPath is returned when the chosen platform has no default directory on this OS.
var ErrNoDefaultPath = errors.New("no default install directory")

// Platform is the storefront the game was installed from.
type Platform int

const (
	// Steam is the Steam release of the game.
	Steam Platform = iota + 1
	// Epic is the Epic Games Store release of the game.
	Epic
)

// Keyword returns the lowercase token used to pick release assets for the platform.
func (p Platform) Keyword() string {
	switch p {
	case Steam:
		return "steam"
	case Epic:
		return "epic"
	default:
		return ""
	}
}

func (p Platform) String() string {
	switch p {
	case Steam:
		return "Steam"
	case Epic:
		return "Epic Games"
	default:
		return fmt.Sprintf("Platform(%d)", int(p))
	}
}

// ParsePlatform maps a keyword back to a Platform.
func ParsePlatform(keyword string) (Platform, bool) {
	switch strings.ToLower(strings.TrimSpace(keyword)) {
	case "steam":
		return Steam, true
	case "epic":
		return Epic, true
	default:
		return 0, false
	}
}

// Choice is the combination of platform flags and custom directory picked by the user.
type Choice struct {
	Steam      bool
	Epic       bool
	Custom     bool
	CustomPath string
}

// Platform returns the platform whose release assets should be installed.
// Steam wins when both flags are set.
func (c Choice) Platform() (Platform, error) {
	switch {
	case c.Steam:
		return Steam, nil
	case c.Epic:
		return Epic, nil
	default:
		return 0, ErrNoPlatformSelected
	}
}

// Defaults holds the fixed per-platform install directories for the running OS.
// An empty field means the platform has no default there.
type Defaults struct {
	Steam string
	Epic  string
}

const gameDirName = "Among Us"

// DefaultsFor returns the built-in default directories for goos.
// home is only used on platforms whose defaults live under the user's home directory.
func DefaultsFor(goos string, home string) Defaults {
	switch goos {
	case "windows":
		return Defaults{
			Steam: "C:/Program Files (x86)/Steam/steamapps/common/" + gameDirName,
			Epic:  "C:/Program Files/Epic Games/AmongUs",
		}
	case "darwin":
		if home == "" {
			return Defaults{}
		}
		return Defaults{
			Steam: filepath.Join(home, "Library", "Application Support", "Steam", "steamapps", "common", gameDirName),
		}
	case "linux":
		if home == "" {
			return Defaults{}
		}
		return Defaults{
			Steam: filepath.Join(home, ".local", "share", "Steam", "steamapps", "common", gameDirName),
		}
	default:
		return Defaults{}
	}
}

// WithOverrides returns d with any non-empty override replacing the built-in value.
func (d Defaults) WithOverrides(steam string, epic string) Defaults {
	if strings.TrimSpace(steam) != "" {
		d.Steam = steam
	}
	if strings.TrimSpace(epic) != "" {
		d.Epic = epic
	}
	return d
}

// Resolve returns the install root for choice. It performs no I/O and returns the
// custom path verbatim whenever it applies.
//
// goos is only used in the error message when a platform default is missing.
func Resolve(choice Choice, defaults Defaults, goos string) (string, error) {
	switch {
	case choice.Steam && !choice.Custom:
		if defaults.Steam == "" {
			return "", fmt.Errorf(messages.PlacementNoDefaultFmt, ErrNoDefaultPath, Steam, goos)
		}
		return defaults.Steam, nil
	case choice.Epic && !choice.Steam && !choice.Custom:
		if defaults.Epic == "" {
			return "", fmt.Errorf(messages.PlacementNoDefaultFmt, ErrNoDefaultPath, Epic, goos)
		}
		return defaults.Epic, nil
	default:
		return choice.CustomPath, nil
	}
}
