package modinstall

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/mitchellh/go-homedir"

	"github.com/project-echo/mod-installer/internal/fetch"
	"github.com/project-echo/mod-installer/internal/install"
	"github.com/project-echo/mod-installer/internal/placement"
	"github.com/project-echo/mod-installer/internal/release"
)

// defaultTimeout bounds release lookups made through the package-level functions.
const defaultTimeout = 30 * time.Second

// Default returns a Service that talks to GitHub and uses the built-in platform
// directories for this OS.
func Default() *Service {
	home, _ := homedir.Dir()
	return &Service{
		Releases: &release.Client{HTTPClient: &http.Client{Timeout: defaultTimeout}},
		Fetcher:  fetch.New(release.DefaultUserAgent),
		System:   install.RealSystem{},
		Defaults: placement.DefaultsFor(runtime.GOOS, home),
	}
}

// Install installs the latest release of repo using the default Service.
func Install(ctx context.Context, repo string, steam bool, epic bool, custom bool, customPath string) (install.Record, error) {
	return Default().Install(ctx, repo, choice(steam, epic, custom, customPath))
}

// GetInstallPath resolves the install root using the default Service.
func GetInstallPath(steam bool, epic bool, custom bool, customPath string) (string, error) {
	return Default().GetInstallPath(choice(steam, epic, custom, customPath))
}

// CleanInstall rolls back record under root.
func CleanInstall(record install.Record, root string) error {
	return Default().CleanInstall(record, root)
}

func choice(steam bool, epic bool, custom bool, customPath string) placement.Choice {
	return placement.Choice{Steam: steam, Epic: epic, Custom: custom, CustomPath: customPath}
}
