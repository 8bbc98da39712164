// Package modinstall composes release lookup, download, placement and extraction into
// the install and clean operations.
package modinstall

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"runtime"

	"github.com/project-echo/mod-installer/internal/install"
	"github.com/project-echo/mod-installer/internal/messages"
	"github.com/project-echo/mod-installer/internal/placement"
)

// ReleaseResolver finds the archive URL for a repository and platform.
type ReleaseResolver interface {
	LatestAssetURL(ctx context.Context, repo string, platform placement.Platform) (string, error)
}

// Fetcher downloads a URL to a local temporary file owned by the caller.
type Fetcher interface {
	ToTemp(ctx context.Context, url string) (string, error)
}

// Service runs installs and cleans. Calls are synchronous; a Service does no locking
// of its own.
type Service struct {
	Releases ReleaseResolver
	Fetcher  Fetcher
	System   install.System
	Defaults placement.Defaults
	// GOOS names the platform in placement errors; defaults to runtime.GOOS.
	GOOS         string
	Logger       *slog.Logger
	DiffMaxLines int
}

// Install downloads the latest release of repo for the chosen platform and extracts it
// into the chosen root. It stops at the first failing step.
func (s *Service) Install(ctx context.Context, repo string, choice placement.Choice) (install.Record, error) {
	log := s.logger().With("repo", repo)
	platform, root, archive, assetURL, err := s.prepare(ctx, repo, choice, log)
	if err != nil {
		return install.Record{}, err
	}
	defer s.removeArchive(archive, log)

	record, err := install.Extract(archive, root, s.options())
	if err != nil {
		return install.Record{}, err
	}
	record.Source = install.Source{
		Repo:     repo,
		Platform: platform.Keyword(),
		AssetURL: assetURL,
	}
	log.Info("install complete", "id", record.ID, "root", record.Root)
	return record, nil
}

// Preview runs the install pipeline up to extraction and reports what extraction would
// change under the resolved root, without writing to it.
func (s *Service) Preview(ctx context.Context, repo string, choice placement.Choice) ([]install.PreviewEntry, string, error) {
	log := s.logger().With("repo", repo)
	_, root, archive, _, err := s.prepare(ctx, repo, choice, log)
	if err != nil {
		return nil, "", err
	}
	defer s.removeArchive(archive, log)

	entries, err := install.Preview(archive, root, s.options())
	if err != nil {
		return nil, root, err
	}
	return entries, root, nil
}

// GetInstallPath resolves the install root for choice.
func (s *Service) GetInstallPath(choice placement.Choice) (string, error) {
	return placement.Resolve(choice, s.Defaults, s.goos())
}

// CleanInstall removes what record attributes to the install under root.
func (s *Service) CleanInstall(record install.Record, root string) error {
	return install.Rollback(record, root, s.options())
}

// prepare resolves the platform, asset URL and install root, then downloads the archive.
func (s *Service) prepare(ctx context.Context, repo string, choice placement.Choice, log *slog.Logger) (placement.Platform, string, string, string, error) {
	platform, err := choice.Platform()
	if err != nil {
		return 0, "", "", "", err
	}
	if s.Releases == nil || s.Fetcher == nil {
		return 0, "", "", "", errors.New(messages.ServiceDepsRequired)
	}
	assetURL, err := s.Releases.LatestAssetURL(ctx, repo, platform)
	if err != nil {
		return 0, "", "", "", err
	}
	log.Info("resolved release asset", "platform", platform.Keyword(), "url", assetURL)

	archive, err := s.Fetcher.ToTemp(ctx, assetURL)
	if err != nil {
		return 0, "", "", "", err
	}
	log.Debug("downloaded archive", "path", archive)

	root, err := s.GetInstallPath(choice)
	if err != nil {
		s.removeArchive(archive, log)
		return 0, "", "", "", err
	}
	return platform, root, archive, assetURL, nil
}

func (s *Service) removeArchive(path string, log *slog.Logger) {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn("failed to remove downloaded archive", "path", path, "error", err)
	}
}

func (s *Service) options() install.Options {
	sys := s.System
	if sys == nil {
		sys = install.RealSystem{}
	}
	return install.Options{System: sys, Logger: s.logger(), DiffMaxLines: s.DiffMaxLines}
}

func (s *Service) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return s.Logger
}

func (s *Service) goos() string {
	if s.GOOS == "" {
		return runtime.GOOS
	}
	return s.GOOS
}
