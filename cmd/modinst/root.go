package main

import (
	"io"
	"net/http"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/project-echo/mod-installer/internal/config"
	"github.com/project-echo/mod-installer/internal/fetch"
	"github.com/project-echo/mod-installer/internal/install"
	"github.com/project-echo/mod-installer/internal/lock"
	"github.com/project-echo/mod-installer/internal/logging"
	"github.com/project-echo/mod-installer/internal/messages"
	"github.com/project-echo/mod-installer/internal/modinstall"
	"github.com/project-echo/mod-installer/internal/placement"
	"github.com/project-echo/mod-installer/internal/release"
	"github.com/project-echo/mod-installer/internal/state"
	"github.com/project-echo/mod-installer/internal/terminal"
)

// Seams replaced in tests.
var (
	goos       = runtime.GOOS
	isTerminal = terminal.IsInteractive
)

type rootFlags struct {
	configPath string
	verbose    bool
	quiet      bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	cmd := &cobra.Command{
		Use:           messages.RootUse,
		Short:         messages.RootShort,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&flags.configPath, "config", "", messages.RootFlagConfig)
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, messages.RootFlagVerbose)
	cmd.PersistentFlags().BoolVarP(&flags.quiet, "quiet", "q", false, messages.RootFlagQuiet)

	cmd.AddCommand(
		newInstallCmd(flags),
		newPathCmd(flags),
		newPlanCmd(flags),
		newCleanCmd(flags),
		newStatusCmd(flags),
		newModsCmd(flags),
	)
	return cmd
}

// app holds what every command needs once flags and config are resolved.
type app struct {
	cfg      *config.Config
	log      *logging.Logger
	stateDir string
	store    state.Store
	service  *modinstall.Service
	fetcher  *fetch.Fetcher
	quiet    bool
}

func loadApp(cmd *cobra.Command, flags *rootFlags) (*app, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, err
	}
	stateDir, err := cfg.StateDir()
	if err != nil {
		return nil, err
	}
	logFile, err := cfg.LogFile()
	if err != nil {
		return nil, err
	}
	defaults, err := cfg.PlacementDefaults(goos)
	if err != nil {
		return nil, err
	}

	logger := logging.New(logging.Options{
		File:       logFile,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		Stderr:     cmd.ErrOrStderr(),
		Verbose:    flags.verbose,
	})
	fetcher := fetch.New(cfg.Release.UserAgent)
	service := &modinstall.Service{
		Releases: &release.Client{
			BaseURL:    cfg.Release.APIBaseURL,
			UserAgent:  cfg.Release.UserAgent,
			HTTPClient: &http.Client{Timeout: cfg.Timeout()},
		},
		Fetcher:  fetcher,
		System:   install.RealSystem{},
		Defaults: defaults,
		GOOS:     goos,
		Logger:   logger.Logger,
	}
	return &app{
		cfg:      cfg,
		log:      logger,
		stateDir: stateDir,
		store:    state.Store{Dir: stateDir},
		service:  service,
		fetcher:  fetcher,
		quiet:    flags.quiet,
	}, nil
}

func (a *app) close() {
	_ = a.log.Close()
}

// out returns the writer for informational output, which --quiet discards.
func (a *app) out(cmd *cobra.Command) io.Writer {
	if a.quiet {
		return io.Discard
	}
	return cmd.OutOrStdout()
}

// downloadProgress attaches a progress bar on stderr to the fetcher when output is
// interactive, and returns nil otherwise.
func (a *app) downloadProgress(cmd *cobra.Command) *downloadProgress {
	if a.quiet || !isTerminal() {
		return nil
	}
	bar := newDownloadProgress(cmd.ErrOrStderr())
	a.fetcher.Progress = bar.update
	return bar
}

// withLock runs fn while holding the per-user install lock.
func (a *app) withLock(fn func() error) error {
	return lock.With(filepath.Join(a.stateDir, lock.FileName), fn)
}

type placementFlags struct {
	steam bool
	epic  bool
	dir   string
}

func (p *placementFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&p.steam, "steam", false, messages.FlagSteam)
	cmd.Flags().BoolVar(&p.epic, "epic", false, messages.FlagEpic)
	cmd.Flags().StringVar(&p.dir, "dir", "", messages.FlagDir)
}

func (p placementFlags) choice() placement.Choice {
	return placement.Choice{
		Steam:      p.steam,
		Epic:       p.epic,
		Custom:     p.dir != "",
		CustomPath: p.dir,
	}
}

func (p placementFlags) set() bool {
	return p.steam || p.epic || p.dir != ""
}
