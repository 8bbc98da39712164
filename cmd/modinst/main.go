package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/fatih/color"

	"github.com/project-echo/mod-installer/internal/config"
	"github.com/project-echo/mod-installer/internal/lock"
	"github.com/project-echo/mod-installer/internal/messages"
	"github.com/project-echo/mod-installer/internal/modinstall"
	"github.com/project-echo/mod-installer/internal/release"
)

var executeFunc = execute

// Version, Commit, and BuildDate are overridden at build time.
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// Exit codes by failure kind.
const (
	exitGeneric            = 1
	exitNoPlatformSelected = 2
	exitAssetNotFound      = 3
	exitTransport          = 4
	exitIo                 = 5
	exitUnsafePath         = 6
	exitBusy               = 7
	exitConfig             = 8
)

func main() {
	runMain(os.Args, os.Stdout, os.Stderr, os.Exit)
}

// SilentExitError reports an exit code without emitting error output.
type SilentExitError struct {
	Code int
}

func (e SilentExitError) Error() string {
	return fmt.Sprintf("exit %d", e.Code)
}

// execute runs the CLI command with the provided args and output writers.
// SIGINT cancels in-flight network requests.
func execute(args []string, stdout io.Writer, stderr io.Writer) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := newRootCmd()
	cmd.Version = versionString()
	cmd.SetVersionTemplate(messages.VersionTemplate)
	if len(args) > 1 {
		cmd.SetArgs(args[1:])
	} else {
		cmd.SetArgs([]string{})
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	return cmd.ExecuteContext(ctx)
}

// runMain executes the CLI and exits with a code derived from the failure kind.
func runMain(args []string, stdout io.Writer, stderr io.Writer, exit func(int)) {
	err := executeFunc(args, stdout, stderr)
	if err == nil {
		return
	}
	var silent *SilentExitError
	if errors.As(err, &silent) {
		exit(silent.Code)
		return
	}
	_, _ = fmt.Fprintln(stderr, color.RedString("Error: %v", err))
	if release.IsRateLimitError(err) {
		_, _ = fmt.Fprintln(stderr, color.YellowString(messages.RateLimitHint))
	}
	exit(exitCode(err))
}

func exitCode(err error) int {
	switch {
	case errors.Is(err, lock.ErrBusy):
		return exitBusy
	case errors.Is(err, config.ErrConfigValidation):
		return exitConfig
	}
	switch modinstall.KindOf(err) {
	case modinstall.KindNoPlatformSelected:
		return exitNoPlatformSelected
	case modinstall.KindAssetNotFound:
		return exitAssetNotFound
	case modinstall.KindTransport:
		return exitTransport
	case modinstall.KindIo:
		return exitIo
	case modinstall.KindUnsafePath:
		return exitUnsafePath
	default:
		return exitGeneric
	}
}

// versionString formats Version with optional commit and build date metadata.
func versionString() string {
	meta := []string{}
	if Commit != "" && Commit != "unknown" {
		meta = append(meta, fmt.Sprintf(messages.VersionCommitFmt, Commit))
	}
	if BuildDate != "" && BuildDate != "unknown" {
		meta = append(meta, fmt.Sprintf(messages.VersionBuildFmt, BuildDate))
	}
	if len(meta) == 0 {
		return Version
	}
	return fmt.Sprintf(messages.VersionFullFmt, Version, strings.Join(meta, ", "))
}
