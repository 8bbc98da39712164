package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/project-echo/mod-installer/internal/install"
	"github.com/project-echo/mod-installer/internal/messages"
)

// cleanListLimit caps how many recorded files are listed before the prompt.
const cleanListLimit = 10

// confirmFunc asks a yes/no question in the terminal.
var confirmFunc = huhConfirm

func huhConfirm(title string) (bool, error) {
	confirmed := false
	err := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(title).
			Affirmative(messages.CleanAffirmative).
			Negative(messages.CleanNegative).
			Value(&confirmed),
	)).Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return false, nil
	}
	return confirmed, err
}

func newCleanCmd(root *rootFlags) *cobra.Command {
	var where placementFlags
	var yes bool
	cmd := &cobra.Command{
		Use:   messages.CleanUse,
		Short: messages.CleanShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd, root)
			if err != nil {
				return err
			}
			defer a.close()
			out := a.out(cmd)

			return a.withLock(func() error {
				record, ok, err := a.store.Load()
				if err != nil {
					return err
				}
				if !ok {
					_, err := fmt.Fprintln(out, messages.CleanNothingRecorded)
					return err
				}

				target, err := cleanTarget(a, record, where)
				if err != nil {
					return err
				}

				if !yes {
					if !isTerminal() {
						return errors.New(messages.CleanRequiresTerminal)
					}
					if err := printRecordedFiles(cmd.OutOrStdout(), record.InstalledFiles); err != nil {
						return err
					}
					confirmed, err := confirmFunc(fmt.Sprintf(messages.CleanConfirmFmt, len(record.InstalledFiles), target))
					if err != nil {
						return err
					}
					if !confirmed {
						_, _ = fmt.Fprintln(cmd.OutOrStdout(), messages.CleanCancelled)
						return &SilentExitError{Code: exitGeneric}
					}
				}

				if err := a.service.CleanInstall(record, target); err != nil {
					return err
				}
				if err := a.store.Clear(); err != nil {
					return err
				}
				if left := leftoverDirs(record, target); left > 0 {
					_, _ = color.New(color.FgYellow).Fprintf(out, messages.CleanLeftoverDirsFmt, left)
				}
				_, err = fmt.Fprint(out, color.GreenString(messages.CleanDoneFmt, target))
				return err
			})
		},
	}
	where.register(cmd)
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, messages.FlagYes)
	return cmd
}

// cleanTarget returns the root recorded at install time. Placement flags, when given,
// must resolve to that same root.
func cleanTarget(a *app, record install.Record, where placementFlags) (string, error) {
	if !where.set() {
		if record.Root == "" {
			return "", errors.New(messages.CleanRootUnknown)
		}
		return record.Root, nil
	}
	resolved, err := a.service.GetInstallPath(where.choice())
	if err != nil {
		return "", err
	}
	absResolved, err := filepath.Abs(resolved)
	if err != nil {
		return "", err
	}
	if record.Root == "" {
		return absResolved, nil
	}
	if filepath.Clean(absResolved) != filepath.Clean(record.Root) {
		return "", fmt.Errorf(messages.CleanRootMismatchFmt, absResolved, record.Root)
	}
	return record.Root, nil
}

func printRecordedFiles(out io.Writer, paths []string) error {
	if len(paths) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(out, messages.CleanFilesHeader); err != nil {
		return err
	}
	shown := paths
	if len(shown) > cleanListLimit {
		shown = shown[:cleanListLimit]
	}
	for _, path := range shown {
		if _, err := fmt.Fprintf(out, messages.CleanFileLineFmt, path); err != nil {
			return err
		}
	}
	if extra := len(paths) - len(shown); extra > 0 {
		if _, err := fmt.Fprintf(out, messages.CleanMoreFilesFmt, extra); err != nil {
			return err
		}
	}
	return nil
}

// leftoverDirs counts recorded directories under root that survived the prune.
func leftoverDirs(record install.Record, root string) int {
	count := 0
	for _, dir := range record.CreatedDirs {
		rel, err := filepath.Rel(root, dir)
		if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			continue
		}
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			count++
		}
	}
	return count
}
