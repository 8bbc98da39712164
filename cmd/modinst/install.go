package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/project-echo/mod-installer/internal/messages"
)

func newInstallCmd(root *rootFlags) *cobra.Command {
	var where placementFlags
	cmd := &cobra.Command{
		Use:   messages.InstallUse,
		Short: messages.InstallShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd, root)
			if err != nil {
				return err
			}
			defer a.close()

			mod, err := a.cfg.LookupMod(args[0])
			if err != nil {
				return err
			}
			out := a.out(cmd)
			return a.withLock(func() error {
				target, err := a.service.GetInstallPath(where.choice())
				if err != nil {
					return err
				}
				if _, err := fmt.Fprintf(out, messages.InstallStartFmt, mod.Title, mod.Repo, target); err != nil {
					return err
				}
				_, _ = color.New(color.FgYellow).Fprintln(out, messages.InstallWarning)

				bar := a.downloadProgress(cmd)
				record, err := a.service.Install(cmd.Context(), mod.Repo, where.choice())
				bar.finish()
				if err != nil {
					return err
				}

				previous, hadPrevious, err := a.store.Load()
				if err != nil {
					a.log.Warn("ignoring unreadable install record", "error", err)
				}
				if err := a.store.Save(record); err != nil {
					// The files are on disk but cannot be cleaned later; undo them now.
					if cleanupErr := a.service.CleanInstall(record, record.Root); cleanupErr != nil {
						a.log.Error("failed to undo unrecorded install", "root", record.Root, "error", cleanupErr)
					}
					return err
				}
				if hadPrevious && previous.ID != record.ID {
					_, _ = color.New(color.FgYellow).Fprintf(out, messages.InstallReplacedFmt, previous.Source.Repo, previous.Root)
				}
				_, err = fmt.Fprint(out, color.GreenString(messages.InstallDoneFmt, len(record.InstalledFiles), len(record.CreatedDirs), record.Root))
				return err
			})
		},
	}
	where.register(cmd)
	return cmd
}
