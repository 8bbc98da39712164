package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/project-echo/mod-installer/internal/messages"
	"github.com/project-echo/mod-installer/internal/placement"
)

func newStatusCmd(root *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   messages.StatusUse,
		Short: messages.StatusShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd, root)
			if err != nil {
				return err
			}
			defer a.close()

			record, ok, err := a.store.Load()
			if err != nil {
				return err
			}
			if !ok {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), messages.StatusNone)
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), messages.StatusRecordFmt,
				record.ID,
				record.Source.Repo,
				platformLabel(record.Source.Platform),
				record.Source.AssetURL,
				record.Root,
				record.CreatedAt.Local().Format(time.RFC1123),
				len(record.InstalledFiles),
				len(record.CreatedDirs),
			)
			return err
		},
	}
}

// platformLabel shows the stored platform keyword by its display name.
func platformLabel(keyword string) string {
	if platform, ok := placement.ParsePlatform(keyword); ok {
		return platform.String()
	}
	return keyword
}
