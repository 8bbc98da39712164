package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/project-echo/mod-installer/internal/messages"
)

func newPathCmd(root *rootFlags) *cobra.Command {
	var where placementFlags
	cmd := &cobra.Command{
		Use:   messages.PathUse,
		Short: messages.PathShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd, root)
			if err != nil {
				return err
			}
			defer a.close()

			target, err := a.service.GetInstallPath(where.choice())
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), target)
			return err
		},
	}
	where.register(cmd)
	return cmd
}
