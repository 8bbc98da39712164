package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/project-echo/mod-installer/internal/messages"
)

func newModsCmd(root *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   messages.ModsUse,
		Short: messages.ModsShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd, root)
			if err != nil {
				return err
			}
			defer a.close()

			for _, mod := range a.cfg.Mods {
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), messages.ModsLineFmt, mod.Name, mod.Title, mod.Repo); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
