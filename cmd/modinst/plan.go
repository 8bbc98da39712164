package main

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/project-echo/mod-installer/internal/install"
	"github.com/project-echo/mod-installer/internal/messages"
)

func newPlanCmd(root *rootFlags) *cobra.Command {
	var where placementFlags
	var showDiff bool
	var diffLines int
	cmd := &cobra.Command{
		Use:   messages.PlanUse,
		Short: messages.PlanShort,
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
			a.service.DiffMaxLines = diffLines
			entries, target, err := a.service.Preview(cmd.Context(), mod.Repo, where.choice())
			if err != nil {
				return err
			}
			return renderPlan(cmd.OutOrStdout(), mod.Title, target, entries, showDiff)
		},
	}
	where.register(cmd)
	cmd.Flags().BoolVar(&showDiff, "diff", false, messages.PlanFlagDiff)
	cmd.Flags().IntVar(&diffLines, "diff-lines", install.DefaultDiffMaxLines, messages.PlanFlagDiffLines)
	return cmd
}

func renderPlan(out io.Writer, title string, root string, entries []install.PreviewEntry, showDiff bool) error {
	if _, err := fmt.Fprintf(out, messages.PlanHeaderFmt, title, root); err != nil {
		return err
	}
	var created, overwritten, unchanged, dirs int
	for _, entry := range entries {
		rel := displayPath(root, entry.Path)
		var line string
		switch entry.Action {
		case install.ActionCreate:
			created++
			line = color.GreenString(messages.PlanNewFmt, rel)
		case install.ActionOverwrite:
			overwritten++
			line = color.YellowString(messages.PlanOverwriteFmt, rel)
		case install.ActionUnchanged:
			unchanged++
			line = fmt.Sprintf(messages.PlanSameFmt, rel)
		case install.ActionMkdir:
			dirs++
			line = fmt.Sprintf(messages.PlanDirFmt, rel)
		}
		if _, err := io.WriteString(out, line); err != nil {
			return err
		}
		if showDiff && entry.UnifiedDiff != "" {
			if _, err := io.WriteString(out, entry.UnifiedDiff); err != nil {
				return err
			}
		}
	}
	_, err := fmt.Fprintf(out, messages.PlanSummaryFmt, created, overwritten, unchanged, dirs)
	return err
}

// displayPath shows paths under root relative to it, with forward slashes.
func displayPath(root string, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." {
		return path
	}
	return filepath.ToSlash(rel)
}
