package cli

import (
	"fmt"
	"io"

	"github.com/arthur-debert/dotdot/pkg/commands"
	"github.com/arthur-debert/dotdot/pkg/links"
	"github.com/arthur-debert/dotdot/pkg/style"
	"github.com/spf13/cobra"
)

func newLinkCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "link",
		Short:   MsgLinkShort,
		GroupID: "links",
	}
	cmd.AddCommand(newLinkStatusCmd(a))
	cmd.AddCommand(newLinkCreateCmd(a))
	cmd.AddCommand(newLinkRemoveCmd(a))
	return cmd
}

func newLinkStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: MsgLinkStatusShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := a.runner.LinkStatus(commands.LinkOptions{WorkingDir: a.workingDir})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			printWorkspace(out, report.Root)
			if len(report.Mappings) == 0 {
				_, _ = fmt.Fprintln(out, MsgNoExposes)
				return nil
			}
			printConflicts(out, report.Conflicts)
			table, err := style.RenderLinkTable(report.Entries)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(out, style.RenderTitle(MsgMappingsHeading))
			_, _ = fmt.Fprintln(out, table)
			return nil
		},
	}
}

func newLinkCreateCmd(a *app) *cobra.Command {
	var dryRun, force bool
	cmd := &cobra.Command{
		Use:   "create",
		Short: MsgLinkCreateShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := a.runner.LinkCreate(commands.LinkOptions{
				WorkingDir: a.workingDir,
				DryRun:     dryRun,
				Force:      force,
			})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			printWorkspace(out, report.Root)
			if len(report.Mappings) == 0 {
				_, _ = fmt.Fprintln(out, MsgNoExposes)
				return nil
			}
			if report.Aborted {
				printConflicts(out, report.Conflicts)
				_, _ = fmt.Fprintln(out, style.Render("Warning", fmt.Sprintf(MsgCreateAbortedFormat, len(report.Conflicts))))
				_, _ = fmt.Fprintln(out, style.Render("Muted", MsgForceHint))
				return nil
			}
			printLinkItems(out, MsgCreatingLinks, dryRun, report.Items, report.Summary())
			return nil
		},
	}
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, MsgFlagDryRun)
	cmd.Flags().BoolVarP(&force, "force", "f", false, MsgFlagForce)
	return cmd
}

func newLinkRemoveCmd(a *app) *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "remove",
		Short: MsgLinkRemoveShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := a.runner.LinkRemove(commands.LinkOptions{WorkingDir: a.workingDir, DryRun: dryRun})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			printWorkspace(out, report.Root)
			if len(report.Mappings) == 0 {
				_, _ = fmt.Fprintln(out, MsgNoExposes)
				return nil
			}
			printLinkItems(out, MsgRemovingLinks, dryRun, report.Items, report.Summary())
			return nil
		},
	}
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, MsgFlagDryRun)
	return cmd
}

func printConflicts(out io.Writer, conflicts []links.Conflict) {
	if len(conflicts) == 0 {
		return
	}
	_, _ = fmt.Fprintln(out, style.Render("Warning", MsgConflictsHeading))
	_, _ = fmt.Fprintln(out, style.RenderConflicts(conflicts))
	_, _ = fmt.Fprintln(out)
}

func printLinkItems(out io.Writer, heading string, dryRun bool, items []links.Item, summary string) {
	if dryRun {
		_, _ = fmt.Fprintln(out, style.Render("Info", MsgDryRunNotice))
		_, _ = fmt.Fprintln(out)
	}
	_, _ = fmt.Fprintln(out, heading)
	for _, item := range items {
		_, _ = fmt.Fprintln(out, style.RenderLinkItem(item))
	}
	_, _ = fmt.Fprintln(out)
	_, _ = fmt.Fprintln(out, style.RenderSummary(summary))
}
