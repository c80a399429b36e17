package cli

import (
	"fmt"
	"io"

	"github.com/arthur-debert/dotdot/pkg/commands"
	"github.com/arthur-debert/dotdot/pkg/reconcile"
	"github.com/arthur-debert/dotdot/pkg/style"
	"github.com/spf13/cobra"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "init",
		Short:   MsgInitShort,
		GroupID: "workspace",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.runner.Init(commands.InitOptions{WorkingDir: a.workingDir})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if res.Created {
				_, _ = fmt.Fprintln(out, style.Render("Success", fmt.Sprintf(MsgInitialized, res.Path)))
			} else {
				_, _ = fmt.Fprintf(out, MsgAlreadyInitialized+"\n", res.Path)
			}
			return nil
		},
	}
}

func newStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "status",
		Short:   MsgStatusShort,
		GroupID: "workspace",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := a.runner.Status(cmd.Context(), commands.StatusOptions{WorkingDir: a.workingDir})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			printWorkspace(out, report.Root)
			if report.NoRepos {
				_, _ = fmt.Fprintln(out, commands.NoReposMessage)
				return nil
			}
			table, err := style.RenderRepoStatusTable(report.Repos)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(out, table)
			return nil
		},
	}
}

func newRestoreCmd(a *app) *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:     "restore",
		Short:   MsgRestoreShort,
		GroupID: "workspace",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := a.runner.Restore(cmd.Context(), commands.RestoreOptions{
				WorkingDir: a.workingDir,
				DryRun:     dryRun,
			})
			if err != nil {
				return err
			}
			printRepoReport(cmd.OutOrStdout(), report)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, MsgFlagDryRun)
	return cmd
}

func newPullCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "pull",
		Short:   MsgPullShort,
		GroupID: "workspace",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := a.runner.Pull(cmd.Context(), commands.PullOptions{WorkingDir: a.workingDir})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			printRepoReport(out, report)
			if report.Summary.Diverged > 0 {
				_, _ = fmt.Fprintln(out)
				_, _ = fmt.Fprintln(out, style.Render("Warning", MsgDivergedWarning))
				_, _ = fmt.Fprintln(out, style.Render("Muted", MsgDivergedHint))
			}
			return nil
		},
	}
}

func newUpdateCmd(a *app) *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:     "update [repo...]",
		Short:   MsgUpdateShort,
		Long:    MsgUpdateLong,
		GroupID: "workspace",
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := a.runner.Update(cmd.Context(), commands.UpdateOptions{
				WorkingDir: a.workingDir,
				Repos:      args,
				DryRun:     dryRun,
			})
			if err != nil {
				return err
			}
			printRepoReport(cmd.OutOrStdout(), report)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, MsgFlagDryRun)
	return cmd
}

func newCloneCmd(a *app) *cobra.Command {
	var install string
	cmd := &cobra.Command{
		Use:     "clone <url> [name]",
		Short:   MsgCloneShort,
		GroupID: "workspace",
		Args:    cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := commands.CloneOptions{WorkingDir: a.workingDir, URL: args[0], Install: install}
			if len(args) == 2 {
				opts.Name = args[1]
			}
			res, err := a.runner.Clone(cmd.Context(), opts)
			if res != nil {
				out := cmd.OutOrStdout()
				_, _ = fmt.Fprintf(out, "  %s %s\n", style.Render("Success", style.SuccessIndicator),
					fmt.Sprintf(MsgClonedFormat, style.Render("Repo", res.Name), style.Render("Revision", reconcile.ShortRev(res.Revision))))
				_, _ = fmt.Fprintf(out, "  %s %s\n", style.Render("Success", style.SuccessIndicator),
					fmt.Sprintf(MsgDeclaredFormat, res.Name, style.Render("Path", res.ConfigPath)))
				if res.Installed {
					_, _ = fmt.Fprintf(out, "  %s %s\n", style.Render("Success", style.SuccessIndicator),
						fmt.Sprintf(MsgInstalledFormat, res.Name))
				}
			}
			return err
		},
	}
	cmd.Flags().StringVar(&install, "install", "", MsgFlagInstall)
	return cmd
}

func newExecCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "exec <command>",
		Short:   MsgExecShort,
		GroupID: "workspace",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := a.runner.Exec(cmd.Context(), commands.ExecOptions{
				WorkingDir: a.workingDir,
				Command:    args[0],
			})
			if err != nil {
				return err
			}
			printRepoReport(cmd.OutOrStdout(), report)
			return nil
		},
	}
}

func printWorkspace(out io.Writer, root string) {
	_, _ = fmt.Fprintln(out, style.RenderTitle(fmt.Sprintf(MsgWorkspaceFormat, root)))
	_, _ = fmt.Fprintln(out)
}

// printRepoReport prints one line per repo and the closing summary.
func printRepoReport(out io.Writer, report *commands.RepoReport) {
	printWorkspace(out, report.Root)
	if report.NoRepos {
		_, _ = fmt.Fprintln(out, commands.NoReposMessage)
		return
	}
	if report.DryRun {
		_, _ = fmt.Fprintln(out, style.Render("Info", MsgDryRunNotice))
		_, _ = fmt.Fprintln(out)
	}
	for _, r := range report.Results {
		_, _ = fmt.Fprintln(out, style.RenderResult(r))
	}
	_, _ = fmt.Fprintln(out, style.RenderSummary(report.Summary.String()))
}
