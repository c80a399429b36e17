package cli

import (
	"fmt"
	"os"

	"github.com/arthur-debert/dotdot/internal/version"
	"github.com/arthur-debert/dotdot/pkg/commands"
	"github.com/arthur-debert/dotdot/pkg/config"
	"github.com/arthur-debert/dotdot/pkg/errors"
	"github.com/arthur-debert/dotdot/pkg/logging"
	"github.com/arthur-debert/dotdot/pkg/paths"
	"github.com/arthur-debert/dotdot/pkg/style"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// RunnerFactory builds the command runner once settings are known.
type RunnerFactory func(settings *config.Settings) *commands.Runner

// app holds the state shared by every subcommand of one invocation.
type app struct {
	verbosity  int
	workingDir string
	color      string

	newRunner RunnerFactory
	runner    *commands.Runner
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	return NewRootCmdWithRunner(commands.NewDefaultRunner)
}

// NewRootCmdWithRunner creates the root command with a custom runner
// factory, so tests can inject fake git and shell capabilities.
func NewRootCmdWithRunner(newRunner RunnerFactory) *cobra.Command {
	a := &app{newRunner: newRunner}

	rootCmd := &cobra.Command{
		Use:     "dotdot",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return fmt.Errorf("no command specified")
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&a.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVarP(&a.workingDir, "cwd", "C", "", MsgFlagCwd)
	rootCmd.PersistentFlags().StringVar(&a.color, "color", "", MsgFlagColor)

	rootCmd.AddGroup(&cobra.Group{ID: "workspace", Title: "Workspace Commands:"})
	rootCmd.AddGroup(&cobra.Group{ID: "links", Title: "Link Commands:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "Other Commands:"})

	rootCmd.AddCommand(newInitCmd(a))
	rootCmd.AddCommand(newStatusCmd(a))
	rootCmd.AddCommand(newRestoreCmd(a))
	rootCmd.AddCommand(newPullCmd(a))
	rootCmd.AddCommand(newUpdateCmd(a))
	rootCmd.AddCommand(newCloneCmd(a))
	rootCmd.AddCommand(newExecCmd(a))
	rootCmd.AddCommand(newLinkCmd(a))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

// setup loads settings, configures logging and colour, and builds the
// runner. It runs before every subcommand.
func (a *app) setup(cmd *cobra.Command) error {
	overrides := map[string]interface{}{}
	if a.color != "" {
		overrides["output.color"] = a.color
	}
	settings, err := config.LoadSettings(overrides)
	if err != nil {
		// Logging is not configured yet; keep console output only.
		logging.SetupLogger(a.verbosity, false)
		return err
	}

	logging.SetupLogger(a.verbosity, settings.Log.File)
	style.SetColorMode(settings.Output.Color)

	wd, err := resolveWorkingDir(a.workingDir)
	if err != nil {
		return err
	}
	a.workingDir = wd
	log.Debug().Str("command", cmd.Name()).Str("cwd", a.workingDir).Msg("Command started")

	a.runner = a.newRunner(settings)
	return nil
}

// resolveWorkingDir turns the -C flag (or the process working directory
// when it is unset) into the absolute path every command receives.
func resolveWorkingDir(flag string) (string, error) {
	if flag == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", errors.Wrap(err, errors.ErrFileAccess, "failed to get working directory")
		}
		flag = wd
	}
	return paths.Normalize(flag)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "dotdot version %s\n", version.Version)
			_, _ = fmt.Fprintf(out, "  commit: %s\n", version.Commit)
			_, _ = fmt.Fprintf(out, "  built:  %s\n", version.Date)
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "completion [bash|zsh|fish|powershell]",
		Short:   MsgCompletionShort,
		GroupID: "misc",
		Long: `To load completions:

Bash:
  $ source <(dotdot completion bash)
  # To load completions for each session, execute once:
  $ dotdot completion bash > /etc/bash_completion.d/dotdot

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it.  You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc
  # To load completions for each session, execute once:
  $ dotdot completion zsh > "${fpath[1]}/_dotdot"

Fish:
  $ dotdot completion fish | source
  # To load completions for each session, execute once:
  $ dotdot completion fish > ~/.config/fish/completions/dotdot.fish

PowerShell:
  PS> dotdot completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return GenerateCompletion(cmd.Root(), args[0], cmd.OutOrStdout())
		},
	}
}
