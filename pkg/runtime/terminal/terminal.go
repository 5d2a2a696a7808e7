package terminal

import (
	"context"
	"io"
	"os"

	"github.com/de-tools/geff/pkg/runtime/terminal/commands"
	"github.com/de-tools/geff/pkg/runtime/terminal/export"
	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	opts    *commands.Options
	rootCmd *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Output io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	cli := &CLI{
		opts: &commands.Options{Console: export.NewConsole(opts.Output)},
	}

	cli.rootCmd = cli.newRootCmd()
	cli.rootCmd.SetOut(opts.Output)
	return cli
}

func (cli *CLI) ExecuteContext(ctx context.Context) error {
	return cli.rootCmd.ExecuteContext(ctx)
}

// SetArgs overrides the command line arguments, mainly for tests.
func (cli *CLI) SetArgs(args []string) {
	cli.rootCmd.SetArgs(args)
}

func (cli *CLI) newRootCmd() *cobra.Command {
	reprocess := commands.NewReprocessCmd(cli.opts)

	cmd := &cobra.Command{
		Use:   "geff",
		Short: "Reprocess fg5 gravimeter surveys with updated pole coordinates",
		Long: "Run without a command, geff reprocesses the survey project in the\n" +
			"working directory.",
		Args:          cobra.NoArgs,
		RunE:          reprocess.RunE,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&cli.opts.ConfigPath, "config", "c", "",
		"Path to a YAML config file (default is geff.yaml in the project directory)")

	cmd.AddCommand(reprocess)
	cmd.AddCommand(commands.NewInspectCmd(cli.opts))
	cmd.AddCommand(commands.NewPoleCmd(cli.opts))

	return cmd
}
