// Package root holds the dailyquest command tree.
package root

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/nathoo/dailyquest/ui"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
)

type rootFlags struct {
	plain   bool
	trace   bool
	verbose bool
	script  string
}

func newRootCmd() *cobra.Command {
	var flags rootFlags

	cmd := &cobra.Command{
		Use:   "dailyquest",
		Short: "Daily quest: level up by finishing your daily training",
		Long: `dailyquest tracks a small set of daily exercises and turns them into
experience, levels, rank titles and stats. Progress resets at local midnight;
finishing every task keeps your streak alive, missing a day costs experience.

Run without a subcommand to open the interactive quest window.`,
		Version:       fmt.Sprintf("%s (commit %s)", version, commit),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(cmd, flags)
		},
	}
	cmd.SetVersionTemplate("{{.Name}} {{.Version}}\n")

	pf := cmd.PersistentFlags()
	pf.BoolVar(&flags.verbose, "verbose", false, "log storage and rollover diagnostics to stderr")
	cmd.Flags().BoolVar(&flags.plain, "plain", false, "use the line-oriented prompt instead of the full-screen UI")
	cmd.Flags().BoolVar(&flags.trace, "trace", false, "print the events behind every command")
	cmd.Flags().StringVar(&flags.script, "script", "", "replay commands from `file` and exit")

	cmd.AddCommand(
		newStatusCmd(&flags),
		newIncCmd(&flags),
		newDecCmd(&flags),
		newCompleteCmd(&flags),
		newSpendCmd(&flags),
		newResetCmd(&flags),
		newCheckCmd(),
	)
	return cmd
}

// Execute runs the command tree and exits non-zero on error.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconWarn+" "+err.Error()))
		os.Exit(1)
	}
}
