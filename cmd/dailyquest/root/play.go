package root

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/nathoo/dailyquest/cli"
	"github.com/nathoo/dailyquest/tui"
)

// runPlay opens the interactive session: the full-screen UI on a terminal,
// the plain prompt otherwise or when asked, and script playback with --script.
func runPlay(cmd *cobra.Command, flags rootFlags) error {
	ctx := cmd.Context()
	s, err := openSession(ctx, flags.verbose, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer s.close()

	intro := s.loaded.Notes()

	if flags.script != "" {
		f, err := os.Open(flags.script)
		if err != nil {
			return fmt.Errorf("opening script: %w", err)
		}
		defer f.Close()
		c := cli.New(s.engine)
		c.In = f
		c.Out = cmd.OutOrStdout()
		c.Intro = intro
		c.EchoInput = true
		c.Trace = flags.trace
		return c.Run(ctx)
	}

	if flags.plain || s.cfg.Plain || !interactive(cmd) {
		c := cli.New(s.engine)
		c.In = cmd.InOrStdin()
		c.Out = cmd.OutOrStdout()
		c.Intro = intro
		c.Trace = flags.trace
		return c.Run(ctx)
	}

	return tui.Run(ctx, s.engine, intro)
}

// interactive reports whether the command talks to a real terminal.
func interactive(cmd *cobra.Command) bool {
	in, ok := cmd.InOrStdin().(*os.File)
	if !ok {
		return false
	}
	out, ok := cmd.OutOrStdout().(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(in.Fd()) && isatty.IsTerminal(out.Fd())
}
