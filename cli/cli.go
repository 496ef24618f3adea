// Package cli provides the plain line-oriented terminal front end: a REPL
// over Engine.Step with meta-commands and script playback.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nathoo/dailyquest/engine"
	"github.com/nathoo/dailyquest/types"
	"github.com/nathoo/dailyquest/ui"
)

// CLI handles terminal interaction with the player.
type CLI struct {
	Engine    *engine.Engine
	In        io.Reader
	Out       io.Writer
	Intro     []string // printed before the first status panel
	Trace     bool
	EchoInput bool   // echo each input line after the prompt (for script playback)
	lastCmd   string // for "again"/"g" repeat
}

// New creates a CLI wired to the given engine.
func New(eng *engine.Engine) *CLI {
	return &CLI{
		Engine: eng,
		In:     os.Stdin,
		Out:    os.Stdout,
	}
}

// Run shows the quest panel, then loops: prompt, input, dispatch, output.
// It returns when input ends, on /quit, or on a storage error.
func (c *CLI) Run(ctx context.Context) error {
	for _, line := range c.Intro {
		c.printSystem(line)
	}
	c.printLines(ui.StatusLines(c.Engine.Status()))

	scanner := bufio.NewScanner(c.In)
	for {
		c.print("> ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" && !c.Engine.PendingReset() {
			continue
		}
		// Skip comment lines (for script files).
		if strings.HasPrefix(input, "#") {
			continue
		}
		if c.EchoInput {
			c.printLine(input)
		}

		if strings.HasPrefix(input, "/") {
			quit, err := c.handleMeta(ctx, input)
			if err != nil {
				return err
			}
			if quit {
				return nil
			}
			continue
		}

		lower := strings.ToLower(input)
		if lower == "again" || lower == "g" {
			if c.lastCmd == "" {
				c.printLine("Nothing to repeat.")
				continue
			}
			input = c.lastCmd
		} else if !c.Engine.PendingReset() {
			c.lastCmd = input
		}

		result, err := c.Engine.Step(ctx, input)
		c.printResult(result)
		if c.Trace {
			c.printTrace(result)
		}
		if err != nil {
			c.printSystem(fmt.Sprintf("Save failed: %v", err))
			return err
		}
	}
	return scanner.Err()
}

// handleMeta dispatches meta-commands. Returns true if the session should end.
func (c *CLI) handleMeta(ctx context.Context, input string) (bool, error) {
	cmd := strings.Fields(input)[0]

	switch cmd {
	case "/quit", "/exit":
		c.printSystem("Goodbye.")
		return true, nil

	case "/help":
		c.cmdHelp()

	case "/status":
		c.printLines(ui.StatusLines(c.Engine.Status()))

	case "/state":
		c.cmdState()

	case "/save":
		if err := c.Engine.Save(ctx); err != nil {
			c.printSystem(fmt.Sprintf("Save failed: %v", err))
			return false, err
		}
		c.printSystem("Progress saved.")

	case "/load":
		lr, err := c.Engine.Load(ctx)
		if err != nil {
			c.printSystem(fmt.Sprintf("Load failed: %v", err))
			return false, err
		}
		c.printLines(lr.Notes())
		c.printSystem("Progress reloaded.")

	case "/trace":
		c.Trace = !c.Trace
		if c.Trace {
			c.printSystem("Trace output enabled.")
		} else {
			c.printSystem("Trace output disabled.")
		}

	default:
		c.printSystem(fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd))
	}

	return false, nil
}

func (c *CLI) cmdHelp() {
	c.printLines(engine.HelpLines)
	c.printLines([]string{
		"",
		"System:",
		"  /status   Show the quest panel",
		"  /save     Save now",
		"  /load     Reload progress from storage",
		"  /state    Debug: dump current state",
		"  /trace    Toggle event trace output",
		"  /quit     Exit",
	})
}

func (c *CLI) cmdState() {
	for _, line := range c.Engine.DebugLines() {
		c.printSystem(line)
	}
}

func (c *CLI) printTrace(result types.Result) {
	if len(result.Events) > 0 {
		c.printLine(fmt.Sprintf("[trace] Events: %d", len(result.Events)))
		for _, e := range result.Events {
			c.printLine(fmt.Sprintf("[trace]   %s %v", e.Type, e.Data))
		}
	}
}

func (c *CLI) printResult(result types.Result) {
	c.printLines(result.Output)
}

func (c *CLI) printLines(lines []string) {
	for _, line := range lines {
		c.printLine(line)
	}
}

func (c *CLI) printLine(text string) {
	fmt.Fprintln(c.Out, text)
}

func (c *CLI) print(text string) {
	fmt.Fprint(c.Out, text)
}

func (c *CLI) printSystem(text string) {
	fmt.Fprintf(c.Out, "[%s]\n", text)
}
