package engine

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/nathoo/dailyquest/engine/parser"
	"github.com/nathoo/dailyquest/types"
	"github.com/nathoo/dailyquest/ui"
)

// HelpLines lists the commands Step understands.
var HelpLines = []string{
	"Commands:",
	"  inc <task>    (+, do, add)   Log one step of a task, e.g. +pushups",
	"  dec <task>    (-, undo)      Take back one step",
	"  complete      (claim)        Claim the daily quest reward",
	"  spend <stat>  (stat)         Spend a point: str, agi, vit, int, per",
	"  status        (s, look)      Show the quest panel",
	"  help stats                   Describe what each stat does",
	"  reset                        Reset ALL progress (asks first)",
	"  again         (g)            Repeat the last command",
}

// Step parses one command line and runs the matching intent. A reset asks
// for confirmation; the next Step answers it.
func (e *Engine) Step(ctx context.Context, input string) (types.Result, error) {
	intent := parser.Parse(input)

	if e.confirmReset {
		e.confirmReset = false
		if intent.Verb == "y" || intent.Verb == "yes" {
			return e.ResetAll(ctx)
		}
		return types.Result{Output: []string{"Reset cancelled."}}, nil
	}

	switch intent.Verb {
	case "":
		return output("What do you want to do? Type help for commands."), nil

	case parser.VerbInc, parser.VerbDec:
		if intent.Object == "" {
			return output(fmt.Sprintf("Which task? (%s)", strings.Join(e.taskIDs(), ", "))), nil
		}
		id := e.resolveTask(intent.Object)
		if intent.Verb == parser.VerbInc {
			return e.IncrementTask(ctx, id)
		}
		return e.DecrementTask(ctx, id)

	case parser.VerbComplete:
		return e.CompleteQuest(ctx)

	case parser.VerbSpend:
		if intent.Object == "" {
			return output("Spend on which stat? (str, agi, vit, int, per)"), nil
		}
		return e.SpendStatPoint(ctx, intent.Object)

	case parser.VerbReset:
		e.confirmReset = true
		return output("Reset ALL progress? (y/N)"), nil

	case parser.VerbStatus:
		return types.Result{Output: ui.StatusLines(e.Status())}, nil

	case parser.VerbStats:
		return types.Result{Output: ui.StatHelpLines()}, nil

	case parser.VerbHelp:
		return types.Result{Output: append([]string(nil), HelpLines...)}, nil
	}

	return output(fmt.Sprintf("I don't know how to %q. Type help for commands.", intent.Verb)), nil
}

// PendingReset reports whether Step is waiting for a reset confirmation.
func (e *Engine) PendingReset() bool {
	return e.confirmReset
}

// resolveTask maps user input to a task id: an exact id, a display name
// ignoring case and punctuation, or a 1-based position. Unmatched input is
// returned unchanged so the mutator reports it.
func (e *Engine) resolveTask(s string) string {
	for _, t := range e.State.Tasks {
		if t.ID == s {
			return t.ID
		}
	}
	norm := normalize(s)
	for _, t := range e.State.Tasks {
		if normalize(t.Name) == norm || normalize(t.ID) == norm {
			return t.ID
		}
	}
	if n, err := strconv.Atoi(s); err == nil && n >= 1 && n <= len(e.State.Tasks) {
		return e.State.Tasks[n-1].ID
	}
	return s
}

func (e *Engine) taskIDs() []string {
	ids := make([]string, len(e.State.Tasks))
	for i, t := range e.State.Tasks {
		ids[i] = t.ID
	}
	return ids
}

func normalize(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if r != '-' && r != '_' && r != ' ' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func output(lines ...string) types.Result {
	return types.Result{Output: lines}
}
