package root

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/nathoo/dailyquest/loader"
	"github.com/nathoo/dailyquest/types"
	"github.com/nathoo/dailyquest/ui"
)

// runStep opens a session, runs one command line through the engine and
// prints the load notes followed by the command's output.
func runStep(cmd *cobra.Command, flags *rootFlags, line string) error {
	ctx := cmd.Context()
	s, err := openSession(ctx, flags.verbose, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer s.close()

	out := cmd.OutOrStdout()
	printLines(out, s.loaded.Notes())
	result, err := s.engine.Step(ctx, line)
	printLines(out, result.Output)
	return err
}

func printLines(w io.Writer, lines []string) {
	for _, l := range lines {
		fmt.Fprintln(w, l)
	}
}

func exactlyOne(name string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != 1 {
			return fmt.Errorf("%s is required", name)
		}
		return nil
	}
}

func newStatusCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "status",
		Aliases: []string{"s"},
		Short:   "Show the quest panel",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStep(cmd, flags, "status")
		},
	}
}

func newIncCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "inc <task>",
		Aliases: []string{"do", "add"},
		Short:   "Log one step of a task",
		Long:    "Log one step of a task. The task may be given by id, display name or position.",
		Args:    exactlyOne("task"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStep(cmd, flags, "inc "+args[0])
		},
	}
}

func newDecCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "dec <task>",
		Aliases: []string{"undo"},
		Short:   "Take back one step of a task",
		Args:    exactlyOne("task"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStep(cmd, flags, "dec "+args[0])
		},
	}
}

func newCompleteCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "complete",
		Aliases: []string{"claim"},
		Short:   "Claim the daily quest reward once every task is done",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStep(cmd, flags, "complete")
		},
	}
}

func newSpendCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "spend <stat>",
		Short: "Spend a stat point on str, agi, vit, int or per",
		Args:  exactlyOne("stat"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStep(cmd, flags, "spend "+args[0])
		},
	}
}

func newResetCmd(flags *rootFlags) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset ALL progress and delete the save",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("reset deletes all progress; pass --yes to confirm")
			}
			ctx := cmd.Context()
			s, err := openSession(ctx, flags.verbose, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer s.close()

			result, err := s.engine.ResetAll(ctx)
			printLines(cmd.OutOrStdout(), result.Output)
			return err
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "confirm the reset")
	return cmd
}

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check [quest.lua | dir]",
		Short: "Validate a quest definition and list its tasks",
		Long: `Validate a quest definition written in Lua and list the tasks it defines.
Without an argument the built-in daily quest is shown.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			quest := loader.DefaultQuest()
			if len(args) == 1 {
				q, err := loader.Load(args[0])
				if err != nil {
					return err
				}
				quest = q
			}
			printQuest(cmd.OutOrStdout(), quest)
			return nil
		},
	}
}

func printQuest(w io.Writer, q *types.Quest) {
	fmt.Fprintln(w, ui.Heading(ui.IconBolt, q.Title))
	if q.Subtitle != "" {
		fmt.Fprintln(w, ui.Muted.Render(q.Subtitle))
	}
	for _, t := range q.Tasks {
		line := fmt.Sprintf("- %s %s", ui.Key.Render(t.ID), t.Name)
		detail := fmt.Sprintf("max %s, step %s", trimNum(t.Max), trimNum(t.Step))
		if t.Unit != "" {
			detail += ", unit " + t.Unit
		}
		fmt.Fprintln(w, line+" "+ui.Muted.Render("("+detail+")"))
	}
	fmt.Fprintln(w, ui.Good.Render(fmt.Sprintf("%s %d tasks OK", ui.IconDone, len(q.Tasks))))
}

func trimNum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
