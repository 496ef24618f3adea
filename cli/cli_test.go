package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/nathoo/dailyquest/engine"
	"github.com/nathoo/dailyquest/engine/progression"
	"github.com/nathoo/dailyquest/loader"
	"github.com/nathoo/dailyquest/store"
)

func newTestCLI(t *testing.T, input string) (*CLI, *bytes.Buffer, *store.MemoryStore) {
	t.Helper()
	slot := store.NewMemoryStore()
	eng := engine.New(loader.DefaultQuest(), progression.DefaultBalance(), slot)
	eng.Clock = engine.NewFakeClock(time.Date(2026, 3, 14, 20, 0, 0, 0, time.UTC))
	eng.RNG = engine.NewRNG(1)
	var out bytes.Buffer
	c := &CLI{
		Engine: eng,
		In:     strings.NewReader(input),
		Out:    &out,
	}
	return c, &out, slot
}

func run(t *testing.T, c *CLI) {
	t.Helper()
	if err := c.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
}

func TestCLI_ShowsPanelOnStart(t *testing.T) {
	c, out, _ := newTestCLI(t, "/quit\n")
	c.Intro = []string{"Yesterday's quest was completed. Streak: 1"}
	run(t, c)

	output := out.String()
	for _, want := range []string{
		"[Yesterday's quest was completed. Streak: 1]",
		"QUEST INFO",
		"LEVEL 1",
		"Time remaining: 04:00:00",
		"[Goodbye.]",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output:\n%s", want, output)
		}
	}
}

func TestCLI_IncrementAndSave(t *testing.T) {
	c, out, slot := newTestCLI(t, "+pushups\n")
	run(t, c)

	if !strings.Contains(out.String(), "Push-ups [5/100]") || !strings.Contains(out.String(), "+50 XP") {
		t.Errorf("unexpected output:\n%s", out.String())
	}
	if _, err := slot.Get(context.Background(), engine.DefaultSaveKey); err != nil {
		t.Errorf("expected save after increment: %v", err)
	}
}

func TestCLI_EndsAtEOF(t *testing.T) {
	c, _, _ := newTestCLI(t, "status\n")
	run(t, c)
}

func TestCLI_HelpCommand(t *testing.T) {
	c, out, _ := newTestCLI(t, "/help\n/quit\n")
	run(t, c)

	output := out.String()
	for _, want := range []string{"inc <task>", "/status", "/quit"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in help output", want)
		}
	}
}

func TestCLI_UnknownMetaCommand(t *testing.T) {
	c, out, _ := newTestCLI(t, "/dance\n/quit\n")
	run(t, c)
	if !strings.Contains(out.String(), "Unknown command: /dance") {
		t.Error("expected unknown command message")
	}
}

func TestCLI_TraceToggle(t *testing.T) {
	c, out, _ := newTestCLI(t, "/trace\n+squats\n/quit\n")
	run(t, c)
	output := out.String()
	if !strings.Contains(output, "Trace output enabled.") {
		t.Error("expected trace enabled message")
	}
	if !strings.Contains(output, "[trace]   xp_gained") {
		t.Errorf("expected traced event:\n%s", output)
	}
}

func TestCLI_StateCommand(t *testing.T) {
	c, out, _ := newTestCLI(t, "/state\n/quit\n")
	run(t, c)
	output := out.String()
	for _, want := range []string{"Date: 2026-03-14", "Level: 1", "Task pushups: 0/100 step 5", "RNG: seed 1"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in state dump:\n%s", want, output)
		}
	}
}

func TestCLI_ResetConfirmation(t *testing.T) {
	c, out, _ := newTestCLI(t, "+pushups\nreset\n\nreset\nyes\n/quit\n")
	run(t, c)

	output := out.String()
	if strings.Count(output, "Reset ALL progress? (y/N)") != 2 {
		t.Errorf("expected two prompts:\n%s", output)
	}
	if !strings.Contains(output, "Reset cancelled.") {
		t.Error("empty answer should cancel")
	}
	if !strings.Contains(output, "All progress has been reset.") {
		t.Error("yes should reset")
	}
	if c.Engine.State.Tasks[0].Value != 0 || c.Engine.State.Player.XP != 0 {
		t.Errorf("state not reset: %+v", c.Engine.State)
	}
}

func TestCLI_Again_RepeatsLastCommand(t *testing.T) {
	c, _, _ := newTestCLI(t, "+situps\nagain\ng\n/quit\n")
	run(t, c)
	if got := c.Engine.State.Tasks[1].Value; got != 15 {
		t.Errorf("situps = %v, want 15", got)
	}
}

func TestCLI_Again_NothingToRepeat(t *testing.T) {
	c, out, _ := newTestCLI(t, "again\n/quit\n")
	run(t, c)
	if !strings.Contains(out.String(), "Nothing to repeat.") {
		t.Error("expected nothing-to-repeat message")
	}
}

func TestCLI_ScriptEchoAndComments(t *testing.T) {
	c, out, _ := newTestCLI(t, "# warm up\n+pushups\n/quit\n")
	c.EchoInput = true
	run(t, c)
	output := out.String()
	if strings.Contains(output, "warm up") {
		t.Error("comment lines should be skipped")
	}
	if !strings.Contains(output, "> +pushups\n") {
		t.Errorf("expected echoed input:\n%s", output)
	}
}

func TestCLI_SaveAndLoadMeta(t *testing.T) {
	c, out, slot := newTestCLI(t, "/save\n/load\n/quit\n")
	run(t, c)
	output := out.String()
	if !strings.Contains(output, "[Progress saved.]") || !strings.Contains(output, "[Progress reloaded.]") {
		t.Errorf("unexpected output:\n%s", output)
	}
	if _, err := slot.Get(context.Background(), engine.DefaultSaveKey); err != nil {
		t.Errorf("expected record after /save: %v", err)
	}
}
