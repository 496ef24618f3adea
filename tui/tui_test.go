package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nathoo/dailyquest/engine"
	"github.com/nathoo/dailyquest/engine/progression"
	"github.com/nathoo/dailyquest/loader"
	"github.com/nathoo/dailyquest/store"
	"github.com/nathoo/dailyquest/types"
)

func newTestModel(t *testing.T) (Model, *store.MemoryStore) {
	t.Helper()
	slot := store.NewMemoryStore()
	eng := engine.New(loader.DefaultQuest(), progression.DefaultBalance(), slot)
	eng.Clock = engine.NewFakeClock(time.Date(2026, 3, 14, 21, 30, 0, 0, time.UTC))
	eng.RNG = engine.NewRNG(1)
	m := New(eng, []string{"Welcome back."})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 60})
	return updated.(Model), slot
}

func submit(t *testing.T, m Model, input string) Model {
	t.Helper()
	m.input.SetValue(input)
	updated, _ := m.handleEnter()
	return updated.(Model)
}

func logText(m Model) string {
	var lines []string
	for _, rl := range m.rawLines {
		lines = append(lines, rl.text)
	}
	return strings.Join(lines, "\n")
}

func TestHistory_PushAndNavigate(t *testing.T) {
	h := NewHistory(10)
	h.Push("+pushups")
	h.Push("+situps")
	h.Push("+squats")

	want := []string{"+squats", "+situps", "+pushups", "+pushups"}
	for i, w := range want {
		got, ok := h.Prev("")
		if !ok || got != w {
			t.Errorf("Prev #%d = %q, %v; want %q", i, got, ok, w)
		}
	}

	if got, _ := h.Next(); got != "+situps" {
		t.Errorf("Next = %q, want +situps", got)
	}
}

func TestHistory_DraftRestored(t *testing.T) {
	h := NewHistory(10)
	h.Push("status")

	if got, _ := h.Prev("spend st"); got != "status" {
		t.Fatalf("Prev = %q", got)
	}
	got, ok := h.Next()
	if !ok || got != "spend st" {
		t.Errorf("Next = %q, %v; want the draft back", got, ok)
	}
	if _, ok := h.Next(); ok {
		t.Error("Next past the draft should report false")
	}
}

func TestHistory_SkipsDuplicatesAndEmpty(t *testing.T) {
	h := NewHistory(10)
	h.Push("status")
	h.Push("status")
	h.Push("")
	if h.Len() != 1 {
		t.Errorf("Len = %d, want 1", h.Len())
	}
}

func TestHistory_Limit(t *testing.T) {
	h := NewHistory(2)
	h.Push("a")
	h.Push("b")
	h.Push("c")
	if h.Len() != 2 {
		t.Fatalf("Len = %d, want 2", h.Len())
	}
	h.Prev("")
	if got, _ := h.Prev(""); got != "b" {
		t.Errorf("oldest = %q, want b", got)
	}
}

func TestHistory_Empty(t *testing.T) {
	h := NewHistory(5)
	if _, ok := h.Prev(""); ok {
		t.Error("Prev on empty history should report false")
	}
	if _, ok := h.Next(); ok {
		t.Error("Next on empty history should report false")
	}
}

func TestWordWrap(t *testing.T) {
	tests := []struct {
		text  string
		width int
		want  string
	}{
		{"short", 20, "short"},
		{"one two three four", 9, "one two\nthree\nfour"},
		{"  Strength:     1", 40, "  Strength:     1"},
		{"  indented words here", 12, "  indented\nwords here"},
		{"anything", 0, "anything"},
	}
	for _, tt := range tests {
		if got := wordWrap(tt.text, tt.width); got != tt.want {
			t.Errorf("wordWrap(%q, %d) = %q, want %q", tt.text, tt.width, got, tt.want)
		}
	}
}

func TestClassifyLine(t *testing.T) {
	tests := []struct {
		line string
		want lineKind
	}{
		{"+50 XP", kindGain},
		{"+100 XP (perception bonus: doubled!)", kindGain},
		{"Strength increased to 2.", kindGain},
		{"Yesterday's quest was completed. Streak: 3", kindGain},
		{"-50 XP", kindLoss},
		{"Missed daily quest! -20 XP", kindLoss},
		{"Level lost. You are now level 1.", kindLoss},
		{"Yesterday's quest was not completed. Streak reset.", kindLoss},
		{"LEVEL UP! You are now level 2.", kindMilestone},
		{"RANK UP! D-Rank Hunter", kindMilestone},
		{"Daily Quest Complete!", kindMilestone},
		{"Reset ALL progress? (y/N)", kindWarning},
		{`No task "pullups".`, kindError},
		{"No stat points available.", kindError},
		{"Push-ups is already complete.", kindError},
		{"Complete every task before claiming the reward.", kindError},
		{"[trace] Events: 1", kindTrace},
		{"[Progress saved.]", kindSystem},
		{"Push-ups [5/100]", kindPlain},
		{"", kindPlain},
	}
	for _, tt := range tests {
		if got := classifyLine(tt.line); got != tt.want {
			t.Errorf("classifyLine(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

func TestInit_WritesIntro(t *testing.T) {
	m, _ := newTestModel(t)
	msg := m.initialOutput()()
	updated, _ := m.Update(msg)
	text := logText(updated.(Model))
	if !strings.Contains(text, "Welcome back.") || !strings.Contains(text, "Type help for commands") {
		t.Errorf("intro log = %q", text)
	}
}

func TestHandleEnter_IncrementSaves(t *testing.T) {
	m, slot := newTestModel(t)
	m = submit(t, m, "+pushups")

	text := logText(m)
	for _, want := range []string{"> +pushups", "Push-ups [5/100]", "+50 XP"} {
		if !strings.Contains(text, want) {
			t.Errorf("expected %q in log:\n%s", want, text)
		}
	}
	if _, err := slot.Get(context.Background(), engine.DefaultSaveKey); err != nil {
		t.Errorf("expected a save: %v", err)
	}
	if m.history.Len() != 1 {
		t.Errorf("history len = %d", m.history.Len())
	}
}

func TestHandleEnter_LevelUpBanner(t *testing.T) {
	m, _ := newTestModel(t)
	for i := 0; i < 3; i++ {
		m = submit(t, m, "+pushups")
	}
	if m.engine.State.Player.Level != 2 {
		t.Fatalf("level = %d, want 2", m.engine.State.Player.Level)
	}
	if !strings.Contains(m.banner, "Level 2") || m.bannerLeft != bannerTicks {
		t.Errorf("banner = %q left=%d", m.banner, m.bannerLeft)
	}
	if !strings.Contains(m.View(), "Level 2") {
		t.Error("banner should be drawn above the panel")
	}

	for i := 0; i < bannerTicks; i++ {
		updated, cmd := m.Update(tickMsg(time.Now()))
		m = updated.(Model)
		if cmd == nil {
			t.Fatal("tick should reschedule itself")
		}
	}
	if m.banner != "" {
		t.Errorf("banner should clear after %d ticks, got %q", bannerTicks, m.banner)
	}
}

func TestHandleEnter_RankBannerOnlyOnRankUp(t *testing.T) {
	m, _ := newTestModel(t)
	m.engine.State.Player = types.Player{Level: 9, XPToNextLevel: 40}
	m = submit(t, m, "+pushups")
	if !strings.Contains(m.banner, "D-Rank Hunter") {
		t.Errorf("banner = %q, want the new rank", m.banner)
	}

	m, _ = newTestModel(t)
	m.engine.State.Player = types.Player{Level: 10, XPToNextLevel: 100}
	m.engine.State.Tasks[0].Value = 5
	m = submit(t, m, "-pushups")
	if m.engine.State.Player.Level != 9 {
		t.Fatalf("level = %d, want 9", m.engine.State.Player.Level)
	}
	if m.banner != "" {
		t.Errorf("losing a rank should not raise a banner, got %q", m.banner)
	}
}

func TestHandleEnter_ResetConfirmation(t *testing.T) {
	m, _ := newTestModel(t)
	m = submit(t, m, "+pushups")
	m = submit(t, m, "reset")
	m = submit(t, m, "")
	if !strings.Contains(logText(m), "Reset cancelled.") {
		t.Error("empty answer should cancel the reset")
	}

	m = submit(t, m, "reset")
	m = submit(t, m, "y")
	if m.engine.State.Tasks[0].Value != 0 {
		t.Error("confirmed reset should clear progress")
	}
}

func TestHandleEnter_Again(t *testing.T) {
	m, _ := newTestModel(t)
	m = submit(t, m, "g")
	if !strings.Contains(logText(m), "Nothing to repeat.") {
		t.Error("expected nothing-to-repeat message")
	}
	m = submit(t, m, "+squats")
	m = submit(t, m, "again")
	if got := m.engine.State.Tasks[2].Value; got != 10 {
		t.Errorf("squats = %v, want 10", got)
	}
}

func TestView_ShowsPanelAndCountdown(t *testing.T) {
	m, _ := newTestModel(t)
	view := m.View()
	for _, want := range []string{"QUEST INFO", "E-Rank Hunter", "GOAL", "Push-ups", "02:30:00"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected %q in view", want)
		}
	}
}

func TestView_HidesPanelWhenShort(t *testing.T) {
	m, _ := newTestModel(t)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 12})
	m = updated.(Model)
	if m.showPanel {
		t.Fatal("panel should be hidden on a short terminal")
	}
	if strings.Contains(m.View(), "QUEST INFO") {
		t.Error("hidden panel should not be drawn")
	}
	if m.viewport.Height != 10 {
		t.Errorf("viewport height = %d, want 10", m.viewport.Height)
	}
}

func TestRenderStatusBar(t *testing.T) {
	m, _ := newTestModel(t)
	m.engine.State.Player.StatPoints = 3
	bar := m.renderStatusBar()
	for _, want := range []string{"Lv 1", "XP 0/100", "Points: 3", "02:30:00"} {
		if !strings.Contains(bar, want) {
			t.Errorf("expected %q in status bar %q", want, bar)
		}
	}
}

func TestHandleMeta_Quit(t *testing.T) {
	m, _ := newTestModel(t)
	for _, cmd := range []string{"/quit", "/exit"} {
		if _, quit := m.handleMeta(cmd); !quit {
			t.Errorf("expected quit=true for %s", cmd)
		}
	}
}

func TestHandleMeta_SaveAndLoad(t *testing.T) {
	m, slot := newTestModel(t)

	output, quit := m.handleMeta("/save")
	if quit || len(output) == 0 || output[0] != "Progress saved." {
		t.Errorf("save output = %v", output)
	}
	if _, err := slot.Get(context.Background(), engine.DefaultSaveKey); err != nil {
		t.Errorf("expected a record: %v", err)
	}

	output, _ = m.handleMeta("/load")
	if len(output) == 0 || output[len(output)-1] != "Progress reloaded." {
		t.Errorf("load output = %v", output)
	}
}

func TestHandleMeta_Help(t *testing.T) {
	m, _ := newTestModel(t)
	output, quit := m.handleMeta("/help")
	if quit {
		t.Error("help should not quit")
	}
	joined := strings.Join(output, "\n")
	for _, want := range []string{"/save", "/load", "/quit", "inc <task>", "spend <stat>"} {
		if !strings.Contains(joined, want) {
			t.Errorf("expected %q in help output", want)
		}
	}
}

func TestHandleMeta_Trace(t *testing.T) {
	m, _ := newTestModel(t)

	output, _ := m.handleMeta("/trace")
	if !m.trace || !strings.Contains(output[0], "enabled") {
		t.Errorf("trace=%v output=%v", m.trace, output)
	}
	m = submit(t, m, "+pushups")
	if !strings.Contains(logText(m), "[trace]   xp_gained") {
		t.Error("expected traced events in the log")
	}

	output, _ = m.handleMeta("/trace")
	if m.trace || !strings.Contains(output[0], "disabled") {
		t.Errorf("trace=%v output=%v", m.trace, output)
	}
}

func TestHandleMeta_State(t *testing.T) {
	m, _ := newTestModel(t)
	output, _ := m.handleMeta("/state")
	joined := strings.Join(output, "\n")
	if !strings.Contains(joined, "Level: 1") || !strings.Contains(joined, "Task squats: 0/100 step 5") {
		t.Errorf("state output = %q", joined)
	}
}

func TestHandleMeta_Unknown(t *testing.T) {
	m, _ := newTestModel(t)
	output, quit := m.handleMeta("/bogus")
	if quit || !strings.Contains(output[0], "Unknown command") {
		t.Errorf("unknown output = %v quit=%v", output, quit)
	}
}
