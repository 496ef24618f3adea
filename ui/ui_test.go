package ui

import (
	"strings"
	"testing"

	"github.com/nathoo/dailyquest/types"
)

func TestNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{99.9, "99"},
		{1234, "1,234"},
		{1234567.8, "1,234,567"},
	}
	for _, tt := range tests {
		if got := Number(tt.in); got != tt.want {
			t.Errorf("Number(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatCountdown(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "00:00:00"},
		{59, "00:00:59"},
		{3600, "01:00:00"},
		{86399, "23:59:59"},
		{-5, "00:00:00"},
	}
	for _, tt := range tests {
		if got := FormatCountdown(tt.in); got != tt.want {
			t.Errorf("FormatCountdown(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestXPBar(t *testing.T) {
	if got := XPBar(50, 100, 10); got != "█████░░░░░" {
		t.Errorf("half bar = %q", got)
	}
	if got := XPBar(0, 100, 4); got != "░░░░" {
		t.Errorf("empty bar = %q", got)
	}
	if got := XPBar(150, 100, 4); got != "████" {
		t.Errorf("overfull bar = %q", got)
	}
	if got := XPBar(10, 0, 4); got != "░░░░" {
		t.Errorf("zero threshold bar = %q", got)
	}
	if got := XPBar(10, 100, 0); got != "" {
		t.Errorf("zero width bar = %q", got)
	}
}

func TestTaskProgress(t *testing.T) {
	got := TaskProgress(types.TaskView{Value: 12.5, Max: 42.5, Unit: "km"})
	if got != "[12/42.5km]" {
		t.Errorf("TaskProgress = %q", got)
	}
}

func sampleStatus() types.Status {
	return types.Status{
		QuestTitle:       "QUEST INFO",
		QuestSubtitle:    "[Daily Quest: Player Training has arrived]",
		Level:            3,
		Title:            "E-Rank Hunter",
		XP:               1250.7,
		XPToNextLevel:    2000,
		DailyStreak:      4,
		StatPoints:       2,
		Stats:            types.Stats{Strength: 5},
		SecondsRemaining: 3661,
		Tasks: []types.TaskView{
			{ID: "pushups", Name: "Push-ups", Value: 100, Max: 100, Done: true},
			{ID: "situps", Name: "Sit-ups", Value: 35, Max: 100},
		},
	}
}

func TestStatusLines_Incomplete(t *testing.T) {
	text := strings.Join(StatusLines(sampleStatus()), "\n")
	for _, want := range []string{
		"QUEST INFO",
		"LEVEL 3  E-Rank Hunter",
		"XP: 1,250 / 2,000",
		"Streak: 4",
		"[x] Push-ups",
		"[ ] Sit-ups",
		"[35/100]",
		"Available Points: 2",
		"Strength:",
		PenaltyWarning,
		"Time remaining: 01:01:01",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("status missing %q:\n%s", want, text)
		}
	}
	if strings.Contains(text, QuestComplete) {
		t.Error("incomplete quest should not show the completion message")
	}
}

func TestStatusLines_Complete(t *testing.T) {
	st := sampleStatus()
	st.AllCompleted = true
	text := strings.Join(StatusLines(st), "\n")
	if !strings.Contains(text, QuestComplete) {
		t.Error("expected completion message")
	}
	if strings.Contains(text, PenaltyWarning) || strings.Contains(text, "Time remaining") {
		t.Error("completed quest should hide the countdown")
	}
}

func TestStatHelpLines(t *testing.T) {
	text := strings.Join(StatHelpLines(), "\n")
	for _, want := range []string{"Strength", "Perception", "Chance to gain double XP."} {
		if !strings.Contains(text, want) {
			t.Errorf("help missing %q", want)
		}
	}
}
