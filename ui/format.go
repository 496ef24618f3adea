package ui

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/nathoo/dailyquest/engine/stats"
	"github.com/nathoo/dailyquest/types"
)

// PenaltyWarning is shown while the daily quest is unfinished.
const PenaltyWarning = "WARNING: Failure to complete the daily quest will result in a penalty."

// QuestComplete replaces the countdown once every task is done.
const QuestComplete = "DAILY QUEST COMPLETE"

var printer = message.NewPrinter(language.English)

// Number floors v and groups thousands: 12345.7 -> "12,345".
func Number(v float64) string {
	return printer.Sprintf("%d", int64(math.Floor(v)))
}

// FormatCountdown renders seconds as HH:MM:SS. Negative input is zero.
func FormatCountdown(seconds int) string {
	seconds = max(seconds, 0)
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, (seconds%3600)/60, seconds%60)
}

// Bar renders a width-cell progress bar for value/total using the given
// fill and empty glyphs. The ratio is clamped to [0, 1].
func Bar(value, total float64, width int, fill, empty string) string {
	if width <= 0 {
		return ""
	}
	ratio := 0.0
	if total > 0 {
		ratio = math.Min(math.Max(value/total, 0), 1)
	}
	filled := int(math.Floor(ratio * float64(width)))
	return strings.Repeat(fill, filled) + strings.Repeat(empty, width-filled)
}

// XPBar renders the experience bar in plain glyphs.
func XPBar(xp, threshold float64, width int) string {
	return Bar(xp, threshold, width, "█", "░")
}

// TaskProgress renders "[value/max unit]" with the value floored.
func TaskProgress(t types.TaskView) string {
	return fmt.Sprintf("[%s/%s%s]", Number(t.Value), strconv.FormatFloat(t.Max, 'f', -1, 64), t.Unit)
}

// StatusLines renders the full quest panel as plain text lines.
func StatusLines(st types.Status) []string {
	lines := []string{
		st.QuestTitle,
		st.QuestSubtitle,
		"",
		fmt.Sprintf("LEVEL %d  %s", st.Level, st.Title),
		fmt.Sprintf("XP: %s / %s  %s", Number(st.XP), Number(st.XPToNextLevel), XPBar(st.XP, st.XPToNextLevel, 20)),
		fmt.Sprintf("Streak: %d", st.DailyStreak),
		"",
		"GOAL",
	}
	for _, t := range st.Tasks {
		mark := " "
		if t.Done {
			mark = "x"
		}
		lines = append(lines, fmt.Sprintf("  [%s] %-10s %s  (%s)", mark, t.Name, TaskProgress(t), t.ID))
	}
	lines = append(lines, "", fmt.Sprintf("STATS  (Available Points: %d)", st.StatPoints))
	lines = append(lines, StatLines(st.Stats)...)
	lines = append(lines, "")
	lines = append(lines, DeadlineLines(st)...)
	return lines
}

// StatLines renders one "Label: value" line per stat.
func StatLines(s types.Stats) []string {
	out := make([]string, 0, len(stats.Keys))
	for _, k := range stats.Keys {
		out = append(out, fmt.Sprintf("  %-13s %d  (%s)", stats.Label(k)+":", stats.Value(s, k), k))
	}
	return out
}

// StatHelpLines renders the stat effect descriptions.
func StatHelpLines() []string {
	out := []string{"Stat Effects"}
	for _, k := range stats.Keys {
		out = append(out, fmt.Sprintf("  %-13s %s", stats.Label(k), stats.Help(k)))
	}
	return out
}

// DeadlineLines renders the countdown and penalty warning, or the
// completion message.
func DeadlineLines(st types.Status) []string {
	if st.AllCompleted {
		return []string{QuestComplete}
	}
	return []string{PenaltyWarning, "Time remaining: " + FormatCountdown(st.SecondsRemaining)}
}
