package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nathoo/dailyquest/engine/stats"
	"github.com/nathoo/dailyquest/types"
	"github.com/nathoo/dailyquest/ui"
)

const xpBarWidth = 24

// renderStatusBar produces a full-width inverted status line: level, rank,
// experience, streak and points on the left, the countdown on the right.
func (m Model) renderStatusBar() string {
	st := m.engine.Status()

	left := fmt.Sprintf(" Lv %d %s | XP %s/%s | %s %d",
		st.Level, st.Title, ui.Number(st.XP), ui.Number(st.XPToNextLevel), ui.IconFlame, st.DailyStreak)
	if st.StatPoints > 0 {
		left += fmt.Sprintf(" | Points: %d", st.StatPoints)
	}

	right := ui.FormatCountdown(st.SecondsRemaining) + " "
	if st.AllCompleted {
		right = "COMPLETE "
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + strings.Repeat(" ", gap) + right
	return styleStatusBar.Width(m.width).Render(bar)
}

// renderPanel draws the quest window shown above the log.
func renderPanel(st types.Status, banner string) string {
	var b strings.Builder

	if banner != "" {
		b.WriteString(banner + "\n\n")
	}
	b.WriteString(ui.PanelTitle.Render(st.QuestTitle) + "\n")
	b.WriteString(ui.Muted.Render(st.QuestSubtitle) + "\n\n")

	b.WriteString(ui.LabelValue("LEVEL", st.Level) + "  " + ui.Gold.Render(st.Title) + "\n")
	b.WriteString(fmt.Sprintf("XP %s %s / %s\n", styledXPBar(st.XP, st.XPToNextLevel),
		ui.Number(st.XP), ui.Number(st.XPToNextLevel)))
	b.WriteString(fmt.Sprintf("%s Streak: %d\n\n", ui.IconFlame, st.DailyStreak))

	b.WriteString(ui.H2.Render("GOAL") + "\n")
	for _, t := range st.Tasks {
		line := fmt.Sprintf("%-10s %s", t.Name, ui.TaskProgress(t))
		if t.Done {
			line += " " + ui.IconDone
		}
		b.WriteString("  " + ui.TaskText(line, t.Done) + "\n")
	}

	b.WriteString("\n" + ui.H2.Render("STATS"))
	if st.StatPoints > 0 {
		b.WriteString("  " + ui.Gold.Render(fmt.Sprintf("%s %d available", ui.IconStar, st.StatPoints)))
	}
	b.WriteString("\n  " + statSummary(st.Stats) + "\n\n")

	if st.AllCompleted {
		b.WriteString(ui.Good.Render(ui.IconTrophy + " " + ui.QuestComplete))
	} else {
		b.WriteString(ui.Warn.Render(ui.PenaltyWarning) + "\n")
		b.WriteString(ui.LabelValue("Time remaining", ui.Bad.Render(ui.FormatCountdown(st.SecondsRemaining))))
	}

	return ui.Panel.Render(b.String())
}

// styledXPBar renders the experience bar with the filled and empty parts
// styled separately.
func styledXPBar(xp, threshold float64) string {
	filled := ui.Bar(xp, threshold, xpBarWidth, "█", "")
	empty := ui.Bar(xp, threshold, xpBarWidth, "", "░")
	return ui.XPFill.Render(filled) + ui.XPEmpty.Render(empty)
}

// statSummary renders the stats on one line: "STR 1  AGI 0 ...".
func statSummary(s types.Stats) string {
	parts := make([]string, 0, len(stats.Keys))
	for _, k := range stats.Keys {
		parts = append(parts, fmt.Sprintf("%s %d", ui.Key.Render(strings.ToUpper(string(k))), stats.Value(s, k)))
	}
	return strings.Join(parts, "  ")
}
