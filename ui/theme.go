// Package ui holds the shared terminal theme and the formatting helpers
// used by both the plain CLI and the TUI.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	IconFlame  = "🔥"
	IconBolt   = "⚡"
	IconTrophy = "🏆"
	IconWarn   = "⚠️"
	IconDone   = "✅"
	IconStar   = "✨"
)

var (
	cPrimary = lipgloss.Color("39")  // system blue
	cAccent  = lipgloss.Color("45")  // cyan
	cGood    = lipgloss.Color("42")  // green
	cWarn    = lipgloss.Color("214") // orange
	cBad     = lipgloss.Color("196") // red
	cMuted   = lipgloss.Color("244") // gray
	cGold    = lipgloss.Color("220") // gold
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	H2    = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	Gold  = lipgloss.NewStyle().Bold(true).Foreground(cGold)

	Panel      = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(cPrimary).Padding(0, 1)
	PanelTitle = lipgloss.NewStyle().Bold(true).Foreground(cAccent)

	XPFill  = lipgloss.NewStyle().Foreground(cAccent)
	XPEmpty = lipgloss.NewStyle().Foreground(cMuted)

	BadgeLevelUp = lipgloss.NewStyle().Bold(true).Foreground(cGold).Render("LEVEL UP")
	BadgeRankUp  = lipgloss.NewStyle().Bold(true).Foreground(cGold).Render("RANK UP")
)

func Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

// TaskText colors a task's progress by completion.
func TaskText(text string, done bool) string {
	if done {
		return Good.Render(text)
	}
	return text
}
