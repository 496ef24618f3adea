package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nathoo/dailyquest/ui"
)

var (
	styleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Bold(true)

	styleInputPrompt = lipgloss.NewStyle().
				Foreground(lipgloss.Color("39"))

	stylePlain = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	styleSystem = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	stylePlayerInput = lipgloss.NewStyle().
				Foreground(lipgloss.Color("39"))

	styleTrace = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// lineKind identifies the type of an output line for styling.
type lineKind int

const (
	kindPlain lineKind = iota
	kindGain
	kindLoss
	kindMilestone
	kindWarning
	kindError
	kindSystem
	kindTrace
)

var errorPrefixes = []string{
	"No task",
	"No stat points",
	"Unknown stat",
	"I don't know",
	"Complete every task",
}

// classifyLine determines what kind of output line this is.
func classifyLine(line string) lineKind {
	switch {
	case strings.HasPrefix(line, "[trace]"):
		return kindTrace
	case strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]"):
		return kindSystem
	case strings.HasPrefix(line, "LEVEL UP!"),
		strings.HasPrefix(line, "RANK UP!"),
		strings.HasPrefix(line, "Daily Quest Complete!"):
		return kindMilestone
	case strings.HasPrefix(line, "+"),
		strings.Contains(line, " increased to "),
		strings.HasPrefix(line, "Yesterday's quest was completed"):
		return kindGain
	case strings.HasPrefix(line, "-"),
		strings.HasPrefix(line, "Missed daily quest"),
		strings.HasPrefix(line, "Level lost"),
		strings.HasPrefix(line, "Yesterday's quest was not completed"):
		return kindLoss
	case strings.HasPrefix(line, "WARNING"),
		strings.HasPrefix(line, "Reset ALL"):
		return kindWarning
	case strings.HasSuffix(line, "is already complete."),
		strings.HasSuffix(line, "has no progress to undo."):
		return kindError
	}
	for _, p := range errorPrefixes {
		if strings.HasPrefix(line, p) {
			return kindError
		}
	}
	return kindPlain
}

// renderLineKind applies the style for a given lineKind.
func renderLineKind(line string, kind lineKind) string {
	switch kind {
	case kindGain:
		return ui.Good.Render(line)
	case kindLoss, kindError:
		return ui.Bad.Render(line)
	case kindMilestone:
		return ui.Gold.Render(line)
	case kindWarning:
		return ui.Warn.Render(line)
	case kindSystem:
		return styleSystem.Render(line)
	case kindTrace:
		return styleTrace.Render(line)
	default:
		return stylePlain.Render(line)
	}
}

// styledSystemMsg renders a system message in gray with brackets.
func styledSystemMsg(text string) string {
	return styleSystem.Render("[" + text + "]")
}
