package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nathoo/dailyquest/engine"
	"github.com/nathoo/dailyquest/engine/events"
	"github.com/nathoo/dailyquest/types"
	"github.com/nathoo/dailyquest/ui"
)

// bannerTicks is how many countdown ticks a level or rank banner stays up.
const bannerTicks = 4

// rawLine stores an unstyled output line with its classification,
// so we can re-wrap and re-style when the terminal is resized.
type rawLine struct {
	text     string
	kind     lineKind
	isInput  bool // true for echoed player input
	isSystem bool // true for system messages
}

// Model is the Bubble Tea model for the daily quest TUI.
type Model struct {
	ctx    context.Context
	engine *engine.Engine
	intro  []string

	viewport viewport.Model
	input    textinput.Model
	history  *History

	rawLines []rawLine // accumulated log lines (unstyled, for re-wrapping)

	banner     string
	bannerLeft int

	width     int
	height    int
	ready     bool
	showPanel bool
	trace     bool
	quitting  bool
	lastCmd   string
}

// outputMsg carries output lines into the Update loop.
type outputMsg struct {
	input    string   // echoed player input (empty for intro)
	lines    []string // output lines
	isSystem bool     // true for meta-command output
}

// tickMsg drives the countdown to midnight.
type tickMsg time.Time

// New creates a TUI model wired to the given engine. intro lines, such as
// the notes from loading the save, open the log.
func New(eng *engine.Engine, intro []string) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "+pushups, complete, spend str, help"
	ti.Focus()
	ti.CharLimit = 128
	ti.PromptStyle = styleInputPrompt

	return Model{
		ctx:     context.Background(),
		engine:  eng,
		intro:   intro,
		input:   ti,
		history: NewHistory(100),
	}
}

// Run starts the Bubble Tea program and blocks until the player quits.
func Run(ctx context.Context, eng *engine.Engine, intro []string) error {
	m := New(eng, intro)
	m.ctx = ctx
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

// Init starts the cursor blink and the countdown, and writes the intro.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tick(), m.initialOutput())
}

func (m Model) initialOutput() tea.Cmd {
	return func() tea.Msg {
		lines := append([]string(nil), m.intro...)
		lines = append(lines, "Type help for commands, /help for system commands.")
		return outputMsg{lines: lines}
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles messages (key presses, window resize, output, ticks).
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(m.width-3, 1)
		if !m.ready {
			m.viewport = viewport.New(m.width, 1)
			m.viewport.KeyMap = viewportKeyMap()
			m.ready = true
		}
		m.layout()
		m.refreshViewport()

	case tickMsg:
		if m.bannerLeft > 0 {
			m.bannerLeft--
			if m.bannerLeft == 0 {
				m.banner = ""
				m.layout()
			}
		}
		return m, tick()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case "enter":
			return m.handleEnter()

		case "up":
			if prev, ok := m.history.Prev(m.input.Value()); ok {
				m.input.SetValue(prev)
				m.input.CursorEnd()
			}
			return m, nil

		case "down":
			if next, ok := m.history.Next(); ok {
				m.input.SetValue(next)
				m.input.CursorEnd()
			}
			return m, nil

		case "pgup", "pgdown", "ctrl+u", "ctrl+d":
			var vpCmd tea.Cmd
			m.viewport, vpCmd = m.viewport.Update(msg)
			return m, vpCmd
		}

	case outputMsg:
		m = m.appendOutput(msg)
	}

	var inputCmd tea.Cmd
	m.input, inputCmd = m.input.Update(msg)
	cmds = append(cmds, inputCmd)

	return m, tea.Batch(cmds...)
}

// handleEnter processes the submitted input line.
func (m Model) handleEnter() (tea.Model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	m.input.SetValue("")

	pending := m.engine.PendingReset()
	if input == "" && !pending {
		return m, nil
	}

	m.history.Push(input)

	lower := strings.ToLower(input)
	if lower == "again" || lower == "g" {
		if m.lastCmd == "" {
			m = m.appendOutput(outputMsg{
				input: input, lines: []string{"Nothing to repeat."}, isSystem: true,
			})
			return m, nil
		}
		input = m.lastCmd
	} else if !pending && !strings.HasPrefix(input, "/") {
		m.lastCmd = input
	}

	if strings.HasPrefix(input, "/") {
		output, quit := m.handleMeta(input)
		m = m.appendOutput(outputMsg{input: input, lines: output, isSystem: true})
		if quit {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	result, err := m.engine.Step(m.ctx, input)
	output := result.Output
	if m.trace {
		output = append(output, formatTrace(result)...)
	}
	m = m.appendOutput(outputMsg{input: input, lines: output})
	if err != nil {
		m = m.appendOutput(outputMsg{lines: []string{fmt.Sprintf("Save failed: %v", err)}, isSystem: true})
	}
	m.setBanner(result)
	return m, nil
}

// setBanner raises a level or rank banner above the panel for a few ticks.
func (m *Model) setBanner(result types.Result) {
	switch {
	case events.Has(result.Events, events.RankUp):
		m.banner = ui.BadgeRankUp + " " + ui.Gold.Render(result.NewTitle)
	case result.LeveledUp:
		m.banner = ui.BadgeLevelUp + " " + ui.Gold.Render(fmt.Sprintf("Level %d", m.engine.State.Player.Level))
	default:
		return
	}
	m.bannerLeft = bannerTicks
	m.layout()
}

// appendOutput adds lines to the log and refreshes the viewport.
func (m Model) appendOutput(msg outputMsg) Model {
	if msg.input != "" {
		m.rawLines = append(m.rawLines, rawLine{
			text: "> " + msg.input, isInput: true,
		})
	}

	for _, line := range msg.lines {
		rl := rawLine{text: line, isSystem: msg.isSystem}
		if !msg.isSystem {
			rl.kind = classifyLine(line)
		}
		m.rawLines = append(m.rawLines, rl)
	}

	// Blank line separator between commands.
	m.rawLines = append(m.rawLines, rawLine{})

	m.layout()
	m.refreshViewport()

	return m
}

// layout sizes the viewport to whatever the panel leaves free. The panel is
// hidden when the terminal is too short to show it with a useful log.
func (m *Model) layout() {
	if !m.ready {
		return
	}
	const chrome = 2 // status bar + input line
	const minLog = 5

	panelHeight := lipgloss.Height(m.panelView())
	m.showPanel = m.height-chrome-panelHeight >= minLog

	vpHeight := m.height - chrome
	if m.showPanel {
		vpHeight -= panelHeight
	}
	m.viewport.Width = m.width
	m.viewport.Height = max(vpHeight, 1)
	m.viewport.GotoBottom()
}

func (m Model) panelView() string {
	return renderPanel(m.engine.Status(), m.banner)
}

// refreshViewport re-wraps and re-styles all raw lines at the current width
// and updates the viewport content.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}

	width := max(m.width, 10)

	var styled []string
	for _, rl := range m.rawLines {
		if rl.text == "" {
			styled = append(styled, "")
			continue
		}

		wrapped := wordWrap(rl.text, width)

		switch {
		case rl.isInput:
			styled = append(styled, stylePlayerInput.Render(wrapped))
		case rl.isSystem:
			styled = append(styled, styledSystemMsg(wrapped))
		default:
			styled = append(styled, renderLineKind(wrapped, rl.kind))
		}
	}

	m.viewport.SetContent(strings.Join(styled, "\n"))
	m.viewport.GotoBottom()
}

// wordWrap wraps text to fit within the given width, breaking at word
// boundaries. Leading indentation is kept on the first line.
func wordWrap(text string, width int) string {
	if width <= 0 || lipgloss.Width(text) <= width {
		return text
	}

	indent := text[:len(text)-len(strings.TrimLeft(text, " "))]
	var result strings.Builder
	result.WriteString(indent)
	lineLen := len(indent)

	for i, word := range strings.Fields(text) {
		wLen := lipgloss.Width(word)

		switch {
		case i == 0:
			result.WriteString(word)
			lineLen += wLen
		case lineLen+1+wLen > width:
			result.WriteString("\n")
			result.WriteString(word)
			lineLen = wLen
		default:
			result.WriteString(" ")
			result.WriteString(word)
			lineLen += 1 + wLen
		}
	}

	return result.String()
}

// View renders the full layout: panel, log, status bar, input.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading..."
	}

	var b strings.Builder
	if m.showPanel {
		b.WriteString(m.panelView() + "\n")
	}
	b.WriteString(m.viewport.View() + "\n" + m.renderStatusBar() + "\n" + m.input.View())
	return b.String()
}

// handleMeta dispatches meta-commands. Returns output lines and quit flag.
func (m *Model) handleMeta(input string) ([]string, bool) {
	cmd := strings.Fields(input)[0]

	switch cmd {
	case "/quit", "/exit":
		return []string{"Goodbye."}, true

	case "/help":
		return cmdHelp(), false

	case "/status":
		return ui.StatusLines(m.engine.Status()), false

	case "/state":
		return m.engine.DebugLines(), false

	case "/save":
		if err := m.engine.Save(m.ctx); err != nil {
			return []string{fmt.Sprintf("Save failed: %v", err)}, false
		}
		return []string{"Progress saved."}, false

	case "/load":
		lr, err := m.engine.Load(m.ctx)
		if err != nil {
			return []string{fmt.Sprintf("Load failed: %v", err)}, false
		}
		return append(lr.Notes(), "Progress reloaded."), false

	case "/trace":
		m.trace = !m.trace
		if m.trace {
			return []string{"Trace output enabled."}, false
		}
		return []string{"Trace output disabled."}, false

	default:
		return []string{fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd)}, false
	}
}

func cmdHelp() []string {
	lines := append([]string(nil), engine.HelpLines...)
	return append(lines,
		"",
		"System:",
		"  /status   Print the quest panel into the log",
		"  /save     Save now",
		"  /load     Reload progress from storage",
		"  /state    Debug: dump current state",
		"  /trace    Toggle event trace output",
		"  /quit     Exit",
		"",
		"Navigation: PgUp/PgDn to scroll, Up/Down for command history",
	)
}

func formatTrace(result types.Result) []string {
	if len(result.Events) == 0 {
		return nil
	}
	lines := []string{fmt.Sprintf("[trace] Events: %d", len(result.Events))}
	for _, e := range result.Events {
		lines = append(lines, fmt.Sprintf("[trace]   %s %v", e.Type, e.Data))
	}
	return lines
}

// viewportKeyMap returns a viewport keymap with Up/Down disabled
// (we use those for input history).
func viewportKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		Up:           key.NewBinding(key.WithDisabled()),
		Down:         key.NewBinding(key.WithDisabled()),
	}
}
