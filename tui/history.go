// Package tui provides the Bubble Tea terminal UI: a live quest panel, a
// scrolling log of command output, a status bar and a prompt.
package tui

// History keeps the most recent commands for Up/Down recall. While the
// player is browsing, the half-typed line is kept as a draft and handed
// back when they walk past the newest entry.
type History struct {
	entries []string
	limit   int
	pos     int // len(entries) when not browsing
	draft   string
}

// NewHistory creates a history that holds at most limit commands.
func NewHistory(limit int) *History {
	return &History{limit: limit}
}

// Push records a submitted command and stops browsing. Empty commands and
// repeats of the newest entry are not recorded.
func (h *History) Push(cmd string) {
	if cmd != "" && (len(h.entries) == 0 || h.entries[len(h.entries)-1] != cmd) {
		h.entries = append(h.entries, cmd)
		if len(h.entries) > h.limit {
			h.entries = h.entries[len(h.entries)-h.limit:]
		}
	}
	h.Reset()
}

// Prev steps to the next older entry. current is the prompt's contents and
// is kept as the draft when browsing starts.
func (h *History) Prev(current string) (string, bool) {
	if len(h.entries) == 0 {
		return "", false
	}
	if h.pos == len(h.entries) {
		h.draft = current
	}
	if h.pos > 0 {
		h.pos--
	}
	return h.entries[h.pos], true
}

// Next steps to the next newer entry, ending on the draft.
func (h *History) Next() (string, bool) {
	if h.pos >= len(h.entries) {
		return "", false
	}
	h.pos++
	if h.pos == len(h.entries) {
		return h.draft, true
	}
	return h.entries[h.pos], true
}

// Reset stops browsing and drops the draft.
func (h *History) Reset() {
	h.pos = len(h.entries)
	h.draft = ""
}

// Len returns the number of stored commands.
func (h *History) Len() int {
	return len(h.entries)
}
