// Package events names the events an intent can emit and turns them into
// the lines the views print.
package events

import (
	"fmt"
	"math"

	"github.com/nathoo/dailyquest/types"
)

// Event types.
const (
	XPGained      = "xp_gained"
	XPLost        = "xp_lost"
	LevelUp       = "level_up"
	LevelDown     = "level_down"
	RankUp        = "rank_up"
	QuestComplete = "quest_complete"
	StatSpent     = "stat_spent"
	Reset         = "reset"
	Rollover      = "rollover"
)

// New builds an event. Data may be nil.
func New(typ string, data map[string]any) types.Event {
	if data == nil {
		data = map[string]any{}
	}
	return types.Event{Type: typ, Data: data}
}

// Has reports whether evts contains an event of type typ.
func Has(evts []types.Event, typ string) bool {
	for _, ev := range evts {
		if ev.Type == typ {
			return true
		}
	}
	return false
}

// Narrate converts events into output lines in order. Single pass; events
// with nothing to say are skipped.
func Narrate(evts []types.Event) []string {
	var out []string
	for _, ev := range evts {
		if line := narrate(ev); line != "" {
			out = append(out, line)
		}
	}
	return out
}

func narrate(ev types.Event) string {
	switch ev.Type {
	case XPGained:
		line := fmt.Sprintf("+%s XP", trim(num(ev.Data["amount"])))
		if b, _ := ev.Data["doubled"].(bool); b {
			line += " (perception bonus: doubled!)"
		}
		return line
	case XPLost:
		if reason, _ := ev.Data["reason"].(string); reason == "penalty" {
			return fmt.Sprintf("Missed daily quest! -%s XP", trim(num(ev.Data["amount"])))
		}
		return fmt.Sprintf("-%s XP", trim(num(ev.Data["amount"])))
	case LevelUp:
		return fmt.Sprintf("LEVEL UP! You are now level %v.", ev.Data["level"])
	case LevelDown:
		return fmt.Sprintf("Level lost. You are now level %v.", ev.Data["level"])
	case RankUp:
		return fmt.Sprintf("RANK UP! %v", ev.Data["title"])
	case QuestComplete:
		return "Daily Quest Complete!"
	case StatSpent:
		return fmt.Sprintf("%v increased to %v.", ev.Data["label"], ev.Data["value"])
	case Reset:
		return "All progress has been reset."
	case Rollover:
		if ok, _ := ev.Data["completed"].(bool); ok {
			return fmt.Sprintf("Yesterday's quest was completed. Streak: %v", ev.Data["streak"])
		}
		return "Yesterday's quest was not completed. Streak reset."
	}
	return ""
}

func num(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	}
	return 0
}

// trim renders whole numbers without a decimal point and keeps one
// decimal otherwise.
func trim(f float64) string {
	if f == math.Trunc(f) {
		return fmt.Sprintf("%.0f", f)
	}
	return fmt.Sprintf("%.1f", f)
}
