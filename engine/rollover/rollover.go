// Package rollover evaluates the previous day when a save record from an
// earlier date is loaded: it advances or breaks the streak and clears task
// progress for the new day.
package rollover

import (
	"github.com/nathoo/dailyquest/engine/progression"
	"github.com/nathoo/dailyquest/engine/tasks"
	"github.com/nathoo/dailyquest/types"
)

// Previous is the part of a stale save record that rollover consumes.
type Previous struct {
	Date       string
	StatPoints int
	Stats      *types.Stats // nil when the record carried no stats block
	Tasks      []types.TaskProgress
}

// Outcome reports what the rollover did.
type Outcome struct {
	CompletedYesterday bool
	StreakBefore       int
	StreakAfter        int
	Penalty            progression.Loss
}

// Due reports whether a record written on savedDate needs a rollover today.
func Due(savedDate, today string) bool {
	return savedDate != today
}

// CompletedYesterday reports whether every saved task value reached the
// current definition's max. A saved id with no current definition counts
// as complete.
func CompletedYesterday(saved []types.TaskProgress, current []types.Task) bool {
	for _, sp := range saved {
		t := tasks.Find(current, sp.ID)
		if t == nil {
			continue
		}
		if sp.Value < t.Max {
			return false
		}
	}
	return true
}

// Apply runs the day rollover against the live state. Stat points and stats
// are restored from prev, negative points read as zero; level, experience and threshold are left as they
// are in memory. Task values are reset to zero.
func Apply(s *types.State, prev Previous, b types.Balance) Outcome {
	out := Outcome{
		CompletedYesterday: CompletedYesterday(prev.Tasks, s.Tasks),
		StreakBefore:       s.Player.DailyStreak,
	}

	s.Player.StatPoints = max(prev.StatPoints, 0)
	if prev.Stats != nil {
		s.Player.Stats = *prev.Stats
	}

	if out.CompletedYesterday {
		s.Player.DailyStreak++
		s.Player.LastCompletedDate = prev.Date
	} else {
		out.Penalty = progression.ApplyStreakPenalty(&s.Player, b)
		s.Player.LastCompletedDate = ""
	}

	tasks.ResetAll(s.Tasks)
	out.StreakAfter = s.Player.DailyStreak
	return out
}
