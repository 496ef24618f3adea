// Package save implements JSON serialization of the game state into the
// single save record, and applying a loaded record back onto live state.
package save

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/nathoo/dailyquest/engine/progression"
	"github.com/nathoo/dailyquest/engine/rollover"
	"github.com/nathoo/dailyquest/engine/tasks"
	"github.com/nathoo/dailyquest/types"
)

// ErrCorrupt marks a record that could not be decoded.
var ErrCorrupt = errors.New("corrupt save record")

// maxXPRatio bounds xp against its threshold so settling a loaded record
// into levels always finishes.
const maxXPRatio = 1e6

// StatsData is the persisted stats block. Missing fields decode as nil.
type StatsData struct {
	Strength     *int `json:"strength"`
	Agility      *int `json:"agility"`
	Vitality     *int `json:"vitality"`
	Intelligence *int `json:"intelligence"`
	Perception   *int `json:"perception"`
}

// TaskData is a persisted (id, value) pair.
type TaskData struct {
	ID    string  `json:"id"`
	Value float64 `json:"value"`
}

// SaveData is the JSON-serializable save format.
type SaveData struct {
	Level             *int       `json:"level"`
	XP                *float64   `json:"xp"`
	XPToNextLevel     *float64   `json:"xpToNextLevel"`
	StatPoints        *int       `json:"statPoints"`
	DailyStreak       *int       `json:"dailyStreak"`
	LastCompletedDate *string    `json:"lastCompletedDate"`
	Stats             *StatsData `json:"stats"`
	Tasks             []TaskData `json:"tasks"`
	Date              string     `json:"date"`
}

// Applied reports which branch Apply took.
type Applied struct {
	RolledOver bool
	Rollover   rollover.Outcome
}

// Save serializes the state, stamped with today's date, to JSON bytes.
func Save(s *types.State, today string) ([]byte, error) {
	p := s.Player
	var last *string
	if p.LastCompletedDate != "" {
		last = &p.LastCompletedDate
	}
	data := SaveData{
		Level:             &p.Level,
		XP:                &p.XP,
		XPToNextLevel:     &p.XPToNextLevel,
		StatPoints:        &p.StatPoints,
		DailyStreak:       &p.DailyStreak,
		LastCompletedDate: last,
		Stats: &StatsData{
			Strength:     &p.Stats.Strength,
			Agility:      &p.Stats.Agility,
			Vitality:     &p.Stats.Vitality,
			Intelligence: &p.Stats.Intelligence,
			Perception:   &p.Stats.Perception,
		},
		Tasks: make([]TaskData, 0, len(s.Tasks)),
		Date:  today,
	}
	for _, tp := range tasks.Progress(s.Tasks) {
		data.Tasks = append(data.Tasks, TaskData{ID: tp.ID, Value: tp.Value})
	}
	return json.MarshalIndent(data, "", "  ")
}

// Load deserializes JSON bytes into SaveData. A record without a task list
// is rejected along with unparsable input.
func Load(data []byte) (*SaveData, error) {
	var sd SaveData
	if err := json.Unmarshal(data, &sd); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if sd.Tasks == nil {
		return nil, fmt.Errorf("%w: missing tasks", ErrCorrupt)
	}
	if err := sd.validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return &sd, nil
}

func (sd *SaveData) validate() error {
	if sd.XP != nil && !finite(*sd.XP) {
		return errors.New("xp is not a finite number")
	}
	if sd.XPToNextLevel != nil && !finite(*sd.XPToNextLevel) {
		return errors.New("xpToNextLevel is not a finite number")
	}
	for _, t := range sd.Tasks {
		if !finite(t.Value) {
			return fmt.Errorf("task %q value is not a finite number", t.ID)
		}
	}
	if sd.XP != nil {
		threshold := 1.0
		if sd.XPToNextLevel != nil {
			threshold = max(*sd.XPToNextLevel, 1)
		}
		if *sd.XP > threshold*maxXPRatio {
			return fmt.Errorf("xp %g is out of range for threshold %g", *sd.XP, threshold)
		}
	}
	return nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Apply applies loaded save data onto live state. A record from another
// date goes through the day rollover; a record from today is restored.
func Apply(s *types.State, sd *SaveData, today string, b types.Balance) Applied {
	if rollover.Due(sd.Date, today) {
		out := rollover.Apply(s, rollover.Previous{
			Date:       sd.Date,
			StatPoints: intOr(sd.StatPoints, 0),
			Stats:      sd.stats(),
			Tasks:      sd.progress(),
		}, b)
		return Applied{RolledOver: true, Rollover: out}
	}
	restore(s, sd, b)
	return Applied{}
}

func restore(s *types.State, sd *SaveData, b types.Balance) {
	p := &s.Player
	if sd.Level != nil && *sd.Level >= 1 {
		p.Level = *sd.Level
	}
	if sd.XPToNextLevel != nil && *sd.XPToNextLevel > 0 {
		p.XPToNextLevel = *sd.XPToNextLevel
	}
	if sd.XP != nil && *sd.XP >= 0 {
		p.XP = *sd.XP
	}
	p.StatPoints = max(intOr(sd.StatPoints, 0), 0)
	if st := sd.stats(); st != nil {
		p.Stats = *st
	}
	p.DailyStreak = max(intOr(sd.DailyStreak, 0), 0)
	p.LastCompletedDate = ""
	if sd.LastCompletedDate != nil {
		p.LastCompletedDate = *sd.LastCompletedDate
	}
	tasks.Restore(s.Tasks, sd.progress())

	// A hand-edited record may hold xp past its threshold; settle it.
	if p.XP >= p.XPToNextLevel {
		progression.GainExperience(p, 0, b, nil)
	}
}

func (sd *SaveData) stats() *types.Stats {
	if sd.Stats == nil {
		return nil
	}
	return &types.Stats{
		Strength:     max(intOr(sd.Stats.Strength, 0), 0),
		Agility:      max(intOr(sd.Stats.Agility, 0), 0),
		Vitality:     max(intOr(sd.Stats.Vitality, 0), 0),
		Intelligence: max(intOr(sd.Stats.Intelligence, 0), 0),
		Perception:   max(intOr(sd.Stats.Perception, 0), 0),
	}
}

func (sd *SaveData) progress() []types.TaskProgress {
	out := make([]types.TaskProgress, 0, len(sd.Tasks))
	for _, t := range sd.Tasks {
		out = append(out, types.TaskProgress{ID: t.ID, Value: t.Value})
	}
	return out
}

func intOr(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}
