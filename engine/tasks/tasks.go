// Package tasks implements the daily task set: completion queries and the
// clamped increment/decrement mutators.
package tasks

import "github.com/nathoo/dailyquest/types"

// FromDefs creates a fresh task list (all values zero) from definitions.
func FromDefs(defs []types.TaskDef) []types.Task {
	out := make([]types.Task, 0, len(defs))
	for _, d := range defs {
		out = append(out, types.Task{
			ID:   d.ID,
			Name: d.Name,
			Max:  d.Max,
			Step: d.Step,
			Unit: d.Unit,
		})
	}
	return out
}

// Find returns the task with the given id, or nil.
func Find(ts []types.Task, id string) *types.Task {
	for i := range ts {
		if ts[i].ID == id {
			return &ts[i]
		}
	}
	return nil
}

// AllCompleted reports whether every task has reached its max.
// An empty task list is vacuously complete.
func AllCompleted(ts []types.Task) bool {
	for _, t := range ts {
		if t.Value < t.Max {
			return false
		}
	}
	return true
}

// Increment raises the task's value by one step, clamped to max.
// Returns true only if the value actually increased.
func Increment(ts []types.Task, id string) bool {
	t := Find(ts, id)
	if t == nil || t.Value >= t.Max {
		return false
	}
	before := t.Value
	t.Value = min(t.Value+t.Step, t.Max)
	return t.Value > before
}

// Decrement lowers the task's value by one step, clamped to zero.
// Returns true only if the value actually decreased.
func Decrement(ts []types.Task, id string) bool {
	t := Find(ts, id)
	if t == nil {
		return false
	}
	before := t.Value
	t.Value = max(t.Value-t.Step, 0)
	return t.Value < before
}

// ResetAll sets every task's value to zero.
func ResetAll(ts []types.Task) {
	for i := range ts {
		ts[i].Value = 0
	}
}

// Restore copies persisted values onto tasks by id, clamped to [0, max].
// Unknown ids are ignored.
func Restore(ts []types.Task, saved []types.TaskProgress) {
	for _, sp := range saved {
		if t := Find(ts, sp.ID); t != nil {
			t.Value = min(max(sp.Value, 0), t.Max)
		}
	}
}

// Progress returns the (id, value) pairs for persistence.
func Progress(ts []types.Task) []types.TaskProgress {
	out := make([]types.TaskProgress, 0, len(ts))
	for _, t := range ts {
		out = append(out, types.TaskProgress{ID: t.ID, Value: t.Value})
	}
	return out
}
