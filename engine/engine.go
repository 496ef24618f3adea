// Package engine provides the single controller that owns the player state
// and turns user intents into progression changes, events and saves.
package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/nathoo/dailyquest/engine/events"
	"github.com/nathoo/dailyquest/engine/progression"
	"github.com/nathoo/dailyquest/engine/rollover"
	"github.com/nathoo/dailyquest/engine/save"
	"github.com/nathoo/dailyquest/engine/stats"
	"github.com/nathoo/dailyquest/engine/tasks"
	"github.com/nathoo/dailyquest/store"
	"github.com/nathoo/dailyquest/types"
)

// DefaultSaveKey is the slot key used when Key is empty.
const DefaultSaveKey = "solo_leveling_save"

// Engine holds the quest definition and the mutable state. It is not safe
// for concurrent use; views call it from a single goroutine.
type Engine struct {
	Quest   *types.Quest
	Balance types.Balance
	State   *types.State
	RNG     *RNG
	Clock   Clock
	Slot    store.Slot
	Key     string
	Log     *log.Logger

	confirmReset bool
}

// LoadResult reports what Load found in the slot.
type LoadResult struct {
	Found      bool
	Corrupt    bool
	RolledOver bool
	Rollover   rollover.Outcome
	Events     []types.Event
}

// New creates an engine with default state for quest. The RNG is seeded
// from the clock; tests replace RNG, Clock and Log directly.
func New(quest *types.Quest, b types.Balance, slot store.Slot) *Engine {
	return &Engine{
		Quest:   quest,
		Balance: b,
		State:   newState(quest, b),
		RNG:     NewRNG(time.Now().UnixNano()),
		Clock:   RealClock{},
		Slot:    slot,
		Key:     DefaultSaveKey,
		Log:     log.New(io.Discard, "", 0),
	}
}

func newState(quest *types.Quest, b types.Balance) *types.State {
	return &types.State{
		Player: progression.NewPlayer(b),
		Tasks:  tasks.FromDefs(quest.Tasks),
	}
}

// Today returns the current local date.
func (e *Engine) Today() string {
	return Today(e.Clock.Now())
}

// Title returns the rank title for the current level.
func (e *Engine) Title() string {
	return progression.Title(e.State.Player.Level)
}

// AllCompleted reports whether every task is at its max.
func (e *Engine) AllCompleted() bool {
	return tasks.AllCompleted(e.State.Tasks)
}

// IncrementTask advances a task by one step and awards task experience when
// the value actually increased. Unknown ids and finished tasks are no-ops.
func (e *Engine) IncrementTask(ctx context.Context, id string) (types.Result, error) {
	var result types.Result
	t := tasks.Find(e.State.Tasks, id)
	switch {
	case t == nil:
		result.Output = append(result.Output, fmt.Sprintf("No task %q.", id))
		return result, nil
	case !tasks.Increment(e.State.Tasks, id):
		result.Output = append(result.Output, fmt.Sprintf("%s is already complete.", t.Name))
		return result, nil
	}

	result.Changed = true
	result.Output = append(result.Output, taskLine(*t))
	e.gain(&result, e.Balance.TaskXP, e.RNG)
	return result, e.persist(ctx, &result)
}

// DecrementTask steps a task back and removes task experience when the
// value actually decreased.
func (e *Engine) DecrementTask(ctx context.Context, id string) (types.Result, error) {
	var result types.Result
	t := tasks.Find(e.State.Tasks, id)
	switch {
	case t == nil:
		result.Output = append(result.Output, fmt.Sprintf("No task %q.", id))
		return result, nil
	case !tasks.Decrement(e.State.Tasks, id):
		result.Output = append(result.Output, fmt.Sprintf("%s has no progress to undo.", t.Name))
		return result, nil
	}

	result.Changed = true
	result.Output = append(result.Output, taskLine(*t))
	e.lose(&result, e.Balance.TaskXP)
	return result, e.persist(ctx, &result)
}

// CompleteQuest awards the quest bonus when every task is done. It can be
// claimed again while the tasks stay complete.
func (e *Engine) CompleteQuest(ctx context.Context) (types.Result, error) {
	var result types.Result
	if !e.AllCompleted() {
		result.Output = append(result.Output, "Complete every task before claiming the reward.")
		return result, nil
	}

	result.Changed = true
	result.Events = append(result.Events, events.New(events.QuestComplete, nil))
	e.gain(&result, e.Balance.QuestXP, nil) // perception never doubles the quest award
	return result, e.persist(ctx, &result)
}

// SpendStatPoint moves one unspent point into the named stat.
func (e *Engine) SpendStatPoint(ctx context.Context, stat string) (types.Result, error) {
	var result types.Result
	k, ok := stats.ParseKey(stat)
	if !ok {
		result.Output = append(result.Output, fmt.Sprintf("Unknown stat %q. Try str, agi, vit, int or per.", stat))
		return result, nil
	}
	if !progression.SpendStatPoint(&e.State.Player, string(k)) {
		result.Output = append(result.Output, "No stat points available.")
		return result, nil
	}

	result.Changed = true
	result.Events = append(result.Events, events.New(events.StatSpent, map[string]any{
		"stat":  string(k),
		"label": stats.Label(k),
		"value": stats.Value(e.State.Player.Stats, k),
	}))
	return result, e.persist(ctx, &result)
}

// ResetAll wipes the slot, restores defaults and saves the fresh state.
// Callers confirm with the user first.
func (e *Engine) ResetAll(ctx context.Context) (types.Result, error) {
	result := types.Result{Changed: true}
	if err := e.Slot.Delete(ctx, e.key()); err != nil {
		return result, fmt.Errorf("reset: %w", err)
	}
	e.State = newState(e.Quest, e.Balance)
	result.Events = append(result.Events, events.New(events.Reset, nil))
	return result, e.persist(ctx, &result)
}

// Load reads the save slot into the engine. An empty slot leaves defaults.
// A corrupt record is deleted and reported; it is not an error. A record
// from another day runs the rollover and is saved immediately.
func (e *Engine) Load(ctx context.Context) (LoadResult, error) {
	var lr LoadResult
	data, err := e.Slot.Get(ctx, e.key())
	if errors.Is(err, store.ErrNotFound) {
		return lr, nil
	}
	if err != nil {
		return lr, fmt.Errorf("load: %w", err)
	}
	lr.Found = true

	sd, err := save.Load(data)
	if err != nil {
		e.Log.Printf("discarding save record %q: %v", e.key(), err)
		lr.Corrupt = true
		if derr := e.Slot.Delete(ctx, e.key()); derr != nil {
			return lr, fmt.Errorf("load: removing corrupt record: %w", derr)
		}
		return lr, nil
	}

	applied := save.Apply(e.State, sd, e.Today(), e.Balance)
	if !applied.RolledOver {
		return lr, nil
	}

	out := applied.Rollover
	lr.RolledOver = true
	lr.Rollover = out
	e.Log.Printf("day rollover from %s: completed=%t streak %d -> %d penalty=%v levels_lost=%d",
		sd.Date, out.CompletedYesterday, out.StreakBefore, out.StreakAfter, out.Penalty.Removed, out.Penalty.LevelsLost)

	lr.Events = append(lr.Events, events.New(events.Rollover, map[string]any{
		"completed": out.CompletedYesterday,
		"streak":    out.StreakAfter,
		"date":      sd.Date,
	}))
	if out.Penalty.Removed > 0 {
		lr.Events = append(lr.Events, events.New(events.XPLost, map[string]any{
			"amount": out.Penalty.Removed,
			"reason": "penalty",
		}))
	}
	if out.Penalty.LevelsLost > 0 {
		lr.Events = append(lr.Events, events.New(events.LevelDown, map[string]any{
			"level": e.State.Player.Level,
			"lost":  out.Penalty.LevelsLost,
		}))
	}
	return lr, e.Save(ctx)
}

// Notes returns the lines to show the player after a load.
func (lr LoadResult) Notes() []string {
	var out []string
	if lr.Corrupt {
		out = append(out, "Saved progress was unreadable and has been cleared.")
	}
	return append(out, events.Narrate(lr.Events)...)
}

// Save writes the current state to the slot, stamped with today's date.
func (e *Engine) Save(ctx context.Context) error {
	data, err := save.Save(e.State, e.Today())
	if err != nil {
		return fmt.Errorf("encoding save record: %w", err)
	}
	if err := e.Slot.Put(ctx, e.key(), data); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	return nil
}

// Status returns the read model for the views.
func (e *Engine) Status() types.Status {
	p := e.State.Player
	st := types.Status{
		Level:            p.Level,
		XP:               p.XP,
		XPToNextLevel:    p.XPToNextLevel,
		Title:            progression.Title(p.Level),
		DailyStreak:      p.DailyStreak,
		StatPoints:       p.StatPoints,
		Stats:            p.Stats,
		AllCompleted:     e.AllCompleted(),
		SecondsRemaining: SecondsUntilMidnight(e.Clock.Now()),
	}
	if e.Quest != nil {
		st.QuestTitle = e.Quest.Title
		st.QuestSubtitle = e.Quest.Subtitle
	}
	for _, t := range e.State.Tasks {
		st.Tasks = append(st.Tasks, types.TaskView{
			ID:    t.ID,
			Name:  t.Name,
			Value: t.Value,
			Max:   t.Max,
			Unit:  t.Unit,
			Done:  t.Value >= t.Max,
		})
	}
	return st
}

// DebugLines dumps the raw state for the /state meta-command.
func (e *Engine) DebugLines() []string {
	p := e.State.Player
	last := p.LastCompletedDate
	if last == "" {
		last = "none"
	}
	out := []string{
		fmt.Sprintf("Date: %s", e.Today()),
		fmt.Sprintf("Level: %d  XP: %v / %v", p.Level, p.XP, p.XPToNextLevel),
		fmt.Sprintf("Stat points: %d", p.StatPoints),
	}
	for _, k := range stats.Keys {
		out = append(out, fmt.Sprintf("  %s: %d", k, stats.Value(p.Stats, k)))
	}
	out = append(out, fmt.Sprintf("Streak: %d (last completed %s)", p.DailyStreak, last))
	for _, t := range e.State.Tasks {
		out = append(out, fmt.Sprintf("Task %s: %v/%v step %v", t.ID, t.Value, t.Max, t.Step))
	}
	return append(out, fmt.Sprintf("RNG: seed %d position %d", e.RNG.Seed(), e.RNG.Position()))
}

// gain awards experience and records the outcome on result. A nil roller
// skips the perception roll.
func (e *Engine) gain(result *types.Result, amount float64, rng progression.Roller) {
	g := progression.GainExperience(&e.State.Player, amount, e.Balance, rng)

	result.XPDelta += g.Awarded
	result.Doubled = g.Doubled
	result.Events = append(result.Events, events.New(events.XPGained, map[string]any{
		"amount":  g.Awarded,
		"doubled": g.Doubled,
	}))
	if g.LeveledUp() {
		result.LeveledUp = true
		result.LevelsGained += g.LevelsGained
		result.Events = append(result.Events, events.New(events.LevelUp, map[string]any{
			"level":  e.State.Player.Level,
			"gained": g.LevelsGained,
		}))
	}
	if g.RankChanged() {
		result.RankChanged = true
		result.NewTitle = g.TitleAfter
		result.Events = append(result.Events, events.New(events.RankUp, map[string]any{
			"title": g.TitleAfter,
		}))
	}
}

// lose removes experience and records the outcome on result.
func (e *Engine) lose(result *types.Result, amount float64) {
	titleBefore := e.Title()
	before := e.State.Player.XP
	l := progression.RemoveExperience(&e.State.Player, amount, e.Balance)

	result.XPDelta -= l.Removed
	result.Events = append(result.Events, events.New(events.XPLost, map[string]any{
		"amount": l.Removed,
		"from":   before,
	}))
	if l.LevelsLost > 0 {
		result.LevelsGained -= l.LevelsLost
		result.Events = append(result.Events, events.New(events.LevelDown, map[string]any{
			"level": e.State.Player.Level,
			"lost":  l.LevelsLost,
		}))
	}
	if after := e.Title(); after != titleBefore {
		result.RankChanged = true
		result.NewTitle = after
	}
}

// persist narrates the result's events and saves once.
func (e *Engine) persist(ctx context.Context, result *types.Result) error {
	result.Output = append(result.Output, events.Narrate(result.Events)...)
	return e.Save(ctx)
}

func (e *Engine) key() string {
	if k := strings.TrimSpace(e.Key); k != "" {
		return k
	}
	return DefaultSaveKey
}

func taskLine(t types.Task) string {
	return fmt.Sprintf("%s [%s/%s%s]", t.Name, trimNum(t.Value), trimNum(t.Max), t.Unit)
}

func trimNum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
