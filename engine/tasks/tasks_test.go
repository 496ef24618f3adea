package tasks

import (
	"testing"

	"github.com/nathoo/dailyquest/types"
)

func testDefs() []types.TaskDef {
	return []types.TaskDef{
		{ID: "pushups", Name: "Push-ups", Max: 100, Step: 5},
		{ID: "situps", Name: "Sit-ups", Max: 100, Step: 5},
		{ID: "run", Name: "Running", Max: 10, Step: 3, Unit: "km"},
	}
}

func TestFromDefs(t *testing.T) {
	ts := FromDefs(testDefs())
	if len(ts) != 3 {
		t.Fatalf("expected 3 tasks, got %d", len(ts))
	}
	run := Find(ts, "run")
	if run == nil {
		t.Fatal("task 'run' not found")
	}
	if run.Value != 0 || run.Max != 10 || run.Step != 3 || run.Unit != "km" {
		t.Errorf("unexpected task: %+v", *run)
	}
}

func TestIncrement_StepsAndReports(t *testing.T) {
	ts := FromDefs(testDefs())
	if !Increment(ts, "pushups") {
		t.Fatal("expected increment to report change")
	}
	if got := Find(ts, "pushups").Value; got != 5 {
		t.Errorf("value = %v, want 5", got)
	}
}

func TestIncrement_ClampsToMax(t *testing.T) {
	ts := FromDefs(testDefs())
	// 0 -> 3 -> 6 -> 9 -> 10 (clamped)
	for i := 0; i < 4; i++ {
		if !Increment(ts, "run") {
			t.Fatalf("increment %d: expected change", i+1)
		}
	}
	if got := Find(ts, "run").Value; got != 10 {
		t.Fatalf("value = %v, want 10", got)
	}
	if Increment(ts, "run") {
		t.Error("increment at max should report no change")
	}
	if got := Find(ts, "run").Value; got != 10 {
		t.Errorf("value = %v after no-op, want 10", got)
	}
}

func TestDecrement_ClampsToZero(t *testing.T) {
	ts := FromDefs(testDefs())
	Find(ts, "run").Value = 2
	if !Decrement(ts, "run") {
		t.Fatal("expected decrement to report change")
	}
	if got := Find(ts, "run").Value; got != 0 {
		t.Fatalf("value = %v, want 0", got)
	}
	if Decrement(ts, "run") {
		t.Error("decrement at zero should report no change")
	}
}

func TestUnknownTask_NoOp(t *testing.T) {
	ts := FromDefs(testDefs())
	if Increment(ts, "burpees") {
		t.Error("increment of unknown task should report no change")
	}
	if Decrement(ts, "burpees") {
		t.Error("decrement of unknown task should report no change")
	}
	for _, task := range ts {
		if task.Value != 0 {
			t.Errorf("task %s changed to %v", task.ID, task.Value)
		}
	}
}

func TestAllCompleted(t *testing.T) {
	ts := FromDefs(testDefs())
	if AllCompleted(ts) {
		t.Fatal("fresh tasks should not be complete")
	}
	for i := range ts {
		ts[i].Value = ts[i].Max
	}
	if !AllCompleted(ts) {
		t.Fatal("expected all complete at max")
	}
	ts[1].Value -= ts[1].Step
	if AllCompleted(ts) {
		t.Error("one task below max should not be complete")
	}
	if !AllCompleted(nil) {
		t.Error("empty task list should be complete")
	}
}

func TestResetAll(t *testing.T) {
	ts := FromDefs(testDefs())
	for i := range ts {
		ts[i].Value = ts[i].Max
	}
	ResetAll(ts)
	for _, task := range ts {
		if task.Value != 0 {
			t.Errorf("task %s = %v after reset", task.ID, task.Value)
		}
	}
}

func TestRestoreAndProgress(t *testing.T) {
	ts := FromDefs(testDefs())
	Restore(ts, []types.TaskProgress{
		{ID: "pushups", Value: 40},
		{ID: "situps", Value: 250},
		{ID: "run", Value: -4},
		{ID: "gone", Value: 7},
	})
	want := map[string]float64{"pushups": 40, "situps": 100, "run": 0}
	for _, p := range Progress(ts) {
		if p.Value != want[p.ID] {
			t.Errorf("%s = %v, want %v", p.ID, p.Value, want[p.ID])
		}
	}
	if len(Progress(ts)) != 3 {
		t.Errorf("expected 3 progress entries")
	}
}
