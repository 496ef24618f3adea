// Package types defines the shared data structures for the daily quest engine.
// It holds plain data only; behavior lives in the engine packages.
package types

// Stats holds the five allocatable player stats.
type Stats struct {
	Strength     int
	Agility      int
	Vitality     int
	Intelligence int
	Perception   int
}

// Player holds the progression state of the single player.
type Player struct {
	Level         int
	XP            float64 // may hold fractions from multiplier math; displayed floored
	XPToNextLevel float64
	StatPoints    int
	Stats         Stats
	DailyStreak   int

	// LastCompletedDate is a YYYY-MM-DD local date, "" when absent.
	LastCompletedDate string
}

// TaskDef is the static definition of a daily task.
type TaskDef struct {
	ID   string
	Name string
	Max  float64
	Step float64
	Unit string // optional display suffix
}

// Task is a daily task together with today's progress.
type Task struct {
	ID    string
	Name  string
	Value float64
	Max   float64
	Step  float64
	Unit  string
}

// TaskProgress is the persisted (id, value) pair of a task.
type TaskProgress struct {
	ID    string
	Value float64
}

// Quest is the fixed set of daily tasks plus display metadata.
type Quest struct {
	Title    string
	Subtitle string
	Tasks    []TaskDef
}

// State is the complete mutable game state.
type State struct {
	Player Player
	Tasks  []Task
}

// Balance holds the tunable constants of the experience economy.
type Balance struct {
	TaskXP             float64 `yaml:"task_xp"`
	QuestXP            float64 `yaml:"quest_xp"`
	StatPointsPerLevel int     `yaml:"stat_points_per_level"`
	LevelGrowth        float64 `yaml:"level_growth"`
	StartingThreshold  float64 `yaml:"starting_threshold"`
}

// Intent is the parsed representation of a user command.
type Intent struct {
	Verb   string
	Object string // optional
}

// Event is emitted by an intent for the view to present.
type Event struct {
	Type string
	Data map[string]any
}

// Result is the output of a single user intent.
type Result struct {
	Changed      bool    // false when the intent was a no-op
	XPDelta      float64 // signed experience change applied by the intent
	Doubled      bool    // perception bonus fired
	LeveledUp    bool
	LevelsGained int // negative when levels were lost
	RankChanged  bool
	NewTitle     string
	Events       []Event
	Output       []string
}

// TaskView is the presentation of a single task.
type TaskView struct {
	ID    string
	Name  string
	Value float64
	Max   float64
	Unit  string
	Done  bool
}

// Status is the read model consumed by the views.
type Status struct {
	Level            int
	XP               float64
	XPToNextLevel    float64
	Title            string
	DailyStreak      int
	StatPoints       int
	Stats            Stats
	Tasks            []TaskView
	AllCompleted     bool
	SecondsRemaining int
	QuestTitle       string
	QuestSubtitle    string
}
