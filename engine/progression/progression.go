// Package progression implements experience accrual, leveling, leveling
// down, the missed-day penalty and rank titles. Functions mutate the
// *types.Player they are given and report what changed; they never persist.
package progression

import (
	"math"

	"github.com/nathoo/dailyquest/engine/stats"
	"github.com/nathoo/dailyquest/types"
)

// Default economy constants.
const (
	DefaultTaskXP             = 50.0
	DefaultQuestXP            = 500.0
	DefaultStatPointsPerLevel = 3
	DefaultLevelGrowth        = 1.2
	DefaultStartingThreshold  = 100.0
)

// MinThreshold keeps XPToNextLevel positive after flooring.
const MinThreshold = 1.0

// DefaultBalance returns the stock economy.
func DefaultBalance() types.Balance {
	return types.Balance{
		TaskXP:             DefaultTaskXP,
		QuestXP:            DefaultQuestXP,
		StatPointsPerLevel: DefaultStatPointsPerLevel,
		LevelGrowth:        DefaultLevelGrowth,
		StartingThreshold:  DefaultStartingThreshold,
	}
}

// NewPlayer returns a level 1 player with no experience.
func NewPlayer(b types.Balance) types.Player {
	return types.Player{
		Level:         1,
		XPToNextLevel: b.StartingThreshold,
	}
}

// Roller decides the perception coin flip: Chance reports whether a draw
// falls below p.
type Roller interface {
	Chance(p float64) bool
}

// Gain describes the outcome of GainExperience.
type Gain struct {
	Awarded      float64 // experience actually added, after multipliers
	Doubled      bool
	LevelsGained int
	TitleBefore  string
	TitleAfter   string
}

// LeveledUp reports whether at least one level was gained.
func (g Gain) LeveledUp() bool { return g.LevelsGained > 0 }

// RankChanged reports whether the title differs after the gain.
func (g Gain) RankChanged() bool { return g.TitleBefore != g.TitleAfter }

// Loss describes the outcome of RemoveExperience and ApplyStreakPenalty.
type Loss struct {
	Removed    float64
	LevelsLost int
}

// GainExperience applies the strength multiplier and the perception coin
// flip to amount, adds it, and levels up as many times as the total allows.
// A nil roller never doubles.
func GainExperience(p *types.Player, amount float64, b types.Balance, rng Roller) Gain {
	g := Gain{TitleBefore: Title(p.Level)}

	amount *= stats.StrengthMultiplier(p.Stats.Strength)
	if rng != nil && rng.Chance(stats.PerceptionBonus(p.Stats.Perception)) {
		amount *= 2
		g.Doubled = true
	}
	p.XP += amount
	g.Awarded = amount

	for p.XP >= p.XPToNextLevel {
		p.XP -= p.XPToNextLevel
		p.Level++
		p.XPToNextLevel = floorThreshold(p.XPToNextLevel * b.LevelGrowth * stats.IntelligenceMultiplier(p.Stats.Intelligence))
		p.StatPoints += b.StatPointsPerLevel
		g.LevelsGained++
	}

	g.TitleAfter = Title(p.Level)
	return g
}

// RemoveExperience subtracts amount, losing levels while experience is
// negative and the level is above 1. Experience is clamped at zero.
func RemoveExperience(p *types.Player, amount float64, b types.Balance) Loss {
	p.XP -= amount
	lost := deLevel(p, b)
	return Loss{Removed: amount, LevelsLost: lost}
}

// ApplyStreakPenalty removes half the current threshold, scaled by vitality,
// and breaks the streak.
func ApplyStreakPenalty(p *types.Player, b types.Balance) Loss {
	penalty := math.Floor((p.XPToNextLevel / 2) * stats.VitalityPenaltyMultiplier(p.Stats.Vitality))
	p.XP -= penalty
	lost := deLevel(p, b)
	p.DailyStreak = 0
	return Loss{Removed: penalty, LevelsLost: lost}
}

// deLevel walks levels down while experience is negative. The threshold is
// divided by the growth factor only; the intelligence dampening applied on
// the way up is not undone.
func deLevel(p *types.Player, b types.Balance) int {
	lost := 0
	for p.XP < 0 && p.Level > 1 {
		p.Level--
		p.StatPoints = max(p.StatPoints-b.StatPointsPerLevel, 0)
		p.XPToNextLevel = floorThreshold(p.XPToNextLevel / b.LevelGrowth)
		p.XP += p.XPToNextLevel
		lost++
	}
	if p.XP < 0 {
		p.XP = 0
	}
	if p.Level < 1 {
		p.Level = 1
	}
	return lost
}

func floorThreshold(v float64) float64 {
	return math.Max(math.Floor(v), MinThreshold)
}

// SpendStatPoint moves one point into the named stat. Unknown keys and an
// empty point pool are no-ops.
func SpendStatPoint(p *types.Player, key string) bool {
	if p.StatPoints <= 0 {
		return false
	}
	k, ok := stats.ParseKey(key)
	if !ok {
		return false
	}
	*stats.Field(&p.Stats, k)++
	p.StatPoints--
	return true
}

// Title maps a level to its rank. Each bound is exclusive, so level 10 is
// already D-Rank.
func Title(level int) string {
	switch {
	case level < 1:
		return "Unranked"
	case level < 10:
		return "E-Rank Hunter"
	case level < 20:
		return "D-Rank Hunter"
	case level < 35:
		return "C-Rank Hunter"
	case level < 50:
		return "B-Rank Hunter"
	case level < 80:
		return "A-Rank Hunter"
	case level < 100:
		return "S-Rank Hunter"
	default:
		return "Awakened"
	}
}
