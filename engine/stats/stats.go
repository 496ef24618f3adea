// Package stats derives experience multipliers from the player's stats and
// resolves stat keys for point allocation. All functions are pure.
package stats

import (
	"strings"

	"github.com/nathoo/dailyquest/types"
)

// Soft caps: the stat value at which each effect reaches half its range.
const (
	StrengthSoftCap     = 50.0
	IntelligenceSoftCap = 200.0
	VitalitySoftCap     = 25.0
	PerceptionSoftCap   = 100.0
)

// Key identifies one of the five stats.
type Key string

const (
	Strength     Key = "str"
	Agility      Key = "agi"
	Vitality     Key = "vit"
	Intelligence Key = "int"
	Perception   Key = "per"
)

// Keys lists the stats in display order.
var Keys = []Key{Strength, Agility, Vitality, Intelligence, Perception}

var keyAliases = map[string]Key{
	"str":          Strength,
	"strength":     Strength,
	"agi":          Agility,
	"agility":      Agility,
	"vit":          Vitality,
	"vitality":     Vitality,
	"int":          Intelligence,
	"intelligence": Intelligence,
	"per":          Perception,
	"perception":   Perception,
}

var labels = map[Key]string{
	Strength:     "Strength",
	Agility:      "Agility",
	Vitality:     "Vitality",
	Intelligence: "Intelligence",
	Perception:   "Perception",
}

var help = map[Key]string{
	Strength:     "Increases XP gained from workouts.",
	Agility:      "Increases streak bonuses and future action speed.",
	Vitality:     "Reduces XP lost when missing a day.",
	Intelligence: "Improves XP scaling per level.",
	Perception:   "Chance to gain double XP.",
}

// ParseKey resolves a short or long stat name, case-insensitively.
func ParseKey(s string) (Key, bool) {
	k, ok := keyAliases[strings.ToLower(strings.TrimSpace(s))]
	return k, ok
}

// Label returns the display name of a stat.
func Label(k Key) string {
	return labels[k]
}

// Help returns the one-line effect description of a stat.
func Help(k Key) string {
	return help[k]
}

// Field returns a pointer to the stat named by k, or nil for an unknown key.
func Field(s *types.Stats, k Key) *int {
	switch k {
	case Strength:
		return &s.Strength
	case Agility:
		return &s.Agility
	case Vitality:
		return &s.Vitality
	case Intelligence:
		return &s.Intelligence
	case Perception:
		return &s.Perception
	default:
		return nil
	}
}

// Value returns the value of the stat named by k (0 for an unknown key).
func Value(s types.Stats, k Key) int {
	if p := Field(&s, k); p != nil {
		return *p
	}
	return 0
}

// StrengthMultiplier scales raw experience awards. Range [1, 2).
func StrengthMultiplier(strength int) float64 {
	v := nonNegative(strength)
	return 1 + v/(v+StrengthSoftCap)
}

// IntelligenceMultiplier dampens threshold growth per level. Range (0, 1].
func IntelligenceMultiplier(intelligence int) float64 {
	v := nonNegative(intelligence)
	return 1 - v/(v+IntelligenceSoftCap)
}

// VitalityPenaltyMultiplier scales the missed-day penalty. Range (0, 1].
func VitalityPenaltyMultiplier(vitality int) float64 {
	v := nonNegative(vitality)
	return 1 / (1 + v/VitalitySoftCap)
}

// PerceptionBonus is the probability that an award is doubled. Range [0, 1).
func PerceptionBonus(perception int) float64 {
	v := nonNegative(perception)
	return v / (v + PerceptionSoftCap)
}

func nonNegative(n int) float64 {
	if n < 0 {
		return 0
	}
	return float64(n)
}
