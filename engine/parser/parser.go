// Package parser converts command strings into Intent structs.
// Intentionally dumb: no NLP, just pattern matching.
package parser

import (
	"strings"

	"github.com/nathoo/dailyquest/types"
)

// Canonical verbs.
const (
	VerbInc      = "inc"
	VerbDec      = "dec"
	VerbComplete = "complete"
	VerbSpend    = "spend"
	VerbReset    = "reset"
	VerbStatus   = "status"
	VerbStats    = "stats"
	VerbHelp     = "help"
)

var verbAliases = map[string]string{
	// Increment
	"+":         VerbInc,
	"add":       VerbInc,
	"do":        VerbInc,
	"up":        VerbInc,
	"increment": VerbInc,
	"log":       VerbInc,

	// Decrement
	"-":         VerbDec,
	"undo":      VerbDec,
	"down":      VerbDec,
	"decrement": VerbDec,
	"sub":       VerbDec,

	// Claim the quest reward
	"claim":  VerbComplete,
	"finish": VerbComplete,
	"done":   VerbComplete,

	// Stat allocation
	"stat":     VerbSpend,
	"allocate": VerbSpend,
	"assign":   VerbSpend,
	"train":    VerbSpend,

	// Miscellaneous
	"s":     VerbStatus,
	"look":  VerbStatus,
	"l":     VerbStatus,
	"info":  VerbStatus,
	"?":     VerbHelp,
	"h":     VerbHelp,
	"wipe":  VerbReset,
	"clear": VerbReset,
}

// filler words dropped from the object.
var fillers = map[string]bool{
	"the": true, "a": true, "an": true,
	"on": true, "to": true, "into": true, "in": true,
	"point": true, "points": true, "quest": true,
}

// Parse converts a raw command string into an Intent.
func Parse(input string) types.Intent {
	input = strings.TrimSpace(input)
	if input == "" {
		return types.Intent{}
	}

	words := strings.Fields(strings.ToLower(input))

	// "+pushups" / "-squats" shorthand.
	if len(words) == 1 && len(words[0]) > 1 {
		switch words[0][0] {
		case '+':
			return types.Intent{Verb: VerbInc, Object: words[0][1:]}
		case '-':
			return types.Intent{Verb: VerbDec, Object: words[0][1:]}
		}
	}

	words = expandMultiWordVerbs(words)

	if alias, ok := verbAliases[words[0]]; ok {
		words[0] = alias
	}

	return types.Intent{
		Verb:   words[0],
		Object: strings.Join(stripFillers(words[1:]), " "),
	}
}

// expandMultiWordVerbs handles "add point to str", "level up agi" and the like.
func expandMultiWordVerbs(words []string) []string {
	if len(words) < 2 {
		return words
	}

	switch words[0] {
	case "add", "put":
		if words[1] == "point" || words[1] == "points" {
			return append([]string{VerbSpend}, words[2:]...)
		}
	case "level", "raise":
		if words[1] == "up" {
			return append([]string{VerbSpend}, words[2:]...)
		}
		if words[0] == "raise" {
			return append([]string{VerbSpend}, words[1:]...)
		}
	case "complete", "claim", "finish":
		return words[:1]
	case "help":
		if words[1] == "stats" || words[1] == "stat" {
			return []string{VerbStats}
		}
	}

	return words
}

// stripFillers removes articles, prepositions and "point(s)".
func stripFillers(words []string) []string {
	result := make([]string, 0, len(words))
	for _, w := range words {
		if !fillers[w] {
			result = append(result, w)
		}
	}
	return result
}
