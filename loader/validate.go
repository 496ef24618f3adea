package loader

import (
	"fmt"
	"log"
	"strings"

	"github.com/nathoo/dailyquest/types"
)

// ValidationError collects all validation errors and warnings.
type ValidationError struct {
	Errors   []string
	Warnings []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed with %d error(s):\n  %s",
		len(e.Errors), strings.Join(e.Errors, "\n  "))
}

// validate checks task ids are unique and bounds are usable.
func validate(q *types.Quest) error {
	ve := &ValidationError{}

	seen := map[string]bool{}
	for _, t := range q.Tasks {
		switch {
		case strings.TrimSpace(t.ID) == "":
			ve.Errors = append(ve.Errors, "task with empty id")
			continue
		case strings.ContainsAny(t.ID, " \t"):
			ve.Errors = append(ve.Errors, fmt.Sprintf("task id %q contains whitespace", t.ID))
		}
		if seen[t.ID] {
			ve.Errors = append(ve.Errors, fmt.Sprintf("duplicate task id %q", t.ID))
		}
		seen[t.ID] = true

		if t.Max <= 0 {
			ve.Errors = append(ve.Errors, fmt.Sprintf("task %q: max must be positive, got %v", t.ID, t.Max))
		}
		if t.Step <= 0 {
			ve.Errors = append(ve.Errors, fmt.Sprintf("task %q: step must be positive, got %v", t.ID, t.Step))
		}
		if t.Max > 0 && t.Step > t.Max {
			ve.Warnings = append(ve.Warnings, fmt.Sprintf(
				"task %q: step %v exceeds max %v, one press completes it", t.ID, t.Step, t.Max))
		}
	}

	for _, w := range ve.Warnings {
		log.Printf("warning: %s", w)
	}

	if len(ve.Errors) > 0 {
		return ve
	}
	return nil
}
