package delivery

import (
	"fmt"
	"strings"

	"mealroute/internal/pkg/errs"
)

// Problem classifies what went wrong at a delivery stop. ProblemNone marks
// an uneventful delivery; any other value makes the log entry a problem
// report.
type Problem int

const (
	// ProblemNone means the stop completed without issues.
	ProblemNone Problem = iota

	// NoAnswer means nobody answered a hand delivery.
	NoAnswer

	// WrongAddress means the address on file could not be delivered to.
	WrongAddress

	// MissingItems means part of the order was not in the bag.
	MissingItems

	// Other is a free-form problem and requires an explanatory note.
	Other
)

func getProblemStrings() map[Problem]string {
	return map[Problem]string{
		ProblemNone:  "",
		NoAnswer:     "no_answer",
		WrongAddress: "wrong_address",
		MissingItems: "missing_items",
		Other:        "other",
	}
}

// ProblemFromString parses a persisted problem code. The empty string parses
// to ProblemNone.
func ProblemFromString(s string) (Problem, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	for p, name := range getProblemStrings() {
		if name == normalized {
			return p, nil
		}
	}
	return ProblemNone, errs.NewValueIsInvalidErrorWithCause(
		"problem", fmt.Errorf("%q is not a valid problem code", s))
}

// Validate checks if the Problem value is valid. ProblemNone is valid.
func (p Problem) Validate() error {
	if p < ProblemNone || p > Other {
		return errs.NewValueIsInvalidError("problem")
	}
	return nil
}

// IsReported reports whether the entry carries a problem.
func (p Problem) IsReported() bool {
	return p != ProblemNone
}

// RequiresNote reports whether the problem code demands an explanatory note.
func (p Problem) RequiresNote() bool {
	return p == Other
}

// String returns the persisted form of the problem code; empty for
// ProblemNone.
func (p Problem) String() string {
	if s, ok := getProblemStrings()[p]; ok {
		return s
	}
	return "unknown"
}
