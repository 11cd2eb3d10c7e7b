package delivery

import (
	"fmt"
	"strings"

	"mealroute/internal/pkg/errs"
)

// Handoff represents how a completed stop was handed over to the client.
type Handoff int

const (
	// HandoffUnknown represents an invalid or undefined handoff type.
	HandoffUnknown Handoff = iota

	// Hand is a direct handoff to a person.
	Hand

	// Porch is an unattended drop. Porch handoffs require photo evidence
	// unless a problem is reported instead.
	Porch
)

func getHandoffStrings() map[Handoff]string {
	return map[Handoff]string{
		HandoffUnknown: "unknown",
		Hand:           "hand",
		Porch:          "porch",
	}
}

// HandoffFromString parses a persisted handoff type.
func HandoffFromString(s string) (Handoff, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	for h, name := range getHandoffStrings() {
		if h != HandoffUnknown && name == normalized {
			return h, nil
		}
	}
	return HandoffUnknown, errs.NewValueIsInvalidErrorWithCause(
		"handoff", fmt.Errorf("%q is not a valid handoff type", s))
}

// Validate checks if the Handoff value is valid.
func (h Handoff) Validate() error {
	if h != Hand && h != Porch {
		return errs.NewValueIsInvalidError("handoff")
	}
	return nil
}

// String returns the persisted form of the handoff type.
func (h Handoff) String() string {
	if s, ok := getHandoffStrings()[h]; ok {
		return s
	}
	return "unknown"
}
