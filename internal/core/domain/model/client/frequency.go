package client

import (
	"fmt"
	"strings"

	"mealroute/internal/pkg/errs"
)

// Frequency represents how often a client receives deliveries.
// It is a value object that validates parsing from persisted strings.
type Frequency int

const (
	// FrequencyUnknown represents an invalid or undefined frequency.
	// This value (0) helps catch uninitialized Frequency values.
	FrequencyUnknown Frequency = iota

	// Weekly clients receive a delivery every week on their preferred day.
	Weekly

	// Biweekly clients receive deliveries every other week; any accepted
	// date set must keep adjacent dates at least fourteen days apart.
	Biweekly
)

func getFrequencyStrings() map[Frequency]string {
	return map[Frequency]string{
		FrequencyUnknown: "unknown",
		Weekly:           "weekly",
		Biweekly:         "biweekly",
	}
}

// FrequencyFromString parses a frequency from its persisted form,
// case-insensitively.
func FrequencyFromString(s string) (Frequency, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	for f, name := range getFrequencyStrings() {
		if f != FrequencyUnknown && name == normalized {
			return f, nil
		}
	}
	return FrequencyUnknown, errs.NewValueIsInvalidErrorWithCause(
		"frequency", fmt.Errorf("%q is not a valid frequency", s))
}

// Validate checks if the Frequency value is valid.
// Valid frequencies are Weekly and Biweekly.
func (f Frequency) Validate() error {
	if f != Weekly && f != Biweekly {
		return errs.NewValueIsInvalidErrorWithCause(
			"frequency", fmt.Errorf("%d is not a valid frequency", f))
	}
	return nil
}

// IsBiweekly reports whether the client is on the every-other-week cadence.
func (f Frequency) IsBiweekly() bool {
	return f == Biweekly
}

// String returns the persisted form of the frequency.
// Implements fmt.Stringer and is safe on any value.
func (f Frequency) String() string {
	if s, ok := getFrequencyStrings()[f]; ok {
		return s
	}
	return "unknown"
}
