package order

import (
	"fmt"
	"strings"

	"mealroute/internal/pkg/errs"
	"mealroute/internal/pkg/guard"
)

// ErrDishIsNotConstructed is returned when a Dish was not created through
// NewDish.
var ErrDishIsNotConstructed = errs.NewValueIsRequiredError(
	"dish must be created via NewDish constructor")

// DishKind classifies a dish reference within an order's menu.
type DishKind int

const (
	// DishKindUnknown represents an invalid or undefined kind.
	DishKindUnknown DishKind = iota

	// Protein is the main protein component of a meal.
	Protein

	// Veg is the vegetable component.
	Veg

	// Starch is the starch component.
	Starch

	// Extra covers add-ons outside the three main components.
	Extra
)

func getDishKindStrings() map[DishKind]string {
	return map[DishKind]string{
		DishKindUnknown: "unknown",
		Protein:         "protein",
		Veg:             "veg",
		Starch:          "starch",
		Extra:           "extra",
	}
}

// DishKindFromString parses a persisted dish kind.
func DishKindFromString(s string) (DishKind, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	for kind, name := range getDishKindStrings() {
		if kind != DishKindUnknown && name == normalized {
			return kind, nil
		}
	}
	return DishKindUnknown, errs.NewValueIsInvalidErrorWithCause(
		"dish kind", fmt.Errorf("%q is not a valid dish kind", s))
}

// Validate checks if the DishKind value is valid.
func (k DishKind) Validate() error {
	if k < Protein || k > Extra {
		return errs.NewValueIsInvalidError("dish kind")
	}
	return nil
}

// String returns the persisted form of the kind.
func (k DishKind) String() string {
	if s, ok := getDishKindStrings()[k]; ok {
		return s
	}
	return "unknown"
}

// Dish is a reference to a dish by name within an order's menu. The name is
// the unit of kitchen completion: every order referencing the same dish name
// within a production cycle shares a single completion flag.
type Dish struct {
	name string
	kind DishKind

	guard guard.ConstructorGuard
}

// NewDish creates a validated dish reference.
func NewDish(name string, kind DishKind) (Dish, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Dish{}, errs.NewValueIsRequiredError("dish name")
	}
	if err := kind.Validate(); err != nil {
		return Dish{}, err
	}

	return Dish{name: name, kind: kind, guard: guard.NewConstructorGuard()}, nil
}

// Name returns the dish name, the shared completion key.
func (d Dish) Name() string {
	return d.name
}

// Kind returns the dish classification.
func (d Dish) Kind() DishKind {
	return d.kind
}

// IsEqual compares dishes by name, case-insensitively.
func (d Dish) IsEqual(other Dish) bool {
	return strings.EqualFold(d.name, other.name)
}

// Validate ensures the Dish was created through NewDish.
func (d Dish) Validate() error {
	return d.guard.Validate(ErrDishIsNotConstructed)
}
