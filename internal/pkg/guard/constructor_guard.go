// Package guard provides a constructor-guard helper used by domain objects
// to detect zero-value instances that bypassed their constructors.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when a nil error is
// passed for a zero-value guard, so validation always fails with a meaningful
// message even if no specific error is provided.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard ensures value objects and entities are only created through
// their designated constructor functions. Embedding a guard in a struct makes
// zero-value instances detectable: the internal flag is only set when the
// object passed through NewConstructorGuard.
//
// Example usage:
//
//	type Contact struct {
//	    label   string
//	    address string
//	    guard   guard.ConstructorGuard
//	}
//
//	func NewContact(label, address string) (Contact, error) {
//	    if address == "" {
//	        return Contact{}, errors.New("address is required")
//	    }
//	    return Contact{label: label, address: address, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (c Contact) Validate() error {
//	    return c.guard.Validate(ErrContactIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a guard marking an object as properly
// constructed. Call it in every domain object constructor.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate reports whether the guarded object was created through its
// constructor. For a zero-value guard it returns validationError, or
// ErrDefaultConstructorGuard when validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if !g.isConstructed {
		if validationError == nil {
			return ErrDefaultConstructorGuard
		}
		return validationError
	}
	return nil
}
