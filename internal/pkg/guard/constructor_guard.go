// Package guard implements the constructor-guard pattern used by domain
// objects to detect zero-value instances that bypassed their constructor.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific
// validation error is supplied for an unconstructed object.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks an object as created through its designated
// constructor. Embedding one in a struct lets Validate distinguish a properly
// built instance from a zero value, which keeps domain invariants enforceable
// even for objects restored from persistence.
//
// Example:
//
//	type Entry struct {
//	    amount float64
//	    guard  guard.ConstructorGuard
//	}
//
//	func NewEntry(amount float64) (Entry, error) {
//	    if amount < 0 {
//	        return Entry{}, errors.New("amount cannot be negative")
//	    }
//	    return Entry{amount: amount, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (e Entry) Validate() error {
//	    return e.guard.Validate(ErrEntryIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a guard marking the owning object as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil for a constructed object. For a zero-value guard it
// returns validationError, or ErrDefaultConstructorGuard when validationError
// is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
