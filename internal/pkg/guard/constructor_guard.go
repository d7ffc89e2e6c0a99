// Package guard provides a defensive construction pattern for domain objects.
// Embedding a ConstructorGuard in a struct makes zero-value instances
// detectable, so entities and value objects can enforce creation through
// their designated constructor functions.
package guard

import "errors"

// ErrDefaultConstructorGuard is the default error returned by Validate when a
// nil validation error is supplied. This ensures validation always fails with
// a meaningful message even if no specific error is provided.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard detects whether the enclosing struct was created through
// its constructor or as a zero value. The guard works by maintaining an
// internal flag that is only set when NewConstructorGuard is called.
//
// Example usage:
//
//	var ErrRatingNotConstructed = errors.New("Rating must be created via NewRating")
//
//	type Rating struct {
//	    overall int
//	    guard   guard.ConstructorGuard
//	}
//
//	func NewRating(overall int) (Rating, error) {
//	    if overall < 1 || overall > 5 {
//	        return Rating{}, errors.New("overall must be between 1 and 5")
//	    }
//	    return Rating{overall: overall, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (r Rating) Validate() error {
//	    return r.guard.Validate(ErrRatingNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a guard that marks an object as properly
// constructed. Call it in the constructor of the guarded type.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil if the guarded object was created through its
// constructor. Otherwise it returns validationError, or
// ErrDefaultConstructorGuard when validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
