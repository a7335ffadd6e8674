package inventory

import "errors"

// Domain errors for the inventory package.
//
// These errors can be checked using errors.Is() for error handling:
//
//	if errors.Is(err, inventory.ErrLocomotiveNotFound) {
//	    // handle not found case
//	}
var (
	// ErrLocomotiveNotFound is returned when a locomotive id does not exist.
	ErrLocomotiveNotFound = errors.New("inventory: locomotive not found")
)
