package modular

import "errors"

// Every error returned by this package wraps exactly one of these sentinels.
// Test with errors.Is.
var (
	// ErrType reports a value that does not satisfy the required capability:
	// a nil child or module, a node of the wrong kind, a non-finite coordinate,
	// or a surface of a foreign implementation.
	ErrType = errors.New("modular: wrong type")

	// ErrValue reports a numeric value outside its domain, such as a
	// non-positive camera shift.
	ErrValue = errors.New("modular: invalid value")

	// ErrStructure reports a tree or registry violation: duplicate camera
	// names, cycles, removing something that is not attached.
	ErrStructure = errors.New("modular: structure violation")
)
