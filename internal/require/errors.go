package require

import (
	"errors"
	"fmt"
)

// ErrModuleNotFound is the sentinel for resolution failures; use errors.Is
// to test for it across the wrapped ModuleNotFoundError.
var ErrModuleNotFound = errors.New("module not found")

// ModuleNotFoundError is returned when a specifier resolves to neither a
// namespace, a package, nor a file from the requesting directory. It
// propagates synchronously to the caller of Require.
type ModuleNotFoundError struct {
	// Specifier is the requested name, after override substitution.
	Specifier string

	// Dir is the directory the specifier was resolved from.
	Dir string
}

// Error implements the error interface.
func (e *ModuleNotFoundError) Error() string {
	return fmt.Sprintf("module not found: %q (required from %s)", e.Specifier, e.Dir)
}

// Unwrap makes errors.Is(err, ErrModuleNotFound) succeed.
func (e *ModuleNotFoundError) Unwrap() error {
	return ErrModuleNotFound
}
