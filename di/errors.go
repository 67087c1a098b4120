package di

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingProvider is matched by every *MissingProviderError.
	ErrMissingProvider = errors.New("di: missing provider")

	// ErrCyclicDeps is matched by every *CyclicDepsError.
	ErrCyclicDeps = errors.New("di: cyclic deps")

	// ErrInjectorDestroyed is returned by any lookup on a destroyed injector.
	ErrInjectorDestroyed = errors.New("injector was destroyed")

	// ErrProviderPanic wraps a panic raised by a factory or constructor.
	ErrProviderPanic = errors.New("di: panic in provider")
)

// MissingProviderError is returned when no provider for Token exists in the
// searched scopes. Path is the construction chain that needed it.
type MissingProviderError struct {
	Path  ResolvePath
	Token Key
}

// Error implements the error interface.
func (e *MissingProviderError) Error() string {
	// Example: missing provider: [Service@0] dep
	if len(e.Path) == 0 {
		return "missing provider: " + e.Token.Name()
	}
	return "missing provider: [" + e.Path.String() + "] " + e.Token.Name()
}

// Unwrap makes errors.Is(err, ErrMissingProvider) report true.
func (e *MissingProviderError) Unwrap() error { return ErrMissingProvider }

// CyclicDepsError is returned when a key is requested again from the same
// injector while it is still being constructed.
//
// Path is how resolution reached the start of the cycle; Cycle runs from the
// first occurrence of the key to its repetition, inclusive.
type CyclicDepsError struct {
	Path  ResolvePath
	Cycle ResolvePath
}

// Error implements the error interface.
func (e *CyclicDepsError) Error() string {
	// Example: cyclic deps: [X@0 → Y@0] A@0 → B@0 → A@0
	if len(e.Path) == 0 {
		return "cyclic deps: " + e.Cycle.String()
	}
	return "cyclic deps: [" + e.Path.String() + "] " + e.Cycle.String()
}

// Unwrap makes errors.Is(err, ErrCyclicDeps) report true.
func (e *CyclicDepsError) Unwrap() error { return ErrCyclicDeps }

// ConstructError is returned when a factory or constructor fails.
// Nothing is cached for Token.
type ConstructError struct {
	Path  ResolvePath
	Token Key
	Err   error
}

// Error implements the error interface.
func (e *ConstructError) Error() string {
	return fmt.Sprintf("construct %s: [%s] %v", e.Token.Name(), e.Path, e.Err)
}

// Unwrap returns the provider's error.
func (e *ConstructError) Unwrap() error { return e.Err }

// TypeMismatchError is returned by the typed accessors when the resolved
// value is not of the requested type.
type TypeMismatchError struct {
	Token Key
	Got   string
}

// Error implements the error interface.
func (e *TypeMismatchError) Error() string {
	// Example: di: Config resolved to unexpected type (string)
	return "di: " + e.Token.Name() + " resolved to unexpected type (" + e.Got + ")"
}
