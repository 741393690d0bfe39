// Package errors provides structured error values for swipe navigation
// subsystems.
package errors

import "fmt"

// Kind identifies the category of an error.
type Kind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown Kind = iota
	// KindConfig indicates a configuration schema or decoding failure.
	KindConfig
	// KindResolve indicates a node resolution failure.
	KindResolve
	// KindNavigation indicates a tab navigation failure.
	KindNavigation
	// KindScenario indicates a scenario file loading or validation failure.
	KindScenario
)

func (k Kind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindResolve:
		return "resolve"
	case KindNavigation:
		return "navigation"
	case KindScenario:
		return "scenario"
	default:
		return "unknown"
	}
}

// Error is a structured error carrying the failed operation and a category.
type Error struct {
	// Op is the operation that failed (e.g., "config.Parse").
	Op string
	// Kind categorizes the error.
	Kind Kind
	// Err is the underlying error.
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// E constructs an Error.
func E(op string, kind Kind, err error) *Error {
	return &Error{Op: op, Kind: kind, Err: err}
}

// Errorf constructs an Error wrapping a formatted message.
func Errorf(op string, kind Kind, format string, args ...any) *Error {
	return &Error{Op: op, Kind: kind, Err: fmt.Errorf(format, args...)}
}
