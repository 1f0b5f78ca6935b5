package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnmatchedArgument is matched (via errors.Is) by every structural error.
var ErrUnmatchedArgument = errors.New("unmatched argument")

// ErrNoImplementation is returned when a named implementation or callback is not registered.
var ErrNoImplementation = errors.New("implementation not found")

// ErrRuntimeVersion is returned when the minimum runtime version gate fails.
var ErrRuntimeVersion = errors.New("runtime version not supported")

// ErrSchemaNotFound is returned when a schema reference cannot be resolved.
var ErrSchemaNotFound = errors.New("schema not found")

// ErrRecordNotFound is returned when a dispatch record ID is unknown to the history store.
var ErrRecordNotFound = errors.New("record not found")

// ArgumentError is a structural error: a token matched no reachable node.
type ArgumentError struct {
	// Index is the 1-based position of the token in the argument vector.
	Index    int    `json:"index" yaml:"index"`
	Argument string `json:"argument" yaml:"argument"`
}

func (e ArgumentError) Error() string {
	return fmt.Sprintf("unexpected argument %q at position %d", e.Argument, e.Index)
}

// Is lets errors.Is(err, ErrUnmatchedArgument) succeed.
func (e ArgumentError) Is(target error) bool {
	return target == ErrUnmatchedArgument
}

// DispatchError aggregates the structural errors of one dispatch.
type DispatchError struct {
	Errors []ArgumentError
}

func (e *DispatchError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d unexpected arguments:\n", len(e.Errors))
	for i, err := range e.Errors {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, err.Error())
	}
	return b.String()
}

// Unwrap exposes every structural error to errors.Is and errors.As.
func (e *DispatchError) Unwrap() []error {
	errs := make([]error, len(e.Errors))
	for i, err := range e.Errors {
		errs[i] = err
	}
	return errs
}

// ArgumentErrors returns the structural errors if err is a *DispatchError.
// Otherwise returns nil.
func ArgumentErrors(err error) []ArgumentError {
	var de *DispatchError
	if errors.As(err, &de) {
		return de.Errors
	}
	return nil
}
