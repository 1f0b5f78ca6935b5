package schema

import "fmt"

// ConversionError reports a token that could not be converted to its node's format.
type ConversionError struct {
	Name   string // Argument key of the node
	Format string // Canonical format name
	Value  string // The raw token
	Err    error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("argument %q: cannot convert %q to %s", e.Name, e.Value, e.Format)
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}

// ValidationError represents a single schema definition problem.
type ValidationError struct {
	Path   string // Slash-separated node path (e.g., "deploy/--force")
	Reason string // Human-readable reason for failure
}

func (e *ValidationError) Error() string {
	if e.Path == "" {
		return e.Reason
	}
	return fmt.Sprintf("node %q: %s", e.Path, e.Reason)
}

// AggregateError represents multiple validation failures.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msg := fmt.Sprintf("%d validation errors:\n", len(e.Errors))
	for i, err := range e.Errors {
		msg += fmt.Sprintf("  %d. %s\n", i+1, err.Error())
	}
	return msg
}

// ValidationErrors returns all validation errors if err is an AggregateError.
// Otherwise returns nil.
func ValidationErrors(err error) []error {
	if aggr, ok := err.(*AggregateError); ok {
		return aggr.Errors
	}
	return nil
}
