package domain

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Arguments is the resolved argument map of one dispatch.
type Arguments map[string]any

// Has reports whether key holds a non-nil value.
func (a Arguments) Has(key string) bool {
	return a[key] != nil
}

// String returns the value under key as a string, formatting non-strings with %v.
func (a Arguments) String(key string) string {
	switch v := a[key].(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}

// Bool returns the value under key if it is a bool.
func (a Arguments) Bool(key string) bool {
	v, _ := a[key].(bool)
	return v
}

// Int returns the value under key as an int when it holds an integer or float.
func (a Arguments) Int(key string) int {
	switch v := a[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}

// Float returns the value under key as a float64 when it holds a number.
func (a Arguments) Float(key string) float64 {
	switch v := a[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	}
	return 0
}

// TraceEntry records which node matched the token at Index.
// Entries without a node describe tokens nothing claimed.
type TraceEntry struct {
	// Index is the 0-based position of the token in the argument vector.
	Index  int    `json:"index" yaml:"index"`
	Token  string `json:"token" yaml:"token"`
	NodeID string `json:"id,omitempty" yaml:"id,omitempty"`
	Name   string `json:"name,omitempty" yaml:"name,omitempty"`
	Kind   Kind   `json:"kind,omitempty" yaml:"kind,omitempty"`
}

// Matched reports whether a node claimed the token.
func (t TraceEntry) Matched() bool {
	return t.Kind != 0
}

// Result is the bundle handed to the host after matching completes.
type Result struct {
	Schema string    `json:"schema,omitempty" yaml:"schema,omitempty"`
	Argv   []string  `json:"argv" yaml:"argv"`
	Cwd    string    `json:"cwd" yaml:"cwd"`
	Args   Arguments `json:"args" yaml:"args"`

	// Tasks lists the names of the entered tasks, outermost first.
	Tasks  []string        `json:"tasks" yaml:"tasks"`
	Trace  []TraceEntry    `json:"trace" yaml:"trace"`
	Errors []ArgumentError `json:"errors,omitempty" yaml:"errors,omitempty"`

	// Stack is the final scope stack; Stack[0] is the root.
	Stack []*Node `json:"-" yaml:"-"`

	// Execute is the implementation adopted from the last entered task (or the root).
	Execute Implementation `json:"-" yaml:"-"`
	// Exception holds the handlers of the root and every entered task, oldest first.
	Exception []ExceptionHandler `json:"-" yaml:"-"`
}

// Failed reports whether any token went unmatched.
func (r *Result) Failed() bool {
	return len(r.Errors) > 0
}

// Err returns the structural errors as a *DispatchError, or nil.
func (r *Result) Err() error {
	if len(r.Errors) == 0 {
		return nil
	}
	return &DispatchError{Errors: append([]ArgumentError(nil), r.Errors...)}
}

// Task returns the innermost entered task name, or "" when only the root is active.
func (r *Result) Task() string {
	if len(r.Tasks) == 0 {
		return ""
	}
	return r.Tasks[len(r.Tasks)-1]
}

// Bind decodes the argument map into out, a pointer to a struct.
// Fields are matched by the `arg` tag (or the case-insensitive field name) and
// strings are coerced weakly, so a Value without a format still fills an int field.
func (r *Result) Bind(out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "arg",
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return fmt.Errorf("failed to create argument decoder: %w", err)
	}
	if err := dec.Decode(map[string]any(r.Args)); err != nil {
		return fmt.Errorf("failed to bind arguments: %w", err)
	}
	return nil
}
