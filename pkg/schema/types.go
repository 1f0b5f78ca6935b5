package schema

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/argtree/pkg/domain"
)

// Format defines the contract for converting a raw token into a typed value.
type Format interface {
	// Name returns the canonical format name (e.g., "boolean", "integer").
	Name() string
	// Convert parses raw into the format's Go type.
	Convert(raw string) (any, error)
}

// --- Built-in Format Implementations ---

// StringFormat passes the token through unchanged.
type StringFormat struct{}

func (f *StringFormat) Name() string { return "string" }

func (f *StringFormat) Convert(raw string) (any, error) {
	return raw, nil
}

// IntFormat parses base-10 integers into int.
type IntFormat struct{}

func (f *IntFormat) Name() string { return "integer" }

func (f *IntFormat) Convert(raw string) (any, error) {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return nil, err
	}
	return v, nil
}

// FloatFormat parses decimal numbers into float64.
type FloatFormat struct{}

func (f *FloatFormat) Name() string { return "number" }

func (f *FloatFormat) Convert(raw string) (any, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// BoolFormat treats an empty token and the negative set {f, false, n, no, off, 0}
// (case-insensitive) as false, and everything else as true. It never fails.
type BoolFormat struct{}

func (f *BoolFormat) Name() string { return "boolean" }

var negatives = []string{"f", "false", "n", "no", "off", "0"}

func (f *BoolFormat) Convert(raw string) (any, error) {
	if raw == "" {
		return false, nil
	}
	for _, n := range negatives {
		if strings.EqualFold(raw, n) {
			return false, nil
		}
	}
	return true, nil
}

// --- Factory Functions ---

// String creates the pass-through format.
func String() Format { return &StringFormat{} }

// Int creates the integer format.
func Int() Format { return &IntFormat{} }

// Float creates the floating-point format.
func Float() Format { return &FloatFormat{} }

// Bool creates the boolean format.
func Bool() Format { return &BoolFormat{} }

// ParseFormat resolves a format name, including its aliases:
// "boolean"/"bool", "int"/"integer", "float"/"double"/"number", "string".
func ParseFormat(name string) (Format, bool) {
	switch strings.ToLower(name) {
	case "boolean", "bool":
		return Bool(), true
	case "int", "integer":
		return Int(), true
	case "float", "double", "number":
		return Float(), true
	case "string":
		return String(), true
	default:
		return nil, false
	}
}

// Converter returns the default domain.Converter.
// It declines nodes whose Format is unknown so the engine falls back to the raw string,
// and returns a *ConversionError for malformed numbers.
func Converter() domain.Converter {
	return func(node *domain.Node, raw string) (any, bool, error) {
		f, ok := ParseFormat(node.Format)
		if !ok {
			return nil, false, nil
		}
		v, err := f.Convert(raw)
		if err != nil {
			return nil, false, &ConversionError{
				Name:   node.Key(),
				Format: f.Name(),
				Value:  raw,
				Err:    err,
			}
		}
		return v, true, nil
	}
}

// Convert runs converters in order and returns the first accepted value.
// When every converter declines, the raw token is returned unchanged.
func Convert(converters []domain.Converter, node *domain.Node, raw string) (any, error) {
	for _, c := range converters {
		if c == nil {
			continue
		}
		v, ok, err := c(node, raw)
		if err != nil {
			return nil, fmt.Errorf("converting %q for %s: %w", raw, node.Key(), err)
		}
		if ok {
			return v, nil
		}
	}
	return raw, nil
}
