package domain

import (
	"fmt"
	"regexp"
)

// Filter decides whether a token belongs to a node.
// The set of variants is closed: Literal, Pattern and Predicate.
type Filter interface {
	fmt.Stringer
	filter()
}

// Literal matches by string equality, or by prefix when the node is a Param.
type Literal string

// Pattern matches when the regular expression finds a match in the token.
// The matched text is the prefix stripped from a Param token.
type Pattern struct {
	Regexp *regexp.Regexp
}

// Predicate inspects the token directly.
// Returning ok=true matches; prefix is the portion stripped from a Param token.
type Predicate func(token string) (prefix string, ok bool)

func (Literal) filter()   {}
func (Pattern) filter()   {}
func (Predicate) filter() {}

func (l Literal) String() string { return string(l) }

func (p Pattern) String() string {
	if p.Regexp == nil {
		return "//"
	}
	return "/" + p.Regexp.String() + "/"
}

func (Predicate) String() string { return "<predicate>" }

// Literals converts plain strings into Literal filters.
func Literals(values ...string) []Filter {
	filters := make([]Filter, 0, len(values))
	for _, v := range values {
		filters = append(filters, Literal(v))
	}
	return filters
}

// NewPattern compiles expr into a Pattern filter.
func NewPattern(expr string) (Pattern, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return Pattern{}, fmt.Errorf("invalid filter pattern %q: %w", expr, err)
	}
	return Pattern{Regexp: re}, nil
}

// MustPattern is like NewPattern but panics on an invalid expression.
func MustPattern(expr string) Pattern {
	p, err := NewPattern(expr)
	if err != nil {
		panic(err)
	}
	return p
}
