package domain

import (
	"context"
	"fmt"
	"strings"
)

// Kind tags the variant of a schema Node.
type Kind int

const (
	// KindTask enters a new scope and contributes an implementation and exception handlers.
	KindTask Kind = iota + 1
	// KindGroup is a transparent collection of children with no effect on the argument map.
	KindGroup
	// KindFlag stores a boolean under its name ("!name" stores false under "name").
	KindFlag
	// KindParam strips its matched prefix and stores the converted remainder.
	KindParam
	// KindValue fills a positional slot with the converted token.
	KindValue
)

var kindNames = map[Kind]string{
	KindTask:  "task",
	KindGroup: "group",
	KindFlag:  "flag",
	KindParam: "param",
	KindValue: "value",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// MarshalText implements encoding.TextMarshaler so kinds serialize by name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ParseKind converts a kind name ("task", "group", "flag", "param", "value") to a Kind.
// An empty name is a task, the same default the root scope uses.
func ParseKind(name string) (Kind, error) {
	if name == "" {
		return KindTask, nil
	}
	for k, n := range kindNames {
		if strings.EqualFold(n, name) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown node kind: %q", name)
}

// Implementation is invoked by the host when a dispatch finishes without structural errors.
type Implementation func(ctx context.Context, res *Result) error

// ExceptionHandler is consulted when a dispatch has structural errors.
// Returning true hands off to the next outer handler; false stops the chain.
type ExceptionHandler func(ctx context.Context, res *Result) (bool, error)

// HelpFunc renders help for a task (or the root) in place of a static Help string.
type HelpFunc func(ctx context.Context, res *Result) error

// Converter turns a raw token into a typed value for a Param or Value node.
// ok=false declines and lets the next converter try; a non-nil error aborts the dispatch.
type Converter func(node *Node, raw string) (value any, ok bool, err error)

// Node is one element of the schema tree.
// Which fields are meaningful depends on Kind; the rest are ignored.
type Node struct {
	Kind Kind
	// ID is a stable identity distinct from the display Name. Used by IndexedBy.
	ID   string
	Name string

	// Filters decide whether a token matches. Unused by Value nodes.
	Filters []Filter

	// Format is the conversion hint passed to converters (Param and Value).
	Format string

	// Index is the 1-based positional slot of a Value node. Nil means "first unfilled".
	Index *int
	// IndexedBy rebases Index to count from just after the most recent match of the
	// node with this ID (or name).
	IndexedBy string

	// Inherit keeps the node reachable after a deeper scope becomes innermost.
	Inherit bool

	Children []*Node

	Execute   Implementation
	Exception []ExceptionHandler

	Help     string
	HelpFunc HelpFunc
}

// Key returns the argument map key the node writes to.
// A negated flag ("!name") writes to "name".
func (n *Node) Key() string {
	if n.Kind == KindFlag {
		return strings.TrimPrefix(n.Name, "!")
	}
	return n.Name
}

// Negated reports whether the node is a flag that stores false.
func (n *Node) Negated() bool {
	return n.Kind == KindFlag && strings.HasPrefix(n.Name, "!")
}

// Identity returns ID when set, otherwise Name.
func (n *Node) Identity() string {
	if n.ID != "" {
		return n.ID
	}
	return n.Name
}

// HasHelp reports whether the node carries static or dynamic help.
func (n *Node) HasHelp() bool {
	return n.Help != "" || n.HelpFunc != nil
}

// Walk visits n and every descendant depth-first, stopping early when fn returns false.
func (n *Node) Walk(fn func(node *Node, depth int) bool) {
	n.walk(fn, 0)
}

func (n *Node) walk(fn func(node *Node, depth int) bool, depth int) bool {
	if !fn(n, depth) {
		return false
	}
	for _, child := range n.Children {
		if child == nil {
			continue
		}
		if !child.walk(fn, depth+1) {
			return false
		}
	}
	return true
}

// At returns a pointer to i, convenient for Node.Index literals.
func At(i int) *int {
	return &i
}
