package schema

import (
	"fmt"

	"github.com/aretw0/argtree/pkg/domain"
)

// Validate checks a schema tree for definition mistakes that matching would
// otherwise silently tolerate. Returns an *AggregateError with every problem found.
func Validate(s *domain.Schema) error {
	if s == nil {
		return &AggregateError{Errors: []error{&ValidationError{Reason: "schema is nil"}}}
	}

	v := &validator{
		ids:   make(map[string]string),
		names: make(map[string]bool),
	}

	// First pass: collect identities so IndexedBy can be checked regardless of order.
	s.Walk(func(node *domain.Node, _ int) bool {
		if node.ID != "" {
			v.names[node.ID] = true
		}
		if node.Name != "" {
			v.names[node.Name] = true
		}
		return true
	})

	v.children("", s.Children)

	if len(v.errs) > 0 {
		return &AggregateError{Errors: v.errs}
	}
	return nil
}

type validator struct {
	ids   map[string]string // node ID -> first path declaring it
	names map[string]bool   // every ID and name, for IndexedBy lookups
	errs  []error
}

func (v *validator) fail(path, format string, args ...any) {
	v.errs = append(v.errs, &ValidationError{Path: path, Reason: fmt.Sprintf(format, args...)})
}

func (v *validator) children(parent string, nodes []*domain.Node) {
	for i, node := range nodes {
		if node == nil {
			v.fail(parent, "child %d is nil", i)
			continue
		}
		v.node(joinPath(parent, label(node)), node)
	}
}

func (v *validator) node(path string, n *domain.Node) {
	switch n.Kind {
	case domain.KindTask, domain.KindFlag, domain.KindParam:
		if n.Name == "" || n.Name == "!" {
			v.fail(path, "%s requires a name", n.Kind)
		}
		v.filters(path, n)
	case domain.KindGroup:
		v.filters(path, n)
		if len(n.Children) == 0 {
			v.fail(path, "group requires children")
		}
	case domain.KindValue:
		if n.Name == "" {
			v.fail(path, "value requires a name")
		}
		if n.Index != nil && *n.Index < 1 {
			v.fail(path, "index must be at least 1, got %d", *n.Index)
		}
		if n.IndexedBy != "" {
			if n.Index == nil {
				v.fail(path, "indexedBy %q requires an index", n.IndexedBy)
			}
			if !v.names[n.IndexedBy] {
				v.fail(path, "indexedBy references unknown node %q", n.IndexedBy)
			}
		}
		if len(n.Children) > 0 {
			v.fail(path, "value nodes cannot have children")
		}
	default:
		v.fail(path, "unknown node kind %d", int(n.Kind))
	}

	if n.ID != "" {
		if first, dup := v.ids[n.ID]; dup {
			v.fail(path, "duplicate id %q (first declared at %q)", n.ID, first)
		} else {
			v.ids[n.ID] = path
		}
	}

	v.children(path, n.Children)
}

func (v *validator) filters(path string, n *domain.Node) {
	if len(n.Filters) == 0 {
		v.fail(path, "%s requires at least one filter", n.Kind)
		return
	}
	for i, f := range n.Filters {
		switch f := f.(type) {
		case nil:
			v.fail(path, "filter %d is nil", i)
		case domain.Literal:
			if f == "" && n.Kind != domain.KindParam {
				v.fail(path, "filter %d is an empty literal", i)
			}
		case domain.Pattern:
			if f.Regexp == nil {
				v.fail(path, "filter %d has no compiled pattern", i)
			}
		case domain.Predicate:
			if f == nil {
				v.fail(path, "filter %d is a nil predicate", i)
			}
		}
	}
}

func label(n *domain.Node) string {
	if n.Name != "" {
		return n.Name
	}
	if n.ID != "" {
		return n.ID
	}
	if len(n.Filters) > 0 && n.Filters[0] != nil {
		return n.Filters[0].String()
	}
	return n.Kind.String()
}

func joinPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "/" + name
}
