package domain

// Schema is the root of a command line description.
// It behaves like an unnamed task: its children form the outermost scope and its
// implementation and handlers are the fallbacks for the whole dispatch.
type Schema struct {
	Name     string
	Help     string
	HelpFunc HelpFunc

	Children  []*Node
	Execute   Implementation
	Exception []ExceptionHandler

	// Parsers are tried in order for every Param and Value; the first that accepts wins.
	Parsers []Converter

	// Extends lists fragments merged into the root before matching begins.
	Extends []Extension
}

// Extension is a reusable schema fragment.
type Extension struct {
	Name      string
	Children  []*Node
	Execute   Implementation
	Exception []ExceptionHandler
	Parsers   []Converter
}

// Resolve returns a copy of the schema with Extends (then extra) merged in declaration order.
// Children, handlers and parsers are appended; Execute is filled only while unset.
// The receiver is not modified, so one Schema can back concurrent dispatches.
func (s *Schema) Resolve(extra ...Extension) *Schema {
	out := &Schema{
		Name:      s.Name,
		Help:      s.Help,
		HelpFunc:  s.HelpFunc,
		Children:  append([]*Node(nil), s.Children...),
		Execute:   s.Execute,
		Exception: append([]ExceptionHandler(nil), s.Exception...),
		Parsers:   append([]Converter(nil), s.Parsers...),
	}

	exts := make([]Extension, 0, len(s.Extends)+len(extra))
	exts = append(exts, s.Extends...)
	exts = append(exts, extra...)

	for _, ext := range exts {
		out.Children = append(out.Children, ext.Children...)
		if out.Execute == nil {
			out.Execute = ext.Execute
		}
		out.Exception = append(out.Exception, ext.Exception...)
		out.Parsers = append(out.Parsers, ext.Parsers...)
	}
	return out
}

// Root returns the schema viewed as the outermost scope node.
func (s *Schema) Root() *Node {
	return &Node{
		Kind:      KindTask,
		Name:      s.Name,
		Children:  s.Children,
		Execute:   s.Execute,
		Exception: s.Exception,
		Help:      s.Help,
		HelpFunc:  s.HelpFunc,
	}
}

// Walk visits every node of the tree below the root.
func (s *Schema) Walk(fn func(node *Node, depth int) bool) {
	for _, child := range s.Children {
		if child == nil {
			continue
		}
		if !child.walk(fn, 0) {
			return
		}
	}
}
