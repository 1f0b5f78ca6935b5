package dsl

import "github.com/aretw0/argtree/pkg/domain"

// NodeBuilder provides a fluent API for configuring a node and its children.
type NodeBuilder struct {
	node *domain.Node
}

// ID sets a stable identity used by IndexedBy back-references.
func (n *NodeBuilder) ID(id string) *NodeBuilder {
	n.node.ID = id
	return n
}

// Match appends non-literal filters (patterns or predicates).
func (n *NodeBuilder) Match(filters ...domain.Filter) *NodeBuilder {
	n.node.Filters = append(n.node.Filters, filters...)
	return n
}

// Format sets the conversion hint ("string", "integer", "number", "boolean", ...).
func (n *NodeBuilder) Format(format string) *NodeBuilder {
	n.node.Format = format
	return n
}

// At pins a Value to a 1-based positional slot.
func (n *NodeBuilder) At(index int) *NodeBuilder {
	n.node.Index = domain.At(index)
	return n
}

// IndexedBy counts the slot from just after the most recent match of ref.
func (n *NodeBuilder) IndexedBy(ref string) *NodeBuilder {
	n.node.IndexedBy = ref
	return n
}

// Inherit keeps the node reachable from deeper scopes.
func (n *NodeBuilder) Inherit() *NodeBuilder {
	n.node.Inherit = true
	return n
}

// Help sets the static help text.
func (n *NodeBuilder) Help(text string) *NodeBuilder {
	n.node.Help = text
	return n
}

// HelpFunc sets a dynamic help renderer.
func (n *NodeBuilder) HelpFunc(fn domain.HelpFunc) *NodeBuilder {
	n.node.HelpFunc = fn
	return n
}

// Do sets the implementation adopted when this task is the last one entered.
func (n *NodeBuilder) Do(impl domain.Implementation) *NodeBuilder {
	n.node.Execute = impl
	return n
}

// Catch adds an exception handler, consulted before the handlers of outer tasks.
func (n *NodeBuilder) Catch(handler domain.ExceptionHandler) *NodeBuilder {
	n.node.Exception = append(n.node.Exception, handler)
	return n
}

// Task adds a nested task.
func (n *NodeBuilder) Task(name string, filters ...string) *NodeBuilder {
	return add(&n.node.Children, domain.KindTask, name, filters)
}

// Group adds a nested group.
func (n *NodeBuilder) Group(filters ...string) *NodeBuilder {
	return add(&n.node.Children, domain.KindGroup, "", filters)
}

// Flag adds a nested flag.
func (n *NodeBuilder) Flag(name string, filters ...string) *NodeBuilder {
	return add(&n.node.Children, domain.KindFlag, name, filters)
}

// Param adds a nested parameter.
func (n *NodeBuilder) Param(name string, filters ...string) *NodeBuilder {
	return add(&n.node.Children, domain.KindParam, name, filters)
}

// Value adds a nested positional value.
func (n *NodeBuilder) Value(name string) *NodeBuilder {
	return add(&n.node.Children, domain.KindValue, name, nil)
}

// Attach adds prebuilt nodes as children.
func (n *NodeBuilder) Attach(nodes ...*domain.Node) *NodeBuilder {
	n.node.Children = append(n.node.Children, nodes...)
	return n
}

// Build returns the underlying domain.Node.
// This is primarily used by the Builder, but exposed for advanced usage.
func (n *NodeBuilder) Build() *domain.Node {
	return n.node
}
