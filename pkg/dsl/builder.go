package dsl

import (
	"fmt"

	"github.com/aretw0/argtree/pkg/domain"
	"github.com/aretw0/argtree/pkg/schema"
)

// Builder manages the schema construction.
type Builder struct {
	schema domain.Schema
}

// New creates a new schema builder.
func New(name string) *Builder {
	return &Builder{
		schema: domain.Schema{Name: name},
	}
}

// Help sets the root help text.
func (b *Builder) Help(text string) *Builder {
	b.schema.Help = text
	return b
}

// HelpFunc sets a dynamic root help renderer.
func (b *Builder) HelpFunc(fn domain.HelpFunc) *Builder {
	b.schema.HelpFunc = fn
	return b
}

// Do sets the root implementation, used when no task is entered.
func (b *Builder) Do(impl domain.Implementation) *Builder {
	b.schema.Execute = impl
	return b
}

// Catch adds a root exception handler. It is consulted last.
func (b *Builder) Catch(handler domain.ExceptionHandler) *Builder {
	b.schema.Exception = append(b.schema.Exception, handler)
	return b
}

// Parsers appends converters tried for every Param and Value.
func (b *Builder) Parsers(converters ...domain.Converter) *Builder {
	b.schema.Parsers = append(b.schema.Parsers, converters...)
	return b
}

// Extend merges a reusable fragment into the root.
func (b *Builder) Extend(ext ...domain.Extension) *Builder {
	b.schema.Extends = append(b.schema.Extends, ext...)
	return b
}

// Task adds a task to the root scope.
func (b *Builder) Task(name string, filters ...string) *NodeBuilder {
	return add(&b.schema.Children, domain.KindTask, name, filters)
}

// Group adds a group to the root scope.
func (b *Builder) Group(filters ...string) *NodeBuilder {
	return add(&b.schema.Children, domain.KindGroup, "", filters)
}

// Flag adds a flag to the root scope. Prefix the name with "!" to store false.
func (b *Builder) Flag(name string, filters ...string) *NodeBuilder {
	return add(&b.schema.Children, domain.KindFlag, name, filters)
}

// Param adds a prefix-matched parameter to the root scope.
func (b *Builder) Param(name string, filters ...string) *NodeBuilder {
	return add(&b.schema.Children, domain.KindParam, name, filters)
}

// Value adds a positional value to the root scope.
func (b *Builder) Value(name string) *NodeBuilder {
	return add(&b.schema.Children, domain.KindValue, name, nil)
}

// Build validates and returns the schema.
// The builder may keep being used; later changes do not affect the returned schema's
// top-level slices.
func (b *Builder) Build() (*domain.Schema, error) {
	s := b.schema
	s.Children = append([]*domain.Node(nil), b.schema.Children...)
	s.Exception = append([]domain.ExceptionHandler(nil), b.schema.Exception...)
	s.Parsers = append([]domain.Converter(nil), b.schema.Parsers...)
	s.Extends = append([]domain.Extension(nil), b.schema.Extends...)

	if err := schema.Validate(&s); err != nil {
		return nil, fmt.Errorf("invalid schema %q: %w", s.Name, err)
	}
	return &s, nil
}

// MustBuild is like Build but panics on an invalid schema.
func (b *Builder) MustBuild() *domain.Schema {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}

func add(children *[]*domain.Node, kind domain.Kind, name string, filters []string) *NodeBuilder {
	node := &domain.Node{
		Kind:    kind,
		Name:    name,
		Filters: domain.Literals(filters...),
	}
	*children = append(*children, node)
	return &NodeBuilder{node: node}
}
