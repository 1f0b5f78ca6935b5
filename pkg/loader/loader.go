package loader

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/argtree/internal/dto"
	"github.com/aretw0/argtree/pkg/domain"
	"github.com/aretw0/argtree/pkg/registry"
	"github.com/aretw0/argtree/pkg/schema"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// DefaultParser is the parser name that resolves to the built-in converter.
const DefaultParser = "default"

// Format selects the document syntax.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFor picks the document format from a file extension. Anything but ".json" is YAML.
func FormatFor(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// Loader compiles schema documents into domain schemas.
type Loader struct {
	registry        *registry.Registry
	ignoreCallbacks bool
}

// Option configures a Loader.
type Option func(*Loader)

// WithoutCallbacks makes the loader drop callback references instead of resolving them.
// The resulting schema matches like the original but never runs host code, which is what
// tooling such as the inspect command and the HTTP server need.
func WithoutCallbacks() Option {
	return func(l *Loader) {
		l.ignoreCallbacks = true
	}
}

// New creates a loader resolving callback names through reg.
// A nil registry is allowed for documents that reference no callbacks.
func New(reg *registry.Registry, opts ...Option) *Loader {
	if reg == nil {
		reg = registry.NewRegistry()
	}
	l := &Loader{registry: reg}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads and compiles the schema file at path.
// A missing file yields an error wrapping domain.ErrSchemaNotFound.
func (l *Loader) Load(path string) (*domain.Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrSchemaNotFound, path)
		}
		return nil, fmt.Errorf("failed to read schema %s: %w", path, err)
	}
	return l.Parse(data, FormatFor(path))
}

// Parse decodes and compiles a schema document.
func (l *Loader) Parse(data []byte, format Format) (*domain.Schema, error) {
	doc, err := Decode(data, format)
	if err != nil {
		return nil, err
	}
	return l.Compile(doc)
}

// Decode turns raw document bytes into a SchemaDocument without resolving callbacks.
func Decode(data []byte, format Format) (*dto.SchemaDocument, error) {
	var raw map[string]any
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("failed to parse json schema: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse yaml schema: %w", err)
		}
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: empty document", domain.ErrSchemaNotFound)
	}

	var doc dto.SchemaDocument
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           &doc,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create schema decoder: %w", err)
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("failed to decode schema: %w", err)
	}
	return &doc, nil
}

// Compile resolves every callback name and builds the domain schema.
// Every unresolvable reference and invalid pattern is reported, not only the first.
func (l *Loader) Compile(doc *dto.SchemaDocument) (*domain.Schema, error) {
	c := &compiler{registry: l.registry, ignoreCallbacks: l.ignoreCallbacks}

	s := &domain.Schema{
		Name:      doc.Name,
		Help:      doc.Help,
		HelpFunc:  c.help(doc.Name, doc.HelpFunc),
		Execute:   c.impl(doc.Name, doc.Execute),
		Exception: c.handlers(doc.Name, doc.Exception),
		Parsers:   c.parsers(doc.Parsers),
		Children:  c.nodes(doc.Name, doc.Children),
	}

	if len(c.errs) > 0 {
		return nil, fmt.Errorf("failed to compile schema %q: %w", doc.Name, errors.Join(c.errs...))
	}
	return s, nil
}

type compiler struct {
	registry        *registry.Registry
	ignoreCallbacks bool
	errs            []error
}

func (c *compiler) fail(path string, err error) {
	c.errs = append(c.errs, fmt.Errorf("%s: %w", path, err))
}

func (c *compiler) nodes(parent string, docs []dto.NodeDocument) []*domain.Node {
	if len(docs) == 0 {
		return nil
	}
	nodes := make([]*domain.Node, 0, len(docs))
	for _, d := range docs {
		nodes = append(nodes, c.node(parent, d))
	}
	return nodes
}

func (c *compiler) node(parent string, d dto.NodeDocument) *domain.Node {
	path := parent + "/" + nodeLabel(d)

	kind, err := domain.ParseKind(d.Kind)
	if err != nil {
		c.fail(path, err)
	}

	n := &domain.Node{
		Kind:      kind,
		ID:        d.ID,
		Name:      d.Name,
		Filters:   domain.Literals(d.Filters...),
		Format:    d.Format,
		Index:     d.Index,
		IndexedBy: d.IndexedBy,
		Inherit:   d.Inherit,
		Help:      d.Help,
		HelpFunc:  c.help(path, d.HelpFunc),
		Execute:   c.impl(path, d.Execute),
		Exception: c.handlers(path, d.Exception),
	}
	for _, expr := range d.Patterns {
		p, err := domain.NewPattern(expr)
		if err != nil {
			c.fail(path, err)
			continue
		}
		n.Filters = append(n.Filters, p)
	}
	n.Children = c.nodes(path, d.Children)
	return n
}

func (c *compiler) impl(path, name string) domain.Implementation {
	if name == "" || c.ignoreCallbacks {
		return nil
	}
	fn, err := c.registry.Implementation(name)
	if err != nil {
		c.fail(path, err)
	}
	return fn
}

func (c *compiler) help(path, name string) domain.HelpFunc {
	if name == "" || c.ignoreCallbacks {
		return nil
	}
	fn, err := c.registry.Help(name)
	if err != nil {
		c.fail(path, err)
	}
	return fn
}

func (c *compiler) handlers(path string, names []string) []domain.ExceptionHandler {
	if c.ignoreCallbacks {
		return nil
	}
	var out []domain.ExceptionHandler
	for _, name := range names {
		fn, err := c.registry.Handler(name)
		if err != nil {
			c.fail(path, err)
			continue
		}
		out = append(out, fn)
	}
	return out
}

func (c *compiler) parsers(names []string) []domain.Converter {
	var out []domain.Converter
	for _, name := range names {
		if name == DefaultParser {
			out = append(out, schema.Converter())
			continue
		}
		if c.ignoreCallbacks {
			continue
		}
		fn, err := c.registry.Converter(name)
		if err != nil {
			c.fail("parsers", err)
			continue
		}
		out = append(out, fn)
	}
	return out
}

func nodeLabel(d dto.NodeDocument) string {
	switch {
	case d.Name != "":
		return d.Name
	case d.ID != "":
		return d.ID
	case len(d.Filters) > 0:
		return d.Filters[0]
	}
	return "?"
}
