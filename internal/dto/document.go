package dto

import (
	"github.com/aretw0/argtree/pkg/domain"
)

// SchemaDocument is the on-disk shape of a schema file.
// It uses "mapstructure" tags so YAML and JSON documents decode through the same generic map.
// Callbacks (execute, exception, help_func, parsers) are names resolved through a registry.
type SchemaDocument struct {
	Name      string         `json:"name" yaml:"name" mapstructure:"name"`
	Help      string         `json:"help,omitempty" yaml:"help,omitempty" mapstructure:"help"`
	HelpFunc  string         `json:"help_func,omitempty" yaml:"help_func,omitempty" mapstructure:"help_func"`
	Execute   string         `json:"execute,omitempty" yaml:"execute,omitempty" mapstructure:"execute"`
	Exception []string       `json:"exception,omitempty" yaml:"exception,omitempty" mapstructure:"exception"`
	Parsers   []string       `json:"parsers,omitempty" yaml:"parsers,omitempty" mapstructure:"parsers"`
	Children  []NodeDocument `json:"children,omitempty" yaml:"children,omitempty" mapstructure:"children"`
}

// NodeDocument describes one schema node. Kind defaults to "task".
type NodeDocument struct {
	Kind string `json:"kind,omitempty" yaml:"kind,omitempty" mapstructure:"kind"`
	ID   string `json:"id,omitempty" yaml:"id,omitempty" mapstructure:"id"`
	Name string `json:"name,omitempty" yaml:"name,omitempty" mapstructure:"name"`

	// Filters are literal strings; Patterns are regular expressions.
	Filters  []string `json:"filters,omitempty" yaml:"filters,omitempty" mapstructure:"filters"`
	Patterns []string `json:"patterns,omitempty" yaml:"patterns,omitempty" mapstructure:"patterns"`

	Format    string `json:"format,omitempty" yaml:"format,omitempty" mapstructure:"format"`
	Index     *int   `json:"index,omitempty" yaml:"index,omitempty" mapstructure:"index"`
	IndexedBy string `json:"indexed_by,omitempty" yaml:"indexed_by,omitempty" mapstructure:"indexed_by"`
	Inherit   bool   `json:"inherit,omitempty" yaml:"inherit,omitempty" mapstructure:"inherit"`

	Help      string   `json:"help,omitempty" yaml:"help,omitempty" mapstructure:"help"`
	HelpFunc  string   `json:"help_func,omitempty" yaml:"help_func,omitempty" mapstructure:"help_func"`
	Execute   string   `json:"execute,omitempty" yaml:"execute,omitempty" mapstructure:"execute"`
	Exception []string `json:"exception,omitempty" yaml:"exception,omitempty" mapstructure:"exception"`

	Children []NodeDocument `json:"children,omitempty" yaml:"children,omitempty" mapstructure:"children"`
}

// FromSchema describes an in-memory schema as a document.
// Callbacks have no names, so only the tree shape and static help survive.
// Predicate filters are rendered by their String form.
func FromSchema(s *domain.Schema) SchemaDocument {
	return SchemaDocument{
		Name:     s.Name,
		Help:     s.Help,
		Children: fromNodes(s.Children),
	}
}

func fromNodes(nodes []*domain.Node) []NodeDocument {
	if len(nodes) == 0 {
		return nil
	}
	docs := make([]NodeDocument, 0, len(nodes))
	for _, n := range nodes {
		if n == nil {
			continue
		}
		doc := NodeDocument{
			Kind:      n.Kind.String(),
			ID:        n.ID,
			Name:      n.Name,
			Format:    n.Format,
			Index:     n.Index,
			IndexedBy: n.IndexedBy,
			Inherit:   n.Inherit,
			Help:      n.Help,
			Children:  fromNodes(n.Children),
		}
		for _, f := range n.Filters {
			switch f := f.(type) {
			case domain.Literal:
				doc.Filters = append(doc.Filters, string(f))
			case domain.Pattern:
				if f.Regexp != nil {
					doc.Patterns = append(doc.Patterns, f.Regexp.String())
				}
			case nil:
			default:
				doc.Filters = append(doc.Filters, f.String())
			}
		}
		docs = append(docs, doc)
	}
	return docs
}
