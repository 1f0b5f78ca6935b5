package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/argtree/pkg/domain"
)

// Overlay contains dispatch data to highlight on the graph.
type Overlay struct {
	// Matched holds the identities (ID, or name) of nodes that claimed a token.
	Matched []string
	// Current is the identity of the innermost entered task.
	Current string
}

// OverlayFor builds an overlay from a dispatch result.
func OverlayFor(res *domain.Result) *Overlay {
	o := &Overlay{Current: res.Task()}
	for _, e := range res.Trace {
		if !e.Matched() {
			continue
		}
		id := e.NodeID
		if id == "" {
			id = e.Name
		}
		o.Matched = append(o.Matched, id)
	}
	return o
}

// GenerateMermaid produces a Mermaid flowchart of the schema tree.
// It applies semantic styling:
// - Root: ((Circle))
// - Task: [[Subroutine]]
// - Flag and Param: [/Parallelogram/]
// - Value: ([Stadium])
// - Group: [Rectangle]
// Inherited children are linked with dotted arrows. Overlay styles are applied if provided.
func GenerateMermaid(s *domain.Schema, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	rootName := s.Name
	if rootName == "" {
		rootName = "root"
	}
	fmt.Fprintf(&sb, "    n0((\"%s\"))\n", escape(rootName))

	ids := make(map[string][]string) // ID or name -> mermaid ids
	var walk func(parent string, nodes []*domain.Node)
	walk = func(parent string, nodes []*domain.Node) {
		for i, node := range nodes {
			if node == nil {
				continue
			}
			id := fmt.Sprintf("%s_%d", parent, i)
			opener, closer := shape(node.Kind)
			fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", id, opener, escape(label(node)), closer)

			arrow := "-->"
			if node.Inherit {
				arrow = "-. inherit .->"
			}
			fmt.Fprintf(&sb, "    %s %s %s\n", parent, arrow, id)

			if node.ID != "" {
				ids[node.ID] = append(ids[node.ID], id)
			}
			if node.Name != "" && node.Name != node.ID {
				ids[node.Name] = append(ids[node.Name], id)
			}
			walk(id, node.Children)
		}
	}
	walk("n0", s.Children)

	// Apply Overlay Styles
	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef matched fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		seen := make(map[string]bool)
		for _, identity := range overlay.Matched {
			for _, id := range ids[identity] {
				if !seen[id] {
					seen[id] = true
					fmt.Fprintf(&sb, "    class %s matched;\n", id)
				}
			}
		}

		if overlay.Current != "" {
			for _, id := range ids[overlay.Current] {
				fmt.Fprintf(&sb, "    class %s current;\n", id)
			}
		}
	}

	return sb.String()
}

func shape(kind domain.Kind) (string, string) {
	switch kind {
	case domain.KindTask:
		return "[[", "]]"
	case domain.KindFlag, domain.KindParam:
		return "[/", "/]"
	case domain.KindValue:
		return "([", "])"
	}
	return "[", "]"
}

func label(n *domain.Node) string {
	name := n.Name
	if name == "" {
		name = n.ID
	}
	if len(n.Filters) == 0 {
		return fmt.Sprintf("%s: %s", n.Kind, name)
	}
	filters := make([]string, len(n.Filters))
	for i, f := range n.Filters {
		if f == nil {
			filters[i] = "<nil>"
			continue
		}
		filters[i] = f.String()
	}
	return fmt.Sprintf("%s: %s <br/> %s", n.Kind, name, strings.Join(filters, " | "))
}

// escape replaces double quotes, which would end a Mermaid label.
func escape(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}
