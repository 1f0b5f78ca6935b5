package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/argtree/pkg/domain"
	"github.com/aretw0/argtree/pkg/runner"
	"github.com/muesli/termenv"
)

// PrintTrace writes the dispatch trace as a table, one row per token.
// Claimed tokens are green and unmatched ones red when w supports color.
func PrintTrace(w io.Writer, res *domain.Result) {
	out := termenv.NewOutput(w)
	ok := out.Color("#22c55e")
	bad := out.Color("#f87171")
	dim := out.Color("#94a3b8")

	tokens := make([]string, len(res.Trace))
	width := len("TOKEN")
	for i, e := range res.Trace {
		tokens[i] = runner.SanitizeToken(e.Token)
		if len(tokens[i]) > width {
			width = len(tokens[i])
		}
	}

	header := fmt.Sprintf("%-3s  %-*s  %-6s  %s", "#", width, "TOKEN", "KIND", "NODE")
	fmt.Fprintln(w, out.String(header).Bold())

	for i, e := range res.Trace {
		kind, node := "-", "unmatched"
		color := bad
		if e.Matched() {
			kind, node, color = e.Kind.String(), e.Name, ok
			if e.NodeID != "" && e.NodeID != e.Name {
				node = strings.TrimSpace(e.Name + " (" + e.NodeID + ")")
			}
		}
		row := fmt.Sprintf("%-3d  %-*s  %-6s  %s", e.Index, width, tokens[i], kind, node)
		fmt.Fprintln(w, out.String(row).Foreground(color))
	}

	if len(res.Tasks) > 0 {
		fmt.Fprintln(w, out.String("tasks: "+strings.Join(res.Tasks, " > ")).Foreground(dim))
	}
	for _, err := range res.Errors {
		msg := fmt.Sprintf("error: unexpected argument %q at position %d", runner.SanitizeToken(err.Argument), err.Index)
		fmt.Fprintln(w, out.String(msg).Foreground(bad))
	}
}
