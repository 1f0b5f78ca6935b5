package tui

import (
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

// Renderer turns help markdown into printable text.
type Renderer func(markdown string) (string, error)

var isTerminalFn = term.IsTerminal

// Plain returns the markdown unchanged.
func Plain(markdown string) (string, error) {
	return markdown, nil
}

// NewRenderer returns a Renderer that renders markdown using glamour.
// It automatically detects a light or dark background.
func NewRenderer() Renderer {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
	)
	if err != nil {
		return Plain
	}

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}

// RendererFor picks glamour when w is a terminal and plain text otherwise,
// so piped help stays free of escape sequences.
func RendererFor(w io.Writer) Renderer {
	if f, ok := w.(*os.File); ok && isTerminalFn(int(f.Fd())) {
		return NewRenderer()
	}
	return Plain
}
