package extension

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/argtree/internal/presentation/tui"
	"github.com/aretw0/argtree/pkg/domain"
	"github.com/aretw0/argtree/pkg/schema"
)

// HelpOption configures the help routine.
type HelpOption func(*helper)

// WithOutput sets where help is written. Defaults to os.Stdout.
func WithOutput(w io.Writer) HelpOption {
	return func(h *helper) {
		h.out = w
	}
}

// WithRenderer overrides the markdown renderer. Defaults to glamour on a terminal
// and plain text otherwise.
func WithRenderer(r tui.Renderer) HelpOption {
	return func(h *helper) {
		h.render = r
	}
}

type helper struct {
	out    io.Writer
	render tui.Renderer
}

func newHelper(opts []HelpOption) *helper {
	h := &helper{out: os.Stdout}
	for _, opt := range opts {
		opt(h)
	}
	if h.render == nil {
		h.render = tui.RendererFor(h.out)
	}
	return h
}

// print shows the help of the innermost scope that is the root or a task and carries help.
// Scopes without help are skipped, so entering the help task itself shows its parent's.
func (h *helper) print(ctx context.Context, res *domain.Result) error {
	for i := len(res.Stack) - 1; i >= 0; i-- {
		scope := res.Stack[i]
		if i != 0 && scope.Kind != domain.KindTask {
			continue
		}
		if scope.HelpFunc != nil {
			return scope.HelpFunc(ctx, res)
		}
		if scope.Help != "" {
			text, err := h.render(scope.Help)
			if err != nil {
				return fmt.Errorf("failed to render help: %w", err)
			}
			_, err = fmt.Fprintln(h.out, text)
			return err
		}
	}
	return nil
}

// Helper contributes a "help" task matched by --help and -h, and an exception handler
// that prints the same help and hands off to the next handler.
func Helper(opts ...HelpOption) domain.Extension {
	h := newHelper(opts)
	return domain.Extension{
		Name: "helper",
		Children: []*domain.Node{
			{
				Kind:    domain.KindTask,
				Name:    "help",
				Filters: domain.Literals("--help", "-h"),
				Execute: h.print,
			},
		},
		Exception: []domain.ExceptionHandler{
			func(ctx context.Context, res *domain.Result) (bool, error) {
				if err := h.print(ctx, res); err != nil {
					return false, err
				}
				return true, nil
			},
		},
	}
}

// Parser contributes the default converter.
func Parser() domain.Extension {
	return domain.Extension{
		Name:    "parser",
		Parsers: []domain.Converter{schema.Converter()},
	}
}

// Basic is Helper and Parser together.
func Basic(opts ...HelpOption) domain.Extension {
	ext := Helper(opts...)
	ext.Name = "basic"
	ext.Parsers = Parser().Parsers
	return ext
}
