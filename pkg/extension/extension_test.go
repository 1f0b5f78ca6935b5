package extension_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/aretw0/argtree/internal/presentation/tui"
	"github.com/aretw0/argtree/internal/runtime"
	"github.com/aretw0/argtree/pkg/domain"
	"github.com/aretw0/argtree/pkg/extension"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func helpSchema() *domain.Schema {
	return &domain.Schema{
		Name: "app",
		Help: "root help",
		Children: []*domain.Node{
			{
				Kind:    domain.KindTask,
				Name:    "build",
				Filters: domain.Literals("build"),
				Help:    "build help",
				Children: []*domain.Node{
					{Kind: domain.KindTask, Name: "quiet", Filters: domain.Literals("quiet")},
					{Kind: domain.KindFlag, Name: "fast", Filters: domain.Literals("--fast")},
				},
			},
		},
	}
}

func dispatch(t *testing.T, s *domain.Schema, ext domain.Extension, argv ...string) *domain.Result {
	t.Helper()
	res, err := runtime.NewEngine(s.Resolve(ext)).Run(context.Background(), argv, "")
	require.NoError(t, err)
	return res
}

func TestHelper_Task(t *testing.T) {
	tests := []struct {
		name string
		argv []string
		want string
	}{
		{"root", []string{"--help"}, "root help\n"},
		{"task", []string{"build", "-h"}, "build help\n"},
		{"task without help falls back", []string{"build", "quiet", "--help"}, "build help\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			ext := extension.Helper(extension.WithOutput(&buf))

			res := dispatch(t, helpSchema(), ext, tt.argv...)
			require.Empty(t, res.Errors)
			assert.Equal(t, "help", res.Task())
			require.NotNil(t, res.Execute)

			require.NoError(t, res.Execute(context.Background(), res))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestHelper_ExceptionHandler(t *testing.T) {
	var buf bytes.Buffer
	ext := extension.Helper(extension.WithOutput(&buf))

	res := dispatch(t, helpSchema(), ext, "build", "--slow")
	require.Len(t, res.Errors, 1)
	require.Len(t, res.Exception, 1)

	next, err := res.Exception[0](context.Background(), res)
	require.NoError(t, err)
	assert.True(t, next)
	assert.Equal(t, "build help\n", buf.String())
}

func TestHelper_HelpFuncAndRenderer(t *testing.T) {
	var buf bytes.Buffer
	called := false

	s := helpSchema()
	s.Children[0].Help = ""
	s.Children[0].HelpFunc = func(context.Context, *domain.Result) error {
		called = true
		return nil
	}

	res := dispatch(t, s, extension.Helper(extension.WithOutput(&buf)), "build", "-h")
	require.NoError(t, res.Execute(context.Background(), res))
	assert.True(t, called)
	assert.Empty(t, buf.String())

	upper := tui.Renderer(func(string) (string, error) { return "RENDERED", nil })
	res = dispatch(t, helpSchema(), extension.Helper(extension.WithOutput(&buf), extension.WithRenderer(upper)), "-h")
	require.NoError(t, res.Execute(context.Background(), res))
	assert.Equal(t, "RENDERED\n", buf.String())

	failing := tui.Renderer(func(string) (string, error) { return "", errors.New("boom") })
	res = dispatch(t, helpSchema(), extension.Helper(extension.WithRenderer(failing)), "x")
	_, err := res.Exception[0](context.Background(), res)
	assert.ErrorContains(t, err, "boom")
}

func TestBasic(t *testing.T) {
	s := helpSchema()
	s.Children[0].Children = append(s.Children[0].Children,
		&domain.Node{Kind: domain.KindParam, Name: "jobs", Format: "int", Filters: domain.Literals("-j")})

	var buf bytes.Buffer
	res := dispatch(t, s, extension.Basic(extension.WithOutput(&buf)), "build", "-j8")
	assert.Empty(t, res.Errors)
	assert.Equal(t, 8, res.Args["jobs"])

	assert.Len(t, extension.Parser().Parsers, 1)
}
