package runtime_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/aretw0/argtree/internal/runtime"
	"github.com/aretw0/argtree/pkg/domain"
	"github.com/aretw0/argtree/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testSchema mirrors the canonical "unit-test" command used across the suite.
func testSchema(impl domain.Implementation) *domain.Schema {
	return &domain.Schema{
		Name:    "unit-test",
		Parsers: []domain.Converter{schema.Converter()},
		Children: []*domain.Node{
			{
				Kind:    domain.KindTask,
				Name:    "test",
				Filters: domain.Literals("test", "t"),
				Execute: impl,
				Children: []*domain.Node{
					{Kind: domain.KindFlag, Name: "local", Filters: domain.Literals("--local", "-l")},
					{Kind: domain.KindFlag, Name: "!v2", Filters: domain.Literals("--v2")},
					{Kind: domain.KindParam, Name: "name", Format: "string", Filters: domain.Literals("--name=", "-n=")},
				},
			},
		},
	}
}

func run(t *testing.T, s *domain.Schema, argv ...string) *domain.Result {
	t.Helper()
	res, err := runtime.NewEngine(s).Run(context.Background(), argv, "/tmp")
	require.NoError(t, err)
	return res
}

func TestEngine_SingleTask(t *testing.T) {
	called := false
	impl := func(context.Context, *domain.Result) error {
		called = true
		return nil
	}

	res := run(t, testSchema(impl), "t")

	assert.Equal(t, []string{"test"}, res.Tasks)
	assert.Empty(t, res.Errors)
	require.NotNil(t, res.Execute)
	require.NoError(t, res.Execute(context.Background(), res))
	assert.True(t, called, "adopted implementation must be the task's")
}

func TestEngine_EndToEnd(t *testing.T) {
	res := run(t, testSchema(nil), "test", "-l", "--name=test")

	assert.Equal(t, domain.Arguments{"local": true, "name": "test"}, res.Args)
	assert.Equal(t, []string{"test"}, res.Tasks)
	assert.Empty(t, res.Errors)
	assert.False(t, res.Failed())
	assert.NoError(t, res.Err())
	assert.Equal(t, "unit-test", res.Schema)
	assert.Equal(t, "/tmp", res.Cwd)
	assert.Equal(t, []string{"test", "-l", "--name=test"}, res.Argv)

	require.Len(t, res.Trace, 3)
	assert.Equal(t, domain.TraceEntry{Index: 0, Token: "test", Name: "test", Kind: domain.KindTask}, res.Trace[0])
	assert.Equal(t, domain.KindFlag, res.Trace[1].Kind)
	assert.Equal(t, "name", res.Trace[2].Name)
}

func TestEngine_NegatedFlag(t *testing.T) {
	res := run(t, testSchema(nil), "test", "--v2")
	assert.Equal(t, domain.Arguments{"v2": false}, res.Args)
}

func TestEngine_UnmatchedAccumulates(t *testing.T) {
	handler := func(context.Context, *domain.Result) (bool, error) { return false, nil }
	s := testSchema(nil)
	s.Exception = []domain.ExceptionHandler{handler}

	res := run(t, s, "test", "-l", "--name=test", "extra", "more")

	assert.Equal(t, []domain.ArgumentError{
		{Index: 4, Argument: "extra"},
		{Index: 5, Argument: "more"},
	}, res.Errors)
	assert.True(t, res.Failed())
	assert.True(t, errors.Is(res.Err(), domain.ErrUnmatchedArgument))
	assert.Equal(t, domain.Arguments{"local": true, "name": "test"}, res.Args)
	assert.Len(t, res.Exception, 1)
	assert.False(t, res.Trace[3].Matched())
}

func TestEngine_StopOnUnmatched(t *testing.T) {
	eng := runtime.NewEngine(testSchema(nil), runtime.WithStopOnUnmatched(true))
	res, err := eng.Run(context.Background(), []string{"test", "extra", "-l"}, "")
	require.NoError(t, err)

	assert.Equal(t, []domain.ArgumentError{{Index: 2, Argument: "extra"}}, res.Errors)
	assert.NotContains(t, res.Args, "local")
	assert.Len(t, res.Trace, 2)
}

func TestEngine_Conversions(t *testing.T) {
	s := &domain.Schema{
		Parsers: []domain.Converter{schema.Converter()},
		Children: []*domain.Node{
			{
				Kind:    domain.KindTask,
				Name:    "test",
				Filters: domain.Literals("test", "t"),
				Children: []*domain.Node{
					{Kind: domain.KindParam, Name: "amount", Format: "integer", Filters: domain.Literals("--amount=", "-a=")},
					{Kind: domain.KindValue, Name: "position", Format: "number"},
				},
			},
			{
				Kind:    domain.KindTask,
				Name:    "bools",
				Filters: domain.Literals("bools"),
				Children: []*domain.Node{
					{Kind: domain.KindValue, Name: "v1", Format: "boolean"},
					{Kind: domain.KindValue, Name: "v2", Format: "boolean"},
					{Kind: domain.KindValue, Name: "v3", Format: "boolean"},
				},
			},
		},
	}

	t.Run("numbers", func(t *testing.T) {
		res := run(t, s, "test", "4.5", "--amount=41")
		assert.Equal(t, domain.Arguments{"position": 4.5, "amount": 41}, res.Args)
	})

	t.Run("booleans", func(t *testing.T) {
		res := run(t, s, "bools", "YES", "false", "0")
		assert.Equal(t, domain.Arguments{"v1": true, "v2": false, "v3": false}, res.Args)
	})

	t.Run("malformed number aborts", func(t *testing.T) {
		_, err := runtime.NewEngine(s).Run(context.Background(), []string{"test", "--amount=lots"}, "")
		var convErr *schema.ConversionError
		require.ErrorAs(t, err, &convErr)
		assert.Equal(t, "amount", convErr.Name)
	})
}

func TestEngine_RawWithoutParsers(t *testing.T) {
	s := &domain.Schema{
		Children: []*domain.Node{
			{Kind: domain.KindParam, Name: "count", Format: "integer", Filters: domain.Literals("--count=")},
		},
	}
	res := run(t, s, "--count=3")
	assert.Equal(t, domain.Arguments{"count": "3"}, res.Args)
}

func TestEngine_ExtraConverters(t *testing.T) {
	s := &domain.Schema{
		Children: []*domain.Node{
			{Kind: domain.KindValue, Name: "file", Format: "path"},
		},
	}
	pathConv := func(n *domain.Node, raw string) (any, bool, error) {
		if n.Format != "path" {
			return nil, false, nil
		}
		return "/abs/" + raw, true, nil
	}

	res, err := runtime.NewEngine(s, runtime.WithConverters(pathConv)).Run(context.Background(), []string{"a.txt"}, "")
	require.NoError(t, err)
	assert.Equal(t, "/abs/a.txt", res.Args["file"])
}

func TestEngine_PositionalIndex(t *testing.T) {
	s := &domain.Schema{
		Children: []*domain.Node{
			{Kind: domain.KindFlag, Name: "verbose", Filters: domain.Literals("-v")},
			{Kind: domain.KindValue, Name: "first", Index: domain.At(1)},
			{Kind: domain.KindValue, Name: "third", Index: domain.At(3)},
		},
	}

	res := run(t, s, "a", "-v", "c")
	assert.Equal(t, domain.Arguments{"first": "a", "verbose": true, "third": "c"}, res.Args)
	assert.Empty(t, res.Errors)

	res = run(t, s, "-v", "b")
	assert.Equal(t, []domain.ArgumentError{{Index: 2, Argument: "b"}}, res.Errors)
}

func TestEngine_IndexedBy(t *testing.T) {
	s := &domain.Schema{
		Children: []*domain.Node{
			{Kind: domain.KindFlag, Name: "verbose", Filters: domain.Literals("-v"), Inherit: true},
			{
				Kind:    domain.KindGroup,
				ID:      "group-id",
				Filters: domain.Literals("--target"),
				Inherit: true,
				Children: []*domain.Node{
					{Kind: domain.KindValue, Name: "host", Index: domain.At(1), IndexedBy: "group-id"},
					{Kind: domain.KindValue, Name: "port", Index: domain.At(3), IndexedBy: "group-id"},
				},
			},
		},
	}

	t.Run("slot right after the reference", func(t *testing.T) {
		res := run(t, s, "--target", "alpha")
		assert.Equal(t, domain.Arguments{"host": "alpha"}, res.Args)
		assert.Empty(t, res.Errors)
	})

	t.Run("counter rebased after reference", func(t *testing.T) {
		res := run(t, s, "-v", "--target", "alpha", "-v", "8080")
		assert.Equal(t, domain.Arguments{"verbose": true, "host": "alpha", "port": "8080"}, res.Args)
		assert.Empty(t, res.Errors)
	})

	t.Run("most recent reference wins", func(t *testing.T) {
		res := run(t, s, "--target", "alpha", "--target", "beta")
		assert.Equal(t, "beta", res.Args["host"])
		assert.Empty(t, res.Errors)
	})

	t.Run("slot not satisfied later", func(t *testing.T) {
		res := run(t, s, "--target", "alpha", "beta")
		assert.Equal(t, []domain.ArgumentError{{Index: 3, Argument: "beta"}}, res.Errors)
	})
}

func TestEngine_IndexedValueTakesPrecedence(t *testing.T) {
	s := &domain.Schema{
		Children: []*domain.Node{
			{Kind: domain.KindValue, Name: "rest"},
			{Kind: domain.KindValue, Name: "first", Index: domain.At(1)},
		},
	}

	t.Run("open slot wins over declaration order", func(t *testing.T) {
		res := run(t, s, "x")
		assert.Equal(t, domain.Arguments{"first": "x"}, res.Args)
		assert.Empty(t, res.Errors)
	})

	t.Run("unindexed value takes the next token", func(t *testing.T) {
		res := run(t, s, "x", "y")
		assert.Equal(t, domain.Arguments{"first": "x", "rest": "y"}, res.Args)
		assert.Empty(t, res.Errors)
	})
}

func TestEngine_ScopesAndInheritance(t *testing.T) {
	s := &domain.Schema{
		Children: []*domain.Node{
			{Kind: domain.KindFlag, Name: "verbose", Filters: domain.Literals("--verbose"), Inherit: true},
			{Kind: domain.KindFlag, Name: "quiet", Filters: domain.Literals("--quiet")},
			{
				Kind:    domain.KindTask,
				Name:    "remote",
				Filters: domain.Literals("remote"),
				Children: []*domain.Node{
					{Kind: domain.KindFlag, Name: "force", Filters: domain.Literals("-f")},
					{
						Kind:     domain.KindGroup,
						Filters:  domain.Literals("add"),
						Children: []*domain.Node{{Kind: domain.KindValue, Name: "remote-name"}},
					},
					{
						Kind:     domain.KindFlag,
						Name:     "list",
						Filters:  domain.Literals("list"),
						Children: []*domain.Node{{Kind: domain.KindFlag, Name: "long", Filters: domain.Literals("-l")}},
					},
				},
			},
		},
	}

	t.Run("inherited flag reachable from depth", func(t *testing.T) {
		res := run(t, s, "remote", "add", "origin", "--verbose")
		assert.Equal(t, domain.Arguments{"remote-name": "origin", "verbose": true}, res.Args)
		assert.Equal(t, []string{"remote"}, res.Tasks)
		assert.Empty(t, res.Errors)
	})

	t.Run("non-inherited flag unreachable once a task is entered", func(t *testing.T) {
		res := run(t, s, "remote", "--quiet")
		assert.Equal(t, []domain.ArgumentError{{Index: 2, Argument: "--quiet"}}, res.Errors)
	})

	t.Run("group replaces tail", func(t *testing.T) {
		res := run(t, s, "remote", "add", "origin", "-f")
		assert.Equal(t, []domain.ArgumentError{{Index: 4, Argument: "-f"}}, res.Errors)
		require.Len(t, res.Stack, 3)
		assert.Equal(t, domain.KindGroup, res.Stack[2].Kind)
	})

	t.Run("flag with children opens a scope", func(t *testing.T) {
		res := run(t, s, "remote", "list", "-l")
		assert.Equal(t, domain.Arguments{"list": true, "long": true}, res.Args)
		assert.Empty(t, res.Errors)
	})
}

func TestEngine_LastTaskWins(t *testing.T) {
	var calls []string
	mk := func(name string) domain.Implementation {
		return func(context.Context, *domain.Result) error {
			calls = append(calls, name)
			return nil
		}
	}
	h := func(context.Context, *domain.Result) (bool, error) { return true, nil }

	s := &domain.Schema{
		Execute:   mk("root"),
		Exception: []domain.ExceptionHandler{h, nil},
		Children: []*domain.Node{
			{
				Kind:      domain.KindTask,
				Name:      "outer",
				Filters:   domain.Literals("outer"),
				Execute:   mk("outer"),
				Exception: []domain.ExceptionHandler{h},
				Children: []*domain.Node{
					{Kind: domain.KindTask, Name: "inner", Filters: domain.Literals("inner"), Execute: mk("inner")},
					{Kind: domain.KindTask, Name: "bare", Filters: domain.Literals("bare")},
				},
			},
		},
	}

	res := run(t, s)
	require.NoError(t, res.Execute(context.Background(), res))

	res = run(t, s, "outer", "inner")
	assert.Equal(t, []string{"outer", "inner"}, res.Tasks)
	assert.Len(t, res.Exception, 2)
	require.NoError(t, res.Execute(context.Background(), res))
	assert.Equal(t, []string{"root", "inner"}, calls)

	res = run(t, s, "outer", "bare")
	assert.Nil(t, res.Execute, "a task without an implementation replaces the adopted one")
}

func TestEngine_Hooks(t *testing.T) {
	var matches, tasks, unmatched int
	hooks := domain.LifecycleHooks{
		OnMatch:     func(context.Context, *domain.MatchEvent) { matches++ },
		OnTaskEnter: func(_ context.Context, e *domain.MatchEvent) {
			tasks++
			assert.Equal(t, "test", e.Node)
		},
		OnUnmatched: func(_ context.Context, e *domain.UnmatchedEvent) {
			unmatched++
			assert.Equal(t, 3, e.Index)
		},
	}

	eng := runtime.NewEngine(testSchema(nil), runtime.WithLifecycleHooks(hooks))
	_, err := eng.Run(context.Background(), []string{"test", "-l", "nope"}, "")
	require.NoError(t, err)

	assert.Equal(t, 2, matches)
	assert.Equal(t, 1, tasks)
	assert.Equal(t, 1, unmatched)
}

type runKey struct{}

func TestEngine_HooksReceiveRunContext(t *testing.T) {
	var mu sync.Mutex
	seen := map[string][]any{}
	record := func(ctx context.Context, hook string) {
		mu.Lock()
		defer mu.Unlock()
		seen[hook] = append(seen[hook], ctx.Value(runKey{}))
	}
	hooks := domain.LifecycleHooks{
		OnMatch:     func(ctx context.Context, _ *domain.MatchEvent) { record(ctx, "match") },
		OnTaskEnter: func(ctx context.Context, _ *domain.MatchEvent) { record(ctx, "task") },
		OnUnmatched: func(ctx context.Context, _ *domain.UnmatchedEvent) { record(ctx, "unmatched") },
	}
	eng := runtime.NewEngine(testSchema(nil), runtime.WithLifecycleHooks(hooks))

	var wg sync.WaitGroup
	for _, id := range []string{"a", "b"} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ctx := context.WithValue(context.Background(), runKey{}, id)
			_, err := eng.Run(ctx, []string{"test", "nope"}, "")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.ElementsMatch(t, []any{"a", "b"}, seen["match"])
	assert.ElementsMatch(t, []any{"a", "b"}, seen["task"])
	assert.ElementsMatch(t, []any{"a", "b"}, seen["unmatched"])
}

func TestEngine_Idempotent(t *testing.T) {
	s := testSchema(nil)
	argv := []string{"test", "-l", "--name=test", "extra"}

	a, err := runtime.NewEngine(s).Run(context.Background(), argv, "/w")
	require.NoError(t, err)
	b, err := runtime.NewEngine(s).Run(context.Background(), argv, "/w")
	require.NoError(t, err)

	assert.Equal(t, a.Args, b.Args)
	assert.Equal(t, a.Tasks, b.Tasks)
	assert.Equal(t, a.Trace, b.Trace)
	assert.Equal(t, a.Errors, b.Errors)

	// Reusing one engine must not leak state between runs either.
	eng := runtime.NewEngine(s)
	first, _ := eng.Run(context.Background(), []string{"test", "-l"}, "")
	second, _ := eng.Run(context.Background(), []string{"test"}, "")
	assert.Equal(t, domain.Arguments{"local": true}, first.Args)
	assert.Empty(t, second.Args)
}
