package registry_test

import (
	"context"
	"testing"

	"github.com/aretw0/argtree/pkg/domain"
	"github.com/aretw0/argtree/pkg/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Implementations(t *testing.T) {
	reg := registry.NewRegistry()

	var got string
	reg.Register("deploy", func(_ context.Context, res *domain.Result) error {
		got = res.Args.String("env")
		return nil
	})
	reg.Register("build", func(context.Context, *domain.Result) error { return nil })

	err := reg.Execute(context.Background(), "deploy", &domain.Result{Args: domain.Arguments{"env": "prod"}})
	require.NoError(t, err)
	assert.Equal(t, "prod", got)

	assert.Equal(t, []string{"build", "deploy"}, reg.Names())

	err = reg.Execute(context.Background(), "missing", &domain.Result{})
	assert.EqualError(t, err, "implementation not found: missing")
}

func TestRegistry_Overwrite(t *testing.T) {
	reg := registry.NewRegistry()
	calls := 0
	reg.Register("x", func(context.Context, *domain.Result) error {
		calls++
		return nil
	})
	reg.Register("x", func(context.Context, *domain.Result) error {
		calls += 10
		return nil
	})

	require.NoError(t, reg.Execute(context.Background(), "x", &domain.Result{}))
	assert.Equal(t, 10, calls)
}

func TestRegistry_Lookups(t *testing.T) {
	reg := registry.NewRegistry()
	reg.RegisterHandler("usage", func(context.Context, *domain.Result) (bool, error) { return false, nil })
	reg.RegisterHelp("man", func(context.Context, *domain.Result) error { return nil })
	reg.RegisterConverter("upper", func(*domain.Node, string) (any, bool, error) { return nil, false, nil })

	_, err := reg.Handler("usage")
	assert.NoError(t, err)
	_, err = reg.Help("man")
	assert.NoError(t, err)
	_, err = reg.Converter("upper")
	assert.NoError(t, err)

	_, err = reg.Handler("nope")
	assert.ErrorIs(t, err, domain.ErrNoImplementation)
	_, err = reg.Help("nope")
	assert.Error(t, err)
	_, err = reg.Converter("nope")
	assert.Error(t, err)
}
