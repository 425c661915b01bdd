package owned

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/diecast"
	"github.com/agentstation/diecast/internal/cmd/application"
	"github.com/agentstation/diecast/pkg/catalogs"
	"github.com/agentstation/diecast/pkg/errors"
	"github.com/agentstation/diecast/pkg/logging"
)

func newGarage(t *testing.T) (*diecast.Garage, *application.Mock) {
	t.Helper()
	g, err := diecast.New(context.Background(),
		diecast.WithCatalog(catalogs.TestCatalog(t)),
		diecast.WithLogger(logging.NewNopLogger()),
	)
	require.NoError(t, err)
	return g, &application.Mock{
		GarageFunc:       func() (*diecast.Garage, error) { return g, nil },
		OutputFormatFunc: func() string { return "table" },
	}
}

func run(t *testing.T, app application.Application, args ...string) (string, error) {
	t.Helper()
	cmd := NewCommand(app)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestOwnedLifecycle(t *testing.T) {
	g, app := newGarage(t)
	store := g.Store()
	const image = "2025-rx7.png"

	out, err := run(t, app, "add", image)
	require.NoError(t, err)
	assert.Contains(t, out, "Owned Mazda RX-7 (2025 A), quantity 1")
	assert.True(t, store.IsOwned(image))

	out, err = run(t, app, "inc", image)
	require.NoError(t, err)
	assert.Contains(t, out, "quantity 2")

	out, err = run(t, app, "set", image, "5")
	require.NoError(t, err)
	assert.Contains(t, out, "quantity 5")

	out, err = run(t, app)
	require.NoError(t, err)
	assert.Contains(t, out, "Mazda RX-7")
	assert.Contains(t, out, "5 (+4)")

	_, err = run(t, app, "set", image, "1")
	require.NoError(t, err)
	out, err = run(t, app, "dec", image)
	require.NoError(t, err)
	assert.Contains(t, out, "Removed "+image)
	assert.False(t, store.IsOwned(image))
}

func TestOwnedToggleAndRemove(t *testing.T) {
	g, app := newGarage(t)
	const image = "2024-deora.png"

	out, err := run(t, app, "toggle", image)
	require.NoError(t, err)
	assert.Contains(t, out, "is now owned")

	out, err = run(t, app, "toggle", image)
	require.NoError(t, err)
	assert.Contains(t, out, "is now not owned")

	_, err = run(t, app, "add", image)
	require.NoError(t, err)
	_, err = run(t, app, "rm", image)
	require.NoError(t, err)
	assert.False(t, g.Store().IsOwned(image))
}

func TestOwnedErrors(t *testing.T) {
	_, app := newGarage(t)

	_, err := run(t, app, "add", "missing.png")
	assert.True(t, errors.IsNotFound(err))

	_, err = run(t, app, "set", "2025-rx7.png", "many")
	assert.True(t, errors.IsValidationError(err))

	_, err = run(t, app, "add")
	assert.Error(t, err)
}

func TestOwnedListFilters(t *testing.T) {
	_, app := newGarage(t)
	for _, image := range []string{"2025-rx7.png", "2023-twin-mill.png"} {
		_, err := run(t, app, "add", image)
		require.NoError(t, err)
	}

	out, err := run(t, app, "list", "--year", "2023")
	require.NoError(t, err)
	assert.Contains(t, out, "Twin Mill")
	assert.NotContains(t, out, "Mazda RX-7")
}
