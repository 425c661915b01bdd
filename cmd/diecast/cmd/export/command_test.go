package export

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/diecast"
	"github.com/agentstation/diecast/internal/cmd/application"
	"github.com/agentstation/diecast/pkg/catalogs"
	"github.com/agentstation/diecast/pkg/collection"
	"github.com/agentstation/diecast/pkg/logging"
)

func setup(t *testing.T, format string) *application.Mock {
	t.Helper()
	ctx := context.Background()
	g, err := diecast.New(ctx,
		diecast.WithCatalog(catalogs.TestCatalog(t)),
		diecast.WithLogger(logging.NewNopLogger()),
	)
	require.NoError(t, err)
	_, err = g.MarkOwned(ctx, "2025-rx7.png")
	require.NoError(t, err)
	_, err = g.AddWanted(ctx, "2024-sth.png")
	require.NoError(t, err)

	return &application.Mock{
		GarageFunc:       func() (*diecast.Garage, error) { return g, nil },
		OutputFormatFunc: func() string { return format },
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

func TestExportFormats(t *testing.T) {
	tests := []struct {
		format string
		parse  string
	}{
		{"", "json"},
		{"table", "json"},
		{"json", "json"},
		{"yaml", "yaml"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			out, err := run(t, setup(t, tt.format))
			require.NoError(t, err)

			exp, err := collection.ParseExport([]byte(out), tt.parse)
			require.NoError(t, err)
			require.Len(t, exp.OwnedCars, 1)
			require.Len(t, exp.WantedCars, 1)
			assert.Equal(t, "2025-rx7.png", exp.OwnedCars[0].Image())
		})
	}
}

func TestExportMarkdown(t *testing.T) {
	out, err := run(t, setup(t, "markdown"))
	require.NoError(t, err)
	assert.Contains(t, out, "# Owned Collection")
	assert.Contains(t, out, "Mazda RX-7")

	out, err = run(t, setup(t, "md"), "--wanted")
	require.NoError(t, err)
	assert.Contains(t, out, "# Wanted Cars")
	assert.Contains(t, out, "Datsun 510")
}

func TestExportToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "collection.json")
	out, err := run(t, setup(t, "json"), "-f", path)
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"ownedCars"`)
}

func TestExportUnsupportedFormat(t *testing.T) {
	_, err := run(t, setup(t, "csv"))
	assert.Error(t, err)
}
