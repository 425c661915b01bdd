package browse

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/diecast"
	"github.com/agentstation/diecast/internal/cmd/application"
	"github.com/agentstation/diecast/pkg/catalogs"
	"github.com/agentstation/diecast/pkg/errors"
	"github.com/agentstation/diecast/pkg/logging"
	"github.com/agentstation/diecast/pkg/projection"
)

func newMock(t *testing.T, format string) *application.Mock {
	t.Helper()
	g, err := diecast.New(context.Background(),
		diecast.WithCatalog(catalogs.TestCatalog(t)),
		diecast.WithLogger(logging.NewNopLogger()),
	)
	require.NoError(t, err)
	return &application.Mock{
		GarageFunc:       func() (*diecast.Garage, error) { return g, nil },
		OutputFormatFunc: func() string { return format },
	}
}

func run(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestSeriesCommand(t *testing.T) {
	app := newMock(t, "json")

	out, err := run(t, NewSeriesCommand(app))
	require.NoError(t, err)
	var years []string
	require.NoError(t, json.Unmarshal([]byte(out), &years))
	assert.Equal(t, []string{"2023", "2024", "2025", "2026"}, years)

	out, err = run(t, NewSeriesCommand(app), "2024")
	require.NoError(t, err)
	var series []string
	require.NoError(t, json.Unmarshal([]byte(out), &series))
	assert.Equal(t, []string{"HW J-Imports", "HW Surf", "Muscle Mania"}, series)

	out, err = run(t, NewSeriesCommand(app), "2024", "HW J-Imports")
	require.NoError(t, err)
	var cards []projection.Card
	require.NoError(t, json.Unmarshal([]byte(out), &cards))
	require.Len(t, cards, 2)
	// "1/10" sorts with "#1" by number, then by color
	assert.Equal(t, "Spectraflame Purple", cards[0].Car.Color)
	assert.Equal(t, "White", cards[1].Car.Color)

	_, err = run(t, NewSeriesCommand(app), "1999")
	assert.True(t, errors.IsNotFound(err))
}

func TestCaseCommand(t *testing.T) {
	out, err := run(t, NewCaseCommand(newMock(t, "table")), "2025", "a")
	require.NoError(t, err)
	assert.Contains(t, out, "Mazda RX-7")
	assert.Contains(t, out, "Bone Shaker")

	_, err = run(t, NewCaseCommand(newMock(t, "table")), "2025", "Z")
	assert.True(t, errors.IsNotFound(err))
}

func TestShowCommand(t *testing.T) {
	out, err := run(t, NewShowCommand(newMock(t, "json")), "2024-sth.png")
	require.NoError(t, err)

	var card projection.Card
	require.NoError(t, json.Unmarshal([]byte(out), &card))
	assert.Equal(t, "Datsun 510", card.Car.Name)
	assert.True(t, card.IsSTH)
}
