package export

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/diecast"
	"github.com/agentstation/diecast/pkg/catalogs"
	"github.com/agentstation/diecast/pkg/logging"
)

func TestWriteMarkdown(t *testing.T) {
	ctx := context.Background()
	g, err := diecast.New(ctx,
		diecast.WithCatalog(catalogs.TestCatalog(t)),
		diecast.WithLogger(logging.NewNopLogger()),
	)
	require.NoError(t, err)

	_, err = g.MarkOwned(ctx, "2025-rx7.png")
	require.NoError(t, err)
	_, err = g.Increment(ctx, "2025-rx7.png")
	require.NoError(t, err)

	res, err := g.Owned(ctx, diecast.ListRequest{})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteMarkdown(&buf, "owned collection", res))

	out := buf.String()
	assert.Contains(t, out, "# Owned Collection")
	assert.Contains(t, out, "Total owned: 2")
	assert.Contains(t, out, "Spares: 1")
	assert.Contains(t, out, "## 2025 - A (1 car)")
	assert.Contains(t, out, "Mazda RX-7")
	assert.Contains(t, out, "2 (+1)")
}

func TestWriteMarkdownEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteMarkdown(&buf, "wanted", &diecast.CollectionResult{}))
	assert.Contains(t, buf.String(), "# Wanted")
	assert.Contains(t, buf.String(), "No cars.")
}
