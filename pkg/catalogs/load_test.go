package catalogs

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/diecast/pkg/errors"
)

const sampleJSON = `{
  "2025": {
    "cases": [
      {
        "letter": "A",
        "sth": {"hw_number": 5, "image": "sth.png", "name": "Datsun"},
        "cars": [
          {"name": "Datsun", "image": "sth.png", "series": "HW J-Imports", "series_number": "1/10", "hw_number": 5, "color": "Purple"},
          {"name": "Civic", "image": "civic.png", "series": "HW J-Imports", "series_number": 2, "hw_number": "17", "color": null}
        ]
      }
    ]
  },
  "2019": {}
}`

const sampleYAML = `"2025":
  cases:
    - letter: A
      th:
        hw_number: 17
        image: civic.png
      cars:
        - name: Civic
          image: civic.png
          series: HW J-Imports
          series_number: 2/10
          hw_number: 17
          color: Blue
`

func TestParseJSON(t *testing.T) {
	c, err := Parse([]byte(sampleJSON), FormatJSON)
	require.NoError(t, err)

	kase, ok := c.FindCase("2025", "A")
	require.True(t, ok)
	require.Len(t, kase.Cars, 2)
	assert.Equal(t, Label("5"), kase.Cars[0].HWNumber)
	assert.Equal(t, Label("2"), kase.Cars[1].SeriesNumber)
	assert.Equal(t, "", kase.Cars[1].Color)
	assert.True(t, kase.IsSTH(kase.Cars[0]))
	assert.Empty(t, c["2019"].Cases)
}

func TestParseYAML(t *testing.T) {
	c, err := Parse([]byte(sampleYAML), FormatYAML)
	require.NoError(t, err)

	kase, ok := c.FindCase("2025", "a")
	require.True(t, ok)
	require.Len(t, kase.Cars, 1)
	assert.Equal(t, Label("17"), kase.Cars[0].HWNumber)
	assert.True(t, kase.IsTH(kase.Cars[0]))
}

func TestParseErrors(t *testing.T) {
	_, err := Parse([]byte(`[1,2,3]`), FormatJSON)
	require.Error(t, err)
	var perr *errors.ParseError
	assert.ErrorAs(t, err, &perr)

	_, err = Parse([]byte(`{}`), Format("toml"))
	assert.True(t, errors.IsValidationError(err))

	c, err := Parse([]byte("   "), FormatJSON)
	require.NoError(t, err)
	assert.Empty(t, c)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o644))

	c, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())

	_, err = LoadFile(filepath.Join(dir, "missing.json"))
	assert.True(t, errors.IsNotFound(err))
}

func TestEncodeRoundTrip(t *testing.T) {
	original := TestCatalog(t)
	for _, format := range []Format{FormatJSON, FormatYAML} {
		t.Run(string(format), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Encode(&buf, original, format))

			decoded, err := Parse(buf.Bytes(), format)
			require.NoError(t, err)
			assert.Equal(t, original.Len(), decoded.Len())
			kase, ok := decoded.FindCase("2024", "B")
			require.True(t, ok)
			assert.True(t, kase.IsDud(Car{HWNumber: "5", Image: "2024-datsun-variant.png"}))
		})
	}
}

func TestSources(t *testing.T) {
	ctx := context.Background()

	t.Run("fs", func(t *testing.T) {
		fsys := fstest.MapFS{"data/catalog.json": {Data: []byte(sampleJSON)}}
		c, err := FSSource{FS: fsys, Path: "data/catalog.json"}.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, c.Len())
	})

	t.Run("url", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "no-cache", r.Header.Get("Cache-Control"))
			_, _ = w.Write([]byte(sampleJSON))
		}))
		defer srv.Close()

		c, err := URLSource{URL: srv.URL + "/data.json"}.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, c.Len())
	})

	t.Run("url error status", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		defer srv.Close()

		_, err := URLSource{URL: srv.URL}.Load(ctx)
		var ioErr *errors.IOError
		assert.ErrorAs(t, err, &ioErr)
	})

	t.Run("static", func(t *testing.T) {
		c, err := StaticSource{}.Load(ctx)
		require.NoError(t, err)
		assert.NotNil(t, c)
	})
}
