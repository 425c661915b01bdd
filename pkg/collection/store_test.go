package collection_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/diecast/pkg/catalogs"
	"github.com/agentstation/diecast/pkg/collection"
	"github.com/agentstation/diecast/pkg/collection/memory"
	"github.com/agentstation/diecast/pkg/errors"
	"github.com/agentstation/diecast/pkg/logging"
)

var (
	rx7    = catalogs.Car{Name: "Mazda RX-7", Image: "rx7.png", HWNumber: "150"}
	shaker = catalogs.Car{Name: "Bone Shaker", Image: "shaker.png", HWNumber: "3"}
)

func newStore(t *testing.T, opts ...memory.Option) *collection.Store {
	t.Helper()
	backend, err := memory.New(opts...)
	require.NoError(t, err)
	store, err := collection.New(backend, collection.WithLogger(logging.NewNopLogger()))
	require.NoError(t, err)
	return store
}

func TestOwnedRoundTripDefaultsQuantity(t *testing.T) {
	store := newStore(t, memory.WithPreload(collection.OwnedKey, []byte(
		`[{"year":"2025","caseLetter":"A","car":{"name":"Mazda RX-7","image":"rx7.png"}},
		  {"year":"2025","caseLetter":"A","car":{"image":"shaker.png"},"quantity":3}]`)))

	owned, err := store.GetOwned()
	require.NoError(t, err)
	require.Len(t, owned, 2)
	assert.Equal(t, 1, owned[0].Quantity)
	assert.Equal(t, 3, owned[1].Quantity)

	require.NoError(t, store.SetOwned(owned))
	again, err := store.GetOwned()
	require.NoError(t, err)
	assert.Equal(t, owned, again)
}

func TestSetWantedDedups(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.SetWanted([]collection.WantedEntry{
		{Year: "2025", CaseLetter: "A", Car: rx7},
		{Year: "2025", CaseLetter: "B", Car: rx7},
		{Year: "2025", CaseLetter: "A", Car: shaker},
	}))

	wanted, err := store.GetWanted()
	require.NoError(t, err)
	require.Len(t, wanted, 2)
	assert.Equal(t, "A", wanted[0].CaseLetter)
	assert.Equal(t, "shaker.png", wanted[1].Image())
}

func TestSetOwnedDedupsAndValidates(t *testing.T) {
	store := newStore(t)

	require.NoError(t, store.SetOwned([]collection.OwnedEntry{
		{Year: "2025", Car: rx7, Quantity: 2},
		{Year: "2024", Car: rx7, Quantity: 5},
	}))
	owned, err := store.GetOwned()
	require.NoError(t, err)
	require.Len(t, owned, 1)
	assert.Equal(t, 2, owned[0].Quantity)

	err = store.SetOwned([]collection.OwnedEntry{{Car: rx7, Quantity: -1}})
	assert.True(t, errors.IsValidationError(err))
}

func TestEmptyStore(t *testing.T) {
	store := newStore(t)

	owned, err := store.GetOwned()
	require.NoError(t, err)
	assert.Empty(t, owned)

	wanted, err := store.GetWanted()
	require.NoError(t, err)
	assert.Empty(t, wanted)

	assert.False(t, store.IsOwned("rx7.png"))
	assert.False(t, store.IsWanted("rx7.png"))
}

func TestCorruptStore(t *testing.T) {
	store := newStore(t, memory.WithPreload(collection.OwnedKey, []byte(`{not json`)))

	_, err := store.GetOwned()
	require.Error(t, err)
	var perr *errors.ParseError
	assert.ErrorAs(t, err, &perr)
	assert.False(t, store.IsOwned("rx7.png"))
}

func TestQuantityPolicy(t *testing.T) {
	store := newStore(t)

	entry, err := store.MarkOwned("2025", "A", rx7)
	require.NoError(t, err)
	assert.Equal(t, 1, entry.Quantity)

	q, err := store.Increment("rx7.png")
	require.NoError(t, err)
	assert.Equal(t, 2, q)

	entry, err = store.MarkOwned("2025", "A", rx7)
	require.NoError(t, err)
	assert.Equal(t, 2, entry.Quantity, "marking again keeps the quantity")

	q, err = store.SetQuantity("rx7.png", 4)
	require.NoError(t, err)
	assert.Equal(t, 4, q)

	q, err = store.Decrement("rx7.png")
	require.NoError(t, err)
	assert.Equal(t, 3, q)

	q, err = store.SetQuantity("rx7.png", 0)
	require.NoError(t, err)
	assert.Equal(t, 0, q)
	assert.False(t, store.IsOwned("rx7.png"), "reaching zero removes the entry")

	_, err = store.MarkOwned("2025", "A", rx7)
	require.NoError(t, err)
	q, err = store.Decrement("rx7.png")
	require.NoError(t, err)
	assert.Equal(t, 0, q)
	assert.False(t, store.IsOwned("rx7.png"))

	_, err = store.Increment("rx7.png")
	assert.True(t, errors.IsNotFound(err))
	_, err = store.SetQuantity("rx7.png", -3)
	assert.True(t, errors.IsNotFound(err))
}

func TestToggleAndUnmark(t *testing.T) {
	store := newStore(t)

	owned, err := store.ToggleOwned("2025", "A", shaker)
	require.NoError(t, err)
	assert.True(t, owned)
	assert.True(t, store.IsOwned("shaker.png"))

	owned, err = store.ToggleOwned("2025", "A", shaker)
	require.NoError(t, err)
	assert.False(t, owned)
	assert.False(t, store.IsOwned("shaker.png"))

	assert.True(t, errors.IsNotFound(store.Unmark("shaker.png")))

	_, err = store.MarkOwned("2025", "A", catalogs.Car{Name: "no image"})
	assert.True(t, errors.IsValidationError(err))
}

func TestWanted(t *testing.T) {
	store := newStore(t)

	added, err := store.AddWanted("2025", "A", rx7)
	require.NoError(t, err)
	assert.True(t, added)

	added, err = store.AddWanted("2024", "B", rx7)
	require.NoError(t, err)
	assert.False(t, added, "wanted entries are unique by image")

	wanted, err := store.GetWanted()
	require.NoError(t, err)
	require.Len(t, wanted, 1)
	assert.Equal(t, "2025", wanted[0].Year)

	require.NoError(t, store.RemoveWanted("rx7.png"))
	assert.False(t, store.IsWanted("rx7.png"))
	assert.True(t, errors.IsNotFound(store.RemoveWanted("rx7.png")))
}

func TestTotalsAndDuplicates(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.SetOwned([]collection.OwnedEntry{
		{Year: "2025", CaseLetter: "A", Car: rx7, Quantity: 3},
		{Year: "2025", CaseLetter: "A", Car: shaker},
	}))

	total, err := store.TotalOwned()
	require.NoError(t, err)
	assert.Equal(t, 4, total)

	dups, err := store.Duplicates()
	require.NoError(t, err)
	require.Len(t, dups, 1)
	assert.Equal(t, "rx7.png", dups[0].Image())
	assert.Equal(t, 2, dups[0].Duplicates())
}

func TestExportImport(t *testing.T) {
	store := newStore(t)
	_, err := store.MarkOwned("2025", "A", rx7)
	require.NoError(t, err)
	_, err = store.AddWanted("2025", "A", shaker)
	require.NoError(t, err)

	exp, err := store.Export()
	require.NoError(t, err)

	for _, format := range []string{"json", "yaml"} {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, collection.WriteExport(&buf, exp, format))

			parsed, err := collection.ParseExport(buf.Bytes(), format)
			require.NoError(t, err)

			other := newStore(t)
			result, err := other.Import(parsed, collection.ImportReplace)
			require.NoError(t, err)
			assert.Equal(t, collection.ImportResult{Owned: 1, Wanted: 1}, result)
			assert.True(t, other.IsOwned("rx7.png"))
			assert.True(t, other.IsWanted("shaker.png"))
		})
	}
}

func TestImportReplaceAndMerge(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.SetOwned([]collection.OwnedEntry{
		{Year: "2025", Car: rx7, Quantity: 2},
		{Year: "2025", Car: shaker, Quantity: 1},
	}))

	incoming := collection.Export{
		OwnedCars: []collection.OwnedEntry{
			{Year: "2025", Car: shaker, Quantity: 5},
			{Year: "2025", Car: catalogs.Car{Image: "new.png"}},
			{Year: "2025", Car: catalogs.Car{Name: "missing image"}},
		},
	}

	result, err := store.Import(incoming, collection.ImportMerge)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Owned)
	assert.Equal(t, 1, result.Skipped)

	owned, err := store.GetOwned()
	require.NoError(t, err)
	require.Len(t, owned, 3)
	assert.Equal(t, "rx7.png", owned[0].Image())
	assert.Equal(t, 2, owned[0].Quantity)
	assert.Equal(t, 5, owned[1].Quantity)
	assert.Equal(t, "new.png", owned[2].Image())
	assert.Equal(t, 1, owned[2].Quantity)

	_, err = store.Import(collection.Export{}, collection.ImportReplace)
	require.NoError(t, err)
	owned, err = store.GetOwned()
	require.NoError(t, err)
	assert.Empty(t, owned)

	_, err = store.Import(collection.Export{}, collection.ImportMode("append"))
	assert.True(t, errors.IsValidationError(err))
}

// wantedReadOnly refuses writes to the wanted list only.
type wantedReadOnly struct {
	*memory.Backend
}

func (b wantedReadOnly) Put(key string, data []byte) error {
	if key == collection.WantedKey {
		return errors.ErrReadOnly
	}
	return b.Backend.Put(key, data)
}

func TestImportRestoresOwnedWhenWantedWriteFails(t *testing.T) {
	tests := []struct {
		name    string
		initial []collection.OwnedEntry
	}{
		{"existing owned list", []collection.OwnedEntry{{Year: "2025", Car: rx7, Quantity: 2}}},
		{"empty store", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mem, err := memory.New()
			require.NoError(t, err)
			store, err := collection.New(wantedReadOnly{mem}, collection.WithLogger(logging.NewNopLogger()))
			require.NoError(t, err)
			if tt.initial != nil {
				require.NoError(t, store.SetOwned(tt.initial))
			}

			_, err = store.Import(collection.Export{
				OwnedCars:  []collection.OwnedEntry{{Year: "2024", Car: shaker, Quantity: 4}},
				WantedCars: []collection.WantedEntry{{Year: "2024", Car: rx7}},
			}, collection.ImportReplace)
			require.Error(t, err)
			assert.ErrorIs(t, err, errors.ErrReadOnly)

			owned, err := store.GetOwned()
			require.NoError(t, err)
			require.Len(t, owned, len(tt.initial))
			for i := range tt.initial {
				assert.Equal(t, tt.initial[i].Image(), owned[i].Image())
				assert.Equal(t, tt.initial[i].Quantity, owned[i].Quantity)
			}
		})
	}
}

func TestParseExportRejectsMalformed(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"array", `[1,2]`},
		{"null", `null`},
		{"not json", `{"ownedCars":`},
		{"owned not a list", `{"ownedCars": {"a": 1}}`},
		{"wanted not a list", `{"wantedCars": "x"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := collection.ParseExport([]byte(tt.data), "json")
			require.Error(t, err)
			var perr *errors.ParseError
			assert.ErrorAs(t, err, &perr)
		})
	}

	exp, err := collection.ParseExport([]byte(`{}`), "json")
	require.NoError(t, err)
	assert.Empty(t, exp.OwnedCars)
}

func TestOwnedEntryResolvesCase(t *testing.T) {
	c := catalogs.TestCatalog(t)

	e := collection.OwnedEntry{Year: "2024", CaseLetter: "B", Car: catalogs.Car{Image: "2024-sth.png", HWNumber: "5"}}
	entry := e.Entry(c)
	require.NotNil(t, entry.Case)
	assert.True(t, entry.Case.IsSTH(entry.Car))

	orphan := collection.OwnedEntry{Year: "1999", CaseLetter: "Z", Car: catalogs.Car{Image: "gone.png"}}
	assert.Equal(t, "Z", orphan.Entry(c).CaseLetter())
}

func TestNewRequiresBackend(t *testing.T) {
	_, err := collection.New(nil)
	var cerr *errors.ConfigError
	assert.ErrorAs(t, err, &cerr)
}
