package projection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/diecast/pkg/catalogs"
	"github.com/agentstation/diecast/pkg/collection"
)

func TestDudClassification(t *testing.T) {
	kase := &catalogs.Case{Letter: "A", STH: &catalogs.HuntRef{HWNumber: "5", Image: "sth.png"}}

	dud := Project(catalogs.Entry{Year: "2025", Case: kase, Car: catalogs.Car{HWNumber: "5", Image: "variant.png"}}, nil)
	assert.True(t, dud.IsDud)
	assert.False(t, dud.IsSTH)

	sth := Project(catalogs.Entry{Year: "2025", Case: kase, Car: catalogs.Car{HWNumber: "5", Image: "sth.png"}}, nil)
	assert.True(t, sth.IsSTH)
	assert.False(t, sth.IsDud)
	assert.Equal(t, BadgeSTH, sth.Badge())
	assert.Equal(t, BadgeNone, dud.Badge())
}

func TestProjectOwnership(t *testing.T) {
	c := catalogs.TestCatalog(t)
	snap := collection.NewSnapshot(
		[]collection.OwnedEntry{
			{Year: "2024", CaseLetter: "B", Car: catalogs.Car{Image: "2024-deora.png", HWNumber: "30"}, Quantity: 3},
			{Year: "2025", CaseLetter: "A", Car: catalogs.Car{Image: "2025-rx7.png"}},
		},
		[]collection.WantedEntry{{Year: "2025", CaseLetter: "A", Car: catalogs.Car{Image: "2025-twin-mill.png"}}},
	)

	views := map[string]View{}
	for _, card := range Cards(c.Flatten(), snap) {
		views[card.Car.Image] = card.View
	}

	assert.Equal(t, View{Quantity: 3, DuplicateCount: 2, IsOwned: true, IsTH: true}, views["2024-deora.png"])
	assert.Equal(t, BadgeTH, views["2024-deora.png"].Badge())
	assert.Equal(t, View{Quantity: 1, IsOwned: true}, views["2025-rx7.png"])
	assert.Equal(t, View{IsWanted: true}, views["2025-twin-mill.png"])
	assert.Equal(t, View{}, views["2025-bone-shaker.png"])
}

func TestOwnedAndDuplicateEntries(t *testing.T) {
	c := catalogs.TestCatalog(t)
	snap := collection.NewSnapshot([]collection.OwnedEntry{
		{Year: "2024", CaseLetter: "B", Car: catalogs.Car{Image: "2024-sth.png", HWNumber: "5"}, Quantity: 2},
		{Year: "2025", CaseLetter: "A", Car: catalogs.Car{Image: "2025-rx7.png"}, Quantity: 1},
		{Year: "1990", CaseLetter: "Q", Car: catalogs.Car{Image: "retired.png"}, Quantity: 4},
	}, nil)

	dups := DuplicateEntries(c, snap)
	require.Len(t, dups, 2)
	assert.True(t, Project(dups[0], snap).IsSTH)
	assert.Equal(t, "Q", dups[1].CaseLetter())

	assert.Len(t, OwnedEntries(c, snap), 3)
	assert.Empty(t, WantedEntries(c, snap))
}
