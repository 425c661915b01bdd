package query

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agentstation/diecast/pkg/catalogs"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  Query
	}{
		{"", Query{Raw: "", Kind: KindNone}},
		{"   ", Query{Raw: "", Kind: KindNone}},
		{"C-Refresh", Query{Raw: "c-refresh", Kind: KindRefresh}},
		{"  Bone Shaker ", Query{Raw: "bone shaker", Kind: KindName}},
		{"s- J-Imports", Query{Raw: "s- j-imports", Kind: KindSeries, Series: "j-imports"}},
		{"sth", Query{Raw: "sth", Kind: KindSTH}},
		{"th", Query{Raw: "th", Kind: KindTH}},
		{"c-2025 a", Query{Raw: "c-2025 a", Kind: KindCase, Year: "2025", Letter: "a"}},
		{"c-b-2024", Query{Raw: "c-b-2024", Kind: KindCase, Year: "2024", Letter: "b"}},
		{"c-a", Query{Raw: "c-a", Kind: KindCase, Letter: "a"}},
		{"c-2023", Query{Raw: "c-2023", Kind: KindCase, Year: "2023"}},
		{"c-", Query{Raw: "c-", Kind: KindCase}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.input))
		})
	}
}

// matching returns the images of the entries q matches, in order.
func matching(q Query, entries []catalogs.Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		if q.Matches(e) {
			out = append(out, e.Car.Image)
		}
	}
	return out
}

func TestMatches(t *testing.T) {
	entries := catalogs.TestCatalog(t).Flatten()

	tests := []struct {
		query string
		want  []string
	}{
		{"bone", []string{"2023-bone-shaker.png", "2025-bone-shaker.png"}},
		{"s-j-imports", []string{"2024-sth.png", "2024-datsun-variant.png", "2025-rx7.png"}},
		{"s-  ", []string{
			"2023-bone-shaker.png", "2023-twin-mill.png", "2024-deora.png", "2024-sth.png",
			"2024-datsun-variant.png", "2024-rodger.png", "2025-rx7.png", "2025-bone-shaker.png", "2025-twin-mill.png",
		}},
		{"sth", []string{"2024-sth.png", "2024-datsun-variant.png"}},
		{"th", []string{"2023-twin-mill.png", "2024-deora.png"}},
		{"c-c", []string{"2024-rodger.png"}},
		{"c-2025 a", []string{"2025-rx7.png", "2025-bone-shaker.png", "2025-twin-mill.png"}},
		{"c-a 2023", []string{"2023-bone-shaker.png", "2023-twin-mill.png"}},
		{"nothing-like-this", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, matching(Parse(tt.query), entries))
		})
	}
}

func TestMatchesIsOrAcrossReadings(t *testing.T) {
	kase := &catalogs.Case{Letter: "A", TH: &catalogs.HuntRef{HWNumber: "9", Image: "th.png"}}

	// "the" reads as a name search and as a treasure hunt search.
	q := Parse("the")
	assert.True(t, q.Matches(catalogs.Entry{Year: "2025", Case: kase, Car: catalogs.Car{Name: "The Gov'ner", HWNumber: "1"}}))
	assert.True(t, q.Matches(catalogs.Entry{Year: "2025", Case: kase, Car: catalogs.Car{Name: "Roadster", HWNumber: "9"}}))
	assert.False(t, q.Matches(catalogs.Entry{Year: "2025", Case: kase, Car: catalogs.Car{Name: "Roadster", HWNumber: "2"}}))

	// a series query still matches on name.
	assert.True(t, Parse("s-").Matches(catalogs.Entry{Car: catalogs.Car{Name: "S-Class"}}))
}

func TestEmptyAndRefreshMatchEverything(t *testing.T) {
	e := catalogs.Entry{Year: "2025", Car: catalogs.Car{Name: "x"}}
	assert.True(t, Parse("").Matches(e))
	assert.True(t, Parse("c-refresh").Matches(e))
	assert.True(t, Parse("c-refresh").IsRefresh())
	assert.True(t, Parse(" ").IsEmpty())
}

func TestMatchesWithoutCase(t *testing.T) {
	e := catalogs.Entry{Year: "2025", Car: catalogs.Car{Name: "Roadster", HWNumber: "9"}}
	assert.False(t, Parse("sth").Matches(e))
	assert.False(t, Parse("th").Matches(e))
	assert.True(t, Parse("c-2025").Matches(e))
}
