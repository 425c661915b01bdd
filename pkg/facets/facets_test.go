package facets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/diecast/pkg/catalogs"
	"github.com/agentstation/diecast/pkg/query"
)

type ownedSet map[string]bool

func (o ownedSet) IsOwned(image string) bool { return o[image] }

func images(entries []catalogs.Entry) []string {
	out := []string{}
	for _, e := range entries {
		out = append(out, e.Car.Image)
	}
	return out
}

func TestEmptyFiltersReturnWholeCatalog(t *testing.T) {
	c := catalogs.TestCatalog(t)

	all := ComputeResults(c, Request{IncludeOldCases: true})
	assert.Equal(t, images(c.Flatten()), images(all))

	current := ComputeResults(c, Request{})
	assert.Equal(t, []string{
		"2024-deora.png", "2024-sth.png", "2024-datsun-variant.png", "2024-rodger.png",
		"2025-rx7.png", "2025-bone-shaker.png", "2025-twin-mill.png",
	}, images(current))
}

func TestResultsAreSelfConsistentWithYearOptions(t *testing.T) {
	c := catalogs.TestCatalog(t)
	requests := []Request{
		{IncludeOldCases: true},
		{Filters: FilterState{Series: []string{"hw j-imports"}}},
		{Filters: FilterState{TH: true}, IncludeOldCases: true},
		{Query: query.Parse("bone"), IncludeOldCases: true},
	}

	for _, req := range requests {
		years := ComputeFacetOptions(c, req, Year)
		for _, e := range ComputeResults(c, req) {
			assert.Contains(t, years, e.Year)
		}
	}
}

func TestFilterChain(t *testing.T) {
	c := catalogs.TestCatalog(t)

	tests := []struct {
		name string
		req  Request
		want []string
	}{
		{
			name: "year",
			req:  Request{Filters: FilterState{Year: []string{"2023"}}, IncludeOldCases: true},
			want: []string{"2023-bone-shaker.png", "2023-twin-mill.png"},
		},
		{
			name: "old year selected but old cases excluded",
			req:  Request{Filters: FilterState{Year: []string{"2023"}}},
			want: []string{},
		},
		{
			name: "case letter is case-insensitive",
			req:  Request{Filters: FilterState{CaseLetter: []string{"a"}}, IncludeOldCases: true},
			want: []string{"2023-bone-shaker.png", "2023-twin-mill.png", "2025-rx7.png", "2025-bone-shaker.png", "2025-twin-mill.png"},
		},
		{
			name: "series and color",
			req:  Request{Filters: FilterState{Series: []string{"HW J-Imports"}, Color: []string{" white "}}},
			want: []string{"2024-datsun-variant.png", "2025-rx7.png"},
		},
		{
			name: "hw number",
			req:  Request{Filters: FilterState{HWNumber: []string{"5", "150"}}},
			want: []string{"2024-sth.png", "2024-datsun-variant.png", "2025-rx7.png"},
		},
		{
			name: "query and year",
			req:  Request{Filters: FilterState{Year: []string{"2025"}}, Query: query.Parse("Bone")},
			want: []string{"2025-bone-shaker.png"},
		},
		{
			name: "treasure hunt",
			req:  Request{Filters: FilterState{TH: true}, IncludeOldCases: true},
			want: []string{"2023-twin-mill.png", "2024-deora.png"},
		},
		{
			name: "super treasure hunt",
			req:  Request{Filters: FilterState{STH: true}},
			want: []string{"2024-sth.png"},
		},
		{
			name: "duds",
			req:  Request{Filters: FilterState{ShowDuds: true}},
			want: []string{"2024-datsun-variant.png"},
		},
		{
			name: "hunt flags are an OR group",
			req:  Request{Filters: FilterState{TH: true, ShowDuds: true}, IncludeOldCases: true},
			want: []string{"2023-twin-mill.png", "2024-deora.png", "2024-datsun-variant.png"},
		},
		{
			name: "no match is empty",
			req:  Request{Query: query.Parse("zzz")},
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, images(ComputeResults(c, tt.req)))
		})
	}
}

func TestUnownedOnlyIsSeparateFromHuntGroup(t *testing.T) {
	c := catalogs.TestCatalog(t)
	owned := ownedSet{"2024-deora.png": true, "2025-rx7.png": true}

	got := ComputeResults(c, Request{
		Filters:         FilterState{UnownedOnly: true, TH: true},
		IncludeOldCases: true,
		Ownership:       owned,
	})
	assert.Equal(t, []string{"2023-twin-mill.png"}, images(got))

	got = ComputeResults(c, Request{Filters: FilterState{UnownedOnly: true, Year: []string{"2025"}}, Ownership: owned})
	assert.Equal(t, []string{"2025-bone-shaker.png", "2025-twin-mill.png"}, images(got))

	// without an ownership source nothing counts as owned
	got = ComputeResults(c, Request{Filters: FilterState{UnownedOnly: true, Year: []string{"2025"}}})
	assert.Len(t, got, 3)
}

func TestCascadingOptions(t *testing.T) {
	c := catalogs.TestCatalog(t)
	req := Request{Filters: FilterState{Series: []string{"hw j-imports"}}, IncludeOldCases: true}

	assert.Equal(t, []string{"Spectraflame Purple", "White"}, ComputeFacetOptions(c, req, Color))
	assert.Equal(t, []string{"5", "150"}, ComputeFacetOptions(c, req, HWNumber))

	// the target's own selection does not narrow its options
	assert.Equal(t,
		[]string{"HW Art Cars", "HW Dream Garage", "HW J-Imports", "HW Surf", "Muscle Mania"},
		ComputeFacetOptions(c, req, Series))

	// year and case letter never narrow
	assert.Equal(t, []string{"2023", "2024", "2025"}, ComputeFacetOptions(c, req, Year))
	assert.Equal(t, []string{"A", "B", "C"}, ComputeFacetOptions(c, req, CaseLetter))
}

func TestNavigationOptionsIgnoreEverythingButOldCases(t *testing.T) {
	c := catalogs.TestCatalog(t)
	req := Request{
		Filters: FilterState{Year: []string{"2025"}, CaseLetter: []string{"A"}, STH: true},
		Query:   query.Parse("datsun"),
	}

	assert.Equal(t, []string{"2024", "2025"}, ComputeFacetOptions(c, req, Year))
	assert.Equal(t, []string{"A", "B", "C"}, ComputeFacetOptions(c, req, CaseLetter))
}

func TestOptionsFollowQueryAndCheckboxes(t *testing.T) {
	c := catalogs.TestCatalog(t)

	req := Request{Query: query.Parse("s-j-imports")}
	assert.Equal(t, []string{"Spectraflame Purple", "White"}, ComputeFacetOptions(c, req, Color))

	req = Request{Filters: FilterState{STH: true, ShowDuds: true}}
	assert.Equal(t, []string{"5"}, ComputeFacetOptions(c, req, HWNumber))

	req = Request{Filters: FilterState{Year: []string{"2025"}}}
	assert.Equal(t, []string{"3", "87", "150"}, ComputeFacetOptions(c, req, HWNumber))
}

func TestComputeAllFacets(t *testing.T) {
	all := ComputeAllFacets(catalogs.TestCatalog(t), Request{IncludeOldCases: true})
	require.Len(t, all, len(Dimensions))
	assert.Equal(t, []string{"3", "5", "12", "30", "44", "87", "101", "150"}, all[HWNumber])
	assert.Equal(t, []string{"Black", "Blue", "Green", "Orange", "Red", "Spectraflame Purple", "White"}, all[Color])
}

func TestOptionsDedupAndDropEmpty(t *testing.T) {
	entries := []catalogs.Entry{
		{Year: "2025", Case: &catalogs.Case{Letter: "A"}, Car: catalogs.Car{Image: "1", Color: "Red"}},
		{Year: "2025", Case: &catalogs.Case{Letter: "a"}, Car: catalogs.Car{Image: "2", Color: " red "}},
		{Year: "2025", Case: &catalogs.Case{Letter: "B"}, Car: catalogs.Car{Image: "3", Color: ""}},
	}

	assert.Equal(t, []string{"Red"}, Options(entries, Request{}, Color))
	assert.Equal(t, []string{"A", "B"}, Options(entries, Request{}, CaseLetter))
}

func TestFilterState(t *testing.T) {
	f := FilterState{}
	assert.True(t, f.IsZero())

	f = f.With(Year, []string{"2025"})
	assert.Equal(t, []string{"2025"}, f.Values(Year))
	assert.False(t, f.IsZero())

	f = f.With(Year, nil)
	assert.True(t, f.IsZero())

	f.ShowDuds = true
	assert.True(t, f.HuntActive())

	d, err := ParseDimension("HW_NUMBER")
	require.NoError(t, err)
	assert.Equal(t, HWNumber, d)

	_, err = ParseDimension("price")
	assert.Error(t, err)

	assert.True(t, Series.Cascades())
	assert.False(t, Year.Cascades())
}
