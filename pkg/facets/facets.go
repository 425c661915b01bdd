// Package facets filters catalog entries by the user's selections and
// computes which facet values remain selectable.
//
// Every entry runs through the same short-circuiting chain: old case
// cutoff, year, case letter, search query, series, hw number, color,
// unowned-only, then the special hunt group. Options for series, hw
// number and color are computed by re-running the chain without the
// target dimension's own constraint. Year and case letter options never
// narrow.
package facets

import (
	"sort"
	"strings"

	"golang.org/x/text/language"

	"github.com/agentstation/diecast/pkg/catalogs"
	"github.com/agentstation/diecast/pkg/grouping"
	"github.com/agentstation/diecast/pkg/query"
)

// OwnershipChecker answers whether a car, by image, is owned.
type OwnershipChecker interface {
	IsOwned(image string) bool
}

// Request carries everything one recompute reads.
type Request struct {
	Filters         FilterState
	Query           query.Query
	IncludeOldCases bool

	// Ownership backs the unowned-only checkbox. Nil means nothing is owned.
	Ownership OwnershipChecker
}

// ComputeResults returns the catalog entries passing every filter, in
// catalog order.
func ComputeResults(c catalogs.Catalog, req Request) []catalogs.Entry {
	return Filter(c.Flatten(), req)
}

// ComputeFacetOptions returns the values of target still selectable
// under req, sorted for display.
func ComputeFacetOptions(c catalogs.Catalog, req Request, target Dimension) []string {
	return Options(c.Flatten(), req, target)
}

// ComputeAllFacets returns the options of every dimension.
func ComputeAllFacets(c catalogs.Catalog, req Request) map[Dimension][]string {
	entries := c.Flatten()
	out := make(map[Dimension][]string, len(Dimensions))
	for _, d := range Dimensions {
		out[d] = Options(entries, req, d)
	}
	return out
}

// Filter applies req to an arbitrary entry list, such as the owned
// list, preserving order.
func Filter(entries []catalogs.Entry, req Request) []catalogs.Entry {
	ch := newChain(req, "")
	out := make([]catalogs.Entry, 0, len(entries))
	for _, e := range entries {
		if ch.passes(e) {
			out = append(out, e)
		}
	}
	return out
}

// Options computes the selectable values of target over entries.
func Options(entries []catalogs.Entry, req Request, target Dimension) []string {
	var ch *chain
	if target.Cascades() {
		ch = newChain(req, target)
	} else {
		ch = &chain{includeOld: req.IncludeOldCases}
	}

	seen := make(map[string]bool)
	var values []string
	for _, e := range entries {
		if !ch.passes(e) {
			continue
		}
		v := strings.TrimSpace(valueOf(e, target))
		if v == "" {
			continue
		}
		key := strings.ToLower(v)
		if seen[key] {
			continue
		}
		seen[key] = true
		values = append(values, v)
	}
	SortOptions(values, target)
	return values
}

// SortOptions orders option values for display: hw numbers by their
// numeric part, everything else by collation.
func SortOptions(values []string, d Dimension) {
	c := grouping.NewCollator(language.Und)
	sort.SliceStable(values, func(i, j int) bool {
		if d == HWNumber {
			a, b := grouping.ExtractNumber(values[i]), grouping.ExtractNumber(values[j])
			if a != b {
				return a < b
			}
		}
		return c.Less(values[i], values[j])
	})
}

func valueOf(e catalogs.Entry, d Dimension) string {
	switch d {
	case Year:
		return e.Year
	case CaseLetter:
		return e.CaseLetter()
	case Series:
		return e.Car.Series
	case HWNumber:
		return e.Car.HWNumber.String()
	case Color:
		return e.Car.Color
	}
	return ""
}

// chain is the compiled filter for one recompute. A nil selection or
// zero flag disables its step.
type chain struct {
	includeOld bool
	year       selection
	caseLetter selection
	query      query.Query
	series     selection
	hwNumber   selection
	color      selection
	unowned    bool
	ownership  OwnershipChecker
	th         bool
	sth        bool
	duds       bool
}

// newChain compiles req, leaving out the constraint of exclude.
func newChain(req Request, exclude Dimension) *chain {
	f := req.Filters
	c := &chain{
		includeOld: req.IncludeOldCases,
		query:      req.Query,
		unowned:    f.UnownedOnly,
		ownership:  req.Ownership,
		th:         f.TH,
		sth:        f.STH,
		duds:       f.ShowDuds,
	}
	set := func(d Dimension) selection {
		if d == exclude {
			return nil
		}
		return newSelection(f.Values(d))
	}
	c.year = set(Year)
	c.caseLetter = set(CaseLetter)
	c.series = set(Series)
	c.hwNumber = set(HWNumber)
	c.color = set(Color)
	return c
}

func (c *chain) passes(e catalogs.Entry) bool {
	if !c.includeOld && catalogs.IsOldYear(e.Year) {
		return false
	}
	if !c.year.allows(e.Year) {
		return false
	}
	if !c.caseLetter.allows(e.CaseLetter()) {
		return false
	}
	if !c.query.Matches(e) {
		return false
	}
	if !c.series.allows(e.Car.Series) {
		return false
	}
	if !c.hwNumber.allows(e.Car.HWNumber.String()) {
		return false
	}
	if !c.color.allows(e.Car.Color) {
		return false
	}
	if c.unowned && c.ownership != nil && c.ownership.IsOwned(e.Car.Image) {
		return false
	}
	if c.th || c.sth || c.duds {
		return (c.th && e.Case.IsTH(e.Car)) ||
			(c.sth && e.Case.IsSTH(e.Car)) ||
			(c.duds && e.Case.IsDud(e.Car))
	}
	return true
}
