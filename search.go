package diecast

import (
	"context"
	"strings"

	"github.com/agentstation/diecast/pkg/catalogs"
	"github.com/agentstation/diecast/pkg/collection"
	"github.com/agentstation/diecast/pkg/facets"
	"github.com/agentstation/diecast/pkg/grouping"
	"github.com/agentstation/diecast/pkg/logging"
	"github.com/agentstation/diecast/pkg/projection"
	"github.com/agentstation/diecast/pkg/query"
)

// SearchRequest describes one search page recompute.
type SearchRequest struct {
	Query           string             `json:"query"`
	Filters         facets.FilterState `json:"filters"`
	IncludeOldCases bool               `json:"includeOldCases"`
	GroupBy         grouping.Mode      `json:"groupBy"`
}

// ListRequest describes a recompute of a collection page (owned,
// wanted or duplicates). Collection pages always include old cases.
type ListRequest struct {
	Query   string             `json:"query"`
	Filters facets.FilterState `json:"filters"`
	GroupBy grouping.Mode      `json:"groupBy"`
}

// ResultGroup is a named, ordered run of cards.
type ResultGroup struct {
	Name  string            `json:"name"`
	Cards []projection.Card `json:"cards"`
}

// Listing is the immutable description of a page handed to a renderer.
type Listing struct {
	Groups []ResultGroup                 `json:"groups"`
	Count  int                           `json:"count"`
	Facets map[facets.Dimension][]string `json:"facets"`
}

// Empty reports whether nothing matched.
func (l *Listing) Empty() bool { return l.Count == 0 }

// SearchResult is the outcome of Search.
type SearchResult struct {
	Listing
	Query       query.Query `json:"-"`
	Kind        query.Kind  `json:"kind"`
	Refreshed   bool        `json:"refreshed,omitempty"`
	Suggestions []string    `json:"suggestions,omitempty"`
}

// CollectionResult is the outcome of the collection list views.
type CollectionResult struct {
	Listing
	// TotalOwned sums the quantities of the listed cars.
	TotalOwned int `json:"totalOwned"`
	// Duplicates sums the spare copies of the listed cars.
	Duplicates int `json:"duplicates"`
}

// Search filters the catalog by req. The refresh sentinel reloads the
// catalog instead and returns an empty result marked Refreshed.
func (g *Garage) Search(ctx context.Context, req SearchRequest) (*SearchResult, error) {
	ctx = logging.WithOperation(ctx, "search")
	q := query.Parse(req.Query)

	if q.IsRefresh() {
		if err := g.Reload(ctx); err != nil {
			return nil, err
		}
		return &SearchResult{
			Listing:   Listing{Groups: []ResultGroup{}, Facets: map[facets.Dimension][]string{}},
			Query:     q,
			Kind:      q.Kind,
			Refreshed: true,
		}, nil
	}

	snap, err := g.store.Snapshot()
	if err != nil {
		return nil, err
	}
	if req.GroupBy == "" {
		req.GroupBy = grouping.NoFilter
	}

	c := g.Catalog()
	freq := facets.Request{
		Filters:         req.Filters,
		Query:           q,
		IncludeOldCases: req.IncludeOldCases,
		Ownership:       snap,
	}
	entries := c.Flatten()
	results := facets.Filter(entries, freq)

	res := &SearchResult{
		Listing: g.list(results, entries, freq, req.GroupBy, snap),
		Query:   q,
		Kind:    q.Kind,
	}
	if res.Empty() && q.Kind == query.KindName {
		res.Suggestions = g.Suggest(q.Raw, 0)
	}

	logging.Ctx(ctx).Debug().
		Str("query", q.Raw).
		Str("kind", string(q.Kind)).
		Bool("filtered", !req.Filters.IsZero()).
		Int("results", res.Count).
		Msg("Search complete")
	return res, nil
}

// Facets returns the selectable options of one dimension.
func (g *Garage) Facets(ctx context.Context, req SearchRequest, target facets.Dimension) ([]string, error) {
	snap, err := g.store.Snapshot()
	if err != nil {
		return nil, err
	}
	return facets.ComputeFacetOptions(g.Catalog(), facets.Request{
		Filters:         req.Filters,
		Query:           query.Parse(req.Query),
		IncludeOldCases: req.IncludeOldCases,
		Ownership:       snap,
	}, target), nil
}

// Owned lists the owned cars. The default grouping is by case.
func (g *Garage) Owned(ctx context.Context, req ListRequest) (*CollectionResult, error) {
	return g.collectionView(ctx, req, projection.OwnedEntries)
}

// Wanted lists the wanted cars. The default grouping is by case.
func (g *Garage) Wanted(ctx context.Context, req ListRequest) (*CollectionResult, error) {
	return g.collectionView(ctx, req, projection.WantedEntries)
}

// Duplicates lists owned cars held more than once. The default
// grouping is by case.
func (g *Garage) Duplicates(ctx context.Context, req ListRequest) (*CollectionResult, error) {
	return g.collectionView(ctx, req, projection.DuplicateEntries)
}

func (g *Garage) collectionView(
	ctx context.Context,
	req ListRequest,
	source func(catalogs.Catalog, *collection.Snapshot) []catalogs.Entry,
) (*CollectionResult, error) {
	snap, err := g.store.Snapshot()
	if err != nil {
		return nil, err
	}
	if req.GroupBy == "" {
		req.GroupBy = grouping.ByCase
	}

	entries := source(g.Catalog(), snap)
	freq := facets.Request{
		Filters:         req.Filters,
		Query:           query.Parse(req.Query),
		IncludeOldCases: true,
		Ownership:       snap,
	}
	// hide-owned makes no sense on a list of owned cars
	if freq.Filters.UnownedOnly {
		freq.Ownership = nil
	}
	results := facets.Filter(entries, freq)

	res := &CollectionResult{Listing: g.list(results, entries, freq, req.GroupBy, snap)}
	for _, e := range results {
		q := snap.Quantity(e.Car.Image)
		res.TotalOwned += q
		if q > 1 {
			res.Duplicates += q - 1
		}
	}

	logging.Ctx(ctx).Debug().
		Int("entries", len(entries)).
		Int("results", res.Count).
		Msg("Collection view complete")
	return res, nil
}

func (g *Garage) list(
	results, universe []catalogs.Entry,
	freq facets.Request,
	mode grouping.Mode,
	snap *collection.Snapshot,
) Listing {
	groups := grouping.GroupWith(results, mode, grouping.Options{Language: g.config.language})

	out := Listing{
		Groups: make([]ResultGroup, 0, len(groups)),
		Facets: make(map[facets.Dimension][]string, len(facets.Dimensions)),
	}
	for _, grp := range groups {
		out.Groups = append(out.Groups, ResultGroup{
			Name:  grp.Name,
			Cards: projection.Cards(grp.Entries, snap),
		})
		out.Count += len(grp.Entries)
	}
	for _, d := range facets.Dimensions {
		out.Facets[d] = facets.Options(universe, freq, d)
	}
	return out
}

// TotalOwned sums every owned quantity.
func (g *Garage) TotalOwned(context.Context) (int, error) {
	return g.store.TotalOwned()
}

func normalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
