package diecast

import (
	"context"
	"sort"

	"github.com/agentstation/diecast/pkg/catalogs"
	"github.com/agentstation/diecast/pkg/errors"
	"github.com/agentstation/diecast/pkg/grouping"
	"github.com/agentstation/diecast/pkg/logging"
	"github.com/agentstation/diecast/pkg/projection"
)

// Years returns the catalog years in ascending order.
func (g *Garage) Years() []string {
	return g.Catalog().Years()
}

// Series returns the distinct series released in year, sorted.
func (g *Garage) Series(year string) ([]string, error) {
	y, ok := g.Catalog()[year]
	if !ok {
		return nil, errors.NewNotFoundError("year", year)
	}

	seen := make(map[string]bool)
	var names []string
	for _, kase := range y.Cases {
		for _, car := range kase.Cars {
			if car.Series == "" || seen[car.Series] {
				continue
			}
			seen[car.Series] = true
			names = append(names, car.Series)
		}
	}

	c := grouping.NewCollator(g.config.language)
	sort.SliceStable(names, func(i, j int) bool { return c.Less(names[i], names[j]) })
	return names, nil
}

// SeriesCars returns every car of series released in year, ordered by
// series number, then hw number, then color.
func (g *Garage) SeriesCars(ctx context.Context, year, series string) ([]projection.Card, error) {
	c := g.Catalog()
	y, ok := c[year]
	if !ok {
		return nil, errors.NewNotFoundError("year", year)
	}

	var entries []catalogs.Entry
	for i := range y.Cases {
		kase := &y.Cases[i]
		for _, car := range kase.Cars {
			if car.Series == series {
				entries = append(entries, catalogs.Entry{Year: year, Case: kase, Car: car})
			}
		}
	}
	if len(entries) == 0 {
		return nil, errors.NewNotFoundError("series", series+" ("+year+")")
	}

	col := grouping.NewCollator(g.config.language)
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i].Car, entries[j].Car
		if na, nb := grouping.ExtractNumber(a.SeriesNumber), grouping.ExtractNumber(b.SeriesNumber); na != nb {
			return na < nb
		}
		if ha, hb := grouping.ExtractNumber(a.HWNumber), grouping.ExtractNumber(b.HWNumber); ha != hb {
			return ha < hb
		}
		return col.Less(a.Color, b.Color)
	})

	logging.Ctx(logging.WithYear(ctx, year)).Debug().
		Str("series", series).
		Int("cars", len(entries)).
		Msg("Series browsed")

	snap, err := g.store.Snapshot()
	if err != nil {
		return nil, err
	}
	return projection.Cards(entries, snap), nil
}

// CaseCars returns the cars of one case in release order.
func (g *Garage) CaseCars(ctx context.Context, year, letter string) ([]projection.Card, error) {
	kase, ok := g.Catalog().FindCase(year, letter)
	if !ok {
		return nil, errors.NewNotFoundError("case", year+" - "+letter)
	}

	entries := make([]catalogs.Entry, 0, len(kase.Cars))
	for _, car := range kase.Cars {
		entries = append(entries, catalogs.Entry{Year: year, Case: kase, Car: car})
	}

	logging.Ctx(logging.WithYear(ctx, year)).Debug().
		Str("case", kase.Letter).
		Int("cars", len(entries)).
		Msg("Case browsed")

	snap, err := g.store.Snapshot()
	if err != nil {
		return nil, err
	}
	return projection.Cards(entries, snap), nil
}

// Card returns the projected card of the car with image.
func (g *Garage) Card(ctx context.Context, image string) (projection.Card, error) {
	e, ok := g.Catalog().FindCar(image)
	if !ok {
		return projection.Card{}, errors.NewNotFoundError("car", image)
	}
	snap, err := g.store.Snapshot()
	if err != nil {
		return projection.Card{}, err
	}
	return projection.Cards([]catalogs.Entry{e}, snap)[0], nil
}
