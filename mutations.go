package diecast

import (
	"context"

	"github.com/agentstation/diecast/pkg/catalogs"
	"github.com/agentstation/diecast/pkg/collection"
	"github.com/agentstation/diecast/pkg/errors"
	"github.com/agentstation/diecast/pkg/logging"
)

func (g *Garage) findCar(image string) (catalogs.Entry, error) {
	e, ok := g.Catalog().FindCar(image)
	if !ok {
		return catalogs.Entry{}, errors.NewNotFoundError("car", image)
	}
	return e, nil
}

func (g *Garage) changed(ctx context.Context, event CollectionEvent) {
	logging.Ctx(logging.WithCar(ctx, event.Image)).Info().
		Str("change", string(event.Type)).
		Int("quantity", event.Quantity).
		Msg("Collection changed")
	g.hooks.triggerCollectionChanged(event)
}

// MarkOwned records the catalog car with image as owned.
func (g *Garage) MarkOwned(ctx context.Context, image string) (collection.OwnedEntry, error) {
	e, err := g.findCar(image)
	if err != nil {
		return collection.OwnedEntry{}, err
	}
	entry, err := g.store.MarkOwned(e.Year, e.CaseLetter(), e.Car)
	if err != nil {
		return collection.OwnedEntry{}, err
	}
	g.changed(ctx, CollectionEvent{Type: ChangeOwned, Image: image, Quantity: entry.Quantity})
	return entry, nil
}

// ToggleOwned flips the owned state of the catalog car with image and
// reports the new state.
func (g *Garage) ToggleOwned(ctx context.Context, image string) (bool, error) {
	e, err := g.findCar(image)
	if err != nil {
		return false, err
	}
	owned, err := g.store.ToggleOwned(e.Year, e.CaseLetter(), e.Car)
	if err != nil {
		return false, err
	}
	event := CollectionEvent{Type: ChangeUnowned, Image: image}
	if owned {
		event = CollectionEvent{Type: ChangeOwned, Image: image, Quantity: 1}
	}
	g.changed(ctx, event)
	return owned, nil
}

// Unmark removes image from the owned list. Cars no longer in the
// catalog can still be unmarked.
func (g *Garage) Unmark(ctx context.Context, image string) error {
	if err := g.store.Unmark(image); err != nil {
		return err
	}
	g.changed(ctx, CollectionEvent{Type: ChangeUnowned, Image: image})
	return nil
}

// Increment adds a copy of an owned car.
func (g *Garage) Increment(ctx context.Context, image string) (int, error) {
	return g.quantityChange(ctx, image, g.store.Increment)
}

// Decrement removes a copy of an owned car; the last copy removes the
// entry.
func (g *Garage) Decrement(ctx context.Context, image string) (int, error) {
	return g.quantityChange(ctx, image, g.store.Decrement)
}

// SetQuantity sets the owned quantity; below 1 removes the entry.
func (g *Garage) SetQuantity(ctx context.Context, image string, quantity int) (int, error) {
	return g.quantityChange(ctx, image, func(image string) (int, error) {
		return g.store.SetQuantity(image, quantity)
	})
}

func (g *Garage) quantityChange(ctx context.Context, image string, fn func(string) (int, error)) (int, error) {
	q, err := fn(image)
	if err != nil {
		return 0, err
	}
	event := CollectionEvent{Type: ChangeQuantity, Image: image, Quantity: q}
	if q == 0 {
		event.Type = ChangeUnowned
	}
	g.changed(ctx, event)
	return q, nil
}

// AddWanted puts the catalog car with image on the wish list. It
// reports false when it was already there.
func (g *Garage) AddWanted(ctx context.Context, image string) (bool, error) {
	e, err := g.findCar(image)
	if err != nil {
		return false, err
	}
	added, err := g.store.AddWanted(e.Year, e.CaseLetter(), e.Car)
	if err != nil {
		return false, err
	}
	if added {
		g.changed(ctx, CollectionEvent{Type: ChangeWantedAdded, Image: image})
	}
	return added, nil
}

// RemoveWanted takes image off the wish list.
func (g *Garage) RemoveWanted(ctx context.Context, image string) error {
	if err := g.store.RemoveWanted(image); err != nil {
		return err
	}
	g.changed(ctx, CollectionEvent{Type: ChangeWantedRemoved, Image: image})
	return nil
}

// Export returns the collection in its portable form.
func (g *Garage) Export(context.Context) (collection.Export, error) {
	return g.store.Export()
}

// Import loads a portable collection.
func (g *Garage) Import(ctx context.Context, exp collection.Export, mode collection.ImportMode) (collection.ImportResult, error) {
	result, err := g.store.Import(exp, mode)
	if err != nil {
		return result, err
	}
	g.changed(ctx, CollectionEvent{Type: ChangeImported, Quantity: result.Owned})
	return result, nil
}
