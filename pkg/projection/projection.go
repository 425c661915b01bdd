// Package projection derives the per-card view of a catalog entry:
// how many the user owns, whether it is wanted, and its hunt status.
package projection

import (
	"github.com/agentstation/diecast/pkg/catalogs"
	"github.com/agentstation/diecast/pkg/collection"
)

// Ownership is the read side of the collection a projection needs.
// *collection.Snapshot implements it.
type Ownership interface {
	IsOwned(image string) bool
	IsWanted(image string) bool
	Quantity(image string) int
}

var _ Ownership = (*collection.Snapshot)(nil)

// View is the derived state of one entry.
type View struct {
	Quantity       int  `json:"quantity"`
	DuplicateCount int  `json:"duplicateCount"`
	IsOwned        bool `json:"isOwned"`
	IsWanted       bool `json:"isWanted"`
	IsTH           bool `json:"isTH"`
	IsSTH          bool `json:"isSTH"`
	IsDud          bool `json:"isDud"`
}

// Badge names the card treatment for hunt cars.
type Badge string

// Card badges.
const (
	BadgeNone Badge = ""
	BadgeTH   Badge = "th"
	BadgeSTH  Badge = "sth"
)

// Badge returns the treatment a renderer should apply.
func (v View) Badge() Badge {
	switch {
	case v.IsSTH:
		return BadgeSTH
	case v.IsTH:
		return BadgeTH
	default:
		return BadgeNone
	}
}

// Project computes the view of e. Quantity is 0 for cars not owned.
// TH and STH require both number and image to match the case's
// reference.
func Project(e catalogs.Entry, own Ownership) View {
	v := View{
		IsTH:  e.Case.IsTH(e.Car),
		IsSTH: e.Case.IsSTH(e.Car),
		IsDud: e.Case.IsDud(e.Car),
	}
	if own == nil {
		return v
	}

	v.IsOwned = own.IsOwned(e.Car.Image)
	v.IsWanted = own.IsWanted(e.Car.Image)
	if v.IsOwned {
		v.Quantity = own.Quantity(e.Car.Image)
		if v.Quantity < 1 {
			v.Quantity = 1
		}
	}
	if v.Quantity > 1 {
		v.DuplicateCount = v.Quantity - 1
	}
	return v
}

// Card pairs an entry with its view.
type Card struct {
	Year       string       `json:"year"`
	CaseLetter string       `json:"caseLetter"`
	Car        catalogs.Car `json:"car"`
	View
}

// Cards projects every entry.
func Cards(entries []catalogs.Entry, own Ownership) []Card {
	out := make([]Card, 0, len(entries))
	for _, e := range entries {
		out = append(out, Card{
			Year:       e.Year,
			CaseLetter: e.CaseLetter(),
			Car:        e.Car,
			View:       Project(e, own),
		})
	}
	return out
}

// DuplicateEntries returns the owned records held more than once,
// resolved against c, in stored order.
func DuplicateEntries(c catalogs.Catalog, snap *collection.Snapshot) []catalogs.Entry {
	var out []catalogs.Entry
	for _, o := range snap.Duplicates() {
		out = append(out, o.Entry(c))
	}
	return out
}

// OwnedEntries returns every owned record resolved against c.
func OwnedEntries(c catalogs.Catalog, snap *collection.Snapshot) []catalogs.Entry {
	owned := snap.Owned()
	out := make([]catalogs.Entry, 0, len(owned))
	for _, o := range owned {
		out = append(out, o.Entry(c))
	}
	return out
}

// WantedEntries returns every wanted record resolved against c.
func WantedEntries(c catalogs.Catalog, snap *collection.Snapshot) []catalogs.Entry {
	wanted := snap.Wanted()
	out := make([]catalogs.Entry, 0, len(wanted))
	for _, w := range wanted {
		out = append(out, w.Entry(c))
	}
	return out
}
