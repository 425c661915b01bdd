package collection

import "github.com/agentstation/diecast/pkg/catalogs"

// OwnedEntry records a car the user owns. Quantity is at least 1 once
// read back from a store.
type OwnedEntry struct {
	Year       string       `json:"year" yaml:"year"`
	CaseLetter string       `json:"caseLetter" yaml:"caseLetter"`
	Car        catalogs.Car `json:"car" yaml:"car"`
	Quantity   int          `json:"quantity,omitempty" yaml:"quantity,omitempty"`
}

// Image returns the identity key of the entry.
func (e OwnedEntry) Image() string { return e.Car.Image }

// Duplicates returns the number of spare copies held.
func (e OwnedEntry) Duplicates() int {
	if e.Quantity <= 1 {
		return 0
	}
	return e.Quantity - 1
}

// WantedEntry records a car on the wish list.
type WantedEntry struct {
	Year       string       `json:"year" yaml:"year"`
	CaseLetter string       `json:"caseLetter" yaml:"caseLetter"`
	Car        catalogs.Car `json:"car" yaml:"car"`
}

// Image returns the identity key of the entry.
func (e WantedEntry) Image() string { return e.Car.Image }

// Entry converts an owned record into a catalog entry. The owning case
// is resolved from c when possible; otherwise a case carrying only the
// stored letter stands in.
func (e OwnedEntry) Entry(c catalogs.Catalog) catalogs.Entry {
	return toEntry(c, e.Year, e.CaseLetter, e.Car)
}

// Entry converts a wanted record into a catalog entry.
func (e WantedEntry) Entry(c catalogs.Catalog) catalogs.Entry {
	return toEntry(c, e.Year, e.CaseLetter, e.Car)
}

func toEntry(c catalogs.Catalog, year, letter string, car catalogs.Car) catalogs.Entry {
	if kase, ok := c.FindOwningCase(year, car.Image); ok {
		return catalogs.Entry{Year: year, Case: kase, Car: car}
	}
	return catalogs.Entry{Year: year, Case: &catalogs.Case{Letter: letter}, Car: car}
}

// normalizeOwned defaults missing quantities to 1 and drops repeated
// identities, keeping the first occurrence.
func normalizeOwned(list []OwnedEntry) []OwnedEntry {
	out := make([]OwnedEntry, 0, len(list))
	seen := make(map[string]bool, len(list))
	for _, e := range list {
		if seen[e.Image()] {
			continue
		}
		seen[e.Image()] = true
		if e.Quantity < 1 {
			e.Quantity = 1
		}
		out = append(out, e)
	}
	return out
}

func dedupWanted(list []WantedEntry) []WantedEntry {
	out := make([]WantedEntry, 0, len(list))
	seen := make(map[string]bool, len(list))
	for _, e := range list {
		if seen[e.Image()] {
			continue
		}
		seen[e.Image()] = true
		out = append(out, e)
	}
	return out
}
