// Package catalogs holds the read-only toy car catalog: years of cases
// of cars. It flattens the nested structure into entries for scanning
// and resolves a car back to the case it was released in.
package catalogs

import (
	"sort"
	"strconv"

	"github.com/agentstation/diecast/pkg/constants"
)

// Year is the set of cases released in one catalog year.
type Year struct {
	Cases []Case `json:"cases" yaml:"cases"`
}

// Catalog maps a year key ("2025") to the cases released that year.
// A loaded catalog is never mutated.
type Catalog map[string]Year

// Entry is one car occurrence in the catalog.
type Entry struct {
	Year string
	Case *Case
	Car  Car
}

// CaseLetter returns the letter of the entry's case, or "" when absent.
func (e Entry) CaseLetter() string {
	if e.Case == nil {
		return ""
	}
	return e.Case.Letter
}

// YearNumber parses a year key. ok is false for non-numeric keys.
func YearNumber(year string) (n int, ok bool) {
	n, err := strconv.Atoi(year)
	if err != nil {
		return 0, false
	}
	return n, true
}

// IsOldYear reports whether year falls before the current-case cutoff.
// Non-numeric years are never old.
func IsOldYear(year string) bool {
	n, ok := YearNumber(year)
	return ok && n < constants.OldCaseCutoffYear
}

// Years returns the year keys, numeric years ascending first, then any
// non-numeric keys in lexical order.
func (c Catalog) Years() []string {
	years := make([]string, 0, len(c))
	for y := range c {
		years = append(years, y)
	}
	sort.SliceStable(years, func(i, j int) bool {
		a, aok := YearNumber(years[i])
		b, bok := YearNumber(years[j])
		switch {
		case aok && bok:
			return a < b
		case aok != bok:
			return aok
		default:
			return years[i] < years[j]
		}
	})
	return years
}

// Flatten returns one entry per car occurrence. Years are visited in
// Years order and cases and cars in source order, so the result is
// deterministic. Empty years and cases contribute nothing.
func (c Catalog) Flatten() []Entry {
	var entries []Entry
	for _, year := range c.Years() {
		cases := c[year].Cases
		for i := range cases {
			kase := &cases[i]
			for _, car := range kase.Cars {
				entries = append(entries, Entry{Year: year, Case: kase, Car: car})
			}
		}
	}
	return entries
}

// Len returns the total number of car occurrences.
func (c Catalog) Len() int {
	n := 0
	for _, y := range c {
		for _, kase := range y.Cases {
			n += len(kase.Cars)
		}
	}
	return n
}

// FindOwningCase returns the case in year whose cars include image.
func (c Catalog) FindOwningCase(year, image string) (*Case, bool) {
	y, ok := c[year]
	if !ok {
		return nil, false
	}
	for i := range y.Cases {
		if y.Cases[i].Contains(image) {
			return &y.Cases[i], true
		}
	}
	return nil, false
}

// FindCase returns the case with letter in year, compared case-insensitively.
func (c Catalog) FindCase(year, letter string) (*Case, bool) {
	y, ok := c[year]
	if !ok {
		return nil, false
	}
	for i := range y.Cases {
		if y.Cases[i].HasLetter(letter) {
			return &y.Cases[i], true
		}
	}
	return nil, false
}

// FindCar locates a car by image across all years.
func (c Catalog) FindCar(image string) (Entry, bool) {
	for _, year := range c.Years() {
		if kase, ok := c.FindOwningCase(year, image); ok {
			car, _ := kase.Car(image)
			return Entry{Year: year, Case: kase, Car: car}, true
		}
	}
	return Entry{}, false
}
