// Package grouping turns a flat list of catalog entries into named,
// ordered groups for display.
package grouping

import (
	"sort"
	"strconv"

	"golang.org/x/text/language"

	"github.com/agentstation/diecast/pkg/catalogs"
	"github.com/agentstation/diecast/pkg/errors"
)

// Mode selects how entries are grouped and ordered.
type Mode string

// Grouping modes.
const (
	ByCase     Mode = "case"
	BySeries   Mode = "series"
	ByYear     Mode = "year_sort"
	Alphabetic Mode = "alphabetic"
	NoFilter   Mode = "no_filter"
)

// Modes lists every mode.
var Modes = []Mode{ByCase, BySeries, ByYear, Alphabetic, NoFilter}

// FlatGroupName names the single group of the flat modes.
const FlatGroupName = "All"

// ParseMode validates a mode name. The empty string selects NoFilter.
func ParseMode(s string) (Mode, error) {
	if s == "" {
		return NoFilter, nil
	}
	for _, m := range Modes {
		if string(m) == s {
			return m, nil
		}
	}
	return "", errors.NewValidationError("group", s, "must be one of case, series, year_sort, alphabetic, no_filter")
}

// Group is a named run of entries.
type Group struct {
	Name    string           `json:"name"`
	Entries []catalogs.Entry `json:"entries"`
}

// Options tunes grouping.
type Options struct {
	// Language selects the collation used by the alphabetic sort.
	Language language.Tag
}

// GroupBy groups entries by mode using root collation.
func GroupBy(entries []catalogs.Entry, mode Mode) []Group {
	return GroupWith(entries, mode, Options{Language: language.Und})
}

// GroupWith groups entries by mode. Entries lacking the fields the mode
// keys on are skipped. Output is deterministic for a given input.
func GroupWith(entries []catalogs.Entry, mode Mode, opts Options) []Group {
	switch mode {
	case Alphabetic, NoFilter:
		return flat(entries, mode, opts)
	}

	index := make(map[string]int)
	var groups []Group
	for _, e := range entries {
		if !wellFormed(e, mode) {
			continue
		}
		key := Key(e, mode)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, Group{Name: key})
		}
		groups[i].Entries = append(groups[i].Entries, e)
	}

	for i := range groups {
		sortEntries(groups[i].Entries, mode, opts)
	}

	if mode == ByYear {
		sort.SliceStable(groups, func(i, j int) bool {
			a, _ := strconv.Atoi(groups[i].Name)
			b, _ := strconv.Atoi(groups[j].Name)
			return a > b
		})
	} else {
		sort.SliceStable(groups, func(i, j int) bool { return groups[i].Name < groups[j].Name })
	}
	return groups
}

func flat(entries []catalogs.Entry, mode Mode, opts Options) []Group {
	items := make([]catalogs.Entry, 0, len(entries))
	for _, e := range entries {
		if wellFormed(e, mode) {
			items = append(items, e)
		}
	}
	if len(items) == 0 {
		return nil
	}
	sortEntries(items, mode, opts)
	return []Group{{Name: FlatGroupName, Entries: items}}
}

// Key returns the group name of e under mode.
func Key(e catalogs.Entry, mode Mode) string {
	switch mode {
	case ByCase:
		return e.Year + " - " + e.CaseLetter()
	case BySeries:
		return e.Car.Series + " (" + e.Year + ")"
	case ByYear:
		return e.Year
	default:
		return FlatGroupName
	}
}

func wellFormed(e catalogs.Entry, mode Mode) bool {
	if e.Year == "" {
		return false
	}
	switch mode {
	case ByCase:
		return e.CaseLetter() != ""
	case BySeries:
		return e.Car.Series != ""
	}
	return true
}

func sortEntries(items []catalogs.Entry, mode Mode, opts Options) {
	switch mode {
	case ByCase, BySeries:
		sort.SliceStable(items, func(i, j int) bool {
			return ExtractNumber(items[i].Car.SeriesNumber) < ExtractNumber(items[j].Car.SeriesNumber)
		})
	case ByYear:
		sort.SliceStable(items, func(i, j int) bool {
			return ExtractNumber(items[i].Car.HWNumber) < ExtractNumber(items[j].Car.HWNumber)
		})
	case Alphabetic:
		c := NewCollator(opts.Language)
		sort.SliceStable(items, func(i, j int) bool {
			return c.Less(items[i].Car.Name, items[j].Car.Name)
		})
	case NoFilter:
		sort.SliceStable(items, func(i, j int) bool {
			return releaseLess(items[i], items[j])
		})
	}
}

// priority ranks the newest release years first.
func priority(year int) int {
	switch year {
	case 2025:
		return 3
	case 2024:
		return 2
	default:
		return 1
	}
}

// releaseLess orders 2025 then 2024 by hw number, then every other year
// newest first and by hw number within a year.
func releaseLess(a, b catalogs.Entry) bool {
	ya := ExtractNumber(a.Year)
	yb := ExtractNumber(b.Year)
	pa, pb := priority(ya), priority(yb)
	if pa != pb {
		return pa > pb
	}
	if pa == 1 && ya != yb {
		return ya > yb
	}
	return ExtractNumber(a.Car.HWNumber) < ExtractNumber(b.Car.HWNumber)
}
