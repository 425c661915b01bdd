// Package query interprets the free-text search box.
//
// A query is lower-cased and trimmed, then read in every way it can be
// read: as a car name substring and, when it carries one of the typed
// prefixes, as a series, case, treasure hunt or super treasure hunt
// query. An entry matches when any applicable reading matches it.
//
//	bone         name contains "bone"
//	s-j-imports  series contains "j-imports"
//	sth          car is in its case's super treasure hunt number slot
//	th           car is in its case's treasure hunt number slot
//	c-2025 a     case A of 2025; "c-a" and "c-2025" constrain one side
//	c-refresh    not a search; asks for a catalog reload
package query

import (
	"strings"
	"unicode"

	"github.com/agentstation/diecast/pkg/catalogs"
	"github.com/agentstation/diecast/pkg/constants"
)

// Kind tags the most specific reading of a query.
type Kind string

// Query kinds.
const (
	KindNone    Kind = "none"
	KindName    Kind = "name"
	KindSeries  Kind = "series"
	KindTH      Kind = "th"
	KindSTH     Kind = "sth"
	KindCase    Kind = "case"
	KindRefresh Kind = "refresh"
)

// Prefixes of the typed query forms.
const (
	SeriesPrefix = "s-"
	CasePrefix   = "c-"
	STHPrefix    = "sth"
	THPrefix     = "th"
)

// Query is a parsed search string.
type Query struct {
	// Raw is the normalized input.
	Raw  string
	Kind Kind

	// Series is the substring to look for in car.series for series queries.
	Series string

	// Year and Letter constrain case queries. Empty means any.
	Year   string
	Letter string
}

// Parse normalizes raw and tags it.
func Parse(raw string) Query {
	q := Query{Raw: strings.ToLower(strings.TrimSpace(raw))}

	switch {
	case q.Raw == "":
		q.Kind = KindNone
	case q.Raw == constants.RefreshSentinel:
		q.Kind = KindRefresh
	case strings.HasPrefix(q.Raw, SeriesPrefix):
		q.Kind = KindSeries
		q.Series = strings.TrimSpace(q.Raw[len(SeriesPrefix):])
	case strings.HasPrefix(q.Raw, STHPrefix):
		q.Kind = KindSTH
	case strings.HasPrefix(q.Raw, THPrefix):
		q.Kind = KindTH
	case strings.HasPrefix(q.Raw, CasePrefix):
		q.Kind = KindCase
		q.Year, q.Letter = splitCase(q.Raw[len(CasePrefix):])
	default:
		q.Kind = KindName
	}
	return q
}

// splitCase reads "2025 a", "a-2025", "2025" or "a". A four digit token
// is the year and the first other token is the letter.
func splitCase(rest string) (year, letter string) {
	tokens := strings.FieldsFunc(rest, func(r rune) bool {
		return unicode.IsSpace(r) || r == '-' || r == '/' || r == ','
	})
	for _, tok := range tokens {
		if year == "" && isYear(tok) {
			year = tok
			continue
		}
		if letter == "" {
			letter = tok
		}
	}
	return year, letter
}

func isYear(tok string) bool {
	if len(tok) != 4 {
		return false
	}
	for _, r := range tok {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// IsEmpty reports whether the query places no text constraint.
func (q Query) IsEmpty() bool { return q.Kind == KindNone }

// IsRefresh reports whether the query is the cache refresh sentinel.
func (q Query) IsRefresh() bool { return q.Kind == KindRefresh }

// Matches reports whether any applicable reading of q matches e. Empty
// and refresh queries match everything.
func (q Query) Matches(e catalogs.Entry) bool {
	if q.Kind == KindNone || q.Kind == KindRefresh {
		return true
	}

	if strings.Contains(strings.ToLower(e.Car.Name), q.Raw) {
		return true
	}
	if strings.HasPrefix(q.Raw, SeriesPrefix) &&
		strings.Contains(strings.ToLower(e.Car.Series), strings.TrimSpace(q.Raw[len(SeriesPrefix):])) {
		return true
	}
	if e.Case != nil {
		if strings.HasPrefix(q.Raw, STHPrefix) && e.Case.STH.SharesNumber(e.Car) {
			return true
		}
		if strings.HasPrefix(q.Raw, THPrefix) && e.Case.TH.SharesNumber(e.Car) {
			return true
		}
	}
	if strings.HasPrefix(q.Raw, CasePrefix) {
		year, letter := splitCase(q.Raw[len(CasePrefix):])
		if (year == "" || year == e.Year) && (letter == "" || strings.EqualFold(letter, e.CaseLetter())) {
			return true
		}
	}
	return false
}
