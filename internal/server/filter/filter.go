// Package filter turns API query strings into garage requests.
//
// Facet selections may be repeated. Year, case and hw number also take
// comma separated lists; series and color values may contain commas, so
// they are only ever repeated:
//
//	/search?q=s-j-imports&year=2024,2025&hw=5&th=true&group=case
//	/search?series=Fast%2C+Furious&series=HW+Surf
package filter

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/agentstation/diecast"
	"github.com/agentstation/diecast/pkg/errors"
	"github.com/agentstation/diecast/pkg/facets"
	"github.com/agentstation/diecast/pkg/grouping"
)

// Query parameter names.
const (
	ParamQuery   = "q"
	ParamYear    = "year"
	ParamCase    = "case"
	ParamSeries  = "series"
	ParamHW      = "hw"
	ParamColor   = "color"
	ParamUnowned = "unowned"
	ParamTH      = "th"
	ParamSTH     = "sth"
	ParamDuds    = "duds"
	ParamOld     = "old"
	ParamGroup   = "group"
)

// commaLists are the dimensions whose values never contain a comma.
var commaLists = map[facets.Dimension]bool{
	facets.Year:       true,
	facets.CaseLetter: true,
	facets.HWNumber:   true,
}

var dimensionParams = map[facets.Dimension]string{
	facets.Year:       ParamYear,
	facets.CaseLetter: ParamCase,
	facets.Series:     ParamSeries,
	facets.HWNumber:   ParamHW,
	facets.Color:      ParamColor,
}

// ParseSearch reads a search request. includeOld applies when the old
// parameter is absent.
func ParseSearch(r *http.Request, includeOld bool) (diecast.SearchRequest, error) {
	q := r.URL.Query()

	filters, err := ParseFilters(q)
	if err != nil {
		return diecast.SearchRequest{}, err
	}
	old, err := parseBool(q, ParamOld, includeOld)
	if err != nil {
		return diecast.SearchRequest{}, err
	}
	mode, err := parseGroup(q)
	if err != nil {
		return diecast.SearchRequest{}, err
	}

	return diecast.SearchRequest{
		Query:           q.Get(ParamQuery),
		Filters:         filters,
		IncludeOldCases: old,
		GroupBy:         mode,
	}, nil
}

// ParseList reads a collection list request.
func ParseList(r *http.Request) (diecast.ListRequest, error) {
	q := r.URL.Query()

	filters, err := ParseFilters(q)
	if err != nil {
		return diecast.ListRequest{}, err
	}
	mode, err := parseGroup(q)
	if err != nil {
		return diecast.ListRequest{}, err
	}
	return diecast.ListRequest{
		Query:   q.Get(ParamQuery),
		Filters: filters,
		GroupBy: mode,
	}, nil
}

// ParseFilters reads facet selections and checkboxes.
func ParseFilters(q url.Values) (facets.FilterState, error) {
	var f facets.FilterState
	for _, d := range facets.Dimensions {
		f = f.With(d, splitValues(q[dimensionParams[d]], commaLists[d]))
	}

	var err error
	if f.UnownedOnly, err = parseBool(q, ParamUnowned, false); err != nil {
		return f, err
	}
	if f.TH, err = parseBool(q, ParamTH, false); err != nil {
		return f, err
	}
	if f.STH, err = parseBool(q, ParamSTH, false); err != nil {
		return f, err
	}
	if f.ShowDuds, err = parseBool(q, ParamDuds, false); err != nil {
		return f, err
	}
	return f, nil
}

// Encode writes a filter state back into query parameters.
func Encode(f facets.FilterState) url.Values {
	q := url.Values{}
	for _, d := range facets.Dimensions {
		if vals := f.Values(d); len(vals) > 0 {
			q[dimensionParams[d]] = vals
		}
	}
	setBool(q, ParamUnowned, f.UnownedOnly)
	setBool(q, ParamTH, f.TH)
	setBool(q, ParamSTH, f.STH)
	setBool(q, ParamDuds, f.ShowDuds)
	return q
}

func splitValues(raw []string, commas bool) []string {
	var out []string
	for _, v := range raw {
		parts := []string{v}
		if commas {
			parts = strings.Split(v, ",")
		}
		for _, part := range parts {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func parseBool(q url.Values, key string, def bool) (bool, error) {
	raw := q.Get(key)
	if raw == "" {
		if _, present := q[key]; present {
			// bare flag, as in ?th
			return true, nil
		}
		return def, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, errors.NewValidationError(key, raw, "must be a boolean")
	}
	return b, nil
}

func setBool(q url.Values, key string, v bool) {
	if v {
		q.Set(key, "true")
	}
}

func parseGroup(q url.Values) (grouping.Mode, error) {
	raw := q.Get(ParamGroup)
	if raw == "" {
		return "", nil
	}
	return grouping.ParseMode(raw)
}
