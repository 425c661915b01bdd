package facets

import (
	"strings"

	"github.com/agentstation/diecast/pkg/errors"
)

// Dimension names a filterable car attribute.
type Dimension string

// Facet dimensions.
const (
	Year       Dimension = "year"
	CaseLetter Dimension = "caseLetter"
	Series     Dimension = "series"
	HWNumber   Dimension = "hw_number"
	Color      Dimension = "color"
)

// Dimensions lists every dimension in display order.
var Dimensions = []Dimension{Year, CaseLetter, Series, HWNumber, Color}

// ParseDimension validates a dimension name.
func ParseDimension(s string) (Dimension, error) {
	for _, d := range Dimensions {
		if strings.EqualFold(string(d), s) {
			return d, nil
		}
	}
	return "", errors.NewValidationError("dimension", s, "must be one of year, caseLetter, series, hw_number, color")
}

// Cascades reports whether the dimension's options narrow with the
// other active filters. Year and case letter are navigation axes and
// always offer every value.
func (d Dimension) Cascades() bool {
	return d == Series || d == HWNumber || d == Color
}

// FilterState holds the user's facet selections and checkboxes. An
// empty selection leaves a dimension unconstrained.
type FilterState struct {
	Year       []string `json:"year,omitempty"`
	CaseLetter []string `json:"caseLetter,omitempty"`
	Series     []string `json:"series,omitempty"`
	HWNumber   []string `json:"hw_number,omitempty"`
	Color      []string `json:"color,omitempty"`

	UnownedOnly bool `json:"unownedOnly,omitempty"`
	TH          bool `json:"th,omitempty"`
	STH         bool `json:"sth,omitempty"`
	ShowDuds    bool `json:"showDuds,omitempty"`
}

// Values returns the selection for d.
func (f FilterState) Values(d Dimension) []string {
	switch d {
	case Year:
		return f.Year
	case CaseLetter:
		return f.CaseLetter
	case Series:
		return f.Series
	case HWNumber:
		return f.HWNumber
	case Color:
		return f.Color
	}
	return nil
}

// With returns a copy of f with the selection for d replaced.
func (f FilterState) With(d Dimension, values []string) FilterState {
	values = append([]string(nil), values...)
	switch d {
	case Year:
		f.Year = values
	case CaseLetter:
		f.CaseLetter = values
	case Series:
		f.Series = values
	case HWNumber:
		f.HWNumber = values
	case Color:
		f.Color = values
	}
	return f
}

// HuntActive reports whether any special hunt checkbox is set.
func (f FilterState) HuntActive() bool {
	return f.TH || f.STH || f.ShowDuds
}

// IsZero reports whether nothing is selected.
func (f FilterState) IsZero() bool {
	for _, d := range Dimensions {
		if len(f.Values(d)) > 0 {
			return false
		}
	}
	return !f.UnownedOnly && !f.HuntActive()
}

// selection is a lower-cased lookup set; nil means unconstrained.
type selection map[string]struct{}

func newSelection(values []string) selection {
	var s selection
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "" {
			continue
		}
		if s == nil {
			s = make(selection, len(values))
		}
		s[v] = struct{}{}
	}
	return s
}

func (s selection) allows(value string) bool {
	if s == nil {
		return true
	}
	_, ok := s[strings.ToLower(strings.TrimSpace(value))]
	return ok
}
