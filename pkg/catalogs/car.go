package catalogs

import (
	"encoding/json"
	"fmt"
)

// Label is a catalog field that may be written as a string or a bare
// number in source data, such as "3/10", "#7" or 12. It is always held
// as its string form.
type Label string

// String returns the label text.
func (l Label) String() string { return string(l) }

// UnmarshalJSON accepts strings, numbers and null.
func (l *Label) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*l = labelFrom(v)
	return nil
}

// UnmarshalYAML accepts any scalar.
func (l *Label) UnmarshalYAML(unmarshal func(any) error) error {
	var v any
	if err := unmarshal(&v); err != nil {
		return err
	}
	*l = labelFrom(v)
	return nil
}

func labelFrom(v any) Label {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return Label(t)
	case float64:
		if t == float64(int64(t)) {
			return Label(fmt.Sprintf("%d", int64(t)))
		}
		return Label(fmt.Sprint(t))
	default:
		return Label(fmt.Sprint(t))
	}
}

// Car is an immutable catalog entry. Two cars are the same car iff
// their Image values are equal.
type Car struct {
	Name         string `json:"name" yaml:"name"`
	Image        string `json:"image" yaml:"image"`
	Series       string `json:"series" yaml:"series"`
	SeriesNumber Label  `json:"series_number" yaml:"series_number"`
	HWNumber     Label  `json:"hw_number" yaml:"hw_number"`
	Color        string `json:"color" yaml:"color"`
}

// HuntRef designates the Treasure Hunt or Super Treasure Hunt of a case.
// Only HWNumber and Image take part in identification.
type HuntRef struct {
	HWNumber Label  `json:"hw_number" yaml:"hw_number"`
	Image    string `json:"image" yaml:"image"`
	Name     string `json:"name,omitempty" yaml:"name,omitempty"`
}

// Matches reports whether car is exactly the referenced car: both the
// number and the image must be equal.
func (h *HuntRef) Matches(car Car) bool {
	if h == nil {
		return false
	}
	return car.HWNumber == h.HWNumber && car.Image == h.Image
}

// SharesNumber reports whether car occupies the referenced number slot,
// whatever its image.
func (h *HuntRef) SharesNumber(car Car) bool {
	if h == nil {
		return false
	}
	return car.HWNumber == h.HWNumber
}
