package diecast

import (
	"github.com/sahilm/fuzzy"

	"github.com/agentstation/diecast/pkg/constants"
)

// carNames is a fuzzy.Source over distinct car names.
type carNames []string

func (n carNames) String(i int) string { return n[i] }
func (n carNames) Len() int            { return len(n) }

// Suggest returns up to limit car names that fuzzily match text, best
// first. A limit of 0 uses the default.
func (g *Garage) Suggest(text string, limit int) []string {
	text = normalizeName(text)
	if text == "" {
		return nil
	}
	if limit <= 0 {
		limit = constants.MaxSuggestions
	}

	seen := make(map[string]bool)
	var names carNames
	for _, e := range g.Catalog().Flatten() {
		key := normalizeName(e.Car.Name)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		names = append(names, e.Car.Name)
	}

	matches := fuzzy.FindFrom(text, lowerNames(names))
	out := make([]string, 0, limit)
	for _, m := range matches {
		if len(out) == limit {
			break
		}
		out = append(out, names[m.Index])
	}
	return out
}

// lowerNames lets matching ignore case while results keep the catalog
// spelling.
func lowerNames(names carNames) carNames {
	out := make(carNames, len(names))
	for i, n := range names {
		out[i] = normalizeName(n)
	}
	return out
}
