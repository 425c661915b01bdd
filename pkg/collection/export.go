package collection

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/diecast/pkg/errors"
)

// Export is the portable form of a collection.
type Export struct {
	WantedCars []WantedEntry `json:"wantedCars" yaml:"wantedCars"`
	OwnedCars  []OwnedEntry  `json:"ownedCars" yaml:"ownedCars"`
}

// ImportMode selects how an import combines with stored lists.
type ImportMode string

const (
	// ImportReplace discards the stored lists.
	ImportReplace ImportMode = "replace"
	// ImportMerge keeps stored entries and lets incoming entries win on
	// matching images.
	ImportMerge ImportMode = "merge"
)

// ImportResult summarizes an import.
type ImportResult struct {
	Owned   int `json:"owned"`
	Wanted  int `json:"wanted"`
	Skipped int `json:"skipped"`
}

// ParseExport decodes an export document. The document must be an
// object; missing lists decode as empty.
func ParseExport(data []byte, format string) (Export, error) {
	var raw map[string]any
	var err error
	switch format {
	case "yaml", "yml":
		err = yaml.Unmarshal(data, &raw)
	case "json", "":
		format = "json"
		err = json.Unmarshal(data, &raw)
	default:
		return Export{}, errors.NewValidationError("format", format, "unsupported import format")
	}
	if err != nil {
		return Export{}, errors.WrapParse(format, "", err)
	}
	if raw == nil {
		return Export{}, errors.NewParseError(format, "", "collection document must be an object", nil)
	}
	for _, key := range []string{"wantedCars", "ownedCars"} {
		if v, ok := raw[key]; ok && v != nil {
			if _, isList := v.([]any); !isList {
				return Export{}, errors.NewParseError(format, "", key+" must be a list", nil)
			}
		}
	}

	var exp Export
	if format == "json" {
		err = json.Unmarshal(data, &exp)
	} else {
		err = yaml.Unmarshal(data, &exp)
	}
	if err != nil {
		return Export{}, errors.WrapParse(format, "", err)
	}
	return exp, nil
}

// WriteExport encodes exp as JSON or YAML.
func WriteExport(w io.Writer, exp Export, format string) error {
	if exp.WantedCars == nil {
		exp.WantedCars = []WantedEntry{}
	}
	if exp.OwnedCars == nil {
		exp.OwnedCars = []OwnedEntry{}
	}

	var (
		data []byte
		err  error
	)
	switch format {
	case "yaml", "yml":
		data, err = yaml.MarshalWithOptions(exp, yaml.Indent(2), yaml.IndentSequence(false))
	default:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		err = enc.Encode(exp)
		data = buf.Bytes()
	}
	if err != nil {
		return errors.WrapResource("export", "collection", "", err)
	}
	_, err = w.Write(data)
	return errors.WrapIO("write", "", err)
}

// Export returns both stored lists.
func (s *Store) Export() (Export, error) {
	snap, err := s.Snapshot()
	if err != nil {
		return Export{}, err
	}
	return Export{WantedCars: snap.Wanted(), OwnedCars: snap.Owned()}, nil
}

// Import stores exp according to mode. Entries without a car image are
// skipped. Either both lists are replaced or, on a write failure, the
// owned list is put back as it was.
func (s *Store) Import(exp Export, mode ImportMode) (ImportResult, error) {
	var result ImportResult

	owned := make([]OwnedEntry, 0, len(exp.OwnedCars))
	for _, e := range exp.OwnedCars {
		if validateImage(e.Image()) != nil || e.Quantity < 0 {
			result.Skipped++
			continue
		}
		owned = append(owned, e)
	}
	wanted := make([]WantedEntry, 0, len(exp.WantedCars))
	for _, e := range exp.WantedCars {
		if validateImage(e.Image()) != nil {
			result.Skipped++
			continue
		}
		wanted = append(wanted, e)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	switch mode {
	case ImportReplace, "":
	case ImportMerge:
		current, err := s.GetOwned()
		if err != nil {
			return result, err
		}
		owned = mergeOwned(current, owned)

		currentWanted, err := s.GetWanted()
		if err != nil {
			return result, err
		}
		wanted = mergeWanted(currentWanted, wanted)
	default:
		return result, errors.NewValidationError("mode", mode, "must be replace or merge")
	}

	owned = normalizeOwned(owned)
	wanted = dedupWanted(wanted)

	// the owned list is restored when the wanted list cannot be written
	previous, err := s.backend.Get(OwnedKey)
	if err != nil {
		return result, errors.WrapResource("load", OwnedKey, "", err)
	}
	if err := s.writeOwned(owned); err != nil {
		return result, err
	}
	if err := s.writeWanted(wanted); err != nil {
		if rerr := s.backend.Put(OwnedKey, previous); rerr != nil {
			s.logger.Error().Err(rerr).Msg("restoring owned list after failed import")
		}
		return result, err
	}

	result.Owned = len(owned)
	result.Wanted = len(wanted)
	s.logger.Info().
		Str("mode", string(mode)).
		Int("owned", result.Owned).
		Int("wanted", result.Wanted).
		Int("skipped", result.Skipped).
		Msg("Imported collection")
	return result, nil
}

func mergeOwned(current, incoming []OwnedEntry) []OwnedEntry {
	byImage := make(map[string]OwnedEntry, len(incoming))
	for _, e := range incoming {
		byImage[e.Image()] = e
	}
	out := make([]OwnedEntry, 0, len(current)+len(incoming))
	for _, e := range current {
		if in, ok := byImage[e.Image()]; ok {
			e = in
			delete(byImage, e.Image())
		}
		out = append(out, e)
	}
	for _, e := range incoming {
		if _, pending := byImage[e.Image()]; pending {
			out = append(out, e)
			delete(byImage, e.Image())
		}
	}
	return out
}

func mergeWanted(current, incoming []WantedEntry) []WantedEntry {
	seen := make(map[string]bool, len(current))
	out := make([]WantedEntry, 0, len(current)+len(incoming))
	for _, e := range current {
		seen[e.Image()] = true
		out = append(out, e)
	}
	for _, e := range incoming {
		if !seen[e.Image()] {
			seen[e.Image()] = true
			out = append(out, e)
		}
	}
	return out
}
