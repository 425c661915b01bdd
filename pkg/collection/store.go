// Package collection stores which cars the user owns, with quantities,
// and which cars they want. Both lists are keyed by car image and kept
// in a Backend as whole JSON documents.
package collection

import (
	"encoding/json"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/diecast/pkg/catalogs"
	"github.com/agentstation/diecast/pkg/errors"
	"github.com/agentstation/diecast/pkg/logging"
)

// Store reads and writes the owned and wanted lists. Every mutation
// reads the full list, changes it, and writes it back while holding the
// store lock.
type Store struct {
	mu      sync.Mutex
	backend Backend
	logger  *zerolog.Logger
}

// Option configures a Store.
type Option func(*Store) error

// WithLogger sets the logger used for store diagnostics.
func WithLogger(logger *zerolog.Logger) Option {
	return func(s *Store) error {
		if logger == nil {
			return errors.NewValidationError("logger", nil, "cannot be nil")
		}
		s.logger = logger
		return nil
	}
}

// New creates a Store over backend.
func New(backend Backend, opts ...Option) (*Store, error) {
	if backend == nil {
		return nil, errors.NewConfigError("collection", "backend is required", nil)
	}
	s := &Store{backend: backend, logger: logging.Default()}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// GetOwned returns the owned list. Entries stored without a quantity
// read back with quantity 1.
func (s *Store) GetOwned() ([]OwnedEntry, error) {
	var list []OwnedEntry
	if err := s.read(OwnedKey, &list); err != nil {
		return nil, err
	}
	return normalizeOwned(list), nil
}

// SetOwned replaces the owned list.
func (s *Store) SetOwned(list []OwnedEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeOwned(list)
}

// GetWanted returns the wanted list.
func (s *Store) GetWanted() ([]WantedEntry, error) {
	var list []WantedEntry
	if err := s.read(WantedKey, &list); err != nil {
		return nil, err
	}
	return dedupWanted(list), nil
}

// SetWanted replaces the wanted list.
func (s *Store) SetWanted(list []WantedEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeWanted(list)
}

// Shared reports whether the backend may be changed by other processes.
func (s *Store) Shared() bool {
	sh, ok := s.backend.(Shared)
	return ok && sh.Shared()
}

// IsOwned reports whether image is owned. Read failures count as not owned.
func (s *Store) IsOwned(image string) bool {
	list, err := s.GetOwned()
	if err != nil {
		s.logger.Warn().Err(err).Msg("reading owned list")
		return false
	}
	for _, e := range list {
		if e.Image() == image {
			return true
		}
	}
	return false
}

// IsWanted reports whether image is wanted. Read failures count as not wanted.
func (s *Store) IsWanted(image string) bool {
	list, err := s.GetWanted()
	if err != nil {
		s.logger.Warn().Err(err).Msg("reading wanted list")
		return false
	}
	for _, e := range list {
		if e.Image() == image {
			return true
		}
	}
	return false
}

// Snapshot reads both lists once.
func (s *Store) Snapshot() (*Snapshot, error) {
	owned, err := s.GetOwned()
	if err != nil {
		return nil, err
	}
	wanted, err := s.GetWanted()
	if err != nil {
		return nil, err
	}
	return NewSnapshot(owned, wanted), nil
}

// MarkOwned records car as owned with quantity 1. Marking an owned car
// again leaves its quantity unchanged.
func (s *Store) MarkOwned(year, caseLetter string, car catalogs.Car) (OwnedEntry, error) {
	if err := validateImage(car.Image); err != nil {
		return OwnedEntry{}, err
	}

	var result OwnedEntry
	err := s.updateOwned(func(list []OwnedEntry) ([]OwnedEntry, error) {
		if i := indexOwned(list, car.Image); i >= 0 {
			result = list[i]
			return list, nil
		}
		result = OwnedEntry{Year: year, CaseLetter: caseLetter, Car: car, Quantity: 1}
		return append(list, result), nil
	})
	return result, err
}

// ToggleOwned marks car owned, or unmarks it when already owned. It
// reports whether the car is owned afterwards.
func (s *Store) ToggleOwned(year, caseLetter string, car catalogs.Car) (bool, error) {
	if err := validateImage(car.Image); err != nil {
		return false, err
	}

	owned := false
	err := s.updateOwned(func(list []OwnedEntry) ([]OwnedEntry, error) {
		if i := indexOwned(list, car.Image); i >= 0 {
			return append(list[:i], list[i+1:]...), nil
		}
		owned = true
		return append(list, OwnedEntry{Year: year, CaseLetter: caseLetter, Car: car, Quantity: 1}), nil
	})
	return owned, err
}

// Unmark removes the owned entry for image.
func (s *Store) Unmark(image string) error {
	return s.updateOwned(func(list []OwnedEntry) ([]OwnedEntry, error) {
		i := indexOwned(list, image)
		if i < 0 {
			return nil, errors.NewNotFoundError("owned car", image)
		}
		return append(list[:i], list[i+1:]...), nil
	})
}

// Increment adds one copy and returns the new quantity.
func (s *Store) Increment(image string) (int, error) {
	return s.adjust(image, func(q int) int { return q + 1 })
}

// Decrement removes one copy and returns the new quantity. Going below
// 1 removes the entry and returns 0.
func (s *Store) Decrement(image string) (int, error) {
	return s.adjust(image, func(q int) int { return q - 1 })
}

// SetQuantity sets the owned quantity. A quantity below 1 removes the
// entry and returns 0.
func (s *Store) SetQuantity(image string, quantity int) (int, error) {
	return s.adjust(image, func(int) int { return quantity })
}

func (s *Store) adjust(image string, next func(int) int) (int, error) {
	result := 0
	err := s.updateOwned(func(list []OwnedEntry) ([]OwnedEntry, error) {
		i := indexOwned(list, image)
		if i < 0 {
			return nil, errors.NewNotFoundError("owned car", image)
		}
		q := next(list[i].Quantity)
		if q < 1 {
			return append(list[:i], list[i+1:]...), nil
		}
		list[i].Quantity = q
		result = q
		return list, nil
	})
	return result, err
}

// AddWanted puts car on the wish list. It reports false when the car
// was already wanted.
func (s *Store) AddWanted(year, caseLetter string, car catalogs.Car) (bool, error) {
	if err := validateImage(car.Image); err != nil {
		return false, err
	}

	added := false
	err := s.updateWanted(func(list []WantedEntry) ([]WantedEntry, error) {
		if indexWanted(list, car.Image) >= 0 {
			return list, nil
		}
		added = true
		return append(list, WantedEntry{Year: year, CaseLetter: caseLetter, Car: car}), nil
	})
	return added, err
}

// RemoveWanted takes image off the wish list.
func (s *Store) RemoveWanted(image string) error {
	return s.updateWanted(func(list []WantedEntry) ([]WantedEntry, error) {
		i := indexWanted(list, image)
		if i < 0 {
			return nil, errors.NewNotFoundError("wanted car", image)
		}
		return append(list[:i], list[i+1:]...), nil
	})
}

// TotalOwned sums the owned quantities.
func (s *Store) TotalOwned() (int, error) {
	snap, err := s.Snapshot()
	if err != nil {
		return 0, err
	}
	return snap.TotalOwned(), nil
}

// Duplicates returns the owned entries held more than once.
func (s *Store) Duplicates() ([]OwnedEntry, error) {
	list, err := s.GetOwned()
	if err != nil {
		return nil, err
	}
	return NewSnapshot(list, nil).Duplicates(), nil
}

func (s *Store) updateOwned(fn func([]OwnedEntry) ([]OwnedEntry, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.GetOwned()
	if err != nil {
		return err
	}
	list, err = fn(list)
	if err != nil {
		return err
	}
	return s.writeOwned(list)
}

func (s *Store) updateWanted(fn func([]WantedEntry) ([]WantedEntry, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.GetWanted()
	if err != nil {
		return err
	}
	list, err = fn(list)
	if err != nil {
		return err
	}
	return s.writeWanted(list)
}

func (s *Store) writeOwned(list []OwnedEntry) error {
	for _, e := range list {
		if e.Quantity < 0 {
			return errors.NewValidationError("quantity", e.Quantity, "must not be negative")
		}
	}
	list = normalizeOwned(list)
	s.logger.Debug().Int("entries", len(list)).Msg("writing owned list")
	return s.write(OwnedKey, list)
}

func (s *Store) writeWanted(list []WantedEntry) error {
	list = dedupWanted(list)
	s.logger.Debug().Int("entries", len(list)).Msg("writing wanted list")
	return s.write(WantedKey, list)
}

func (s *Store) read(key string, v any) error {
	data, err := s.backend.Get(key)
	if err != nil {
		return errors.WrapResource("load", key, "", err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return errors.WrapResource("load", key, "", errors.WrapParse("json", key, err))
	}
	return nil
}

func (s *Store) write(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return errors.WrapResource("save", key, "", err)
	}
	if err := s.backend.Put(key, data); err != nil {
		return errors.WrapResource("save", key, "", err)
	}
	return nil
}

func indexOwned(list []OwnedEntry, image string) int {
	for i, e := range list {
		if e.Image() == image {
			return i
		}
	}
	return -1
}

func indexWanted(list []WantedEntry, image string) int {
	for i, e := range list {
		if e.Image() == image {
			return i
		}
	}
	return -1
}

func validateImage(image string) error {
	if strings.TrimSpace(image) == "" {
		return errors.NewValidationError("image", image, "car image is required")
	}
	return nil
}
