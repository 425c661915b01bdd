package collection

// Snapshot is a read-only view of both lists taken at one point in time.
// Views are built from a fresh snapshot on every recompute.
type Snapshot struct {
	owned     []OwnedEntry
	wanted    []WantedEntry
	ownedIdx  map[string]int
	wantedIdx map[string]int
}

// NewSnapshot indexes the given lists. Owned entries are normalized.
func NewSnapshot(owned []OwnedEntry, wanted []WantedEntry) *Snapshot {
	s := &Snapshot{
		owned:     normalizeOwned(owned),
		wanted:    dedupWanted(wanted),
		ownedIdx:  make(map[string]int, len(owned)),
		wantedIdx: make(map[string]int, len(wanted)),
	}
	for i, e := range s.owned {
		s.ownedIdx[e.Image()] = i
	}
	for i, e := range s.wanted {
		s.wantedIdx[e.Image()] = i
	}
	return s
}

// IsOwned reports whether a car with image is owned.
func (s *Snapshot) IsOwned(image string) bool {
	_, ok := s.ownedIdx[image]
	return ok
}

// IsWanted reports whether a car with image is wanted.
func (s *Snapshot) IsWanted(image string) bool {
	_, ok := s.wantedIdx[image]
	return ok
}

// Quantity returns the owned quantity, or 0 when not owned.
func (s *Snapshot) Quantity(image string) int {
	if i, ok := s.ownedIdx[image]; ok {
		return s.owned[i].Quantity
	}
	return 0
}

// OwnedEntry returns the owned record for image.
func (s *Snapshot) OwnedEntry(image string) (OwnedEntry, bool) {
	if i, ok := s.ownedIdx[image]; ok {
		return s.owned[i], true
	}
	return OwnedEntry{}, false
}

// Owned returns a copy of the owned list.
func (s *Snapshot) Owned() []OwnedEntry {
	return append([]OwnedEntry(nil), s.owned...)
}

// Wanted returns a copy of the wanted list.
func (s *Snapshot) Wanted() []WantedEntry {
	return append([]WantedEntry(nil), s.wanted...)
}

// TotalOwned sums the quantities of all owned entries.
func (s *Snapshot) TotalOwned() int {
	total := 0
	for _, e := range s.owned {
		total += e.Quantity
	}
	return total
}

// Duplicates returns owned entries held more than once.
func (s *Snapshot) Duplicates() []OwnedEntry {
	var out []OwnedEntry
	for _, e := range s.owned {
		if e.Quantity > 1 {
			out = append(out, e)
		}
	}
	return out
}
