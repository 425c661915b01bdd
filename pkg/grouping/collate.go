package grouping

import (
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Collator compares display strings in a locale-aware order. A Collator
// is not safe for concurrent use; create one per sort.
type Collator struct {
	c *collate.Collator
}

// NewCollator returns a collator for tag. language.Und gives the root
// collation order.
func NewCollator(tag language.Tag) *Collator {
	return &Collator{c: collate.New(tag)}
}

// Compare returns -1, 0 or 1.
func (c *Collator) Compare(a, b string) int {
	return c.c.CompareString(a, b)
}

// Less reports whether a sorts before b.
func (c *Collator) Less(a, b string) bool {
	return c.Compare(a, b) < 0
}
