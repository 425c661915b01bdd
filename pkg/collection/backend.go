package collection

// Keys under which the lists are stored.
const (
	OwnedKey  = "owned"
	WantedKey = "wanted"
)

// Backend is a whole-value key-value store. It has no per-record update
// primitive; every change rewrites the full list.
type Backend interface {
	// Get returns the stored blob for key, or nil when nothing is stored.
	Get(key string) ([]byte, error)
	// Put replaces the blob stored for key.
	Put(key string, data []byte) error
}

// Shared is implemented by backends whose data other processes may
// change, such as files on disk.
type Shared interface {
	Shared() bool
}
