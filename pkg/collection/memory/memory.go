// Package memory provides an in-process collection backend.
package memory

import (
	"fmt"
	"sync"

	"github.com/agentstation/diecast/pkg/collection"
	"github.com/agentstation/diecast/pkg/errors"
)

// Option is a function that configures a Backend
type Option func(*config) error

// WithReadOnly makes every Put fail with errors.ErrReadOnly
func WithReadOnly(readOnly bool) Option {
	return func(cfg *config) error {
		cfg.readOnly = readOnly
		return nil
	}
}

// WithPreload seeds a key with data
func WithPreload(key string, data []byte) Option {
	return func(cfg *config) error {
		if len(data) == 0 {
			return fmt.Errorf("preload data for %s cannot be empty", key)
		}
		cfg.preload[key] = append([]byte(nil), data...)
		return nil
	}
}

type config struct {
	readOnly bool
	preload  map[string][]byte
}

// Backend keeps blobs in a map.
type Backend struct {
	mu       sync.RWMutex
	data     map[string][]byte
	readOnly bool
}

var _ collection.Backend = (*Backend)(nil)

// New creates an in-memory backend
func New(opts ...Option) (*Backend, error) {
	cfg := &config{preload: make(map[string][]byte)}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("applying memory option: %w", err)
		}
	}
	return &Backend{data: cfg.preload, readOnly: cfg.readOnly}, nil
}

// Get implements collection.Backend.
func (b *Backend) Get(key string) ([]byte, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	data, ok := b.data[key]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), data...), nil
}

// Put implements collection.Backend.
func (b *Backend) Put(key string, data []byte) error {
	if b.readOnly {
		return errors.ErrReadOnly
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.data[key] = append([]byte(nil), data...)
	return nil
}
