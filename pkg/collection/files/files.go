// Package files provides a collection backend that keeps each list in
// its own JSON file under a directory.
package files

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/agentstation/diecast/pkg/collection"
	"github.com/agentstation/diecast/pkg/constants"
	"github.com/agentstation/diecast/pkg/errors"
)

// Option is a function that configures a Backend
type Option func(*config) error

// WithCreate controls whether the directory is created when missing
func WithCreate(create bool) Option {
	return func(cfg *config) error {
		cfg.create = create
		return nil
	}
}

type config struct {
	create bool
}

// Backend stores each key as <dir>/<key>.json.
type Backend struct {
	mu  sync.Mutex
	dir string
}

var (
	_ collection.Backend = (*Backend)(nil)
	_ collection.Shared  = (*Backend)(nil)
)

// New creates a file backend rooted at dir
func New(dir string, opts ...Option) (*Backend, error) {
	if dir == "" {
		return nil, fmt.Errorf("path is required for files backend")
	}

	cfg := &config{create: true}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("applying files option: %w", err)
		}
	}

	if cfg.create {
		if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
			return nil, errors.WrapIO("create", dir, err)
		}
	} else if _, err := os.Stat(dir); err != nil {
		return nil, errors.NewNotFoundError("directory", dir)
	}

	return &Backend{dir: dir}, nil
}

// Shared reports true: other processes may write the same directory.
func (b *Backend) Shared() bool { return true }

func (b *Backend) path(key string) string {
	return filepath.Join(b.dir, key+".json")
}

// Get implements collection.Backend.
func (b *Backend) Get(key string) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	data, err := os.ReadFile(b.path(key))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.WrapIO("read", b.path(key), err)
	}
	return data, nil
}

// Put implements collection.Backend. The file is replaced atomically.
func (b *Backend) Put(key string, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	target := b.path(key)
	tmp, err := os.CreateTemp(b.dir, "."+key+"-*.json")
	if err != nil {
		return errors.WrapIO("create", target, err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return errors.WrapIO("write", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return errors.WrapIO("close", tmpName, err)
	}
	if err := os.Chmod(tmpName, constants.FilePermissions); err != nil {
		return errors.WrapIO("chmod", tmpName, err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		return errors.WrapIO("rename", target, err)
	}
	return nil
}
