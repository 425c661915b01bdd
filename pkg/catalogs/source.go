package catalogs

import (
	"context"
	"fmt"
	"io/fs"
	"net/http"

	"github.com/agentstation/diecast/pkg/constants"
	"github.com/agentstation/diecast/pkg/errors"
)

// Source loads a catalog. Reload requests call Load again.
type Source interface {
	Name() string
	Load(ctx context.Context) (Catalog, error)
}

// FileSource loads a catalog from a JSON or YAML file.
type FileSource struct {
	Path string
}

// Name implements Source.
func (s FileSource) Name() string { return "file:" + s.Path }

// Load implements Source.
func (s FileSource) Load(ctx context.Context) (Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return LoadFile(s.Path)
}

// FSSource loads a catalog from a file system.
type FSSource struct {
	FS   fs.FS
	Path string
}

// Name implements Source.
func (s FSSource) Name() string { return "fs:" + s.Path }

// Load implements Source.
func (s FSSource) Load(ctx context.Context) (Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return LoadFS(s.FS, s.Path)
}

// Doer sends HTTP requests. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// URLSource fetches a catalog document over HTTP.
type URLSource struct {
	URL string
	// Client defaults to an http.Client with DefaultTimeout.
	Client Doer
}

// Name implements Source.
func (s URLSource) Name() string { return s.URL }

// Load implements Source.
func (s URLSource) Load(ctx context.Context) (Catalog, error) {
	var client Doer = &http.Client{Timeout: constants.DefaultTimeout}
	if s.Client != nil {
		client = s.Client
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, errors.NewValidationError("url", s.URL, err.Error())
	}
	// always revalidate so a reload sees fresh data
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := client.Do(req)
	if err != nil {
		return nil, errors.WrapIO("fetch", s.URL, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.NewIOError("fetch", s.URL, fmt.Errorf("unexpected status %s", resp.Status))
	}
	return Decode(resp.Body, FormatFromPath(s.URL))
}

// StaticSource serves a fixed catalog, used for tests and embedding.
type StaticSource struct {
	Catalog Catalog
}

// Name implements Source.
func (s StaticSource) Name() string { return "static" }

// Load implements Source.
func (s StaticSource) Load(context.Context) (Catalog, error) {
	if s.Catalog == nil {
		return Catalog{}, nil
	}
	return s.Catalog, nil
}

var (
	_ Source = FileSource{}
	_ Source = FSSource{}
	_ Source = URLSource{}
	_ Source = StaticSource{}
)
