package catalogs

import (
	"bytes"
	"encoding/json"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/diecast/pkg/errors"
)

// Format identifies a catalog encoding.
type Format string

// Supported catalog formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath infers the format from a file extension, defaulting to JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Parse decodes a catalog document.
func Parse(data []byte, format Format) (Catalog, error) {
	return parse(data, format, "")
}

func parse(data []byte, format Format, file string) (Catalog, error) {
	catalog := Catalog{}
	if len(bytes.TrimSpace(data)) == 0 {
		return catalog, nil
	}

	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &catalog)
	case FormatJSON:
		err = json.Unmarshal(data, &catalog)
	default:
		return nil, errors.NewValidationError("format", format, "unsupported catalog format")
	}
	if err != nil {
		return nil, errors.WrapParse(string(format), file, err)
	}
	if catalog == nil {
		catalog = Catalog{}
	}
	return catalog, nil
}

// Decode reads and parses a catalog from r.
func Decode(r io.Reader, format Format) (Catalog, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.WrapIO("read", "", err)
	}
	return Parse(data, format)
}

// LoadFile reads a JSON or YAML catalog from disk.
func LoadFile(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFoundError("catalog file", path)
		}
		return nil, errors.WrapIO("read", path, err)
	}
	return parse(data, FormatFromPath(path), path)
}

// LoadFS reads a catalog from a file system, such as an embedded one.
func LoadFS(fsys fs.FS, path string) (Catalog, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	return parse(data, FormatFromPath(path), path)
}

// Encode writes the catalog in the given format.
func Encode(w io.Writer, c Catalog, format Format) error {
	var (
		data []byte
		err  error
	)
	switch format {
	case FormatYAML:
		data, err = yaml.MarshalWithOptions(c, yaml.Indent(2), yaml.IndentSequence(false))
	default:
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return errors.WrapParse(string(format), "", err)
	}
	_, err = w.Write(data)
	return errors.WrapIO("write", "", err)
}
