// Package embedded carries the sample catalog compiled into the binary.
package embedded

import (
	"embed"

	"github.com/agentstation/diecast/pkg/catalogs"
)

// CatalogPath is the location of the sample catalog within FS.
const CatalogPath = "catalog/catalog.yaml"

// FS embeds the sample catalog at build time.
//
//go:embed catalog/*
var FS embed.FS

// Source returns a catalog source reading the embedded sample.
func Source() catalogs.Source {
	return catalogs.FSSource{FS: FS, Path: CatalogPath}
}
