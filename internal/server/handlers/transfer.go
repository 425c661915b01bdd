package handlers

import (
	"io"
	"net/http"
	"strings"

	"github.com/agentstation/diecast/internal/server/response"
	"github.com/agentstation/diecast/pkg/collection"
	"github.com/agentstation/diecast/pkg/constants"
	"github.com/agentstation/diecast/pkg/errors"
)

// HandleExport handles GET /api/v1/export?format=json|yaml. The body is
// the bare collection document, not the response envelope, so it can be
// imported again as is.
func (h *Handlers) HandleExport(w http.ResponseWriter, r *http.Request) {
	format, err := exportFormat(r.URL.Query().Get("format"))
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}

	exp, err := h.garage.Export(r.Context())
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}

	contentType := "application/json"
	if format == "yaml" {
		contentType = "application/yaml"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="collection.`+format+`"`)
	if err := collection.WriteExport(w, exp, format); err != nil {
		h.logger.Error().Err(err).Msg("Failed to write export")
	}
}

// HandleImport handles POST /api/v1/import?mode=replace|merge. YAML
// bodies are recognized by content type or ?format=yaml.
func (h *Handlers) HandleImport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	mode := collection.ImportMode(q.Get("mode"))
	switch mode {
	case "":
		mode = collection.ImportReplace
	case collection.ImportReplace, collection.ImportMerge:
	default:
		response.ErrorFromType(w, errors.NewValidationError("mode", string(mode), "must be replace or merge"))
		return
	}

	format := q.Get("format")
	if format == "" && strings.Contains(r.Header.Get("Content-Type"), "yaml") {
		format = "yaml"
	}
	format, err := exportFormat(format)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, constants.MaxImportBytes))
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	exp, err := collection.ParseExport(data, format)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}

	result, err := h.garage.Import(r.Context(), exp, mode)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	response.OK(w, map[string]any{"mode": mode, "result": result})
}

func exportFormat(raw string) (string, error) {
	switch strings.ToLower(raw) {
	case "", "json":
		return "json", nil
	case "yaml", "yml":
		return "yaml", nil
	}
	return "", errors.NewValidationError("format", raw, "must be json or yaml")
}
