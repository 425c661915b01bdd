package handlers

import (
	"net/http"
	"strconv"

	"github.com/agentstation/diecast/internal/server/cache"
	"github.com/agentstation/diecast/internal/server/filter"
	"github.com/agentstation/diecast/internal/server/response"
	"github.com/agentstation/diecast/pkg/facets"
	"github.com/agentstation/diecast/pkg/query"
)

// HandleSearch handles GET /api/v1/search.
//
// The c-refresh query reloads the catalog; its result is never cached.
func (h *Handlers) HandleSearch(w http.ResponseWriter, r *http.Request) {
	req, err := filter.ParseSearch(r, h.includeOldCases)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}

	if query.Parse(req.Query).IsRefresh() {
		res, err := h.garage.Search(r.Context(), req)
		if err != nil {
			response.ErrorFromType(w, err)
			return
		}
		response.OK(w, res)
		return
	}

	h.cached(w, cache.Key("search", r.URL.Query()), func() (any, error) {
		return h.garage.Search(r.Context(), req)
	})
}

// HandleFacets handles GET /api/v1/facets/{dimension}.
func (h *Handlers) HandleFacets(w http.ResponseWriter, r *http.Request) {
	dim, err := facets.ParseDimension(r.PathValue("dimension"))
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	req, err := filter.ParseSearch(r, h.includeOldCases)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}

	h.cached(w, cache.Key("facets:"+string(dim), r.URL.Query()), func() (any, error) {
		opts, err := h.garage.Facets(r.Context(), req, dim)
		if err != nil {
			return nil, err
		}
		return map[string]any{"dimension": dim, "options": opts}, nil
	})
}

// HandleSuggest handles GET /api/v1/suggest?q=name&limit=n.
func (h *Handlers) HandleSuggest(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, err := strconv.Atoi(q.Get("limit"))
	if err != nil {
		limit = 0
	}
	names := h.garage.Suggest(q.Get(filter.ParamQuery), limit)
	if names == nil {
		names = []string{}
	}
	response.OK(w, map[string]any{"suggestions": names})
}
