package handlers

import (
	"context"
	"net/http"

	"github.com/agentstation/diecast"
	"github.com/agentstation/diecast/internal/server/cache"
	"github.com/agentstation/diecast/internal/server/filter"
	"github.com/agentstation/diecast/internal/server/response"
	"github.com/agentstation/diecast/pkg/errors"
)

type collectionView func(context.Context, diecast.ListRequest) (*diecast.CollectionResult, error)

// CarRequest names a catalog car by image.
type CarRequest struct {
	Image string `json:"image"`
}

// QuantityRequest sets an owned quantity.
type QuantityRequest struct {
	Quantity *int `json:"quantity"`
}

// QuantityResponse reports the quantity after a change. Zero means the
// car is no longer owned.
type QuantityResponse struct {
	Image    string `json:"image"`
	Quantity int    `json:"quantity"`
	Owned    bool   `json:"owned"`
}

// HandleOwned handles GET /api/v1/owned.
func (h *Handlers) HandleOwned(w http.ResponseWriter, r *http.Request) {
	h.serveCollection(w, r, "owned", h.garage.Owned)
}

// HandleWanted handles GET /api/v1/wanted.
func (h *Handlers) HandleWanted(w http.ResponseWriter, r *http.Request) {
	h.serveCollection(w, r, "wanted", h.garage.Wanted)
}

// HandleDuplicates handles GET /api/v1/duplicates.
func (h *Handlers) HandleDuplicates(w http.ResponseWriter, r *http.Request) {
	h.serveCollection(w, r, "duplicates", h.garage.Duplicates)
}

func (h *Handlers) serveCollection(w http.ResponseWriter, r *http.Request, route string, view collectionView) {
	req, err := filter.ParseList(r)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	h.cached(w, cache.Key(route, r.URL.Query()), func() (any, error) {
		return view(r.Context(), req)
	})
}

// HandleMarkOwned handles POST /api/v1/owned.
func (h *Handlers) HandleMarkOwned(w http.ResponseWriter, r *http.Request) {
	var req CarRequest
	if err := decode(w, r, &req); err != nil {
		response.ErrorFromType(w, err)
		return
	}
	if req.Image == "" {
		response.ErrorFromType(w, errors.NewValidationError("image", req.Image, "is required"))
		return
	}

	entry, err := h.garage.MarkOwned(r.Context(), req.Image)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	response.Created(w, entry)
}

// HandleUnmark handles DELETE /api/v1/owned/{image}.
func (h *Handlers) HandleUnmark(w http.ResponseWriter, r *http.Request) {
	if err := h.garage.Unmark(r.Context(), r.PathValue("image")); err != nil {
		response.ErrorFromType(w, err)
		return
	}
	response.NoContent(w)
}

// HandleIncrement handles POST /api/v1/owned/{image}/increment.
func (h *Handlers) HandleIncrement(w http.ResponseWriter, r *http.Request) {
	image := r.PathValue("image")
	h.quantity(w, image, func() (int, error) { return h.garage.Increment(r.Context(), image) })
}

// HandleDecrement handles POST /api/v1/owned/{image}/decrement.
func (h *Handlers) HandleDecrement(w http.ResponseWriter, r *http.Request) {
	image := r.PathValue("image")
	h.quantity(w, image, func() (int, error) { return h.garage.Decrement(r.Context(), image) })
}

// HandleSetQuantity handles PUT /api/v1/owned/{image}/quantity.
func (h *Handlers) HandleSetQuantity(w http.ResponseWriter, r *http.Request) {
	var req QuantityRequest
	if err := decode(w, r, &req); err != nil {
		response.ErrorFromType(w, err)
		return
	}
	if req.Quantity == nil {
		response.ErrorFromType(w, errors.NewValidationError("quantity", nil, "is required"))
		return
	}

	image := r.PathValue("image")
	h.quantity(w, image, func() (int, error) { return h.garage.SetQuantity(r.Context(), image, *req.Quantity) })
}

func (h *Handlers) quantity(w http.ResponseWriter, image string, fn func() (int, error)) {
	q, err := fn()
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	response.OK(w, QuantityResponse{Image: image, Quantity: q, Owned: q > 0})
}

// HandleAddWanted handles POST /api/v1/wanted. It answers 201 when the
// car was added and 200 when it was already wanted.
func (h *Handlers) HandleAddWanted(w http.ResponseWriter, r *http.Request) {
	var req CarRequest
	if err := decode(w, r, &req); err != nil {
		response.ErrorFromType(w, err)
		return
	}
	if req.Image == "" {
		response.ErrorFromType(w, errors.NewValidationError("image", req.Image, "is required"))
		return
	}

	added, err := h.garage.AddWanted(r.Context(), req.Image)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	body := map[string]any{"image": req.Image, "added": added}
	if added {
		response.Created(w, body)
		return
	}
	response.OK(w, body)
}

// HandleRemoveWanted handles DELETE /api/v1/wanted/{image}.
func (h *Handlers) HandleRemoveWanted(w http.ResponseWriter, r *http.Request) {
	if err := h.garage.RemoveWanted(r.Context(), r.PathValue("image")); err != nil {
		response.ErrorFromType(w, err)
		return
	}
	response.NoContent(w)
}
