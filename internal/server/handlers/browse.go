package handlers

import (
	"net/http"

	"github.com/agentstation/diecast/internal/server/response"
)

// HandleYears handles GET /api/v1/series: the catalog years.
func (h *Handlers) HandleYears(w http.ResponseWriter, _ *http.Request) {
	response.OK(w, map[string]any{"years": h.garage.Years()})
}

// HandleSeries handles GET /api/v1/series/{year}.
func (h *Handlers) HandleSeries(w http.ResponseWriter, r *http.Request) {
	year := r.PathValue("year")
	series, err := h.garage.Series(year)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	response.OK(w, map[string]any{"year": year, "series": series})
}

// HandleSeriesCars handles GET /api/v1/series/{year}/{series}.
func (h *Handlers) HandleSeriesCars(w http.ResponseWriter, r *http.Request) {
	year, series := r.PathValue("year"), r.PathValue("series")
	h.cached(w, "series:"+year+":"+series, func() (any, error) {
		cards, err := h.garage.SeriesCars(r.Context(), year, series)
		if err != nil {
			return nil, err
		}
		return map[string]any{"year": year, "series": series, "cards": cards}, nil
	})
}

// HandleCaseCars handles GET /api/v1/cases/{year}/{letter}.
func (h *Handlers) HandleCaseCars(w http.ResponseWriter, r *http.Request) {
	year, letter := r.PathValue("year"), r.PathValue("letter")
	h.cached(w, "case:"+year+":"+letter, func() (any, error) {
		cards, err := h.garage.CaseCars(r.Context(), year, letter)
		if err != nil {
			return nil, err
		}
		return map[string]any{"year": year, "case": letter, "cards": cards}, nil
	})
}

// HandleCar handles GET /api/v1/cars/{image}.
func (h *Handlers) HandleCar(w http.ResponseWriter, r *http.Request) {
	card, err := h.garage.Card(r.Context(), r.PathValue("image"))
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	response.OK(w, card)
}
