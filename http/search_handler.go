package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/yourorg/parcel-api/lightbox"
)

type SearchDeps struct {
	LightBox *lightbox.Client
}

type SearchRequest struct {
	Text string `json:"text"`
}

func RegisterSearch(r chi.Router, d SearchDeps) {
	// POST: JSON body
	r.Post("/search", func(w http.ResponseWriter, req *http.Request) {
		var body SearchRequest
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			render.Status(req, http.StatusBadRequest)
			render.JSON(w, req, map[string]any{"error": "invalid_json", "detail": err.Error()})
			return
		}
		handleSearchRequest(w, req, d, body)
	})

	// GET: query params (compatibility)
	r.Get("/search", func(w http.ResponseWriter, req *http.Request) {
		handleSearchRequest(w, req, d, SearchRequest{Text: req.URL.Query().Get("text")})
	})
}

func handleSearchRequest(w http.ResponseWriter, req *http.Request, d SearchDeps, body SearchRequest) {
	if body.Text == "" {
		render.Status(req, http.StatusBadRequest)
		render.JSON(w, req, map[string]any{"error": "text_required", "detail": "text is required"})
		return
	}

	resp, err := d.LightBox.SearchAddresses(req.Context(), body.Text)
	if err != nil {
		render.Status(req, http.StatusBadGateway)
		render.JSON(w, req, map[string]any{"error": "upstream_error", "detail": err.Error()})
		return
	}
	if !resp.OK() {
		// The gateway's 400/401/404 contract is part of this API; echo it
		// rather than flattening every failure to 502.
		render.Status(req, resp.StatusCode)
		render.JSON(w, req, map[string]any{"error": "upstream_status", "status": resp.StatusCode})
		return
	}

	addrs, err := lightbox.MapGeocodePayloadToSummaries(resp.Body)
	if err != nil {
		render.Status(req, http.StatusInternalServerError)
		render.JSON(w, req, map[string]any{"error": "map_error", "detail": err.Error()})
		return
	}
	render.JSON(w, req, map[string]any{
		"ok":        true,
		"count":     len(addrs),
		"addresses": addrs,
	})
}
