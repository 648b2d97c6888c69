package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/yourorg/parcel-api/internal/report"
)

type ReportDeps struct {
	Pipeline *report.Pipeline
}

type ReportRequest struct {
	Address string `json:"address"`
	Country string `json:"country"`
	Lookup  string `json:"lookup"` // "geometry" or "address"; empty picks per candidate
}

func RegisterReport(r chi.Router, d ReportDeps) {
	r.Route("/v1/properties", func(r chi.Router) {
		r.Post("/report", func(w http.ResponseWriter, req *http.Request) {
			var body ReportRequest
			if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
				render.Status(req, http.StatusBadRequest)
				render.JSON(w, req, map[string]any{"error": "invalid_json", "detail": err.Error()})
				return
			}
			handleReport(w, req, d, body)
		})
		r.Get("/report", func(w http.ResponseWriter, req *http.Request) {
			q := req.URL.Query()
			handleReport(w, req, d, ReportRequest{
				Address: q.Get("address"),
				Country: q.Get("country"),
				Lookup:  q.Get("lookup"),
			})
		})
	})
}

func handleReport(w http.ResponseWriter, req *http.Request, d ReportDeps, body ReportRequest) {
	if body.Address == "" {
		render.Status(req, http.StatusBadRequest)
		render.JSON(w, req, map[string]any{"error": "address_required", "detail": "address is required"})
		return
	}

	// Per-request copy so overrides never leak across requests.
	p := *d.Pipeline
	if body.Country != "" {
		p.Country = body.Country
	}
	if body.Lookup != "" {
		loc, err := report.LocatorByMode(body.Lookup)
		if err != nil {
			render.Status(req, http.StatusBadRequest)
			render.JSON(w, req, map[string]any{"error": "invalid_lookup", "detail": err.Error()})
			return
		}
		p.Locator = loc
	}

	rep, err := p.Run(req.Context(), body.Address)
	if err != nil {
		writeReportError(w, req, err)
		return
	}
	render.JSON(w, req, map[string]any{
		"ok":     true,
		"report": rep,
	})
}

func writeReportError(w http.ResponseWriter, req *http.Request, err error) {
	if errors.Is(err, report.ErrNoAddressMatch) || errors.Is(err, report.ErrNoParcelMatch) {
		render.Status(req, http.StatusNotFound)
		render.JSON(w, req, map[string]any{"error": "not_found", "detail": err.Error()})
		return
	}
	var se *report.StageError
	if errors.As(err, &se) {
		render.Status(req, se.Status)
		render.JSON(w, req, map[string]any{"error": "upstream_status", "stage": se.Stage, "status": se.Status})
		return
	}
	render.Status(req, http.StatusBadGateway)
	render.JSON(w, req, map[string]any{"error": "upstream_error", "detail": err.Error()})
}
