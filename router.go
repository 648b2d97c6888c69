package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/go-chi/render"

	httpapi "github.com/yourorg/parcel-api/http"
	"github.com/yourorg/parcel-api/internal/report"
	"github.com/yourorg/parcel-api/lightbox"
)

func BuildRouter(lb *lightbox.Client, pipe *report.Pipeline) http.Handler {
	r := chi.NewRouter()
	r.Use(httprate.LimitByIP(100, 1*time.Minute)) // protect upstream quota
	r.Use(render.SetContentType(render.ContentTypeJSON))
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { w.Write([]byte(`{"ok":true}`)) })

	httpapi.RegisterSearch(r, httpapi.SearchDeps{LightBox: lb})
	httpapi.RegisterReport(r, httpapi.ReportDeps{Pipeline: pipe})

	return r
}
