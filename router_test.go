package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourorg/parcel-api/internal/report"
	"github.com/yourorg/parcel-api/lightbox"
	"github.com/yourorg/parcel-api/lightbox/lightboxtest"
)

func newRouterUnderTest(t *testing.T) http.Handler {
	t.Helper()
	srv := lightboxtest.NewServer()
	t.Cleanup(srv.Close)
	client := lightbox.NewClient(lightboxtest.ValidKey,
		lightbox.WithBaseURL(srv.URL),
		lightbox.WithHTTPClient(srv.Client()),
	)
	return BuildRouter(client, &report.Pipeline{Client: client})
}

func TestBuildRouter_Health(t *testing.T) {
	r := newRouterUnderTest(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
}

func TestBuildRouter_RoutesWired(t *testing.T) {
	r := newRouterUnderTest(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/search", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code) // registered, rejects empty text

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/properties/report", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code) // registered, rejects empty address
}
