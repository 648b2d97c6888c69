package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourorg/parcel-api/internal/report"
	"github.com/yourorg/parcel-api/lightbox"
	"github.com/yourorg/parcel-api/lightbox/lightboxtest"
)

func newTestRouter(t *testing.T, key string) chi.Router {
	t.Helper()
	srv := lightboxtest.NewServer()
	t.Cleanup(srv.Close)
	client := lightbox.NewClient(key,
		lightbox.WithBaseURL(srv.URL),
		lightbox.WithHTTPClient(srv.Client()),
	)

	r := chi.NewRouter()
	RegisterSearch(r, SearchDeps{LightBox: client})
	RegisterReport(r, ReportDeps{Pipeline: &report.Pipeline{Client: client}})
	return r
}

func doJSON(t *testing.T, r chi.Router, method, target, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return rec, out
}

func TestSearchHandler_OK(t *testing.T) {
	r := newTestRouter(t, lightboxtest.ValidKey)

	rec, out := doJSON(t, r, http.MethodGet, "/search?text="+url.QueryEscape(lightboxtest.KnownAddress), "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, out["ok"])
	assert.EqualValues(t, 1, out["count"])
}

func TestSearchHandler_MissingText(t *testing.T) {
	r := newTestRouter(t, lightboxtest.ValidKey)

	rec, out := doJSON(t, r, http.MethodGet, "/search", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "text_required", out["error"])
}

func TestSearchHandler_EchoesUpstreamStatus(t *testing.T) {
	r := newTestRouter(t, "not-the-key")

	rec, out := doJSON(t, r, http.MethodGet, "/search?text="+url.QueryEscape(lightboxtest.KnownAddress), "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "upstream_status", out["error"])
}

func TestSearchHandler_BadJSONBody(t *testing.T) {
	r := newTestRouter(t, lightboxtest.ValidKey)

	rec, out := doJSON(t, r, http.MethodPost, "/search", "{")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_json", out["error"])
}

func TestReportHandler_FullChain(t *testing.T) {
	r := newTestRouter(t, lightboxtest.ValidKey)

	body := `{"address": "` + lightboxtest.KnownAddress + `"}`
	rec, out := doJSON(t, r, http.MethodPost, "/v1/properties/report", body)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, out["ok"])

	rep, ok := out["report"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, lightboxtest.ParcelID, rep["parcelId"])
	assert.Equal(t, report.LookupGeometry, rep["lookup"])
	assert.NotNil(t, rep["assessment"])
}

func TestReportHandler_LookupOverride(t *testing.T) {
	r := newTestRouter(t, lightboxtest.ValidKey)

	target := "/v1/properties/report?address=" + url.QueryEscape(lightboxtest.KnownAddress) + "&lookup=address"
	rec, out := doJSON(t, r, http.MethodGet, target, "")
	require.Equal(t, http.StatusOK, rec.Code)
	rep := out["report"].(map[string]any)
	assert.Equal(t, report.LookupAddressID, rep["lookup"])
}

func TestReportHandler_MissingAddress(t *testing.T) {
	r := newTestRouter(t, lightboxtest.ValidKey)

	rec, out := doJSON(t, r, http.MethodPost, "/v1/properties/report", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "address_required", out["error"])
}

func TestReportHandler_InvalidLookup(t *testing.T) {
	r := newTestRouter(t, lightboxtest.ValidKey)

	target := "/v1/properties/report?address=x&lookup=seance"
	rec, out := doJSON(t, r, http.MethodGet, target, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_lookup", out["error"])
}

func TestReportHandler_NoMatchIs404(t *testing.T) {
	r := newTestRouter(t, lightboxtest.ValidKey)

	target := "/v1/properties/report?address=" + url.QueryEscape(lightboxtest.AmbiguousAddress)
	rec, out := doJSON(t, r, http.MethodGet, target, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", out["error"])
}

func TestReportHandler_EchoesUpstreamStage(t *testing.T) {
	r := newTestRouter(t, lightboxtest.ValidKey)

	target := "/v1/properties/report?address=" + url.QueryEscape(lightboxtest.IncompleteAddress)
	rec, out := doJSON(t, r, http.MethodGet, target, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "upstream_status", out["error"])
	assert.Equal(t, "address search", out["stage"])
}
