// Package lightboxtest runs an in-process fake of the LightBox gateway that
// reproduces its status-code contract, so tests never touch the live service.
package lightboxtest

import (
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/go-chi/chi/v5"
)

// Inputs the fake recognizes, mirroring the gateway's observed behavior.
const (
	ValidKey          = "lbx-test-key"
	KnownAddress      = "25482 Buckwood Land Forest, Ca, 92630"
	IncompleteAddress = "25482 Buckwood Land Forest"
	// AmbiguousAddress answers 200 with an empty candidate list.
	AmbiguousAddress = "100 Main St Anytown"
	AddressID         = "0201MABF8ZWDMY9TJ2"
	ParcelID          = "0201MARLVT1P4RE4"
	PointWKT          = "POINT(-117.68189 33.65242)"
)

const geocodeBody = `{
  "$metadata": {"geogcs": {"epsg": "4326"}},
  "addresses": [{
    "id": "` + AddressID + `",
    "label": "25482 Buckwood, Lake Forest, CA 92630",
    "location": {
      "representativePoint": {
        "latitude": 33.65242,
        "longitude": -117.68189,
        "geometry": {"wkt": "` + PointWKT + `"}
      }
    }
  }]
}`

const parcelBody = `{
  "parcels": [{
    "id": "` + ParcelID + `",
    "fips": "06059",
    "parcelApn": "614-252-09"
  }]
}`

const assessmentBody = `{
  "assessments": [{
    "id": "02013OGWHLDBYQQ8V",
    "parcel": {"id": "` + ParcelID + `"},
    "assessedValue": {"land": 164964, "improvements": 214453, "total": 379417},
    "taxYear": 2023
  }]
}`

// NewServer starts the fake gateway. The caller owns Close.
func NewServer() *httptest.Server {
	r := chi.NewRouter()
	r.Use(requireKey)

	r.Get("/addresses/search", func(w http.ResponseWriter, req *http.Request) {
		switch req.URL.Query().Get("text") {
		case "":
			writeErr(w, http.StatusBadRequest, "text is required")
		case KnownAddress:
			writeJSON(w, http.StatusOK, geocodeBody)
		case AmbiguousAddress:
			writeJSON(w, http.StatusOK, `{"addresses": []}`)
		default:
			writeErr(w, http.StatusNotFound, "no matching address")
		}
	})

	r.Get("/parcels/{country}/geometry", func(w http.ResponseWriter, req *http.Request) {
		wkt := req.URL.Query().Get("wkt")
		if !strings.HasPrefix(wkt, "POINT") {
			writeErr(w, http.StatusBadRequest, "invalid wkt")
			return
		}
		writeJSON(w, http.StatusOK, parcelBody)
	})

	r.Get("/parcels/_on/address/{country}/{addressID}", func(w http.ResponseWriter, req *http.Request) {
		if chi.URLParam(req, "addressID") != AddressID {
			writeErr(w, http.StatusBadRequest, "unknown address id")
			return
		}
		writeJSON(w, http.StatusOK, parcelBody)
	})

	r.Get("/assessments/_on/parcel/{country}/{parcelID}", func(w http.ResponseWriter, req *http.Request) {
		if chi.URLParam(req, "parcelID") != ParcelID {
			writeErr(w, http.StatusBadRequest, "unknown parcel id")
			return
		}
		writeJSON(w, http.StatusOK, assessmentBody)
	})

	return httptest.NewServer(r)
}

func requireKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if req.Header.Get("x-api-key") != ValidKey {
			writeErr(w, http.StatusUnauthorized, "invalid api key")
			return
		}
		next.ServeHTTP(w, req)
	})
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func writeErr(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, `{"error":"`+msg+`"}`)
}
