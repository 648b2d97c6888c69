package lightbox

import (
	"encoding/json"

	"github.com/rotisserie/eris"
)

// GeocodeResult is the decoded body of an address search.
type GeocodeResult struct {
	Addresses []Address `json:"addresses"`
}

type Address struct {
	ID       string   `json:"id"`
	Label    string   `json:"label"`
	Location Location `json:"location"`
}

type Location struct {
	RepresentativePoint RepresentativePoint `json:"representativePoint"`
}

type RepresentativePoint struct {
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	Geometry  Geometry `json:"geometry"`
}

type Geometry struct {
	WKT string `json:"wkt"`
}

// ParcelResult is the decoded body of either parcel lookup.
type ParcelResult struct {
	Parcels []Parcel `json:"parcels"`
}

type Parcel struct {
	ID   string `json:"id"`
	FIPS string `json:"fips"`
	APN  string `json:"parcelApn"`
}

// Geocode decodes the response body as an address search payload.
func (r *Response) Geocode() (*GeocodeResult, error) {
	var out GeocodeResult
	if err := json.Unmarshal(r.Body, &out); err != nil {
		return nil, eris.Wrap(err, "lightbox: parse geocode payload")
	}
	return &out, nil
}

// Parcels decodes the response body as a parcel lookup payload.
func (r *Response) Parcels() (*ParcelResult, error) {
	var out ParcelResult
	if err := json.Unmarshal(r.Body, &out); err != nil {
		return nil, eris.Wrap(err, "lightbox: parse parcel payload")
	}
	return &out, nil
}
