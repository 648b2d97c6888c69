package lightbox

import (
	"encoding/json"
)

// AddressSummary is the flattened candidate shape served by the HTTP surface.
type AddressSummary struct {
	ID     string  `json:"id"`
	Label  string  `json:"label"`
	Lat    float64 `json:"lat"`
	Lon    float64 `json:"lon"`
	WKT    string  `json:"wkt"`
	Source string  `json:"source"`
}

// stringNumber accepts string or number JSON and stores as string
type stringNumber string

func (s *stringNumber) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*s = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*s = stringNumber(str)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(b, &num); err != nil {
		return err
	}
	*s = stringNumber(num.String())
	return nil
}

// MapGeocodePayloadToSummaries flattens a geocode payload into summaries.
// Mapping is defensive: the gateway has shipped ids as both strings and
// numbers, and older responses label the candidate under "$ref".
func MapGeocodePayloadToSummaries(raw []byte) ([]AddressSummary, error) {
	type gAddress struct {
		ID       stringNumber `json:"id"`
		Ref      stringNumber `json:"$ref"`
		Label    string       `json:"label"`
		Location struct {
			RepresentativePoint struct {
				Latitude  float64 `json:"latitude"`
				Longitude float64 `json:"longitude"`
				Geometry  struct {
					WKT string `json:"wkt"`
				} `json:"geometry"`
			} `json:"representativePoint"`
		} `json:"location"`
	}

	var root struct {
		Addresses []gAddress `json:"addresses"`
	}
	if err := json.Unmarshal(raw, &root); err != nil {
		return nil, err
	}

	out := make([]AddressSummary, 0, len(root.Addresses))
	for _, a := range root.Addresses {
		pt := a.Location.RepresentativePoint
		out = append(out, AddressSummary{
			ID:     firstNonEmpty(string(a.ID), string(a.Ref)),
			Label:  a.Label,
			Lat:    pt.Latitude,
			Lon:    pt.Longitude,
			WKT:    pt.Geometry.WKT,
			Source: "lightbox",
		})
	}
	return out, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
