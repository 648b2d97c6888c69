package report

import (
	"context"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/wkt"

	"github.com/yourorg/parcel-api/lightbox"
)

// ParcelLocator resolves the parcel stage from a geocoded address candidate.
// The gateway exposes two routes to the same answer: by the candidate's
// representative-point geometry, or by its LightBox address id.
type ParcelLocator interface {
	Name() string
	Locate(ctx context.Context, c *lightbox.Client, country string, addr lightbox.Address) (*lightbox.Response, error)
}

const (
	LookupGeometry  = "geometry"
	LookupAddressID = "address"
)

// LocatorFor picks a strategy from what the candidate carries. Geometry wins
// when present; the address id route is the fallback.
func LocatorFor(addr lightbox.Address) ParcelLocator {
	pt := addr.Location.RepresentativePoint
	if pt.Geometry.WKT != "" || pt.Latitude != 0 || pt.Longitude != 0 {
		return geometryLocator{}
	}
	return addressIDLocator{}
}

// LocatorByMode returns the named strategy for callers that insist on one.
func LocatorByMode(mode string) (ParcelLocator, error) {
	switch mode {
	case LookupGeometry:
		return geometryLocator{}, nil
	case LookupAddressID:
		return addressIDLocator{}, nil
	default:
		return nil, eris.Errorf("report: unknown parcel lookup mode %q", mode)
	}
}

type geometryLocator struct{}

func (geometryLocator) Name() string { return LookupGeometry }

func (geometryLocator) Locate(ctx context.Context, c *lightbox.Client, country string, addr lightbox.Address) (*lightbox.Response, error) {
	pt := addr.Location.RepresentativePoint
	w := pt.Geometry.WKT
	if w == "" {
		var err error
		w, err = pointWKT(pt.Longitude, pt.Latitude)
		if err != nil {
			return nil, err
		}
	}
	return c.ParcelsByGeometry(ctx, country, w)
}

type addressIDLocator struct{}

func (addressIDLocator) Name() string { return LookupAddressID }

func (addressIDLocator) Locate(ctx context.Context, c *lightbox.Client, country string, addr lightbox.Address) (*lightbox.Response, error) {
	if addr.ID == "" {
		return nil, eris.New("report: candidate carries no address id")
	}
	return c.ParcelsByAddressID(ctx, country, addr.ID)
}

// pointWKT encodes a lon/lat pair as a WKT point for candidates whose
// geometry string is missing from the payload.
func pointWKT(lon, lat float64) (string, error) {
	p := geom.NewPointFlat(geom.XY, []float64{lon, lat})
	s, err := wkt.Marshal(p)
	if err != nil {
		return "", eris.Wrap(err, "report: encode point wkt")
	}
	return s, nil
}
