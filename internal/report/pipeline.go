// Package report runs the three-stage property lookup: geocode a free-text
// address, locate the parcel under it, then fetch the parcel's assessment.
// The chain is strictly linear; the first failed stage ends the run.
package report

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/yourorg/parcel-api/lightbox"
)

var (
	// ErrNoAddressMatch reports a 200 geocode response with an empty
	// candidate list.
	ErrNoAddressMatch = eris.New("report: no address candidates")
	// ErrNoParcelMatch reports a 200 parcel response with an empty parcel
	// list.
	ErrNoParcelMatch = eris.New("report: no parcels at location")
)

// StageError is a non-200 answer from one stage. Status is the upstream
// status code so HTTP callers can echo the contract (400/401/404).
type StageError struct {
	Stage  string
	Status int
}

func (e *StageError) Error() string {
	return fmt.Sprintf("report: %s returned status %d", e.Stage, e.Status)
}

// Pipeline wires the chain. Country defaults to "us".
type Pipeline struct {
	Client  *lightbox.Client
	Country string
	Locator ParcelLocator // optional; chosen per candidate when nil
	Log     *zap.Logger
}

// Report holds each stage's raw payload plus the identifiers that linked
// the stages together.
type Report struct {
	Address    lightbox.Address `json:"-"`
	ParcelID   string           `json:"parcelId"`
	Lookup     string           `json:"lookup"`
	Geocode    json.RawMessage  `json:"geocode"`
	Parcel     json.RawMessage  `json:"parcel"`
	Assessment json.RawMessage  `json:"assessment"`
}

func (p *Pipeline) validate() error {
	if p.Client == nil {
		return eris.New("report: pipeline missing client")
	}
	if p.Country == "" {
		p.Country = "us"
	}
	if p.Log == nil {
		p.Log = zap.NewNop()
	}
	return nil
}

// Run resolves address end to end. The address is sent verbatim; the
// upstream owns rejection of empty or under-specified input.
func (p *Pipeline) Run(ctx context.Context, address string) (*Report, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}

	resp, err := p.Client.SearchAddresses(ctx, address)
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, &StageError{Stage: "address search", Status: resp.StatusCode}
	}
	geo, err := resp.Geocode()
	if err != nil {
		return nil, err
	}
	if len(geo.Addresses) == 0 {
		return nil, ErrNoAddressMatch
	}
	cand := geo.Addresses[0]
	p.Log.Debug("address resolved",
		zap.String("address_id", cand.ID),
		zap.String("wkt", cand.Location.RepresentativePoint.Geometry.WKT))

	loc := p.Locator
	if loc == nil {
		loc = LocatorFor(cand)
	}
	presp, err := loc.Locate(ctx, p.Client, p.Country, cand)
	if err != nil {
		return nil, err
	}
	if !presp.OK() {
		return nil, &StageError{Stage: "parcel lookup (" + loc.Name() + ")", Status: presp.StatusCode}
	}
	parcels, err := presp.Parcels()
	if err != nil {
		return nil, err
	}
	if len(parcels.Parcels) == 0 {
		return nil, ErrNoParcelMatch
	}
	parcelID := parcels.Parcels[0].ID
	p.Log.Debug("parcel resolved",
		zap.String("parcel_id", parcelID),
		zap.String("lookup", loc.Name()))

	aresp, err := p.Client.AssessmentsByParcel(ctx, p.Country, parcelID)
	if err != nil {
		return nil, err
	}
	if !aresp.OK() {
		return nil, &StageError{Stage: "assessment lookup", Status: aresp.StatusCode}
	}

	return &Report{
		Address:    cand,
		ParcelID:   parcelID,
		Lookup:     loc.Name(),
		Geocode:    json.RawMessage(resp.Body),
		Parcel:     json.RawMessage(presp.Body),
		Assessment: json.RawMessage(aresp.Body),
	}, nil
}
