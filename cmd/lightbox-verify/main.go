// lightbox-verify replays the gateway's status-code contract against the
// live service: known-good inputs must answer 200, bad inputs their
// documented 4xx. It spends real API quota; the offline equivalents live
// in the package tests. Exits non-zero on the first mismatch.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/yourorg/parcel-api/internal/env"
	"github.com/yourorg/parcel-api/internal/logger"
	"github.com/yourorg/parcel-api/lightbox"
)

const (
	goodAddress       = "25482 Buckwood Land Forest, Ca, 92630"
	incompleteAddress = "25482 Buckwood Land Forest" // no city/state/zip
	country           = "us"
)

type scenario struct {
	name string
	want int
	call func(ctx context.Context) (*lightbox.Response, error)
}

func main() {
	_ = godotenv.Load()

	log := logger.New(env.Get("LOG_LEVEL", "info"), env.Get("LOG_FORMAT", "console"))
	defer func() { _ = log.Sync() }()

	apiKey := env.Must("LIGHTBOX_API_KEY")

	var opts []lightbox.Option
	if base := os.Getenv("LIGHTBOX_BASE_URL"); base != "" {
		opts = append(opts, lightbox.WithBaseURL(base))
	}
	good := lightbox.NewClient(apiKey, opts...)
	bad := lightbox.NewClient(apiKey+"foobar", opts...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The good-path scenarios chain: each stage's id feeds the next, so the
	// chained lookups run first and stash their outputs.
	var (
		addressWKT string
		parcelID   string
	)

	scenarios := []scenario{
		{"geocode known address", http.StatusOK, func(ctx context.Context) (*lightbox.Response, error) {
			resp, err := good.SearchAddresses(ctx, goodAddress)
			if err == nil && resp.OK() {
				if geo, derr := resp.Geocode(); derr == nil && len(geo.Addresses) > 0 {
					addressWKT = geo.Addresses[0].Location.RepresentativePoint.Geometry.WKT
				}
			}
			return resp, err
		}},
		{"geocode empty address", http.StatusBadRequest, func(ctx context.Context) (*lightbox.Response, error) {
			return good.SearchAddresses(ctx, "")
		}},
		{"geocode invalid key", http.StatusUnauthorized, func(ctx context.Context) (*lightbox.Response, error) {
			return bad.SearchAddresses(ctx, goodAddress)
		}},
		{"geocode incomplete address", http.StatusNotFound, func(ctx context.Context) (*lightbox.Response, error) {
			return good.SearchAddresses(ctx, incompleteAddress)
		}},
		{"parcel by geometry", http.StatusOK, func(ctx context.Context) (*lightbox.Response, error) {
			resp, err := good.ParcelsByGeometry(ctx, country, addressWKT)
			if err == nil && resp.OK() {
				if parcels, derr := resp.Parcels(); derr == nil && len(parcels.Parcels) > 0 {
					parcelID = parcels.Parcels[0].ID
				}
			}
			return resp, err
		}},
		{"parcel by malformed geometry", http.StatusBadRequest, func(ctx context.Context) (*lightbox.Response, error) {
			return good.ParcelsByGeometry(ctx, country, "foobar")
		}},
		{"parcel invalid key", http.StatusUnauthorized, func(ctx context.Context) (*lightbox.Response, error) {
			return bad.ParcelsByGeometry(ctx, country, addressWKT)
		}},
		{"assessment by parcel", http.StatusOK, func(ctx context.Context) (*lightbox.Response, error) {
			return good.AssessmentsByParcel(ctx, country, parcelID)
		}},
		{"assessment unknown parcel", http.StatusBadRequest, func(ctx context.Context) (*lightbox.Response, error) {
			return good.AssessmentsByParcel(ctx, country, "1234567890")
		}},
		{"assessment invalid key", http.StatusUnauthorized, func(ctx context.Context) (*lightbox.Response, error) {
			return bad.AssessmentsByParcel(ctx, country, parcelID)
		}},
	}

	for _, sc := range scenarios {
		resp, err := sc.call(ctx)
		if err != nil {
			log.Fatal("scenario errored", zap.String("scenario", sc.name), zap.Error(err))
		}
		if resp.StatusCode != sc.want {
			log.Fatal("status mismatch",
				zap.String("scenario", sc.name),
				zap.Int("want", sc.want),
				zap.Int("got", resp.StatusCode),
			)
		}
		log.Info("scenario passed", zap.String("scenario", sc.name), zap.Int("status", resp.StatusCode))
	}
	log.Info("all scenarios passed", zap.Int("count", len(scenarios)))
}
