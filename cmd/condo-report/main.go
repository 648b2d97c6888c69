// condo-report resolves one address through the full LightBox chain
// (geocode, parcel, assessment) and pretty-prints each stage's payload
// to stdout, one JSON document per stage.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/yourorg/parcel-api/internal/env"
	"github.com/yourorg/parcel-api/internal/logger"
	"github.com/yourorg/parcel-api/internal/report"
	"github.com/yourorg/parcel-api/lightbox"
)

const sampleAddress = "25482 Buckwood Land Forest, Ca, 92630"

func main() {
	_ = godotenv.Load()

	log := logger.New(env.Get("LOG_LEVEL", "info"), env.Get("LOG_FORMAT", "console"))
	defer func() { _ = log.Sync() }()

	apiKey := env.Must("LIGHTBOX_API_KEY")

	address := strings.TrimSpace(strings.Join(os.Args[1:], " "))
	if address == "" {
		address = env.Get("REPORT_ADDRESS", sampleAddress)
	}

	var opts []lightbox.Option
	if base := os.Getenv("LIGHTBOX_BASE_URL"); base != "" {
		opts = append(opts, lightbox.WithBaseURL(base))
	}

	pipe := &report.Pipeline{
		Client:  lightbox.NewClient(apiKey, opts...),
		Country: env.Get("REPORT_COUNTRY", "us"),
		Log:     log,
	}
	if mode := os.Getenv("REPORT_PARCEL_LOOKUP"); mode != "" {
		loc, err := report.LocatorByMode(mode)
		if err != nil {
			log.Fatal("bad REPORT_PARCEL_LOOKUP", zap.Error(err))
		}
		pipe.Locator = loc
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rep, err := pipe.Run(ctx, address)
	if err != nil {
		if errors.Is(err, report.ErrNoAddressMatch) || errors.Is(err, report.ErrNoParcelMatch) {
			log.Fatal("nothing found for address", zap.String("address", address), zap.Error(err))
		}
		log.Fatal("report failed", zap.String("address", address), zap.Error(err))
	}

	for _, stage := range []json.RawMessage{rep.Geocode, rep.Parcel, rep.Assessment} {
		printIndented(stage)
	}
}

func printIndented(raw json.RawMessage) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "    "); err != nil {
		// Not valid JSON; dump as-is rather than lose the payload.
		fmt.Println(string(raw))
		return
	}
	fmt.Println(buf.String())
}
