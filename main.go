package main

import (
	"fmt"
	"net/http"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/yourorg/parcel-api/internal/env"
	"github.com/yourorg/parcel-api/internal/logger"
	"github.com/yourorg/parcel-api/internal/report"
	"github.com/yourorg/parcel-api/lightbox"
)

func main() {
	_ = godotenv.Load()

	log := logger.New(env.Get("LOG_LEVEL", "info"), env.Get("LOG_FORMAT", "json"))
	defer func() { _ = log.Sync() }()

	port := env.GetInt("PORT", 4002)
	apiKey := env.Must("LIGHTBOX_API_KEY")

	client := lightbox.NewClient(apiKey)
	pipe := &report.Pipeline{
		Client:  client,
		Country: env.Get("REPORT_COUNTRY", "us"),
		Log:     log,
	}
	router := BuildRouter(client, pipe)

	log.Info("parcel-api listening", zap.Int("port", port))
	if err := http.ListenAndServe(fmt.Sprintf(":%d", port), logger.Middleware(log, router)); err != nil {
		log.Fatal("server exited", zap.Error(err))
	}
}
