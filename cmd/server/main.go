package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-school-agenda/internal/adapter"
	"github.com/MKhiriev/go-school-agenda/internal/config"
	myHTTP "github.com/MKhiriev/go-school-agenda/internal/handler/http"
	"github.com/MKhiriev/go-school-agenda/internal/logger"
	"github.com/MKhiriev/go-school-agenda/internal/server"
	"github.com/MKhiriev/go-school-agenda/internal/service"
	"github.com/MKhiriev/go-school-agenda/internal/store"
	"github.com/MKhiriev/go-school-agenda/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("agenda-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}

	remotes := adapter.NewHTTPFactory(adapter.HTTPClientConfig{
		BaseURL: cfg.Adapter.BaseURL,
		Timeout: cfg.Adapter.RequestTimeout,
	}, log)

	services := service.NewServices(storages, remotes, *cfg, log)
	handler := myHTTP.NewHandler(services, buildVersion, log)

	srv, err := server.NewServer(handler, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	workers.NewWorkers(ctx, services, cfg.Workers, log).Run()

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
