// Command httpd serves the read-only dashboard API over the record store.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonesrussell/vidwatch/internal/api"
	"github.com/jonesrussell/vidwatch/internal/bootstrap"
	"github.com/jonesrussell/vidwatch/internal/telemetry"
)

func main() {
	if err := run(); err != nil {
		log.Printf("httpd: %v", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return err
	}

	lg, err := bootstrap.CreateLogger(cfg)
	if err != nil {
		return err
	}
	defer lg.Sync()

	s, err := bootstrap.OpenStore(cfg, lg)
	if err != nil {
		return err
	}
	defer s.Close()

	tel := telemetry.NewProvider()

	router := api.NewRouter(cfg.Service.Debug)
	api.SetupRoutes(router, api.NewHandler(s, lg), tel.Handler())

	server := api.NewServer(router, api.ServerConfig{
		Port:  cfg.Service.Port,
		Debug: cfg.Service.Debug,
	}, lg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.Run(ctx)
}
