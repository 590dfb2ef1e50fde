// Command monitord runs the discovery scheduler: it polls the configured
// channels and search terms on an interval and keeps the record store and
// daily reports up to date. With -once it runs a single cycle and exits.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonesrussell/vidwatch/internal/api"
	"github.com/jonesrussell/vidwatch/internal/bootstrap"
	"github.com/jonesrussell/vidwatch/internal/logger"
	"github.com/jonesrussell/vidwatch/internal/telemetry"
)

func main() {
	once := flag.Bool("once", false, "run a single discovery cycle and exit")
	flag.Parse()

	if err := run(*once); err != nil {
		log.Printf("monitord: %v", err)
		os.Exit(1)
	}
}

func run(once bool) error {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
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
	mon := bootstrap.BuildMonitor(cfg, s, tel, lg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if once {
		summary, err := mon.RunCycle(ctx)
		if err != nil {
			return err
		}
		lg.Info("single cycle complete",
			logger.String("cycle_id", summary.ID),
			logger.Int("stored", summary.Stored),
			logger.Int("source_errors", len(summary.SourceErrors)),
		)
		return nil
	}

	// Operational surface: liveness, metrics, cycle status.
	router := api.NewRouter(cfg.Service.Debug)
	api.SetupOpsRoutes(router, mon, tel.Handler())
	ops := api.NewServer(router, api.ServerConfig{
		Port:  cfg.Service.OpsPort,
		Debug: cfg.Service.Debug,
	}, lg.With(logger.String("component", "ops")))

	errCh := make(chan error, 2)
	go func() { errCh <- mon.Run(ctx) }()
	go func() { errCh <- ops.Run(ctx) }()

	if err := <-errCh; err != nil {
		stop()
		<-errCh
		return err
	}
	return <-errCh
}
