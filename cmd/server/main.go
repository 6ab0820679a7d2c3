package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lpr-relay/internal/bus"
	"lpr-relay/internal/config"
	"lpr-relay/internal/forwarder"
	lprhttp "lpr-relay/internal/http"
	"lpr-relay/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	logger := config.NewLogger(cfg.Logging)
	logger.Info().Str("addr", cfg.Server.Addr).Msg("starting LPR ingest server")

	natsPub, err := bus.NewNATSPublisher(cfg.Bus.NATSURL, "lpr-server", logger)
	if err != nil {
		logger.Fatal().Err(err).Str("nats_url", cfg.Bus.NATSURL).Msg("failed to connect to bus")
	}
	defer natsPub.Close()

	var fwd service.Forwarder
	if cfg.ForwardingEnabled() {
		fwd = forwarder.New(cfg.Collector.URL, cfg.ForwardTimeout(), logger)
		logger.Info().Str("collector_url", cfg.Collector.URL).Msg("external forwarding enabled")
	}

	svc := service.NewLPRService(bus.NewPublisher(natsPub, cfg.Bus.Topic), fwd, cfg.Collector.SystemName, logger)
	handler := lprhttp.NewHandler(svc, logger)

	server := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           lprhttp.NewRouter(handler, cfg.Server.CORSOrigins),
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("shutdown error")
	}
}
