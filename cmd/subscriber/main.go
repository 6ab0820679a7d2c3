package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"lpr-relay/internal/bus"
	"lpr-relay/internal/config"
	"lpr-relay/internal/subscriber"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	logger := config.NewLogger(cfg.Logging)
	logger.Info().Str("topic", cfg.Bus.Topic).Msg("starting LPR subscriber")

	natsSub, err := bus.NewNATSSubscriber(cfg.Bus.NATSURL, "lpr-subscriber", logger)
	if err != nil {
		logger.Fatal().Err(err).Str("nats_url", cfg.Bus.NATSURL).Msg("failed to connect to bus")
	}
	defer natsSub.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	listener := subscriber.NewListener(natsSub, cfg.Bus.Topic, logger)
	if err := listener.Run(ctx); err != nil {
		logger.Fatal().Err(err).Msg("subscriber stopped with error")
	}
	logger.Info().Msg("subscriber stopped")
}
