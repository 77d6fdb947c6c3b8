package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/alimikegami/point-of-sales/storefront-service/config"
	"github.com/alimikegami/point-of-sales/storefront-service/internal/app"
	"github.com/rs/zerolog/log"
)

func main() {
	config, err := config.CreateNewConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := app.App{
		Config: config,
	}

	if err := server.Setup(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize server")
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start(ctx)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Error().Err(err).Msg("Server stopped")
		}
	case <-ctx.Done():
		log.Info().Msg("shutting down")
	}

	if err := server.StopServer(); err != nil {
		log.Error().Err(err).Msg("Failed to shut down cleanly")
	}
}
