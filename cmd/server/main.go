package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"sample-echo-api/internal/config"
	"sample-echo-api/pkg/server"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	container, err := server.NewContainer(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := container.Run(ctx); err != nil {
		container.Logger.WithError(err).Fatal("Server failed")
	}
}
