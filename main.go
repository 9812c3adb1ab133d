package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"cashlytic-pos/app"
	"cashlytic-pos/config"
	"cashlytic-pos/db"
)

func main() {
	// Load .env file in development (ignores error if file doesn't exist)
	// In production, variables should be set directly
	config.LoadEnv(".env")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()

	// Initialize application
	server, err := app.Initialize(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer db.CloseDB()

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Printf("Shutting down server...")
		if err := server.Shutdown(); err != nil {
			log.Printf("Error during shutdown: %v", err)
		}
	}()

	// Listen on 0.0.0.0 to accept connections from all interfaces (required for Docker/Render)
	addr := "0.0.0.0:" + cfg.Port
	log.Printf("Server starting on %s (storage=%s)", addr, cfg.StorageDriver)

	if err := server.Listen(addr); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
