package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	httpTransport "sudoku-state/internal/transport/http"
	"sudoku-state/internal/puzzles"
	"sudoku-state/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	store, err := puzzles.LoadFile(cfg.SnapshotsFile)
	if err != nil {
		log.Printf("Warning: could not load snapshots from %s: %v", cfg.SnapshotsFile, err)
		log.Println("Starting with an empty store")
		store = puzzles.New()
	} else {
		log.Printf("Loaded %d saved states", store.Count())
	}

	r := gin.Default()
	httpTransport.RegisterRoutes(r, store)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Println("Shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
		if err := store.Save(cfg.SnapshotsFile); err != nil {
			log.Printf("Failed to persist snapshots on shutdown: %v", err)
		}
	}()

	log.Printf("Starting server on port %s", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
