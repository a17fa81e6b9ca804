package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wind-storage-sim/internal/api"
	"wind-storage-sim/internal/api/handlers"
	"wind-storage-sim/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// A missing .env is fine; real environment variables still apply.
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	// Get configuration from environment
	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}

	ttl := 1 * time.Hour
	if v := os.Getenv("RUN_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			log.Fatalf("Invalid RUN_TTL %q: %v", v, err)
		}
		ttl = d
	}

	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	turbineDir := handlers.TurbineDir()
	if info, err := os.Stat(turbineDir); err == nil && info.IsDir() {
		log.Printf("Turbine directory found: %s", turbineDir)
	} else {
		log.Printf("Turbine directory not found at: %s (error: %v)", turbineDir, err)
	}

	runs := store.NewRunStore(ttl)
	defer runs.Close()

	router := api.NewRouter(api.Options{
		Runs:        runs,
		TurbineDir:  turbineDir,
		CORSOrigins: os.Getenv("CORS_ORIGINS"),
		RequestLog:  true,
	})

	addr := fmt.Sprintf(":%s", port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Starting API server on %s (run TTL %s)", addr, ttl)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutting down API server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown: %v", err)
	}
}
