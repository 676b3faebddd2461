package main

import (
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/nvillanueva/flightboard/api"
	"github.com/nvillanueva/flightboard/config"
	"github.com/nvillanueva/flightboard/db"
	"github.com/nvillanueva/flightboard/services/external"
	"github.com/nvillanueva/flightboard/session"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Initialize database connection
	if err := db.InitDB(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.CloseDB()

	sessions := session.NewStore(cfg.SessionTTL, cfg.AdminSecret)
	ext := external.NewClient(cfg.ExternalAPIURL, cfg.ExternalTimeout)

	// Set up API routes
	router := api.NewRouter(db.NewStore(), ext, sessions, cfg.SessionTTL)

	// Start the API server in a goroutine
	go func() {
		log.Printf("Starting API server on :%s", cfg.Port)
		if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
			log.Fatalf("Failed to start API server: %v", err)
		}
	}()

	log.Printf("Starting session sweeper (interval: %s, ttl: %s)", cfg.SweepInterval, cfg.SessionTTL)

	ticker := time.NewTicker(cfg.SweepInterval)
	defer ticker.Stop()

	for range ticker.C {
		if removed := sessions.Sweep(); removed > 0 {
			log.Printf("Swept %d expired sessions", removed)
		}
	}
}
