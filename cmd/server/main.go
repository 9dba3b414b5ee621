package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/dthen/ai-football/internal/api"
	"github.com/dthen/ai-football/internal/config"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Print("No .env file found, using environment variables")
	}

	cfg := config.Load()
	if cfg.APIKey == "" {
		log.Print("OPENROUTER_API_KEY is not set; model calls will fail with 401")
	}

	srv, err := api.NewServer(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize server: %v", err)
	}

	log.Printf("Server starting on port %s...", cfg.Port)
	if err := srv.Start(cfg.Port); err != nil {
		log.Fatal(err)
	}
}
