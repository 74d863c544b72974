package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/dj-idk/gym-backend/internal/app"
	"github.com/dj-idk/gym-backend/internal/config"
)

func main() {
	// Missing .env is fine, environment may be set by the deployment
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := app.Run(cfg); err != nil {
		log.Fatalf("app: %v", err)
	}
}
