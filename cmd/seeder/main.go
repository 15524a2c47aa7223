package main

import (
	"log"

	"github.com/swgpfha/swgpfha-website/internal/config"
	"github.com/swgpfha/swgpfha-website/internal/database"
	"github.com/swgpfha/swgpfha-website/internal/models"
	"github.com/swgpfha/swgpfha-website/internal/seeds"
	"github.com/swgpfha/swgpfha-website/pkg/logger"
)

func main() {
	config.LoadConfig()
	logger.Init("development")
	database.Connect()

	log.Println("Running migrations (just in case)...")
	if err := database.DB.AutoMigrate(&models.ContentBlock{}); err != nil {
		log.Fatalf("Failed to migrate: %v", err)
	}

	if err := seeds.SeedContent(database.DB); err != nil {
		log.Fatalf("Failed to seed content: %v", err)
	}

	log.Println("Seed complete.")
}
