package main

import (
	"log"
	"time"

	"linkguard/internal/pkg/logger"
	"linkguard/internal/platform/config"
	"linkguard/internal/platform/database"
	"linkguard/internal/platform/repositories"
	"linkguard/internal/workers"
)

func main() {
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.Logging)

	if cfg.History.DatabasePath == "" {
		log.Fatal("Worker requires history.database_path to be configured")
	}

	historyDB, err := database.NewHistoryDB(cfg.History)
	if err != nil {
		log.Fatalf("Failed to open history DB: %v", err)
	}
	defer historyDB.Close()

	repo := repositories.NewHistoryRepository(historyDB)

	log.Println("Starting history pruning worker...")
	go runPruneWorker(repo, cfg.History.Retention)

	// Keep process alive
	select {}
}

func runPruneWorker(repo *repositories.HistoryRepository, retention time.Duration) {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		if err := workers.PruneHistory(repo, retention); err != nil {
			log.Printf("Error pruning history: %v", err)
		}
	}
}
