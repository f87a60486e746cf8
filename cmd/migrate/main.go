package main

import (
	"flag"
	"log"

	"linkguard/internal/platform/config"
	"linkguard/internal/platform/database"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "Path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if cfg.History.DatabasePath == "" {
		log.Fatal("history.database_path is not configured")
	}

	db, err := database.NewHistoryDB(cfg.History)
	if err != nil {
		log.Fatalf("Failed to open history DB: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec(database.Schema); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	log.Println("Migration completed")
}
