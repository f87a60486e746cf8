package main

import (
	"fmt"
	"log"
	"net/http"

	"linkguard/internal/api"
	"linkguard/internal/api/handlers"
	"linkguard/internal/api/middleware"
	"linkguard/internal/engine/cache"
	"linkguard/internal/engine/urlcheck"
	"linkguard/internal/pkg/logger"
	"linkguard/internal/platform/config"
	"linkguard/internal/platform/database"
	"linkguard/internal/platform/models"
	"linkguard/internal/platform/repositories"
)

func main() {
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.Logging)

	// Scan history is optional; the checker runs without it.
	var historyRepo *repositories.HistoryRepository
	var historyHandler *handlers.HistoryHandler
	var healthHandler *handlers.HealthHandler

	if cfg.History.DatabasePath != "" {
		historyDB, err := database.NewHistoryDB(cfg.History)
		if err != nil {
			log.Fatalf("Failed to open history DB: %v", err)
		}
		defer historyDB.Close()

		historyRepo = repositories.NewHistoryRepository(historyDB)
		historyHandler = handlers.NewHistoryHandler(historyRepo)
		healthHandler = handlers.NewHealthHandler(historyDB)
	} else {
		healthHandler = handlers.NewHealthHandler(nil)
	}

	// Engine
	safetyCache := cache.New[models.SafetyResult](cfg.Cache.TTL)
	redirectCache := cache.New[models.RedirectResult](cfg.Cache.TTL)

	scanner := urlcheck.NewScanner(cfg.Scanner, safetyCache)
	resolver := urlcheck.NewResolver(cfg.Redirects, scanner, redirectCache)

	var checker *urlcheck.Checker
	if historyRepo != nil {
		checker = urlcheck.NewChecker(scanner, resolver, historyRepo)
	} else {
		checker = urlcheck.NewChecker(scanner, resolver, nil)
	}

	// Router
	deps := &api.Dependencies{
		CheckHandler:   handlers.NewCheckHandler(checker),
		HistoryHandler: historyHandler,
		HealthHandler:  healthHandler,
		RateLimiter:    middleware.NewRateLimiter(),
		CheckPerMinute: cfg.RateLimit.CheckPerMinute,
	}
	router := api.NewRouter(deps)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	log.Printf("Server starting on %s", server.Addr)
	if err := server.ListenAndServe(); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
