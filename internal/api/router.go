package api

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"linkguard/internal/api/handlers"
	"linkguard/internal/api/middleware"
)

type Dependencies struct {
	CheckHandler   *handlers.CheckHandler
	HistoryHandler *handlers.HistoryHandler
	HealthHandler  *handlers.HealthHandler

	RateLimiter    *middleware.RateLimiter
	CheckPerMinute int
}

func NewRouter(deps *Dependencies) *httprouter.Router {
	router := httprouter.New()

	router.POST("/check-urls",
		chain(deps.CheckHandler.Check, middleware.Logging, middleware.RateLimit(deps.RateLimiter, deps.CheckPerMinute)))

	router.GET("/healthz", chain(deps.HealthHandler.Check, middleware.Logging))

	if deps.HistoryHandler != nil {
		router.GET("/api/v1/history", chain(deps.HistoryHandler.List, middleware.Logging))
	}

	router.Handler(http.MethodGet, "/metrics", promhttp.Handler())

	return router
}

// Helper function to chain middlewares
func chain(handler http.HandlerFunc, middlewares ...func(http.HandlerFunc) http.HandlerFunc) httprouter.Handle {
	for i := len(middlewares) - 1; i >= 0; i-- {
		handler = middlewares[i](handler)
	}
	return wrap(handler)
}

// Convert http.HandlerFunc to httprouter.Handle
func wrap(handler http.HandlerFunc) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		handler(w, r)
	}
}
