package main

import (
	"net/http"

	"github.com/yumyai/prophagestat/pkg/handler"
	"github.com/yumyai/prophagestat/pkg/middle"
	"go.uber.org/zap"
)

func NewRouter(app *handler.AppContext) *http.ServeMux {
	mux := http.NewServeMux()

	// Error route
	mux.HandleFunc("GET /favicon.ico", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Not Found", http.StatusNotFound)
	})

	// Pages
	mux.HandleFunc("GET /{$}", app.MainPage)
	mux.HandleFunc("GET /correlation", app.CorrelationPage)

	// API routes
	mux.HandleFunc("GET /api/v1/health", handler.HealthCheck)
	mux.HandleFunc("GET /api/v1/summary", app.SummaryHandler)
	mux.HandleFunc("GET /api/v1/lengths", app.LengthsHandler)
	mux.HandleFunc("GET /api/v1/pivot", app.PivotHandler)
	mux.HandleFunc("GET /api/v1/correlation", app.CorrelationHandler)
	mux.HandleFunc("GET /api/v1/groups", app.GroupsHandler)

	return mux
}

// NewServer wraps the router with request id and access logging.
func NewServer(app *handler.AppContext, l *zap.Logger) http.Handler {
	return middle.Chain(NewRouter(app),
		middle.RequestIDMiddleware(l),
		middle.LoggingMiddleware(l),
	)
}
