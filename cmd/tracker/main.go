package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/vexbolts/hunt-tracker/internal/api"
	"github.com/vexbolts/hunt-tracker/internal/classify"
	"github.com/vexbolts/hunt-tracker/internal/config"
	"github.com/vexbolts/hunt-tracker/internal/ledger"
	"github.com/vexbolts/hunt-tracker/internal/menu"
	"github.com/vexbolts/hunt-tracker/internal/stats"
	"github.com/vexbolts/hunt-tracker/internal/store"
)

func main() {
	// 1. Setup Logger
	logger := log.New(os.Stdout, "[HUNT-TRACKER] ", log.LstdFlags)

	// 2. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal(err)
	}

	// 3. Initialize Dependencies
	logger.Printf("Opening database at %s", cfg.DBPath)
	st, err := store.Open(cfg, logger)
	if err != nil {
		logger.Fatal(err)
	}
	defer st.Close()

	engine, err := stats.NewEngine(st, logger)
	if err != nil {
		logger.Fatal(err)
	}

	exporter := stats.NewExporter(engine, logger, cfg.ExportTemplate, cfg.ExportOutput)
	refresher := stats.NewRefresher(func() {
		if err := exporter.Refresh(); err != nil {
			logger.Printf("export refresh failed: %v", err)
		}
	})
	refresher.Start()
	defer refresher.Stop()
	// Write the export once so the output file exists before any event
	refresher.Request()

	a := &api.API{
		Log:        logger,
		Store:      st,
		Classifier: classify.New(st, logger),
		Engine:     engine,
		Ledger:     ledger.New(st, logger),
		Menu:       menu.New(st, logger),
		Refresher:  refresher,
	}

	// 4. Setup Router
	mux := http.NewServeMux()
	a.Routes(mux)

	// 5. Middleware Chain
	handler := MiddlewareChain(mux, logger)

	// 6. Start Server
	logger.Printf("Server starting on %s", cfg.ListenAddr)

	server := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	if err := server.ListenAndServe(); err != nil {
		logger.Fatal(err)
	}
}

// MiddlewareChain wraps the router with request logging
func MiddlewareChain(next http.Handler, logger *log.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		next.ServeHTTP(w, r)

		logger.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}
