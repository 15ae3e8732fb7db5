// Package main runs the Mind Studio questionnaire service: participants
// submit well-being questionnaire answers, receive a generated profile, and
// are matched against previously stored participants by response similarity.
//
//	@title			Mind Studio API
//	@version		1.0
//	@description	Questionnaire profiling and participant similarity matching.
//	@BasePath		/api
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/krishmishraghub/The-Mind-Studio/internal/cache"
	"github.com/krishmishraghub/The-Mind-Studio/internal/database"
	"github.com/krishmishraghub/The-Mind-Studio/internal/monitoring"
	"github.com/krishmishraghub/The-Mind-Studio/internal/ratelimit"
	"github.com/krishmishraghub/The-Mind-Studio/internal/scoring"
	"github.com/krishmishraghub/The-Mind-Studio/internal/store"
)

const (
	defaultPort     = "8000"
	defaultDataDir  = "./data"
	cacheTTL        = 30 * time.Second
	shutdownTimeout = 10 * time.Second
)

func main() {
	logger := monitoring.NewLogger()
	slog.SetDefault(logger.Logger)

	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = defaultPort
	}
	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = defaultDataDir
	}

	st := store.New()
	catalog := scoring.DefaultCatalog()
	metrics := monitoring.NewMetrics()
	appCache := cache.NewCache(cacheTTL)
	limiter := ratelimit.NewRateLimiter(ratelimit.DefaultConfig())

	// The archive is best effort: the service stays fully functional on the
	// in-memory store when SQLite is unavailable.
	var archive *database.Archive
	db, err := database.NewDB(dataDir)
	if err != nil {
		slog.Warn("Snapshot archive disabled", "error", err, "data_dir", dataDir)
	} else {
		defer db.Close()
		archive = database.NewArchive(db)

		snapshots, err := archive.LoadSnapshots()
		if err != nil {
			slog.Warn("Failed to load archived snapshots", "error", err)
		} else {
			for _, snap := range snapshots {
				st.Insert(store.Participant{
					ID:        snap.ParticipantID,
					Name:      snap.ParticipantName,
					Answers:   snap.Answers,
					Profile:   snap.Profile,
					Timestamp: snap.Timestamp,
				})
				st.AppendSnapshot(snap)
			}
			slog.Info("Restored snapshots from archive",
				"snapshots", len(snapshots),
				"participants", st.Count(),
			)
		}
	}

	s := newServer(st, archive, catalog, appCache, metrics, logger)
	router := newRouter(s, limiter)

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		slog.Info("Starting server", "port", port, "archive_enabled", archive != nil)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Forced shutdown", "error", err)
	}
	slog.Info("Server stopped")
}
