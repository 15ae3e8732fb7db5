package main

import (
	"compress/gzip"
	"log/slog"
	"math"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/krishmishraghub/The-Mind-Studio/internal/cache"
	"github.com/krishmishraghub/The-Mind-Studio/internal/database"
	"github.com/krishmishraghub/The-Mind-Studio/internal/errors"
	"github.com/krishmishraghub/The-Mind-Studio/internal/frontend"
	"github.com/krishmishraghub/The-Mind-Studio/internal/middleware"
	"github.com/krishmishraghub/The-Mind-Studio/internal/monitoring"
	"github.com/krishmishraghub/The-Mind-Studio/internal/ratelimit"
	"github.com/krishmishraghub/The-Mind-Studio/internal/scoring"
	"github.com/krishmishraghub/The-Mind-Studio/internal/security"
	"github.com/krishmishraghub/The-Mind-Studio/internal/store"
	"github.com/krishmishraghub/The-Mind-Studio/internal/types"
)

// matchThreshold is the similarity score at or above which two participants
// are reported as highly similar.
const matchThreshold = 0.9

// server bundles the request handlers with their collaborators. The scoring
// components are pure; all shared state lives in the store and archive.
type server struct {
	store    *store.Store
	archive  *database.Archive // nil when the archive is unavailable
	encoder  *scoring.Encoder
	scorer   *scoring.Scorer
	profiles *scoring.ProfileGenerator
	cache    *cache.Cache
	metrics  *monitoring.Metrics
	logger   *monitoring.Logger
}

func newServer(st *store.Store, archive *database.Archive, catalog *scoring.Catalog,
	appCache *cache.Cache, metrics *monitoring.Metrics, logger *monitoring.Logger) *server {
	encoder := scoring.NewEncoder(catalog)
	return &server{
		store:    st,
		archive:  archive,
		encoder:  encoder,
		scorer:   scoring.NewScorer(encoder),
		profiles: scoring.NewProfileGenerator(catalog),
		cache:    appCache,
		metrics:  metrics,
		logger:   logger,
	}
}

// newRouter builds the full Gin engine with middleware and routes.
func newRouter(s *server, limiter *ratelimit.RateLimiter) *gin.Engine {
	r := gin.New()

	r.Use(monitoring.MonitoringMiddleware(s.metrics, s.logger))
	r.Use(errors.ErrorHandler())
	r.Use(errors.RecoveryHandler())
	r.Use(security.SecurityHeadersMiddleware())
	r.Use(middleware.NewCompression(gzip.DefaultCompression).Handler())

	// Participants join from their phones via the QR code, so the API must
	// accept any origin, as the original deployment did.
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Accept"},
		MaxAge:          12 * time.Hour,
	}))

	if limiter != nil {
		r.Use(limiter.IPRateLimitMiddleware(s.metrics))
	}

	r.Use(s.cache.Middleware(s.metrics, s.logger, "/api/participants", "/api/snapshots"))

	r.GET("/health", s.handleHealth)
	r.GET("/metrics", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.metrics.GetStats())
	})
	r.GET("/cache/stats", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.cache.Stats())
	})

	api := r.Group("/api")
	{
		api.POST("/submit", s.handleSubmit)
		api.GET("/participants", s.handleParticipants)
		api.GET("/snapshots", s.handleSnapshots)
		api.GET("/debug/similarity/:id1/:id2", s.handleDebugSimilarity)
		api.DELETE("/reset", s.handleReset)
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	if staticFS, err := frontend.GetStaticFS(); err == nil {
		r.NoRoute(frontend.NewStaticHandler(staticFS))
	} else {
		slog.Error("Failed to load embedded frontend", "error", err)
	}

	return r
}

func (s *server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":          "ok",
		"timestamp":       time.Now().Format(time.RFC3339),
		"version":         "1.0.0",
		"participants":    s.store.Count(),
		"snapshots":       s.store.SnapshotCount(),
		"archive_enabled": s.archive != nil,
	})
}

// handleSubmit stores a participant submission, generates the profile
// snapshot, and reports previously stored participants with highly similar
// response patterns.
func (s *server) handleSubmit(c *gin.Context) {
	start := time.Now()

	var req types.ParticipantSubmission
	if err := c.BindJSON(&req); err != nil {
		appErr := errors.NewValidationError("invalid submission payload", err.Error())
		errors.LogError(c, appErr)
		c.JSON(appErr.HTTPStatus, appErr)
		return
	}

	req.ParticipantID = strings.TrimSpace(req.ParticipantID)
	if req.ParticipantID == "" {
		appErr := errors.NewValidationError("participant_id cannot be empty")
		errors.LogError(c, appErr)
		c.JSON(appErr.HTTPStatus, appErr)
		return
	}

	name := req.ParticipantName
	if name == "" {
		name = req.ParticipantID
	}

	vector := scoring.BuildAnswerVector(req.Answers)
	profile := s.profiles.Generate(vector)
	features := s.encoder.Encode(vector)
	timestamp := database.NewSnapshotTimestamp()

	snapshot := store.Snapshot{
		ID:              uuid.New().String(),
		ParticipantID:   req.ParticipantID,
		ParticipantName: name,
		Answers:         vector,
		Profile:         profile,
		FeatureVector:   features,
		Timestamp:       timestamp,
	}

	s.store.Insert(store.Participant{
		ID:        req.ParticipantID,
		Name:      name,
		Answers:   vector,
		Profile:   profile,
		Timestamp: timestamp,
	})
	s.store.AppendSnapshot(snapshot)
	s.cache.Clear()

	// Archive is best effort; a submission never fails on archive errors.
	if s.archive != nil {
		go func(snap store.Snapshot) {
			if err := s.archive.SaveSnapshot(snap); err != nil {
				slog.Error("Failed to archive snapshot", "error", err, "participant_id", snap.ParticipantID)
			}
		}(snapshot)
	}

	similarities := make([]types.SimilarMatch, 0)
	for _, other := range s.store.List() {
		if other.ID == req.ParticipantID {
			continue
		}

		result := s.scorer.Score(vector, other.Answers)
		s.metrics.IncrementComparison()
		if result.Degraded {
			s.metrics.IncrementDegradedComparison()
		}
		s.logger.SimilarityLogger(req.ParticipantID, other.ID, result.Score, result.Degraded)

		if result.Score >= matchThreshold {
			similarities = append(similarities, types.SimilarMatch{
				ParticipantID:        other.ID,
				ParticipantName:      other.Name,
				Similarity:           round(result.Score, 4),
				SimilarityPercentage: round(result.Score*100, 2),
			})
		}
	}

	sort.Slice(similarities, func(i, j int) bool {
		return similarities[i].Similarity > similarities[j].Similarity
	})

	s.metrics.IncrementSubmission()
	s.logger.SubmissionLogger(req.ParticipantID, len(req.Answers), s.store.Count()-1, len(similarities), time.Since(start))

	c.JSON(http.StatusOK, gin.H{
		"participant_id":              req.ParticipantID,
		"participant_name":            name,
		"profile":                     profile,
		"profile_snapshot":            snapshot,
		"highly_similar_participants": similarities,
		"has_similar_matches":         len(similarities) > 0,
		"submission_timestamp":        timestamp,
	})
}

// handleParticipants returns all stored participants plus every pair of
// participants above the match threshold. Useful as an overview after a full
// session of submissions.
func (s *server) handleParticipants(c *gin.Context) {
	participants := s.store.List()

	pairs := make([]types.SimilarPair, 0)
	for i := 0; i < len(participants); i++ {
		for j := i + 1; j < len(participants); j++ {
			a, b := participants[i], participants[j]

			result := s.scorer.Score(a.Answers, b.Answers)
			s.metrics.IncrementComparison()
			if result.Degraded {
				s.metrics.IncrementDegradedComparison()
			}

			if result.Score >= matchThreshold {
				pairs = append(pairs, types.SimilarPair{
					ParticipantA:         a.ID,
					ParticipantAName:     a.Name,
					ParticipantB:         b.ID,
					ParticipantBName:     b.Name,
					Similarity:           round(result.Score, 4),
					SimilarityPercentage: round(result.Score*100, 2),
				})
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"count":                   len(participants),
		"participants":            participants,
		"profile_snapshots_count": s.store.SnapshotCount(),
		"highly_similar_pairs":    pairs,
	})
}

// handleSnapshots returns all profile snapshots stored for future comparison.
func (s *server) handleSnapshots(c *gin.Context) {
	snapshots := s.store.Snapshots()
	c.JSON(http.StatusOK, gin.H{
		"count":     len(snapshots),
		"snapshots": snapshots,
	})
}

// handleDebugSimilarity reports the similarity breakdown between two stored
// participants.
func (s *server) handleDebugSimilarity(c *gin.Context) {
	id1 := c.Param("id1")
	id2 := c.Param("id2")

	p1, ok1 := s.store.Get(id1)
	p2, ok2 := s.store.Get(id2)
	if !ok1 || !ok2 {
		appErr := errors.NewNotFoundError("one or both participants not found")
		errors.LogError(c, appErr)
		c.JSON(appErr.HTTPStatus, appErr)
		return
	}

	result := s.scorer.Score(p1.Answers, p2.Answers)
	shared, matches := scoring.SharedQuestionStats(p1.Answers, p2.Answers)

	exactRatio := 0.0
	if shared > 0 {
		exactRatio = float64(matches) / float64(shared)
	}

	c.JSON(http.StatusOK, gin.H{
		"participant_1":          id1,
		"participant_2":          id2,
		"similarity_score":       round(result.Score, 4),
		"similarity_percentage":  round(result.Score*100, 2),
		"exact_match_ratio":      round(exactRatio, 4),
		"exact_match_percentage": round(exactRatio*100, 2),
		"degraded":               result.Degraded,
		"degrade_reason":         result.Reason,
		"meets_threshold":        result.Score >= matchThreshold,
		"total_questions":        shared,
		"matching_questions":     matches,
	})
}

// handleReset clears all stored participants and snapshots (for testing/demo).
func (s *server) handleReset(c *gin.Context) {
	s.store.Clear()
	s.cache.Clear()

	if s.archive != nil {
		if err := s.archive.Clear(); err != nil {
			slog.Error("Failed to clear snapshot archive", "error", err)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "All participants and snapshots cleared.",
	})
}

func round(v float64, digits int) float64 {
	scale := math.Pow(10, float64(digits))
	return math.Round(v*scale) / scale
}
