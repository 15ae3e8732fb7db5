package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krishmishraghub/The-Mind-Studio/internal/cache"
	"github.com/krishmishraghub/The-Mind-Studio/internal/monitoring"
	"github.com/krishmishraghub/The-Mind-Studio/internal/scoring"
	"github.com/krishmishraghub/The-Mind-Studio/internal/store"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	s := newServer(
		store.New(),
		nil, // no archive in tests
		scoring.DefaultCatalog(),
		cache.NewCache(time.Minute),
		monitoring.NewMetrics(),
		monitoring.NewLogger(),
	)
	return newRouter(s, nil)
}

func submissionBody(t *testing.T, participantID, name string, value int) []byte {
	t.Helper()

	answers := make([]map[string]interface{}, 0, 12)
	for _, qid := range scoring.DefaultCatalog().QuestionOrder() {
		answers = append(answers, map[string]interface{}{
			"question_id":  qid,
			"option_value": value,
		})
	}

	body, err := json.Marshal(map[string]interface{}{
		"participant_id":   participantID,
		"participant_name": name,
		"answers":          answers,
	})
	require.NoError(t, err)
	return body
}

func doJSON(router *gin.Engine, method, path string, body []byte) (*httptest.ResponseRecorder, map[string]interface{}) {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var decoded map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &decoded)
	return w, decoded
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter()

	w, body := doJSON(router, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, false, body["archive_enabled"])
}

func TestSubmitFirstParticipant(t *testing.T) {
	router := newTestRouter()

	w, body := doJSON(router, http.MethodPost, "/api/submit", submissionBody(t, "alice-1", "Alice", 2))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "alice-1", body["participant_id"])
	assert.Equal(t, "Alice", body["participant_name"])
	assert.Equal(t, false, body["has_similar_matches"])

	profile, ok := body["profile"].(map[string]interface{})
	require.True(t, ok)
	assert.NotEmpty(t, profile["summary"])
	assert.Len(t, profile["dimensions"], 5)

	snapshot, ok := body["profile_snapshot"].(map[string]interface{})
	require.True(t, ok)
	assert.NotEmpty(t, snapshot["id"])
	assert.Len(t, snapshot["ai_feature_vector"], 26)
}

func TestSubmitFindsIdenticalMatch(t *testing.T) {
	router := newTestRouter()

	w, _ := doJSON(router, http.MethodPost, "/api/submit", submissionBody(t, "alice-1", "Alice", 2))
	require.Equal(t, http.StatusOK, w.Code)

	w, body := doJSON(router, http.MethodPost, "/api/submit", submissionBody(t, "bob-1", "Bob", 2))
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, true, body["has_similar_matches"])
	matches, ok := body["highly_similar_participants"].([]interface{})
	require.True(t, ok)
	require.Len(t, matches, 1)

	match := matches[0].(map[string]interface{})
	assert.Equal(t, "alice-1", match["participant_id"])
	assert.Equal(t, 1.0, match["similarity"])
	assert.Equal(t, 100.0, match["similarity_percentage"])
}

func TestSubmitDissimilarParticipantsDoNotMatch(t *testing.T) {
	router := newTestRouter()

	doJSON(router, http.MethodPost, "/api/submit", submissionBody(t, "alice-1", "Alice", 0))
	w, body := doJSON(router, http.MethodPost, "/api/submit", submissionBody(t, "bob-1", "Bob", 3))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, body["has_similar_matches"])
}

func TestSubmitAcceptsEmptyAnswers(t *testing.T) {
	router := newTestRouter()

	payload, err := json.Marshal(map[string]interface{}{
		"participant_id": "quiet-1",
		"answers":        []map[string]interface{}{},
	})
	require.NoError(t, err)

	w, body := doJSON(router, http.MethodPost, "/api/submit", payload)
	require.Equal(t, http.StatusOK, w.Code)

	profile, ok := body["profile"].(map[string]interface{})
	require.True(t, ok)

	dimensions, ok := profile["dimensions"].(map[string]interface{})
	require.True(t, ok)
	require.Len(t, dimensions, 5)
	for dim, score := range dimensions {
		assert.Equalf(t, 0.0, score, "dimension %s", dim)
	}
	assert.NotEmpty(t, profile["summary"])
}

func TestSubmitRejectsMissingParticipantID(t *testing.T) {
	router := newTestRouter()

	payload, err := json.Marshal(map[string]interface{}{
		"answers": []map[string]interface{}{{"question_id": "ack_1", "option_value": 1}},
	})
	require.NoError(t, err)

	w, _ := doJSON(router, http.MethodPost, "/api/submit", payload)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubmitRejectsBlankParticipantID(t *testing.T) {
	router := newTestRouter()

	payload, err := json.Marshal(map[string]interface{}{
		"participant_id": "   ",
		"answers":        []map[string]interface{}{{"question_id": "ack_1", "option_value": 1}},
	})
	require.NoError(t, err)

	w, _ := doJSON(router, http.MethodPost, "/api/submit", payload)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestResubmissionReplacesParticipant(t *testing.T) {
	router := newTestRouter()

	doJSON(router, http.MethodPost, "/api/submit", submissionBody(t, "alice-1", "Alice", 0))
	doJSON(router, http.MethodPost, "/api/submit", submissionBody(t, "alice-1", "Alice", 3))

	w, body := doJSON(router, http.MethodGet, "/api/participants", nil)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, 1.0, body["count"])
	// Both submissions remain in the snapshot history.
	assert.Equal(t, 2.0, body["profile_snapshots_count"])
}

func TestParticipantsReportsSimilarPairs(t *testing.T) {
	router := newTestRouter()

	doJSON(router, http.MethodPost, "/api/submit", submissionBody(t, "alice-1", "Alice", 1))
	doJSON(router, http.MethodPost, "/api/submit", submissionBody(t, "bob-1", "Bob", 1))
	doJSON(router, http.MethodPost, "/api/submit", submissionBody(t, "carol-1", "Carol", 3))

	w, body := doJSON(router, http.MethodGet, "/api/participants", nil)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, 3.0, body["count"])
	pairs, ok := body["highly_similar_pairs"].([]interface{})
	require.True(t, ok)
	require.Len(t, pairs, 1)

	pair := pairs[0].(map[string]interface{})
	assert.Equal(t, "alice-1", pair["participant_a"])
	assert.Equal(t, "bob-1", pair["participant_b"])
}

func TestSnapshotsEndpoint(t *testing.T) {
	router := newTestRouter()

	doJSON(router, http.MethodPost, "/api/submit", submissionBody(t, "alice-1", "Alice", 2))

	w, body := doJSON(router, http.MethodGet, "/api/snapshots", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1.0, body["count"])

	snaps, ok := body["snapshots"].([]interface{})
	require.True(t, ok)
	require.Len(t, snaps, 1)
	assert.Equal(t, "alice-1", snaps[0].(map[string]interface{})["participant_id"])
}

func TestDebugSimilarityEndpoint(t *testing.T) {
	router := newTestRouter()

	doJSON(router, http.MethodPost, "/api/submit", submissionBody(t, "alice-1", "Alice", 2))
	doJSON(router, http.MethodPost, "/api/submit", submissionBody(t, "bob-1", "Bob", 2))

	w, body := doJSON(router, http.MethodGet, "/api/debug/similarity/alice-1/bob-1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, 1.0, body["similarity_score"])
	assert.Equal(t, 1.0, body["exact_match_ratio"])
	assert.Equal(t, true, body["meets_threshold"])
	assert.Equal(t, 12.0, body["total_questions"])
	assert.Equal(t, 12.0, body["matching_questions"])
	assert.Equal(t, false, body["degraded"])
}

func TestDebugSimilarityUnknownParticipant(t *testing.T) {
	router := newTestRouter()

	doJSON(router, http.MethodPost, "/api/submit", submissionBody(t, "alice-1", "Alice", 2))

	w, _ := doJSON(router, http.MethodGet, "/api/debug/similarity/alice-1/ghost", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestResetClearsEverything(t *testing.T) {
	router := newTestRouter()

	doJSON(router, http.MethodPost, "/api/submit", submissionBody(t, "alice-1", "Alice", 2))

	w, _ := doJSON(router, http.MethodDelete, "/api/reset", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, body := doJSON(router, http.MethodGet, "/api/participants", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0.0, body["count"])
}

func TestMetricsEndpoint(t *testing.T) {
	router := newTestRouter()

	for i := 0; i < 3; i++ {
		doJSON(router, http.MethodPost, "/api/submit", submissionBody(t, fmt.Sprintf("p-%d", i), "", 1))
	}

	w, body := doJSON(router, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 3.0, body["submissions"])
	// 0+1+2 pairwise comparisons across the three submissions
	assert.Equal(t, 3.0, body["comparisons"])
}

func TestCacheServesRepeatedOverviewRequests(t *testing.T) {
	router := newTestRouter()

	doJSON(router, http.MethodPost, "/api/submit", submissionBody(t, "alice-1", "Alice", 2))

	_, first := doJSON(router, http.MethodGet, "/api/participants", nil)
	_, second := doJSON(router, http.MethodGet, "/api/participants", nil)
	assert.Equal(t, first, second)

	w, body := doJSON(router, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1.0, body["cache_hits"])
}
