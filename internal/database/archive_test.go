package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krishmishraghub/The-Mind-Studio/internal/scoring"
	"github.com/krishmishraghub/The-Mind-Studio/internal/store"
)

func newTestArchive(t *testing.T) *Archive {
	t.Helper()

	db, err := NewDB(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewArchive(db)
}

func testSnapshot(id, participantID, timestamp string) store.Snapshot {
	return store.Snapshot{
		ID:              id,
		ParticipantID:   participantID,
		ParticipantName: "Tester",
		Answers:         map[string]int{"ack_1": 2, "bp_1": 1},
		Profile: scoring.Profile{
			Dimensions: map[string]float64{"emotional_clarity": 0.5},
			Summary:    "summary text",
		},
		FeatureVector: []float64{0.1, 0.2, 0.3},
		Timestamp:     timestamp,
	}
}

func TestArchiveRoundTrip(t *testing.T) {
	a := newTestArchive(t)

	require.NoError(t, a.SaveSnapshot(testSnapshot("s1", "alice", "2026-08-24T10:00:00Z")))
	require.NoError(t, a.SaveSnapshot(testSnapshot("s2", "bob", "2026-08-24T10:05:00Z")))

	snapshots, err := a.LoadSnapshots()
	require.NoError(t, err)
	require.Len(t, snapshots, 2)

	first := snapshots[0]
	assert.Equal(t, "s1", first.ID)
	assert.Equal(t, "alice", first.ParticipantID)
	assert.Equal(t, map[string]int{"ack_1": 2, "bp_1": 1}, first.Answers)
	assert.Equal(t, "summary text", first.Profile.Summary)
	assert.Equal(t, []float64{0.1, 0.2, 0.3}, first.FeatureVector)
}

func TestArchiveClear(t *testing.T) {
	a := newTestArchive(t)

	require.NoError(t, a.SaveSnapshot(testSnapshot("s1", "alice", "2026-08-24T10:00:00Z")))
	require.NoError(t, a.Clear())

	snapshots, err := a.LoadSnapshots()
	require.NoError(t, err)
	assert.Empty(t, snapshots)
}

func TestLoadSnapshotsEmptyArchive(t *testing.T) {
	a := newTestArchive(t)

	snapshots, err := a.LoadSnapshots()
	require.NoError(t, err)
	assert.Empty(t, snapshots)
}
