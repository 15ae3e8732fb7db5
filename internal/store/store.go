package store

import (
	"sync"

	"github.com/krishmishraghub/The-Mind-Studio/internal/scoring"
)

// Participant is a stored participant record: the latest answers and profile
// for one participant ID.
type Participant struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Answers   map[string]int  `json:"answers"`
	Profile   scoring.Profile `json:"profile"`
	Timestamp string          `json:"timestamp"`
}

// Snapshot is one timestamped submission, kept in history even when a
// participant resubmits.
type Snapshot struct {
	ID              string          `json:"id"`
	ParticipantID   string          `json:"participant_id"`
	ParticipantName string          `json:"participant_name"`
	Answers         map[string]int  `json:"answers"`
	Profile         scoring.Profile `json:"profile"`
	FeatureVector   []float64       `json:"ai_feature_vector"`
	Timestamp       string          `json:"timestamp"`
}

// Store is the in-memory participant store. The scoring core stays pure; all
// shared state lives here behind a RWMutex, so handlers can run concurrently.
type Store struct {
	mu           sync.RWMutex
	participants map[string]Participant
	order        []string
	snapshots    []Snapshot
}

// New creates an empty store.
func New() *Store {
	return &Store{
		participants: make(map[string]Participant),
	}
}

// Insert stores or replaces a participant. Insertion order is preserved for
// deterministic listings; a resubmission keeps the original position.
func (s *Store) Insert(p Participant) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.participants[p.ID]; !exists {
		s.order = append(s.order, p.ID)
	}
	s.participants[p.ID] = p
}

// AppendSnapshot adds a submission snapshot to the history.
func (s *Store) AppendSnapshot(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshots = append(s.snapshots, snap)
}

// Get returns a participant by ID.
func (s *Store) Get(id string) (Participant, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.participants[id]
	return p, ok
}

// List returns all participants in insertion order.
func (s *Store) List() []Participant {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Participant, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.participants[id])
	}
	return out
}

// Snapshots returns the snapshot history, oldest first.
func (s *Store) Snapshots() []Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Snapshot, len(s.snapshots))
	copy(out, s.snapshots)
	return out
}

// Count returns the number of stored participants.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.participants)
}

// SnapshotCount returns the number of stored snapshots.
func (s *Store) SnapshotCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.snapshots)
}

// Clear removes all participants and snapshots.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.participants = make(map[string]Participant)
	s.order = nil
	s.snapshots = nil
}
