package database

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/krishmishraghub/The-Mind-Studio/internal/scoring"
	"github.com/krishmishraghub/The-Mind-Studio/internal/store"
)

// Archive persists submission snapshots to SQLite so the in-memory store can
// be repopulated after a restart.
type Archive struct {
	db *DB
}

// NewArchive creates an archive over an open database.
func NewArchive(db *DB) *Archive {
	return &Archive{db: db}
}

// SaveSnapshot appends one snapshot to the archive.
func (a *Archive) SaveSnapshot(snap store.Snapshot) error {
	answers, err := json.Marshal(snap.Answers)
	if err != nil {
		return fmt.Errorf("failed to marshal answers: %w", err)
	}
	profile, err := json.Marshal(snap.Profile)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}
	vector, err := json.Marshal(snap.FeatureVector)
	if err != nil {
		return fmt.Errorf("failed to marshal feature vector: %w", err)
	}

	stmt, err := a.db.GetPreparedStatement("insert_snapshot")
	if err != nil {
		return err
	}

	_, err = stmt.Exec(snap.ID, snap.ParticipantID, snap.ParticipantName,
		string(answers), string(profile), string(vector), snap.Timestamp)
	if err != nil {
		return fmt.Errorf("failed to insert snapshot: %w", err)
	}

	return nil
}

// LoadSnapshots returns every archived snapshot, oldest first.
func (a *Archive) LoadSnapshots() ([]store.Snapshot, error) {
	stmt, err := a.db.GetPreparedStatement("list_snapshots")
	if err != nil {
		return nil, err
	}

	rows, err := stmt.Query()
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []store.Snapshot
	for rows.Next() {
		var snap store.Snapshot
		var answers, profile, vector string

		if err := rows.Scan(&snap.ID, &snap.ParticipantID, &snap.ParticipantName,
			&answers, &profile, &vector, &snap.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}

		if err := json.Unmarshal([]byte(answers), &snap.Answers); err != nil {
			return nil, fmt.Errorf("failed to unmarshal answers: %w", err)
		}
		snap.Profile = scoring.Profile{}
		if err := json.Unmarshal([]byte(profile), &snap.Profile); err != nil {
			return nil, fmt.Errorf("failed to unmarshal profile: %w", err)
		}
		if err := json.Unmarshal([]byte(vector), &snap.FeatureVector); err != nil {
			return nil, fmt.Errorf("failed to unmarshal feature vector: %w", err)
		}

		snapshots = append(snapshots, snap)
	}

	return snapshots, rows.Err()
}

// Clear deletes every archived snapshot.
func (a *Archive) Clear() error {
	stmt, err := a.db.GetPreparedStatement("clear_snapshots")
	if err != nil {
		return err
	}

	if _, err := stmt.Exec(); err != nil {
		return fmt.Errorf("failed to clear snapshots: %w", err)
	}

	return nil
}

// NewSnapshotTimestamp returns a timestamp for new snapshots in the format
// the archive stores.
func NewSnapshotTimestamp() string {
	return time.Now().Format(time.RFC3339)
}
