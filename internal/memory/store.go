package memory

// #region imports
import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/primecodex/emota-engine/internal/archetype"
	"github.com/primecodex/emota-engine/internal/braid"
)

// #endregion imports

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS episodes (
	episode_id     TEXT PRIMARY KEY,
	created_at     TEXT NOT NULL,
	content        TEXT NOT NULL,
	inputs_json    TEXT NOT NULL,
	state_json     TEXT NOT NULL,
	resonance_json TEXT NOT NULL
);
`

// #endregion schema

// #region store

// Store persists episodes in SQLite. The core engine never touches it;
// callers feed it the buffer's serializable view.
type Store struct {
	db *sql.DB
}

// NewStore opens a SQLite database and runs migrations.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// #endregion store

// #region append

// Append writes one episode. An empty ID is assigned a fresh UUID; the
// stored episode (with its final ID) is returned.
func (s *Store) Append(ep Episode) (Episode, error) {
	if ep.ID == "" {
		ep.ID = uuid.New().String()
	}
	if ep.Timestamp.IsZero() {
		ep.Timestamp = time.Now().UTC()
	}

	inputsJSON, err := json.Marshal(ep.Inputs)
	if err != nil {
		return Episode{}, fmt.Errorf("marshal inputs: %w", err)
	}
	stateJSON, err := json.Marshal(ep.State)
	if err != nil {
		return Episode{}, fmt.Errorf("marshal state: %w", err)
	}
	resonanceJSON, err := json.Marshal(ep.Resonance)
	if err != nil {
		return Episode{}, fmt.Errorf("marshal resonance: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO episodes (episode_id, created_at, content, inputs_json, state_json, resonance_json)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		ep.ID, ep.Timestamp.Format(time.RFC3339Nano), ep.Content,
		string(inputsJSON), string(stateJSON), string(resonanceJSON),
	)
	if err != nil {
		return Episode{}, fmt.Errorf("insert episode: %w", err)
	}
	return ep, nil
}

// AppendAll writes a buffer snapshot in one transaction.
func (s *Store) AppendAll(eps []Episode) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	for _, ep := range eps {
		if ep.ID == "" {
			ep.ID = uuid.New().String()
		}
		if ep.Timestamp.IsZero() {
			ep.Timestamp = time.Now().UTC()
		}
		inputsJSON, err := json.Marshal(ep.Inputs)
		if err != nil {
			return fmt.Errorf("marshal inputs: %w", err)
		}
		stateJSON, err := json.Marshal(ep.State)
		if err != nil {
			return fmt.Errorf("marshal state: %w", err)
		}
		resonanceJSON, err := json.Marshal(ep.Resonance)
		if err != nil {
			return fmt.Errorf("marshal resonance: %w", err)
		}
		_, err = tx.Exec(
			`INSERT OR REPLACE INTO episodes (episode_id, created_at, content, inputs_json, state_json, resonance_json)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			ep.ID, ep.Timestamp.Format(time.RFC3339Nano), ep.Content,
			string(inputsJSON), string(stateJSON), string(resonanceJSON),
		)
		if err != nil {
			return fmt.Errorf("insert episode %s: %w", ep.ID, err)
		}
	}
	return tx.Commit()
}

// #endregion append

// #region list

// List returns the most recent episodes, oldest first.
func (s *Store) List(limit int) ([]Episode, error) {
	rows, err := s.db.Query(
		`SELECT episode_id, created_at, content, inputs_json, state_json, resonance_json
		 FROM (
			SELECT * FROM episodes ORDER BY created_at DESC LIMIT ?
		 ) ORDER BY created_at ASC`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list episodes: %w", err)
	}
	defer rows.Close()

	var episodes []Episode
	for rows.Next() {
		var ep Episode
		var createdStr, inputsJSON, stateJSON, resonanceJSON string

		if err := rows.Scan(&ep.ID, &createdStr, &ep.Content, &inputsJSON, &stateJSON, &resonanceJSON); err != nil {
			return nil, fmt.Errorf("scan episode: %w", err)
		}
		ep.Timestamp, _ = time.Parse(time.RFC3339Nano, createdStr)
		if err := json.Unmarshal([]byte(inputsJSON), &ep.Inputs); err != nil {
			return nil, fmt.Errorf("unmarshal inputs: %w", err)
		}
		var st braid.State
		if err := json.Unmarshal([]byte(stateJSON), &st); err != nil {
			return nil, fmt.Errorf("unmarshal state: %w", err)
		}
		ep.State = st
		var res archetype.Resonance
		if err := json.Unmarshal([]byte(resonanceJSON), &res); err != nil {
			return nil, fmt.Errorf("unmarshal resonance: %w", err)
		}
		ep.Resonance = res
		episodes = append(episodes, ep)
	}
	return episodes, rows.Err()
}

// Count reports the number of persisted episodes.
func (s *Store) Count() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM episodes`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count episodes: %w", err)
	}
	return n, nil
}

// #endregion list
