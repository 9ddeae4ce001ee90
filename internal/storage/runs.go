package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Run is one finished session.
type Run struct {
	ID         int64
	RunID      string // UUID v4
	GameID     string
	Seed       int64
	Score      int
	Level      int
	Ticks      int
	Hash       uint64 // Final world hash, 0 when unknown
	ReplayPath string // Recording file, "" when not recorded
	CreatedAt  time.Time
}

// SaveRun records a finished session. A missing RunID is generated.
// Returns the stored run ID.
func (s *Store) SaveRun(r Run) (string, error) {
	if r.RunID == "" {
		r.RunID = uuid.NewString()
	} else if _, err := uuid.Parse(r.RunID); err != nil {
		return "", fmt.Errorf("storage: invalid run id %q: %w", r.RunID, err)
	}

	_, err := s.db.Exec(
		`INSERT INTO runs (run_id, game_id, seed, score, level, ticks, hash, replay_path)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.GameID, r.Seed, r.Score, r.Level, r.Ticks, formatHash(r.Hash), r.ReplayPath,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save run: %w", err)
	}
	return r.RunID, nil
}

// RunByID retrieves a run by its UUID. Returns nil when it does not exist.
func (s *Store) RunByID(runID string) (*Run, error) {
	row := s.db.QueryRow(
		`SELECT id, run_id, game_id, seed, score, level, ticks, hash, replay_path, created_at
		 FROM runs
		 WHERE run_id = ?`,
		runID,
	)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}
	return &r, nil
}

// RecentRuns retrieves the most recent runs of a game, newest first.
// An empty gameID lists every game.
func (s *Store) RecentRuns(gameID string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, run_id, game_id, seed, score, level, ticks, hash, replay_path, created_at
		 FROM runs
		 WHERE ? = '' OR game_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		gameID, gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (Run, error) {
	var r Run
	var hash string
	var createdAt any
	err := sc.Scan(&r.ID, &r.RunID, &r.GameID, &r.Seed, &r.Score, &r.Level, &r.Ticks, &hash, &r.ReplayPath, &createdAt)
	if err != nil {
		return Run{}, err
	}
	// Hashes are stored as hex text; SQLite integers are signed.
	if hash != "" {
		if h, err := strconv.ParseUint(hash, 16, 64); err == nil {
			r.Hash = h
		}
	}
	r.CreatedAt = parseTimestamp(createdAt)
	return r, nil
}

func formatHash(h uint64) string {
	if h == 0 {
		return ""
	}
	return fmt.Sprintf("%016x", h)
}
