package repository

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// MatchResult is the persisted record of a finished match.
type MatchResult struct {
	MatchID    string
	PlayerA    string
	PlayerB    string
	Winner     string // empty for a draw (max-turns cap)
	Turns      int
	Duration   time.Duration
	FinishedAt time.Time
}

// MatchRepository stores finished match results.
type MatchRepository struct {
	db *DB
}

// NewMatchRepository creates a repository over the given DB.
func NewMatchRepository(db *DB) *MatchRepository {
	return &MatchRepository{db: db}
}

// SaveResult inserts a finished match. Saving the same match twice keeps the
// first record.
func (r *MatchRepository) SaveResult(ctx context.Context, result MatchResult) error {
	const q = `
INSERT INTO match_results (match_id, player_a, player_b, winner, turns, duration_ms, finished_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (match_id) DO NOTHING`

	_, err := r.db.pool.Exec(ctx, q,
		result.MatchID,
		result.PlayerA,
		result.PlayerB,
		result.Winner,
		result.Turns,
		result.Duration.Milliseconds(),
		result.FinishedAt,
	)
	if err != nil {
		return fmt.Errorf("save match result %s: %w", result.MatchID, err)
	}
	r.db.logger.Info("match result saved",
		zap.String("match_id", result.MatchID),
		zap.String("winner", result.Winner),
		zap.Int("turns", result.Turns),
	)
	return nil
}

// RecentResults returns the most recently finished matches, newest first.
func (r *MatchRepository) RecentResults(ctx context.Context, limit int) ([]MatchResult, error) {
	if limit <= 0 {
		limit = 20
	}
	const q = `
SELECT match_id, player_a, player_b, winner, turns, duration_ms, finished_at
FROM match_results
ORDER BY finished_at DESC
LIMIT $1`

	rows, err := r.db.pool.Query(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent results: %w", err)
	}
	defer rows.Close()

	var results []MatchResult
	for rows.Next() {
		var (
			res        MatchResult
			durationMS int64
		)
		if err := rows.Scan(&res.MatchID, &res.PlayerA, &res.PlayerB, &res.Winner,
			&res.Turns, &durationMS, &res.FinishedAt); err != nil {
			return nil, fmt.Errorf("scan match result: %w", err)
		}
		res.Duration = time.Duration(durationMS) * time.Millisecond
		results = append(results, res)
	}
	return results, rows.Err()
}
