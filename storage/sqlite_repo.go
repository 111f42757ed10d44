package storage

import (
	"context"
	"database/sql"
	"fmt"

	"slither/game/manager"
)

// SQLiteRecordRepository implements manager.RecordStore.
type SQLiteRecordRepository struct {
	db *sql.DB
}

var _ manager.RecordStore = (*SQLiteRecordRepository)(nil)

func NewSQLiteRecordRepository(db *sql.DB) *SQLiteRecordRepository {
	return &SQLiteRecordRepository{db: db}
}

// SaveRecord inserts rec, replacing an earlier record of the same game.
func (r *SQLiteRecordRepository) SaveRecord(ctx context.Context, rec manager.GameRecord) error {
	query := `
		INSERT INTO games (game_id, width, height, score, length, moves, cause, started_at, ended_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(game_id) DO UPDATE SET
			score=excluded.score,
			length=excluded.length,
			moves=excluded.moves,
			cause=excluded.cause,
			ended_at=excluded.ended_at
	`
	_, err := r.db.ExecContext(ctx, query,
		rec.ID, rec.Width, rec.Height, rec.Score, rec.Length, rec.Moves,
		rec.Cause, rec.StartedAt.UTC(), rec.EndedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to save game record: %w", err)
	}
	return nil
}

// HighScore returns the best score on record, 0 when there is none.
func (r *SQLiteRecordRepository) HighScore(ctx context.Context) (int, error) {
	var high sql.NullInt64
	if err := r.db.QueryRowContext(ctx, `SELECT MAX(score) FROM games`).Scan(&high); err != nil {
		return 0, fmt.Errorf("failed to query high score: %w", err)
	}
	return int(high.Int64), nil
}

// Recent returns up to limit records, most recently ended first.
func (r *SQLiteRecordRepository) Recent(ctx context.Context, limit int) ([]manager.GameRecord, error) {
	query := `SELECT game_id, width, height, score, length, moves, cause, started_at, ended_at FROM games ORDER BY ended_at DESC LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent games: %w", err)
	}
	defer rows.Close()

	var records []manager.GameRecord
	for rows.Next() {
		var rec manager.GameRecord
		if err := rows.Scan(
			&rec.ID, &rec.Width, &rec.Height, &rec.Score, &rec.Length,
			&rec.Moves, &rec.Cause, &rec.StartedAt, &rec.EndedAt,
		); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
