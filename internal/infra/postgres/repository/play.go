package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/aliskhannn/picktoss-bot/internal/domain/entities"
	"github.com/aliskhannn/picktoss-bot/internal/infra/postgres"
)

// PlayRepository stores finished quiz plays.
type PlayRepository struct {
	db postgres.DBTX
}

// NewPlayRepository creates a new PlayRepository.
func NewPlayRepository(db postgres.DBTX) *PlayRepository {
	return &PlayRepository{db: db}
}

// Insert saves the play header. Saving a play twice is a no-op.
func (r *PlayRepository) Insert(ctx context.Context, p *entities.Play) error {
	query := `
		INSERT INTO quiz_plays (
			id, chat_id, quiz_set_id, total, correct, elapsed_ms, finished_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO NOTHING
	`

	_, err := r.db.Exec(ctx, query,
		p.ID,
		p.ChatID,
		p.QuizSetID,
		p.Total,
		p.Correct,
		p.ElapsedMillis,
		p.FinishedAt,
	)
	if err != nil {
		return fmt.Errorf("insert play: %w", err)
	}

	return nil
}

// InsertAnswers saves the per-question results of a play in one batch.
func (r *PlayRepository) InsertAnswers(ctx context.Context, p *entities.Play) error {
	query := `
		INSERT INTO quiz_play_answers (play_id, position, quiz_id, correct, elapsed_ms)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (play_id, position) DO NOTHING
	`

	batch := &pgx.Batch{}
	for i, a := range p.Answers {
		batch.Queue(query, p.ID, i, a.QuizID, a.Correct, a.ElapsedMillis)
	}

	br := r.db.SendBatch(ctx, batch)
	defer func() { _ = br.Close() }()

	for range p.Answers {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("insert play answer: %w", err)
		}
	}

	return nil
}

// Recent returns the latest plays of a chat, newest first, without answers.
func (r *PlayRepository) Recent(ctx context.Context, chatID int64, limit int) ([]*entities.Play, error) {
	query := `
		SELECT id, chat_id, quiz_set_id, total, correct, elapsed_ms, finished_at
		FROM quiz_plays
		WHERE chat_id = $1
		ORDER BY finished_at DESC
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, chatID, limit)
	if err != nil {
		return nil, fmt.Errorf("get recent plays: %w", err)
	}
	defer rows.Close()

	plays := make([]*entities.Play, 0, limit)
	for rows.Next() {
		p := new(entities.Play)
		if err := rows.Scan(
			&p.ID, &p.ChatID, &p.QuizSetID, &p.Total, &p.Correct, &p.ElapsedMillis, &p.FinishedAt,
		); err != nil {
			return nil, fmt.Errorf("scan play: %w", err)
		}
		plays = append(plays, p)
	}

	return plays, rows.Err()
}

// Stats aggregates all plays of a chat.
func (r *PlayRepository) Stats(ctx context.Context, chatID int64) (*entities.PlayStats, error) {
	query := `
		SELECT COUNT(*),
		       COALESCE(SUM(total), 0),
		       COALESCE(SUM(correct), 0),
		       COALESCE(SUM(elapsed_ms), 0)::bigint,
		       MAX(finished_at)
		FROM quiz_plays
		WHERE chat_id = $1
	`

	var stats entities.PlayStats
	var elapsed int64
	var last pgtype.Timestamptz

	err := r.db.QueryRow(ctx, query, chatID).Scan(
		&stats.Plays,
		&stats.Questions,
		&stats.Correct,
		&elapsed,
		&last,
	)
	if err != nil {
		return nil, fmt.Errorf("get play stats: %w", err)
	}

	if stats.Questions > 0 {
		stats.AvgElapsedMillis = elapsed / int64(stats.Questions)
	}
	if last.Valid {
		t := last.Time
		stats.LastFinishedAt = &t
	}

	return &stats, nil
}
