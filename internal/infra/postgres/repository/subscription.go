package repository

import (
	"context"
	"fmt"

	"github.com/aliskhannn/picktoss-bot/internal/infra/postgres"
)

// SubscriptionRepository tracks chats subscribed to the daily quiz.
type SubscriptionRepository struct {
	db postgres.DBTX
}

// NewSubscriptionRepository creates a new SubscriptionRepository.
func NewSubscriptionRepository(db postgres.DBTX) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

// Subscribe enables the daily quiz for a chat. It reports whether the chat was newly subscribed.
func (r *SubscriptionRepository) Subscribe(ctx context.Context, chatID int64) (bool, error) {
	query := `
		INSERT INTO chat_subscriptions (chat_id)
		VALUES ($1)
		ON CONFLICT (chat_id) DO NOTHING
	`

	tag, err := r.db.Exec(ctx, query, chatID)
	if err != nil {
		return false, fmt.Errorf("subscribe chat: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}

// Unsubscribe disables the daily quiz for a chat. It reports whether the chat was subscribed.
func (r *SubscriptionRepository) Unsubscribe(ctx context.Context, chatID int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM chat_subscriptions WHERE chat_id = $1`, chatID)
	if err != nil {
		return false, fmt.Errorf("unsubscribe chat: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}

// IsSubscribed reports whether the chat receives the daily quiz.
func (r *SubscriptionRepository) IsSubscribed(ctx context.Context, chatID int64) (bool, error) {
	var ok bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM chat_subscriptions WHERE chat_id = $1)`, chatID,
	).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("check subscription: %w", err)
	}

	return ok, nil
}

// ListChatIDsBatch returns subscribed chat ids ordered by id.
func (r *SubscriptionRepository) ListChatIDsBatch(ctx context.Context, limit, offset int) ([]int64, error) {
	query := `
		SELECT chat_id
		FROM chat_subscriptions
		ORDER BY chat_id
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}
	defer rows.Close()

	ids := make([]int64, 0, limit)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan subscription: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}
