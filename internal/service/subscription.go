package service

import (
	"context"

	"go.uber.org/zap"
)

// SubscriptionService manages the daily quiz announcement per chat.
type SubscriptionService struct {
	repo   SubscriptionRepository
	logger *zap.Logger
}

func NewSubscriptionService(repo SubscriptionRepository, logger *zap.Logger) *SubscriptionService {
	return &SubscriptionService{
		repo:   repo,
		logger: logger,
	}
}

// Subscribe reports whether the chat was newly subscribed.
func (s *SubscriptionService) Subscribe(ctx context.Context, chatID int64) (bool, error) {
	created, err := s.repo.Subscribe(ctx, chatID)
	if err != nil {
		return false, err
	}
	if created {
		s.logger.Info("chat subscribed", zap.Int64("chat_id", chatID))
	}
	return created, nil
}

// Unsubscribe reports whether the chat was subscribed.
func (s *SubscriptionService) Unsubscribe(ctx context.Context, chatID int64) (bool, error) {
	removed, err := s.repo.Unsubscribe(ctx, chatID)
	if err != nil {
		return false, err
	}
	if removed {
		s.logger.Info("chat unsubscribed", zap.Int64("chat_id", chatID))
	}
	return removed, nil
}

func (s *SubscriptionService) IsSubscribed(ctx context.Context, chatID int64) (bool, error) {
	return s.repo.IsSubscribed(ctx, chatID)
}
