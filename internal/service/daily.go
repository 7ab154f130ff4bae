package service

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/aliskhannn/picktoss-bot/internal/domain/entities"
)

const (
	DefaultDailySchedule      = "0 9 * * *"
	DefaultDailyMaxConcurrent = 10

	subscriptionBatchSize = 100
)

var ErrNotifierNotSet = errors.New("daily notifier is not set")

// DailyConfig holds the announcement schedule.
type DailyConfig struct {
	Schedule      string // cron expression, UTC
	MaxConcurrent int
}

// DailyQuizService announces today's quiz to subscribed chats on a schedule.
type DailyQuizService struct {
	api      QuizAPI
	subs     SubscriptionRepository
	notifier DailyNotifier
	cfg      DailyConfig
	logger   *zap.Logger
}

func NewDailyQuizService(
	api QuizAPI,
	subs SubscriptionRepository,
	cfg DailyConfig,
	logger *zap.Logger,
) *DailyQuizService {
	if cfg.Schedule == "" {
		cfg.Schedule = DefaultDailySchedule
	}
	if cfg.MaxConcurrent <= 0 {
		cfg.MaxConcurrent = DefaultDailyMaxConcurrent
	}

	return &DailyQuizService{
		api:    api,
		subs:   subs,
		cfg:    cfg,
		logger: logger,
	}
}

// SetNotifier sets the notifier (called after handler is created).
func (s *DailyQuizService) SetNotifier(notifier DailyNotifier) {
	s.notifier = notifier
}

// Start runs the announcement job on its schedule until ctx is done.
func (s *DailyQuizService) Start(ctx context.Context) error {
	c := cron.New(cron.WithLocation(time.UTC))

	_, err := c.AddFunc(s.cfg.Schedule, func() {
		s.logger.Info("cron triggered: announcing today's quiz")
		if _, err := s.Announce(ctx); err != nil {
			s.logger.Error("failed to announce today's quiz", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("add daily quiz job %q: %w", s.cfg.Schedule, err)
	}

	c.Start()
	s.logger.Info("daily quiz scheduler started", zap.String("schedule", s.cfg.Schedule))

	<-ctx.Done()

	<-c.Stop().Done()
	s.logger.Info("daily quiz scheduler stopped")
	return nil
}

// Announce notifies every subscribed chat when today's quiz is ready.
// It returns the number of chats notified.
func (s *DailyQuizService) Announce(ctx context.Context) (int, error) {
	if s.notifier == nil {
		return 0, ErrNotifierNotSet
	}

	today, err := s.api.GetTodayQuizSet(ctx)
	if err != nil {
		return 0, fmt.Errorf("get today quiz set: %w", err)
	}

	if today.Type != entities.TodayQuizReady {
		s.logger.Info("today's quiz is not ready, skipping announcement",
			zap.String("type", string(today.Type)),
		)
		return 0, nil
	}

	total := 0
	offset := 0

	for {
		chatIDs, err := s.subs.ListChatIDsBatch(ctx, subscriptionBatchSize, offset)
		if err != nil {
			return total, fmt.Errorf("list subscriptions batch: %w", err)
		}

		if len(chatIDs) == 0 {
			break
		}

		total += s.processBatch(ctx, chatIDs, today)

		if len(chatIDs) < subscriptionBatchSize {
			break
		}

		offset += subscriptionBatchSize
	}

	s.logger.Info("today's quiz announced",
		zap.String("quiz_set_id", today.QuizSetID),
		zap.Int("total_sent", total),
	)

	return total, nil
}

// processBatch notifies a batch of chats concurrently.
func (s *DailyQuizService) processBatch(ctx context.Context, chatIDs []int64, today *entities.TodayQuiz) int {
	var g errgroup.Group
	g.SetLimit(s.cfg.MaxConcurrent)

	var sent atomic.Int64

	for _, chatID := range chatIDs {
		g.Go(func() error {
			if err := s.notifier.AnnounceTodayQuiz(ctx, chatID, today); err != nil {
				s.logger.Error("failed to announce today's quiz",
					zap.Int64("chat_id", chatID),
					zap.Error(err))
				return nil
			}
			sent.Add(1)
			return nil
		})
	}

	_ = g.Wait()
	return int(sent.Load())
}
