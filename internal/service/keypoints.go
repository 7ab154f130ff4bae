package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/picktoss-bot/internal/clock"
	"github.com/aliskhannn/picktoss-bot/internal/domain/entities"
	"github.com/aliskhannn/picktoss-bot/internal/infra/cache"
	"github.com/aliskhannn/picktoss-bot/internal/poller"
)

const categoriesKey = "all"

// PollConfig holds the AI pick polling parameters.
type PollConfig struct {
	Interval time.Duration
	Timeout  time.Duration
}

// KeyPointService reads documents' AI picks through the query cache.
type KeyPointService struct {
	api        DocumentAPI
	keyPoints  Cache[*entities.KeyPoints]
	categories Cache[[]entities.Category]
	clock      clock.Clock
	poll       PollConfig
	logger     *zap.Logger
}

func NewKeyPointService(
	api DocumentAPI,
	keyPoints Cache[*entities.KeyPoints],
	categories Cache[[]entities.Category],
	clk clock.Clock,
	poll PollConfig,
	logger *zap.Logger,
) *KeyPointService {
	return &KeyPointService{
		api:        api,
		keyPoints:  keyPoints,
		categories: categories,
		clock:      clk,
		poll:       poll,
		logger:     logger,
	}
}

func documentKey(documentID int64) string {
	return strconv.FormatInt(documentID, 10)
}

// Get returns the key points of a document, from the cache when present.
func (s *KeyPointService) Get(ctx context.Context, documentID int64) (*entities.KeyPoints, error) {
	kp, err := s.keyPoints.Get(ctx, documentKey(documentID))
	if err == nil && kp != nil {
		return kp, nil
	}
	if err != nil && !errors.Is(err, cache.ErrMiss) {
		s.logger.Warn("key points cache read failed", zap.Int64("document_id", documentID), zap.Error(err))
	}

	return s.Refresh(ctx, documentID)
}

// Refresh fetches the key points from the API and updates the cache.
func (s *KeyPointService) Refresh(ctx context.Context, documentID int64) (*entities.KeyPoints, error) {
	kp, err := s.api.GetKeyPoints(ctx, documentID)
	if err != nil {
		return nil, err
	}

	s.store(ctx, kp)
	return kp, nil
}

// CreatePick starts AI pick generation and marks the cached document as processing.
func (s *KeyPointService) CreatePick(ctx context.Context, documentID int64) (*entities.KeyPoints, error) {
	if err := s.api.CreateAIPick(ctx, documentID); err != nil {
		return nil, err
	}

	kp, err := s.keyPoints.Get(ctx, documentKey(documentID))
	if err != nil || kp == nil {
		kp = &entities.KeyPoints{DocumentID: documentID}
	}
	kp.Status = entities.DocumentProcessing

	s.store(ctx, kp)

	s.logger.Info("ai pick requested", zap.Int64("document_id", documentID))
	return kp, nil
}

// Watch polls the document until its status is terminal or the poll timeout expires.
// Every fetched state is passed to onUpdate and written to the cache.
func (s *KeyPointService) Watch(
	ctx context.Context, documentID int64, onUpdate func(*entities.KeyPoints),
) (*entities.KeyPoints, error) {
	if s.poll.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.poll.Timeout)
		defer cancel()
	}

	return poller.Watch(ctx, poller.Config[*entities.KeyPoints]{
		Clock:    s.clock,
		Interval: s.poll.Interval,
		Fetch: func(ctx context.Context) (*entities.KeyPoints, error) {
			return s.Refresh(ctx, documentID)
		},
		IsTerminal: func(kp *entities.KeyPoints) bool {
			return kp.Status.IsTerminal()
		},
		OnUpdate: onUpdate,
		OnError: func(err error) {
			s.logger.Warn("key points poll failed", zap.Int64("document_id", documentID), zap.Error(err))
		},
	})
}

// Categories lists the categories with their documents, from the cache when present.
func (s *KeyPointService) Categories(ctx context.Context) ([]entities.Category, error) {
	categories, err := s.categories.Get(ctx, categoriesKey)
	if err == nil {
		return categories, nil
	}
	if !errors.Is(err, cache.ErrMiss) {
		s.logger.Warn("categories cache read failed", zap.Error(err))
	}

	categories, err = s.api.GetCategories(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.categories.Set(ctx, categoriesKey, categories); err != nil {
		s.logger.Warn("categories cache write failed", zap.Error(err))
	}

	return categories, nil
}

func (s *KeyPointService) store(ctx context.Context, kp *entities.KeyPoints) {
	if err := s.keyPoints.Set(ctx, documentKey(kp.DocumentID), kp); err != nil {
		s.logger.Warn("key points cache write failed", zap.Int64("document_id", kp.DocumentID), zap.Error(err))
	}
}
