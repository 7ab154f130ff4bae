package service

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/picktoss-bot/internal/domain/entities"
)

// QuizAPI is the quiz part of the remote API.
type QuizAPI interface {
	GetTodayQuizSet(ctx context.Context) (*entities.TodayQuiz, error)
	GetQuizSet(ctx context.Context, id string) (*entities.QuizSet, error)
	PatchQuizResult(ctx context.Context, s entities.Submission) error
}

// DocumentAPI is the document part of the remote API.
type DocumentAPI interface {
	GetKeyPoints(ctx context.Context, documentID int64) (*entities.KeyPoints, error)
	CreateAIPick(ctx context.Context, documentID int64) error
	GetCategories(ctx context.Context) ([]entities.Category, error)
}

// Cache is a keyed JSON cache.
type Cache[T any] interface {
	Get(ctx context.Context, key string) (T, error)
	Set(ctx context.Context, key string, v T) error
	Delete(ctx context.Context, key string) error
}

type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error
}

// PlayRecorder journals submitted plays.
type PlayRecorder interface {
	Record(ctx context.Context, p *entities.Play) error
}

type PlayReader interface {
	Recent(ctx context.Context, chatID int64, limit int) ([]*entities.Play, error)
	Stats(ctx context.Context, chatID int64) (*entities.PlayStats, error)
}

type SubscriptionRepository interface {
	Subscribe(ctx context.Context, chatID int64) (bool, error)
	Unsubscribe(ctx context.Context, chatID int64) (bool, error)
	IsSubscribed(ctx context.Context, chatID int64) (bool, error)
	ListChatIDsBatch(ctx context.Context, limit, offset int) ([]int64, error)
}

// DailyNotifier announces today's quiz in a chat.
type DailyNotifier interface {
	AnnounceTodayQuiz(ctx context.Context, chatID int64, today *entities.TodayQuiz) error
}
