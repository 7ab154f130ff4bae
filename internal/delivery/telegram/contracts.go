package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"

	"github.com/aliskhannn/picktoss-bot/internal/domain/entities"
	"github.com/aliskhannn/picktoss-bot/internal/service"
	"github.com/aliskhannn/picktoss-bot/internal/storage"
)

// Sender is the part of *tgbotapi.BotAPI the handler uses.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

type QuizService interface {
	StartToday(ctx context.Context, chatID int64, newListener service.ListenerFactory) (*entities.TodayQuiz, *storage.ActivePlay, error)
	Start(ctx context.Context, chatID int64, quizSetID string, newListener service.ListenerFactory) (*storage.ActivePlay, error)
	Active(chatID int64, playID uuid.UUID) (*storage.ActivePlay, error)
	Finish(chatID int64, playID uuid.UUID) bool
}

type KeyPointService interface {
	Get(ctx context.Context, documentID int64) (*entities.KeyPoints, error)
	CreatePick(ctx context.Context, documentID int64) (*entities.KeyPoints, error)
	Watch(ctx context.Context, documentID int64, onUpdate func(*entities.KeyPoints)) (*entities.KeyPoints, error)
	Categories(ctx context.Context) ([]entities.Category, error)
}

type HistoryService interface {
	Recent(ctx context.Context, chatID int64, limit int) ([]*entities.Play, error)
	Stats(ctx context.Context, chatID int64) (*entities.PlayStats, error)
}

type SubscriptionService interface {
	Subscribe(ctx context.Context, chatID int64) (bool, error)
	Unsubscribe(ctx context.Context, chatID int64) (bool, error)
	IsSubscribed(ctx context.Context, chatID int64) (bool, error)
}
