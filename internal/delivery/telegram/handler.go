package telegram

import (
	"context"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/picktoss-bot/internal/storage"
)

const recentPlaysLimit = 5

type Handler struct {
	bot                 Sender
	logger              *zap.Logger
	quizService         QuizService
	keyPointService     KeyPointService
	historyService      HistoryService
	subscriptionService SubscriptionService
	announcements       *storage.AnnouncementStorage
	watches             *storage.WatchStorage

	wg sync.WaitGroup // background pick polls and result submissions
}

func NewHandler(
	bot Sender,
	logger *zap.Logger,
	quizService QuizService,
	keyPointService KeyPointService,
	historyService HistoryService,
	subscriptionService SubscriptionService,
	announcements *storage.AnnouncementStorage,
	watches *storage.WatchStorage,
) *Handler {
	return &Handler{
		bot:                 bot,
		logger:              logger,
		quizService:         quizService,
		keyPointService:     keyPointService,
		historyService:      historyService,
		subscriptionService: subscriptionService,
		announcements:       announcements,
		watches:             watches,
	}
}

// Run handles updates until ctx is done, then stops the background polls
// and waits for pending submissions.
func (h *Handler) Run(ctx context.Context, updates tgbotapi.UpdatesChannel) error {
	h.logger.Info("telegram handler started")
	defer h.logger.Info("telegram handler stopped")

	defer func() {
		h.watches.CancelAll()
		h.wg.Wait()
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			h.handleUpdate(ctx, update)
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		h.logger.Debug("callback received",
			zap.Int64("user_id", update.CallbackQuery.From.ID),
			zap.String("data", update.CallbackQuery.Data),
		)
		h.handleCallback(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil {
		h.logger.Debug("update without message and callback")
		return
	}

	h.logger.Debug("update received",
		zap.Int64("chat_id", update.Message.Chat.ID),
		zap.String("text", update.Message.Text),
	)

	chatID := update.Message.Chat.ID

	if !update.Message.IsCommand() {
		h.send(newMessage(chatID, msgUnknownCommand))
		return
	}

	switch update.Message.Command() {
	case "start":
		h.send(newMessage(chatID, welcomeMessage()))

	case "help":
		_ = h.withErrorHandling(h.helpHandler())(ctx, chatID)

	case "quiz":
		_ = h.withErrorHandling(h.quizHandler())(ctx, chatID)

	case "repository":
		_ = h.withErrorHandling(h.repositoryHandler())(ctx, chatID)

	case "pick":
		_ = h.withErrorHandling(h.pickHandler(update.Message.CommandArguments()))(ctx, chatID)

	case "history":
		_ = h.withErrorHandling(h.historyHandler())(ctx, chatID)

	case "subscribe":
		_ = h.withErrorHandling(h.subscribeHandler())(ctx, chatID)

	case "unsubscribe":
		_ = h.withErrorHandling(h.unsubscribeHandler())(ctx, chatID)

	default:
		h.send(newMessage(chatID, msgUnknownCommand))
	}
}

func (h *Handler) sendError(chatID int64, text string) {
	h.send(newMessage(chatID, text))
}

func (h *Handler) send(c tgbotapi.Chattable) (tgbotapi.Message, bool) {
	msg, err := h.bot.Send(c)
	if err != nil {
		h.logger.Error("failed to send telegram message",
			zap.Error(err),
		)
		return tgbotapi.Message{}, false
	}
	return msg, true
}

func (h *Handler) request(c tgbotapi.Chattable) {
	if _, err := h.bot.Request(c); err != nil {
		h.logger.Debug("telegram request failed", zap.Error(err))
	}
}
