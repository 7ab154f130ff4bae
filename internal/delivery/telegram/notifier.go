package telegram

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/picktoss-bot/internal/domain/entities"
)

// AnnounceTodayQuiz sends the daily announcement and deletes the previous one of the chat.
func (h *Handler) AnnounceTodayQuiz(_ context.Context, chatID int64, today *entities.TodayQuiz) error {
	msg := newMarkdownMessage(chatID, formatAnnouncement(today))
	msg.ReplyMarkup = buildAnnouncementKeyboard()

	sent, err := h.bot.Send(msg)
	if err != nil {
		return fmt.Errorf("send announcement: %w", err)
	}

	prev, hadPrev := h.announcements.UpsertAndGetPrev(chatID, sent.MessageID, sent.Time())
	if hadPrev {
		h.request(tgbotapi.NewDeleteMessage(chatID, prev.MessageID))
	}

	return nil
}
