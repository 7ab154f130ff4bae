package telegram

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/aliskhannn/picktoss-bot/internal/domain/entities"
	"github.com/aliskhannn/picktoss-bot/internal/quiz"
	"github.com/aliskhannn/picktoss-bot/internal/service"
)

// quizHandler starts today's quiz in the chat.
func (h *Handler) quizHandler() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		var set *entities.QuizSet
		newView := func(playID uuid.UUID, s *entities.QuizSet) quiz.Listener {
			set = s
			return &quizView{h: h, chatID: chatID, playID: playID}
		}

		today, _, err := h.quizService.StartToday(ctx, chatID, newView)
		switch {
		case errors.Is(err, service.ErrTodayQuizNotReady):
			h.send(newMessage(chatID, msgQuizNotReady))
			return nil
		case errors.Is(err, service.ErrTodayQuizDone):
			h.send(newMessage(chatID, formatQuizDone(today)))
			return nil
		case err != nil:
			return err
		}

		h.send(newMarkdownMessage(chatID, formatIntro(set)))
		return nil
	}
}

// repositoryHandler lists the categories of the account.
func (h *Handler) repositoryHandler() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		categories, err := h.keyPointService.Categories(ctx)
		if err != nil {
			return err
		}

		msg := newMarkdownMessage(chatID, formatCategories(categories))
		if kb := buildCategoriesKeyboard(categories); kb != nil {
			msg.ReplyMarkup = kb
		}
		h.send(msg)
		return nil
	}
}

// pickHandler shows the AI picks of the document given as the command argument.
func (h *Handler) pickHandler(args string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		documentID, err := strconv.ParseInt(strings.TrimSpace(args), 10, 64)
		if err != nil || documentID <= 0 {
			h.send(newMessage(chatID, msgPickUsage))
			return nil
		}

		return h.showPick(ctx, chatID, documentID)
	}
}

func (h *Handler) historyHandler() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		stats, err := h.historyService.Stats(ctx, chatID)
		if err != nil {
			return err
		}

		plays, err := h.historyService.Recent(ctx, chatID, recentPlaysLimit)
		if err != nil {
			return err
		}

		h.send(newMarkdownMessage(chatID, formatHistory(stats, plays)))
		return nil
	}
}

func (h *Handler) subscribeHandler() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		created, err := h.subscriptionService.Subscribe(ctx, chatID)
		if err != nil {
			return err
		}

		text := msgSubscribed
		if !created {
			text = msgAlreadySub
		}
		h.send(newMessage(chatID, text))
		return nil
	}
}

func (h *Handler) unsubscribeHandler() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		removed, err := h.subscriptionService.Unsubscribe(ctx, chatID)
		if err != nil {
			return err
		}

		text := msgUnsubscribed
		if !removed {
			text = msgNotSubscribed
		}
		h.send(newMessage(chatID, text))
		return nil
	}
}

func (h *Handler) helpHandler() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		subscribed, err := h.subscriptionService.IsSubscribed(ctx, chatID)
		if err != nil {
			return err
		}

		status := "off"
		if subscribed {
			status = "on"
		}
		h.send(newMessage(chatID, helpMessage()+"\n\nDaily announcement: "+status))
		return nil
	}
}
