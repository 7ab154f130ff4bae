package telegram

import (
	"context"
	"errors"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/picktoss-bot/internal/domain/entities"
	"github.com/aliskhannn/picktoss-bot/internal/quiz"
	"github.com/aliskhannn/picktoss-bot/internal/storage"
)

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil {
		h.answerCallback(cb, "")
		return
	}

	chatID := cb.Message.Chat.ID
	messageID := cb.Message.MessageID
	data := decodeCallback(cb.Data)

	switch data.Action {
	case actionQuiz:
		h.handleQuizCallback(ctx, cb, chatID, data)
		return

	case actionPick:
		h.answerCallback(cb, "")
		h.handlePickCallback(ctx, chatID, messageID, data)

	case actionRepository:
		h.answerCallback(cb, "")
		h.handleRepositoryCallback(ctx, chatID, messageID, data)

	case actionHistory:
		h.answerCallback(cb, "")
		_ = h.withErrorHandling(h.historyHandler())(ctx, chatID)

	default:
		h.logger.Debug("unknown callback", zap.String("data", cb.Data))
		h.answerCallback(cb, "")
	}
}

// answerCallback removes the user's "clock", optionally with a notice.
func (h *Handler) answerCallback(cb *tgbotapi.CallbackQuery, text string) {
	h.request(tgbotapi.NewCallback(cb.ID, text))
}

func (h *Handler) handleQuizCallback(ctx context.Context, cb *tgbotapi.CallbackQuery, chatID int64, data callbackData) {
	switch data.param(0) {
	case quizStart:
		h.answerCallback(cb, "")
		_ = h.withErrorHandling(h.quizHandler())(ctx, chatID)

	case quizAnswer:
		h.answerCallback(cb, h.selectAnswer(chatID, data))

	case quizNext:
		h.nextQuestion(ctx, cb, chatID, data)

	default:
		h.answerCallback(cb, "")
	}
}

// selectAnswer applies an answer callback and returns the notice to show.
// Callbacks for other plays or questions, and second answers, are ignored.
func (h *Handler) selectAnswer(chatID int64, data callbackData) string {
	ref, err := data.parseQuizRef()
	if err != nil {
		h.logger.Debug("malformed quiz callback", zap.String("data", data.Raw))
		return ""
	}

	play, err := h.quizService.Active(chatID, ref.PlayID)
	if err != nil {
		return msgPlayExpired
	}

	snap := play.Session.Snapshot()
	if snap.Phase != quiz.PhaseSolving || snap.Index != ref.Index {
		return ""
	}

	answer, err := entities.ParseAnswer(snap.Item.Type, data.param(3))
	if err != nil {
		h.logger.Debug("malformed quiz answer", zap.String("data", data.Raw), zap.Error(err))
		return ""
	}

	err = play.Session.SelectAnswer(answer)
	switch {
	case err == nil, errors.Is(err, quiz.ErrInvalidTransition):
		return ""
	case errors.Is(err, quiz.ErrSessionClosed):
		return msgPlayExpired
	default:
		h.logger.Warn("failed to select answer",
			zap.Int64("chat_id", chatID),
			zap.String("play_id", ref.PlayID.String()),
			zap.Error(err),
		)
		return ""
	}
}

// nextQuestion moves past a revealed question. After the last question it
// submits the results and releases the play once the submission succeeds.
func (h *Handler) nextQuestion(ctx context.Context, cb *tgbotapi.CallbackQuery, chatID int64, data callbackData) {
	ref, err := data.parseQuizRef()
	if err != nil {
		h.answerCallback(cb, "")
		return
	}

	play, err := h.quizService.Active(chatID, ref.PlayID)
	if err != nil {
		h.answerCallback(cb, msgPlayExpired)
		return
	}

	snap := play.Session.Snapshot()
	if snap.Index != ref.Index {
		h.answerCallback(cb, "")
		return
	}

	h.answerCallback(cb, "")

	// the final step submits the results, which may take several API attempts
	if snap.IsLast() {
		h.wg.Add(1)
		go func() {
			defer h.wg.Done()
			h.advance(ctx, chatID, play, ref)
		}()
		return
	}

	h.advance(ctx, chatID, play, ref)
}

func (h *Handler) advance(ctx context.Context, chatID int64, play *storage.ActivePlay, ref quizRef) {
	err := play.Session.Next(ctx)
	switch {
	case err == nil:
		if play.Session.Snapshot().Phase == quiz.PhaseEnded {
			h.quizService.Finish(chatID, play.ID)
		}
	case errors.Is(err, quiz.ErrSubmissionFailure),
		errors.Is(err, quiz.ErrInvalidTransition),
		errors.Is(err, quiz.ErrSessionClosed):
	default:
		h.logger.Error("failed to move to the next question",
			zap.Int64("chat_id", chatID),
			zap.String("play_id", ref.PlayID.String()),
			zap.Error(err),
		)
	}
}

func (h *Handler) handlePickCallback(ctx context.Context, chatID int64, messageID int, data callbackData) {
	documentID, err := data.parseDocumentID()
	if err != nil {
		h.logger.Debug("malformed pick callback", zap.String("data", data.Raw))
		return
	}

	switch data.param(0) {
	case pickView:
		_ = h.withErrorHandling(func(ctx context.Context, chatID int64) error {
			return h.showPick(ctx, chatID, documentID)
		})(ctx, chatID)

	case pickGenerate:
		_ = h.withErrorHandling(func(ctx context.Context, chatID int64) error {
			return h.generatePick(ctx, chatID, messageID, documentID)
		})(ctx, chatID)
	}
}

func (h *Handler) handleRepositoryCallback(ctx context.Context, chatID int64, messageID int, data callbackData) {
	_ = h.withErrorHandling(func(ctx context.Context, chatID int64) error {
		categories, err := h.keyPointService.Categories(ctx)
		if err != nil {
			return err
		}

		switch data.param(0) {
		case repositoryCategory:
			id, err := strconv.ParseInt(data.param(1), 10, 64)
			if err != nil {
				return nil
			}
			for _, c := range categories {
				if c.ID == id {
					edit := newEdit(chatID, messageID, formatCategory(c))
					kb := buildCategoryKeyboard(c)
					edit.ReplyMarkup = &kb
					h.send(edit)
					return nil
				}
			}
			return nil

		default:
			edit := newEdit(chatID, messageID, formatCategories(categories))
			edit.ReplyMarkup = buildCategoriesKeyboard(categories)
			h.send(edit)
			return nil
		}
	})(ctx, chatID)
}
