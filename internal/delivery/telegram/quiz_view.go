package telegram

import (
	"errors"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aliskhannn/picktoss-bot/internal/quiz"
)

// quizView renders one play into its chat. One question card is sent per
// question and edited as the question is answered and revealed.
type quizView struct {
	h      *Handler
	chatID int64
	playID uuid.UUID

	mu     sync.Mutex
	cardID int
}

func (v *quizView) card() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.cardID
}

func (v *quizView) setCard(id int) {
	v.mu.Lock()
	v.cardID = id
	v.mu.Unlock()
}

// OnSolving is followed by OnQuestion for the first question, which sends its card.
func (v *quizView) OnSolving(quiz.Snapshot) {}

func (v *quizView) OnQuestion(s quiz.Snapshot) {
	v.presentQuestion(s)
}

// presentQuestion sends the question card and starts its timer once the
// options are on screen.
func (v *quizView) presentQuestion(s quiz.Snapshot) {
	msg := newMarkdownMessage(v.chatID, formatQuestion(s))
	msg.ReplyMarkup = buildAnswerKeyboard(v.playID, s)

	sent, ok := v.h.send(msg)
	if !ok {
		return
	}
	v.setCard(sent.MessageID)

	play, err := v.h.quizService.Active(v.chatID, v.playID)
	if err != nil {
		return
	}
	if err := play.Session.Presented(s.Index); err != nil && !errors.Is(err, quiz.ErrSessionClosed) {
		v.h.logger.Debug("question presented out of order",
			zap.Int64("chat_id", v.chatID),
			zap.Int("index", s.Index),
			zap.Error(err),
		)
	}
}

func (v *quizView) OnChosen(s quiz.Snapshot) {
	edit := tgbotapi.NewEditMessageReplyMarkup(v.chatID, v.card(), buildAnswerKeyboard(v.playID, s))
	v.h.send(edit)
}

func (v *quizView) OnRevealed(s quiz.Snapshot) {
	edit := newEdit(v.chatID, v.card(), formatRevealed(s))
	kb := buildNextKeyboard(v.playID, s)
	edit.ReplyMarkup = &kb
	v.h.send(edit)
}

func (v *quizView) OnEnded(s quiz.Snapshot) {
	msg := newMarkdownMessage(v.chatID, formatResult(s))
	msg.ReplyMarkup = buildQuizResultKeyboard()
	v.h.send(msg)
}

func (v *quizView) OnSubmissionFailed(s quiz.Snapshot, err error) {
	v.h.logger.Warn("quiz submission failed",
		zap.Int64("chat_id", v.chatID),
		zap.String("play_id", v.playID.String()),
		zap.Error(err),
	)

	msg := newMessage(v.chatID, msgSubmitFailed)
	msg.ReplyMarkup = buildRetryKeyboard(v.playID, s.Index)
	v.h.send(msg)
}
