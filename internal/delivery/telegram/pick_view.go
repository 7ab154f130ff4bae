package telegram

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/aliskhannn/picktoss-bot/internal/domain/entities"
)

// showPick sends the AI picks of a document and follows the generation
// while the document is processing.
func (h *Handler) showPick(ctx context.Context, chatID int64, documentID int64) error {
	kp, err := h.keyPointService.Get(ctx, documentID)
	if err != nil {
		return err
	}

	msg := newMarkdownMessage(chatID, formatKeyPoints(kp))
	if kb := buildPickKeyboard(kp); kb != nil {
		msg.ReplyMarkup = kb
	}

	sent, ok := h.send(msg)
	if ok && kp.Status == entities.DocumentProcessing {
		h.watchPick(ctx, chatID, sent.MessageID, documentID)
	}

	return nil
}

// generatePick requests AI picks and turns the message into a live status view.
func (h *Handler) generatePick(ctx context.Context, chatID int64, messageID int, documentID int64) error {
	kp, err := h.keyPointService.CreatePick(ctx, documentID)
	if err != nil {
		return err
	}

	h.send(newEdit(chatID, messageID, formatKeyPoints(kp)))
	h.watchPick(ctx, chatID, messageID, documentID)
	return nil
}

// watchPick polls the document in the background, edits the message after
// every check and once more with the final status. A new watch in the same
// chat cancels the previous one.
func (h *Handler) watchPick(ctx context.Context, chatID int64, messageID int, documentID int64) {
	ctx, cancel := context.WithCancel(ctx)
	release := h.watches.Replace(chatID, cancel)

	h.wg.Add(1)
	go func() {
		defer h.wg.Done()
		defer release()

		checks := 0
		kp, err := h.keyPointService.Watch(ctx, documentID, func(kp *entities.KeyPoints) {
			if kp.Status.IsTerminal() {
				return
			}
			checks++
			h.send(newEdit(chatID, messageID, formatPickProgress(kp, checks)))
		})

		switch {
		case err == nil:
			edit := newEdit(chatID, messageID, formatKeyPoints(kp))
			edit.ReplyMarkup = buildPickKeyboard(kp)
			h.send(edit)

		case errors.Is(err, context.DeadlineExceeded):
			h.send(newEdit(chatID, messageID, formatKeyPoints(&entities.KeyPoints{
				DocumentID: documentID,
				Status:     entities.DocumentProcessing,
			})+"\n\n"+md(msgPickTimedOut)))

		case errors.Is(err, context.Canceled):

		default:
			h.logger.Error("ai pick watch failed",
				zap.Int64("chat_id", chatID),
				zap.Int64("document_id", documentID),
				zap.Error(err),
			)
		}
	}()
}
