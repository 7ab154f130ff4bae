package telegram

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/aliskhannn/picktoss-bot/internal/api"
)

type HandlerFunc func(ctx context.Context, chatID int64) error

func (h *Handler) withErrorHandling(fn HandlerFunc) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if err := fn(ctx, chatID); err != nil {
			h.logger.Error("handle error",
				zap.Int64("chat_id", chatID),
				zap.Error(err),
			)

			text := msgInternalError
			var statusErr *api.StatusError
			if errors.As(err, &statusErr) && !statusErr.Retryable() {
				text = msgRemoteRejected
			}
			h.sendError(chatID, text)
			return nil
		}
		return nil
	}
}
