package service

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/picktoss-bot/internal/domain/entities"
	"github.com/aliskhannn/picktoss-bot/internal/infra/postgres/repository"
)

const maxRecentPlays = 20

// HistoryService journals submitted plays and reads them back.
type HistoryService struct {
	tr    Transactor
	plays PlayReader
}

func NewHistoryService(tr Transactor, plays PlayReader) *HistoryService {
	return &HistoryService{
		tr:    tr,
		plays: plays,
	}
}

// Record saves the play and its answers in one transaction.
func (s *HistoryService) Record(ctx context.Context, p *entities.Play) error {
	return s.tr.WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		playRepo := repository.NewPlayRepository(tx)

		if err := playRepo.Insert(ctx, p); err != nil {
			return err
		}
		return playRepo.InsertAnswers(ctx, p)
	})
}

// Recent returns up to limit latest plays of the chat.
func (s *HistoryService) Recent(ctx context.Context, chatID int64, limit int) ([]*entities.Play, error) {
	if limit <= 0 || limit > maxRecentPlays {
		limit = maxRecentPlays
	}
	return s.plays.Recent(ctx, chatID, limit)
}

func (s *HistoryService) Stats(ctx context.Context, chatID int64) (*entities.PlayStats, error) {
	return s.plays.Stats(ctx, chatID)
}
