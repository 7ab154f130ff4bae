package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aliskhannn/picktoss-bot/internal/clock"
	"github.com/aliskhannn/picktoss-bot/internal/domain/entities"
	"github.com/aliskhannn/picktoss-bot/internal/quiz"
	"github.com/aliskhannn/picktoss-bot/internal/storage"
)

var (
	ErrTodayQuizNotReady = errors.New("today's quiz is not ready")
	ErrTodayQuizDone     = errors.New("today's quiz is already solved")
	ErrPlayNotFound      = errors.New("quiz play not found")
)

// SessionConfig holds the timings of a quiz session.
type SessionConfig struct {
	IntroDuration  time.Duration
	RevealDelay    time.Duration
	TickResolution time.Duration
}

// ListenerFactory builds the view of a play before its session is created.
type ListenerFactory func(playID uuid.UUID, set *entities.QuizSet) quiz.Listener

// QuizService starts quiz sessions and keeps them per chat.
type QuizService struct {
	api     QuizAPI
	journal PlayRecorder
	plays   *storage.QuizStorage
	clock   clock.Clock
	cfg     SessionConfig
	logger  *zap.Logger
}

func NewQuizService(
	api QuizAPI,
	journal PlayRecorder,
	plays *storage.QuizStorage,
	clk clock.Clock,
	cfg SessionConfig,
	logger *zap.Logger,
) *QuizService {
	return &QuizService{
		api:     api,
		journal: journal,
		plays:   plays,
		clock:   clk,
		cfg:     cfg,
		logger:  logger,
	}
}

// StartToday starts today's quiz set in the chat. It returns the banner state
// together with ErrTodayQuizNotReady or ErrTodayQuizDone when there is nothing to play.
func (s *QuizService) StartToday(
	ctx context.Context, chatID int64, newListener ListenerFactory,
) (*entities.TodayQuiz, *storage.ActivePlay, error) {
	today, err := s.api.GetTodayQuizSet(ctx)
	if err != nil {
		return nil, nil, err
	}

	switch today.Type {
	case entities.TodayQuizReady:
	case entities.TodayQuizDone:
		return today, nil, ErrTodayQuizDone
	default:
		return today, nil, ErrTodayQuizNotReady
	}

	play, err := s.Start(ctx, chatID, today.QuizSetID, newListener)
	if err != nil {
		return today, nil, err
	}

	return today, play, nil
}

// Start fetches the quiz set, registers a new session for the chat and starts
// its intro. A previous session of the chat is closed.
func (s *QuizService) Start(
	ctx context.Context, chatID int64, quizSetID string, newListener ListenerFactory,
) (*storage.ActivePlay, error) {
	set, err := s.api.GetQuizSet(ctx, quizSetID)
	if err != nil {
		return nil, err
	}

	playID := uuid.New()

	opts := []quiz.Option{
		quiz.WithClock(s.clock),
		quiz.WithListener(newListener(playID, set)),
	}
	if s.cfg.IntroDuration > 0 {
		opts = append(opts, quiz.WithIntroDuration(s.cfg.IntroDuration))
	}
	if s.cfg.RevealDelay > 0 {
		opts = append(opts, quiz.WithRevealDelay(s.cfg.RevealDelay))
	}
	if s.cfg.TickResolution > 0 {
		opts = append(opts, quiz.WithTickResolution(s.cfg.TickResolution))
	}

	session, err := quiz.New(set.ID, set.Items, s.submitter(chatID, playID), opts...)
	if err != nil {
		return nil, fmt.Errorf("new quiz session %s: %w", set.ID, err)
	}

	play := &storage.ActivePlay{
		ID:        playID,
		ChatID:    chatID,
		QuizSetID: set.ID,
		Session:   session,
	}
	s.plays.Store(play)

	if err := session.Start(); err != nil {
		s.plays.Delete(chatID, playID)
		return nil, fmt.Errorf("start quiz session: %w", err)
	}

	s.logger.Info("quiz started",
		zap.Int64("chat_id", chatID),
		zap.String("play_id", playID.String()),
		zap.String("quiz_set_id", set.ID),
		zap.Int("questions", len(set.Items)),
	)

	return play, nil
}

// submitter patches the remote result, then journals the play.
// Journal failures are logged and do not fail the submission.
func (s *QuizService) submitter(chatID int64, playID uuid.UUID) quiz.Submitter {
	return quiz.SubmitFunc(func(ctx context.Context, sub entities.Submission) error {
		if err := s.api.PatchQuizResult(ctx, sub); err != nil {
			s.logger.Warn("quiz result submission failed",
				zap.Int64("chat_id", chatID),
				zap.String("play_id", playID.String()),
				zap.Error(err),
			)
			return err
		}

		play := entities.NewPlay(playID, chatID, sub, s.clock.Now())
		if err := s.journal.Record(ctx, play); err != nil {
			s.logger.Error("failed to journal quiz play",
				zap.Int64("chat_id", chatID),
				zap.String("play_id", playID.String()),
				zap.Error(err),
			)
		}

		return nil
	})
}

// Active returns the chat's live play when its id matches.
func (s *QuizService) Active(chatID int64, playID uuid.UUID) (*storage.ActivePlay, error) {
	play, ok := s.plays.Get(chatID)
	if !ok || play.ID != playID {
		return nil, ErrPlayNotFound
	}
	return play, nil
}

// Finish closes and unregisters the play. It must not be called from a session listener.
func (s *QuizService) Finish(chatID int64, playID uuid.UUID) bool {
	return s.plays.Delete(chatID, playID)
}

// Shutdown closes every live session.
func (s *QuizService) Shutdown() {
	s.plays.CloseAll()
}
