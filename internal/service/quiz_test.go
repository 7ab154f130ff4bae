package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aliskhannn/picktoss-bot/internal/clock"
	"github.com/aliskhannn/picktoss-bot/internal/domain/entities"
	"github.com/aliskhannn/picktoss-bot/internal/quiz"
	"github.com/aliskhannn/picktoss-bot/internal/storage"
)

const (
	introDuration = 1500 * time.Millisecond
	revealDelay   = 600 * time.Millisecond
)

func testQuizSet() *entities.QuizSet {
	return &entities.QuizSet{
		ID: "set-1",
		Items: []entities.QuizItem{
			{ID: "11", Type: entities.QuizTypeMultipleChoice, Question: "2+2?", Options: []string{"3", "4"}, Answer: "4"},
			{ID: "12", Type: entities.QuizTypeMixUp, Question: "Go has generics", Answer: "correct"},
		},
	}
}

func newQuizService(api *fakeQuizAPI, journal *fakeJournal, clk clock.Clock) *QuizService {
	return NewQuizService(api, journal, storage.NewQuizStorage(), clk, SessionConfig{
		IntroDuration: introDuration,
		RevealDelay:   revealDelay,
	}, zap.NewNop())
}

func nopListener(uuid.UUID, *entities.QuizSet) quiz.Listener {
	return quiz.NopListener{}
}

// answer selects, reveals and advances the current question.
func answer(t *testing.T, c *clock.Fake, s *quiz.Session, a entities.Answer, think time.Duration) error {
	t.Helper()

	require.NoError(t, s.Presented(s.Snapshot().Index))
	c.Advance(think)
	require.NoError(t, s.SelectAnswer(a))
	c.Advance(revealDelay)
	return s.Next(context.Background())
}

func TestQuizServiceStartToday(t *testing.T) {
	t.Run("plays and journals today's quiz", func(t *testing.T) {
		c := clock.NewFake(time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC))
		api := &fakeQuizAPI{
			today: &entities.TodayQuiz{Type: entities.TodayQuizReady, QuizSetID: "set-1"},
			sets:  map[string]*entities.QuizSet{"set-1": testQuizSet()},
		}
		journal := &fakeJournal{}
		svc := newQuizService(api, journal, c)

		var gotPlayID uuid.UUID
		today, play, err := svc.StartToday(context.Background(), 42, func(id uuid.UUID, set *entities.QuizSet) quiz.Listener {
			gotPlayID = id
			assert.Equal(t, "set-1", set.ID)
			return quiz.NopListener{}
		})
		require.NoError(t, err)
		assert.Equal(t, entities.TodayQuizReady, today.Type)
		assert.Equal(t, gotPlayID, play.ID)

		active, err := svc.Active(42, play.ID)
		require.NoError(t, err)
		assert.Same(t, play, active)

		c.Advance(introDuration)
		assert.Equal(t, quiz.PhaseSolving, play.Session.Snapshot().Phase)

		require.NoError(t, answer(t, c, play.Session, entities.ChoiceAnswer(1), 2*time.Second))
		require.NoError(t, answer(t, c, play.Session, entities.MixUpAnswer(entities.VerdictIncorrect), 3*time.Second))

		assert.Equal(t, quiz.PhaseEnded, play.Session.Snapshot().Phase)

		want := []entities.QuestionResult{
			{QuizID: "11", Correct: true, ElapsedMillis: 2000},
			{QuizID: "12", Correct: false, ElapsedMillis: 3000},
		}
		require.Len(t, api.Patched(), 1)
		assert.Equal(t, entities.Submission{QuizSetID: "set-1", Results: want}, api.Patched()[0])

		require.Len(t, journal.plays, 1)
		p := journal.plays[0]
		assert.Equal(t, play.ID, p.ID)
		assert.Equal(t, int64(42), p.ChatID)
		assert.Equal(t, 2, p.Total)
		assert.Equal(t, 1, p.Correct)
		assert.Equal(t, int64(5000), p.ElapsedMillis)
		assert.Equal(t, want, p.Answers)

		assert.True(t, svc.Finish(42, play.ID))
		_, err = svc.Active(42, play.ID)
		assert.ErrorIs(t, err, ErrPlayNotFound)
	})

	t.Run("not ready and done", func(t *testing.T) {
		c := clock.NewFake(time.Now())
		score := 80

		api := &fakeQuizAPI{today: &entities.TodayQuiz{Type: entities.TodayQuizNotReady}}
		_, _, err := newQuizService(api, &fakeJournal{}, c).StartToday(context.Background(), 1, nopListener)
		assert.ErrorIs(t, err, ErrTodayQuizNotReady)

		api = &fakeQuizAPI{today: &entities.TodayQuiz{Type: entities.TodayQuizDone, Score: &score}}
		today, play, err := newQuizService(api, &fakeJournal{}, c).StartToday(context.Background(), 1, nopListener)
		assert.ErrorIs(t, err, ErrTodayQuizDone)
		assert.Nil(t, play)
		assert.Equal(t, 80, *today.Score)
	})
}

func TestQuizServiceSubmission(t *testing.T) {
	t.Run("failed submission is not journaled and can be retried", func(t *testing.T) {
		c := clock.NewFake(time.Now())
		api := &fakeQuizAPI{
			sets:      map[string]*entities.QuizSet{"set-1": testQuizSet()},
			patchErrs: []error{errors.New("503 service unavailable")},
		}
		journal := &fakeJournal{}
		svc := newQuizService(api, journal, c)

		play, err := svc.Start(context.Background(), 7, "set-1", nopListener)
		require.NoError(t, err)
		c.Advance(introDuration)

		require.NoError(t, answer(t, c, play.Session, entities.ChoiceAnswer(0), time.Second))
		err = answer(t, c, play.Session, entities.MixUpAnswer(entities.VerdictCorrect), time.Second)

		var subErr *quiz.SubmissionError
		require.ErrorAs(t, err, &subErr)
		assert.Empty(t, journal.plays)

		require.NoError(t, play.Session.Next(context.Background()))
		assert.Len(t, journal.plays, 1)

		patched := api.Patched()
		require.Len(t, patched, 2)
		assert.Equal(t, patched[0], patched[1])
	})

	t.Run("journal failure does not fail the submission", func(t *testing.T) {
		c := clock.NewFake(time.Now())
		api := &fakeQuizAPI{sets: map[string]*entities.QuizSet{"set-1": testQuizSet()}}
		svc := newQuizService(api, &fakeJournal{err: errors.New("connection refused")}, c)

		play, err := svc.Start(context.Background(), 7, "set-1", nopListener)
		require.NoError(t, err)
		c.Advance(introDuration)

		require.NoError(t, answer(t, c, play.Session, entities.ChoiceAnswer(0), time.Second))
		require.NoError(t, answer(t, c, play.Session, entities.MixUpAnswer(entities.VerdictCorrect), time.Second))
		assert.Equal(t, quiz.PhaseEnded, play.Session.Snapshot().Phase)
	})
}

func TestQuizServiceStartReplacesPreviousPlay(t *testing.T) {
	c := clock.NewFake(time.Now())
	api := &fakeQuizAPI{sets: map[string]*entities.QuizSet{"set-1": testQuizSet()}}
	svc := newQuizService(api, &fakeJournal{}, c)

	first, err := svc.Start(context.Background(), 7, "set-1", nopListener)
	require.NoError(t, err)
	second, err := svc.Start(context.Background(), 7, "set-1", nopListener)
	require.NoError(t, err)

	_, err = svc.Active(7, first.ID)
	assert.ErrorIs(t, err, ErrPlayNotFound)
	assert.ErrorIs(t, first.Session.Presented(0), quiz.ErrSessionClosed)

	assert.False(t, svc.Finish(7, first.ID))
	svc.Shutdown()
	assert.ErrorIs(t, second.Session.Presented(0), quiz.ErrSessionClosed)
}

func TestQuizServiceRejectsMalformedSet(t *testing.T) {
	set := testQuizSet()
	set.Items[0].Answer = "5"
	api := &fakeQuizAPI{sets: map[string]*entities.QuizSet{"set-1": set}}

	_, err := newQuizService(api, &fakeJournal{}, clock.NewFake(time.Now())).
		Start(context.Background(), 7, "set-1", nopListener)
	assert.ErrorIs(t, err, quiz.ErrInvalidQuizItem)
}
