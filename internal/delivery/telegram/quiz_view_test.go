package telegram

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/picktoss-bot/internal/domain/entities"
	"github.com/aliskhannn/picktoss-bot/internal/quiz"
	"github.com/aliskhannn/picktoss-bot/internal/service"
	"github.com/aliskhannn/picktoss-bot/internal/storage"
)

// keyboardData returns the callback data of every button of a message or edit.
func keyboardData(t *testing.T, c tgbotapi.Chattable) []string {
	t.Helper()

	var kb *tgbotapi.InlineKeyboardMarkup
	switch m := c.(type) {
	case tgbotapi.MessageConfig:
		switch k := m.ReplyMarkup.(type) {
		case tgbotapi.InlineKeyboardMarkup:
			kb = &k
		case *tgbotapi.InlineKeyboardMarkup:
			kb = k
		}
	case tgbotapi.EditMessageTextConfig:
		kb = m.ReplyMarkup
	case tgbotapi.EditMessageReplyMarkupConfig:
		kb = m.ReplyMarkup
	}
	require.NotNil(t, kb, "no keyboard on %T", c)

	var data []string
	for _, row := range kb.InlineKeyboard {
		for _, b := range row {
			data = append(data, *b.CallbackData)
		}
	}
	return data
}

// currentPlay returns the live play of the test chat.
func currentPlay(t *testing.T, f *fixture, data string) *storage.ActivePlay {
	t.Helper()

	ref, err := decodeCallback(data).parseQuizRef()
	require.NoError(t, err)

	play, err := f.quiz.Active(testChatID, ref.PlayID)
	require.NoError(t, err)
	return play
}

// countMessages counts the sent messages, edits excluded, that contain text.
func countMessages(f *fixture, text string) int {
	n := 0
	for _, c := range f.sender.Sent() {
		if m, ok := c.(tgbotapi.MessageConfig); ok && strings.Contains(m.Text, text) {
			n++
		}
	}
	return n
}

// lastMessageID is the id the fake sender gave to the last sent chattable.
func lastMessageID(f *fixture) int {
	return len(f.sender.Sent())
}

func TestQuizFlow(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.handler.handleUpdate(ctx, command("/quiz"))
	assert.Contains(t, messageText(t, f.sender.Last()), "2 questions")

	// the intro ends and the first card is sent once
	f.clock.Advance(1500 * time.Millisecond)
	require.Len(t, f.sender.Sent(), 2)
	assert.Equal(t, 1, countMessages(f, md("Question 1 of 2")))
	card1 := f.sender.Last()
	card1ID := lastMessageID(f)
	assert.Contains(t, messageText(t, card1), md("Question 1 of 2"))

	answers := keyboardData(t, card1)
	require.Len(t, answers, 2)
	play := currentPlay(t, f, answers[0])
	assert.Equal(t, quiz.PhaseSolving, play.Session.Snapshot().Phase)

	f.clock.Advance(2 * time.Second)
	f.handler.handleUpdate(ctx, callback(card1ID, answers[1]))

	chosen, ok := f.sender.Last().(tgbotapi.EditMessageReplyMarkupConfig)
	require.True(t, ok)
	assert.Equal(t, card1ID, chosen.MessageID)
	assert.Equal(t, selectedMark+"B", chosen.ReplyMarkup.InlineKeyboard[0][1].Text)

	// a second answer for the same question changes nothing
	sentBefore := len(f.sender.Sent())
	f.handler.handleUpdate(ctx, callback(card1ID, answers[0]))
	assert.Len(t, f.sender.Sent(), sentBefore)

	f.clock.Advance(600 * time.Millisecond)
	revealed := f.sender.Last()
	assert.Contains(t, messageText(t, revealed), md("✅ Correct!"))
	assert.Equal(t, []string{buildQuizNextCallback(play.ID, 0)}, keyboardData(t, revealed))

	f.handler.handleUpdate(ctx, callback(card1ID, buildQuizNextCallback(play.ID, 0)))
	card2 := f.sender.Last()
	card2ID := lastMessageID(f)
	assert.Contains(t, messageText(t, card2), md("Question 2 of 2"))

	// a stale answer for the first question is ignored
	sentBefore = len(f.sender.Sent())
	f.handler.handleUpdate(ctx, callback(card1ID, answers[0]))
	assert.Len(t, f.sender.Sent(), sentBefore)
	assert.Equal(t, quiz.ProgressIdle, play.Session.Snapshot().Progress)

	mixUp := keyboardData(t, card2)
	require.Equal(t, []string{
		buildQuizAnswerCallback(play.ID, 1, "correct"),
		buildQuizAnswerCallback(play.ID, 1, "incorrect"),
	}, mixUp)

	f.clock.Advance(3 * time.Second)
	f.handler.handleUpdate(ctx, callback(card2ID, mixUp[1]))
	f.clock.Advance(600 * time.Millisecond)
	assert.Contains(t, messageText(t, f.sender.Last()), md("❌ Incorrect"))

	f.handler.handleUpdate(ctx, callback(card2ID, buildQuizNextCallback(play.ID, 1)))
	f.handler.wg.Wait()
	assert.Contains(t, messageText(t, f.sender.Last()), md("1/2 (50%)"))

	require.Len(t, f.api.patched, 1)
	assert.Equal(t, []entities.QuestionResult{
		{QuizID: "11", Correct: true, ElapsedMillis: 2000},
		{QuizID: "12", Correct: false, ElapsedMillis: 3000},
	}, f.api.patched[0].Results)

	_, err := f.quiz.Active(testChatID, play.ID)
	assert.ErrorIs(t, err, service.ErrPlayNotFound)

	// callbacks of a finished play get a notice
	f.handler.handleUpdate(ctx, callback(card2ID, buildQuizNextCallback(play.ID, 1)))
	notices := f.sender.callbackNotices()
	assert.Equal(t, msgPlayExpired, notices[len(notices)-1])
}

func TestQuizFlowSubmissionRetry(t *testing.T) {
	f := newFixture()
	f.api.set.Items = f.api.set.Items[:1]
	f.api.patchErrs = []error{errors.New("503 service unavailable")}
	ctx := context.Background()

	f.handler.handleUpdate(ctx, command("/quiz"))
	f.clock.Advance(1500 * time.Millisecond)

	cardID := lastMessageID(f)
	answers := keyboardData(t, f.sender.Last())
	play := currentPlay(t, f, answers[0])

	f.clock.Advance(time.Second)
	f.handler.handleUpdate(ctx, callback(cardID, answers[1]))
	f.clock.Advance(600 * time.Millisecond)
	f.handler.handleUpdate(ctx, callback(cardID, buildQuizNextCallback(play.ID, 0)))
	f.handler.wg.Wait()

	failed := f.sender.Last()
	assert.Equal(t, md(msgSubmitFailed), messageText(t, failed))
	retry := keyboardData(t, failed)
	assert.Equal(t, []string{buildQuizNextCallback(play.ID, 0)}, retry)

	f.handler.handleUpdate(ctx, callback(lastMessageID(f), retry[0]))
	f.handler.wg.Wait()
	assert.Contains(t, messageText(t, f.sender.Last()), md("1/1 (100%)"))

	require.Len(t, f.api.patched, 2)
	assert.Equal(t, f.api.patched[0], f.api.patched[1])
}

func TestQuizCommandNotReady(t *testing.T) {
	f := newFixture()
	score := 90

	f.api.today = &entities.TodayQuiz{Type: entities.TodayQuizNotReady}
	f.handler.handleUpdate(context.Background(), command("/quiz"))
	assert.Equal(t, md(msgQuizNotReady), messageText(t, f.sender.Last()))

	f.api.today = &entities.TodayQuiz{Type: entities.TodayQuizDone, Score: &score}
	f.handler.handleUpdate(context.Background(), command("/quiz"))
	assert.Contains(t, messageText(t, f.sender.Last()), "90%")
}

func TestFinalSubmissionDoesNotBlockUpdates(t *testing.T) {
	f := newFixture()
	f.api.set.Items = f.api.set.Items[:1]
	gate := make(chan struct{})
	f.api.patchGate = gate
	ctx := context.Background()

	f.handler.handleUpdate(ctx, command("/quiz"))
	f.clock.Advance(1500 * time.Millisecond)

	cardID := lastMessageID(f)
	answers := keyboardData(t, f.sender.Last())
	play := currentPlay(t, f, answers[0])

	f.handler.handleUpdate(ctx, callback(cardID, answers[1]))
	f.clock.Advance(600 * time.Millisecond)
	f.handler.handleUpdate(ctx, callback(cardID, buildQuizNextCallback(play.ID, 0)))

	// the submission is still in flight
	f.handler.handleUpdate(ctx, command("/subscribe"))
	assert.Equal(t, md(msgSubscribed), messageText(t, f.sender.Last()))

	close(gate)
	f.handler.wg.Wait()

	assert.Contains(t, messageText(t, f.sender.Last()), md("1/1 (100%)"))
	_, err := f.quiz.Active(testChatID, play.ID)
	assert.ErrorIs(t, err, service.ErrPlayNotFound)
}
