//go:build integration

package repository_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/picktoss-bot/internal/domain/entities"
	"github.com/aliskhannn/picktoss-bot/internal/infra/postgres"
	"github.com/aliskhannn/picktoss-bot/internal/infra/postgres/repository"
)

// testPool connects to TEST_DATABASE_URL and applies the schema.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL is not set")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, dsn, postgres.PoolConfig{MaxConns: 4})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	schema, err := os.ReadFile(filepath.Join("..", "..", "..", "..", "migrations", "0001_init.sql"))
	require.NoError(t, err)

	for _, stmt := range strings.Split(string(schema), ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		_, err := pool.Exec(ctx, stmt)
		require.NoError(t, err)
	}

	return pool
}

// testChatID returns a chat id no other test run uses.
func testChatID() int64 {
	return time.Now().UnixNano()
}

func TestPlayRepository(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	chatID := testChatID()
	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(), `DELETE FROM quiz_plays WHERE chat_id = $1`, chatID)
	})

	finished := time.Date(2026, 10, 16, 9, 30, 0, 0, time.UTC)
	first := entities.NewPlay(uuid.New(), chatID, entities.Submission{
		QuizSetID: "set-1",
		Results: []entities.QuestionResult{
			{QuizID: "11", Correct: true, ElapsedMillis: 2500},
			{QuizID: "12", Correct: false, ElapsedMillis: 3700},
		},
	}, finished)
	second := entities.NewPlay(uuid.New(), chatID, entities.Submission{
		QuizSetID: "set-2",
		Results:   []entities.QuestionResult{{QuizID: "21", Correct: true, ElapsedMillis: 1800}},
	}, finished.Add(24*time.Hour))

	tr := postgres.NewTransactor(pool)
	for _, p := range []*entities.Play{first, second, first} {
		err := tr.WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
			plays := repository.NewPlayRepository(tx)
			if err := plays.Insert(ctx, p); err != nil {
				return err
			}
			return plays.InsertAnswers(ctx, p)
		})
		require.NoError(t, err)
	}

	var answers int
	require.NoError(t, pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM quiz_play_answers WHERE play_id = $1`, first.ID,
	).Scan(&answers))
	assert.Equal(t, 2, answers)

	plays := repository.NewPlayRepository(pool)

	recent, err := plays.Recent(ctx, chatID, 10)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, second.ID, recent[0].ID)
	assert.Equal(t, "set-2", recent[0].QuizSetID)
	assert.Equal(t, first.ID, recent[1].ID)
	assert.Equal(t, 2, recent[1].Total)
	assert.Equal(t, 1, recent[1].Correct)
	assert.Equal(t, int64(6200), recent[1].ElapsedMillis)
	assert.True(t, finished.Equal(recent[1].FinishedAt))

	stats, err := plays.Stats(ctx, chatID)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Plays)
	assert.Equal(t, 3, stats.Questions)
	assert.Equal(t, 2, stats.Correct)
	assert.Equal(t, int64(8000/3), stats.AvgElapsedMillis)
	require.NotNil(t, stats.LastFinishedAt)
	assert.True(t, second.FinishedAt.Equal(*stats.LastFinishedAt))

	empty, err := plays.Stats(ctx, testChatID())
	require.NoError(t, err)
	assert.Zero(t, empty.Plays)
	assert.Nil(t, empty.LastFinishedAt)
}

func TestSubscriptionRepository(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	ids := []int64{testChatID(), testChatID() + 1}
	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(), `DELETE FROM chat_subscriptions WHERE chat_id = ANY($1)`, ids)
	})

	subs := repository.NewSubscriptionRepository(pool)

	for _, id := range ids {
		created, err := subs.Subscribe(ctx, id)
		require.NoError(t, err)
		assert.True(t, created)
	}

	created, err := subs.Subscribe(ctx, ids[0])
	require.NoError(t, err)
	assert.False(t, created)

	ok, err := subs.IsSubscribed(ctx, ids[1])
	require.NoError(t, err)
	assert.True(t, ok)

	var listed []int64
	for offset := 0; ; offset += 2 {
		batch, err := subs.ListChatIDsBatch(ctx, 2, offset)
		require.NoError(t, err)
		if len(batch) == 0 {
			break
		}
		listed = append(listed, batch...)
	}
	assert.Subset(t, listed, ids)

	removed, err := subs.Unsubscribe(ctx, ids[1])
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = subs.Unsubscribe(ctx, ids[1])
	require.NoError(t, err)
	assert.False(t, removed)

	ok, err = subs.IsSubscribed(ctx, ids[1])
	require.NoError(t, err)
	assert.False(t, ok)
}
