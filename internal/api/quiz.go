package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/aliskhannn/picktoss-bot/internal/domain/entities"
)

var ErrEmptyQuizSetID = errors.New("quiz set id is empty")

// GetTodayQuizSet returns the state of today's quiz set.
func (c *Client) GetTodayQuizSet(ctx context.Context) (*entities.TodayQuiz, error) {
	var resp todayQuizResponse
	if err := c.do(ctx, http.MethodGet, "/quiz-sets/today", nil, &resp); err != nil {
		return nil, fmt.Errorf("get today quiz set: %w", err)
	}

	return &entities.TodayQuiz{
		Type:      entities.TodayQuizType(resp.Type),
		QuizSetID: resp.QuizSetID,
		Score:     resp.Score,
		Date:      resp.CreatedAt,
	}, nil
}

// GetQuizSet returns the quiz set with the given id.
func (c *Client) GetQuizSet(ctx context.Context, id string) (*entities.QuizSet, error) {
	if id == "" {
		return nil, ErrEmptyQuizSetID
	}

	var resp quizSetResponse
	if err := c.do(ctx, http.MethodGet, "/quiz-sets/"+url.PathEscape(id), nil, &resp); err != nil {
		return nil, fmt.Errorf("get quiz set %s: %w", id, err)
	}

	set := &entities.QuizSet{
		ID:        resp.QuizSetID,
		Items:     make([]entities.QuizItem, 0, len(resp.Quizzes)),
		CreatedAt: resp.CreatedAt,
	}
	if set.ID == "" {
		set.ID = id
	}
	for _, q := range resp.Quizzes {
		set.Items = append(set.Items, q.toEntity())
	}

	return set, nil
}

// PatchQuizResult sends the per-question results of a finished quiz set.
func (c *Client) PatchQuizResult(ctx context.Context, s entities.Submission) error {
	if s.QuizSetID == "" {
		return ErrEmptyQuizSetID
	}

	req, err := newQuizResultRequest(s)
	if err != nil {
		return fmt.Errorf("build quiz result: %w", err)
	}

	if err := c.do(ctx, http.MethodPatch, "/quiz/result", req, nil); err != nil {
		return fmt.Errorf("submit quiz result: %w", err)
	}

	return nil
}
