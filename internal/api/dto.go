package api

import (
	"fmt"
	"strconv"
	"time"

	"github.com/aliskhannn/picktoss-bot/internal/domain/entities"
)

type refDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type quizDTO struct {
	ID          int64    `json:"id"`
	QuizType    string   `json:"quizType"`
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	Answer      string   `json:"answer"`
	Explanation string   `json:"explanation"`
	Category    refDTO   `json:"category"`
	Document    refDTO   `json:"document"`
}

func (d quizDTO) toEntity() entities.QuizItem {
	return entities.QuizItem{
		ID:           strconv.FormatInt(d.ID, 10),
		Type:         entities.QuizType(d.QuizType),
		Question:     d.Question,
		Options:      d.Options,
		Answer:       d.Answer,
		Explanation:  d.Explanation,
		CategoryName: d.Category.Name,
		DocumentName: d.Document.Name,
	}
}

type quizSetResponse struct {
	QuizSetID string    `json:"quizSetId"`
	Quizzes   []quizDTO `json:"quizzes"`
	CreatedAt time.Time `json:"createdAt"`
}

type todayQuizResponse struct {
	Type      string    `json:"type"`
	QuizSetID string    `json:"quizSetId"`
	Score     *int      `json:"score"`
	CreatedAt time.Time `json:"createdAt"`
}

type quizResultDTO struct {
	ID          int64 `json:"id"`
	Answer      bool  `json:"answer"`
	ElapsedTime int64 `json:"elapsedTime"`
}

type quizResultRequest struct {
	QuizSetID string          `json:"quizSetId"`
	Quizzes   []quizResultDTO `json:"quizzes"`
}

func newQuizResultRequest(s entities.Submission) (quizResultRequest, error) {
	req := quizResultRequest{
		QuizSetID: s.QuizSetID,
		Quizzes:   make([]quizResultDTO, 0, len(s.Results)),
	}

	for _, r := range s.Results {
		id, err := strconv.ParseInt(r.QuizID, 10, 64)
		if err != nil {
			return quizResultRequest{}, fmt.Errorf("quiz id %q: %w", r.QuizID, err)
		}
		req.Quizzes = append(req.Quizzes, quizResultDTO{
			ID:          id,
			Answer:      r.Correct,
			ElapsedTime: r.ElapsedMillis,
		})
	}

	return req, nil
}

type documentRefDTO struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Order int    `json:"order"`
}

type categoryDTO struct {
	ID        int64            `json:"id"`
	Name      string           `json:"name"`
	Tag       string           `json:"tag"`
	Order     int              `json:"order"`
	Emoji     string           `json:"emoji"`
	Documents []documentRefDTO `json:"documents"`
}

type categoriesResponse struct {
	Categories []categoryDTO `json:"categories"`
}

type keyPointDTO struct {
	ID       int64  `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Bookmark bool   `json:"bookmark"`
}

type keyPointsResponse struct {
	DocumentStatus string        `json:"documentStatus"`
	KeyPoints      []keyPointDTO `json:"keyPoints"`
}
