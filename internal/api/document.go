package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/aliskhannn/picktoss-bot/internal/domain/entities"
)

func documentPath(id int64, suffix string) string {
	return "/documents/" + strconv.FormatInt(id, 10) + suffix
}

// GetKeyPoints returns the AI picks of a document together with its status.
func (c *Client) GetKeyPoints(ctx context.Context, documentID int64) (*entities.KeyPoints, error) {
	var resp keyPointsResponse
	if err := c.do(ctx, http.MethodGet, documentPath(documentID, "/key-point"), nil, &resp); err != nil {
		return nil, fmt.Errorf("get key points of document %d: %w", documentID, err)
	}

	kp := &entities.KeyPoints{
		DocumentID: documentID,
		Status:     entities.DocumentStatus(resp.DocumentStatus),
		Items:      make([]entities.KeyPoint, 0, len(resp.KeyPoints)),
	}
	for _, p := range resp.KeyPoints {
		kp.Items = append(kp.Items, entities.KeyPoint{
			ID:       p.ID,
			Question: p.Question,
			Answer:   p.Answer,
			Bookmark: p.Bookmark,
		})
	}

	return kp, nil
}

// CreateAIPick starts AI pick generation for a document.
func (c *Client) CreateAIPick(ctx context.Context, documentID int64) error {
	if err := c.do(ctx, http.MethodPost, documentPath(documentID, "/ai-pick"), nil, nil); err != nil {
		return fmt.Errorf("create ai pick for document %d: %w", documentID, err)
	}
	return nil
}
