package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/aliskhannn/picktoss-bot/internal/domain/entities"
)

// GetCategories lists the categories of the account with their documents.
func (c *Client) GetCategories(ctx context.Context) ([]entities.Category, error) {
	var resp categoriesResponse
	if err := c.do(ctx, http.MethodGet, "/categories", nil, &resp); err != nil {
		return nil, fmt.Errorf("get categories: %w", err)
	}

	categories := make([]entities.Category, 0, len(resp.Categories))
	for _, cat := range resp.Categories {
		docs := make([]entities.DocumentRef, 0, len(cat.Documents))
		for _, d := range cat.Documents {
			docs = append(docs, entities.DocumentRef{ID: d.ID, Name: d.Name, Order: d.Order})
		}
		categories = append(categories, entities.Category{
			ID:        cat.ID,
			Name:      cat.Name,
			Tag:       entities.CategoryTag(cat.Tag),
			Order:     cat.Order,
			Emoji:     cat.Emoji,
			Documents: docs,
		})
	}

	return categories, nil
}
