package shopify

import (
	"context"
	"errors"
	"strings"

	"shopify-sync/internal/adapters/shopify/dto"
)

type TitleService interface {
	UpdateTitle(ctx context.Context, externalID string, newTitle string) error
}

func (c *Client) UpdateTitle(ctx context.Context, externalID string, newTitle string) error {
	if c == nil {
		return errors.New("shopify client is nil")
	}
	externalID = strings.TrimSpace(externalID)
	if externalID == "" {
		return errors.New("shopify product external id is required")
	}
	newTitle = strings.TrimSpace(newTitle)
	if newTitle == "" {
		return errors.New("shopify product title is required")
	}

	query := `
	mutation productUpdate($input: ProductInput!) {
		productUpdate(input: $input) {
			product { id title }
			userErrors { field message }
		}
	}`

	var data dto.ProductUpdateData
	err := c.graphqlRequest(ctx, query, map[string]any{
		"input": map[string]any{
			"id":    productGid(externalID),
			"title": newTitle,
		},
	}, &data)
	if err != nil {
		return err
	}
	return userErrorsToError("productUpdate", data.ProductUpdate.UserErrors)
}
