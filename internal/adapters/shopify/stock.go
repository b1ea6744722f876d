package shopify

import (
	"context"
	"errors"
	"strings"

	"shopify-sync/internal/adapters/shopify/dto"
)

type StockService interface {
	QueryVariants(ctx context.Context, externalID string) ([]VariantIdentifiers, error)
	SetInventoryQuantities(ctx context.Context, sets []InventorySet) error
}

type VariantIdentifiers struct {
	VariantID       string
	InventoryItemID string
}

type InventorySet struct {
	InventoryItemID string
	LocationID      string
	Quantity        int
}

func (c *Client) QueryVariants(ctx context.Context, externalID string) ([]VariantIdentifiers, error) {
	if c == nil {
		return nil, errors.New("shopify client is nil")
	}
	externalID = strings.TrimSpace(externalID)
	if externalID == "" {
		return nil, errors.New("shopify product external id is required")
	}

	query := `
	query productVariants($id: ID!) {
		product(id: $id) {
			variants(first: 100) {
				nodes { id sku inventoryItem { id tracked } }
			}
		}
	}`

	var data dto.ProductVariantsQueryData
	if err := c.graphqlRequest(ctx, query, map[string]any{
		"id": productGid(externalID),
	}, &data); err != nil {
		return nil, err
	}
	if data.Product == nil {
		return nil, nil
	}

	identifiers := make([]VariantIdentifiers, 0, len(data.Product.Variants.Nodes))
	for _, node := range data.Product.Variants.Nodes {
		if node.InventoryItem == nil || strings.TrimSpace(node.InventoryItem.ID) == "" {
			continue
		}
		identifiers = append(identifiers, VariantIdentifiers{
			VariantID:       strings.TrimSpace(node.ID),
			InventoryItemID: strings.TrimSpace(node.InventoryItem.ID),
		})
	}
	return identifiers, nil
}

// SetInventoryQuantities issues one bulk set-quantity mutation. LocationID may
// be left empty on every set; the client fills in the cached primary location.
func (c *Client) SetInventoryQuantities(ctx context.Context, sets []InventorySet) error {
	if c == nil {
		return errors.New("shopify client is nil")
	}
	if len(sets) == 0 {
		return nil
	}

	locationID := ""
	for _, set := range sets {
		if set.LocationID != "" {
			locationID = set.LocationID
			break
		}
	}
	if locationID == "" {
		var err error
		locationID, err = c.primaryLocationID(ctx)
		if err != nil {
			return err
		}
	}

	payload := make([]map[string]any, 0, len(sets))
	for _, set := range sets {
		if set.Quantity < 0 {
			return errors.New("shopify stock quantity must be non-negative")
		}
		location := set.LocationID
		if location == "" {
			location = locationID
		}
		payload = append(payload, map[string]any{
			"inventoryItemId": set.InventoryItemID,
			"locationId":      location,
			"quantity":        set.Quantity,
		})
	}

	query := `
	mutation inventorySetOnHandQuantities($input: InventorySetOnHandQuantitiesInput!) {
		inventorySetOnHandQuantities(input: $input) {
			userErrors { field message }
		}
	}`

	var data dto.InventorySetOnHandQuantitiesData
	if err := c.graphqlRequest(ctx, query, map[string]any{
		"input": map[string]any{
			"reason":        "correction",
			"setQuantities": payload,
		},
	}, &data); err != nil {
		return err
	}
	return userErrorsToError("inventorySetOnHandQuantities", data.InventorySetOnHandQuantities.UserErrors)
}
