package shopify

import (
	"context"
	"errors"
	"strings"

	"shopify-sync/internal/adapters/shopify/dto"
	"shopify-sync/internal/domain/model"
)

type SnapshotService interface {
	FetchProducts(ctx context.Context) ([]model.RemoteProduct, error)
}

const snapshotPageSize = 100

// FetchProducts pages through the full remote catalog and returns it as one
// snapshot. Any page failure fails the whole fetch: a partial snapshot would
// make downstream detection lie about what changed.
func (c *Client) FetchProducts(ctx context.Context) ([]model.RemoteProduct, error) {
	if c == nil {
		return nil, errors.New("shopify client is nil")
	}

	query := `
	query products($first: Int!, $after: String) {
		products(first: $first, after: $after) {
			nodes {
				id
				title
				descriptionHtml
				vendor
				tags
				totalInventory
				featuredImage { url }
				priceRangeV2 { minVariantPrice { amount currencyCode } }
				variants(first: 100) {
					nodes {
						id
						inventoryQuantity
						selectedOptions { name value }
					}
				}
			}
			pageInfo { hasNextPage endCursor }
		}
	}`

	var (
		products []model.RemoteProduct
		cursor   *string
	)

	for {
		variables := map[string]any{"first": snapshotPageSize}
		if cursor != nil && *cursor != "" {
			variables["after"] = *cursor
		}

		var data dto.ProductsQueryData
		if err := c.graphqlRequestWithRetry(ctx, query, variables, &data); err != nil {
			return nil, err
		}

		for _, sp := range data.Products.Nodes {
			products = append(products, mapRemoteProduct(sp))
		}

		if !data.Products.PageInfo.HasNextPage || data.Products.PageInfo.EndCursor == "" {
			break
		}
		next := data.Products.PageInfo.EndCursor
		cursor = &next
	}

	return products, nil
}

func mapRemoteProduct(sp dto.ShopifyProduct) model.RemoteProduct {
	product := model.RemoteProduct{
		RawID:          strings.TrimSpace(sp.ID),
		Title:          sp.Title,
		Description:    sp.DescriptionHTML,
		Vendor:         sp.Vendor,
		Tags:           sp.Tags,
		TotalInventory: sp.TotalInventory,
	}
	if sp.FeaturedImage != nil {
		product.FeaturedImage = strings.TrimSpace(sp.FeaturedImage.URL)
	}
	if sp.PriceRange != nil {
		product.PriceAmount = sp.PriceRange.MinVariantPrice.Amount
		product.PriceCurrency = sp.PriceRange.MinVariantPrice.CurrencyCode
	}
	for _, sv := range sp.Variants.Nodes {
		variant := model.RemoteVariant{
			RawID: strings.TrimSpace(sv.ID),
		}
		if sv.InventoryQuantity != nil {
			variant.InventoryQuantity = *sv.InventoryQuantity
		}
		for _, so := range sv.SelectedOptions {
			variant.SelectedOptions = append(variant.SelectedOptions, model.SelectedOption{
				Name:  so.Name,
				Value: so.Value,
			})
		}
		product.Variants = append(product.Variants, variant)
	}
	return product
}
