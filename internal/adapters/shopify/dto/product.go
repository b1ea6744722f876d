package dto

type ShopifyProduct struct {
	ID              string `json:"id,omitempty"`
	Title           string `json:"title,omitempty"`
	DescriptionHTML string `json:"descriptionHtml,omitempty"`
	Vendor          string `json:"vendor,omitempty"`
	Status          string `json:"status,omitempty"`

	Tags           []string `json:"tags,omitempty"`
	TotalInventory *int     `json:"totalInventory,omitempty"`

	FeaturedImage *ShopifyImage            `json:"featuredImage,omitempty"`
	PriceRange    *ShopifyPriceRange       `json:"priceRangeV2,omitempty"`
	Variants      ShopifyVariantConnection `json:"variants,omitempty"`
}

type ShopifyImage struct {
	URL     string `json:"url,omitempty"`
	AltText string `json:"altText,omitempty"`
}

type ShopifyPriceRange struct {
	MinVariantPrice ShopifyMoney `json:"minVariantPrice"`
}

type ShopifyMoney struct {
	Amount       string `json:"amount,omitempty"`
	CurrencyCode string `json:"currencyCode,omitempty"`
}

type ShopifyVariantConnection struct {
	Nodes []ShopifyVariant `json:"nodes,omitempty"`
}

type ShopifyVariant struct {
	ID                string                  `json:"id,omitempty"`
	Title             string                  `json:"title,omitempty"`
	SKU               string                  `json:"sku,omitempty"`
	InventoryQuantity *int                    `json:"inventoryQuantity,omitempty"`
	SelectedOptions   []ShopifySelectedOption `json:"selectedOptions,omitempty"`
}

type ShopifySelectedOption struct {
	Name  string `json:"name,omitempty"`
	Value string `json:"value,omitempty"`
}

type ShopifyProductConnection struct {
	Nodes    []ShopifyProduct `json:"nodes,omitempty"`
	PageInfo ShopifyPageInfo  `json:"pageInfo,omitempty"`
}

type ProductsQueryData struct {
	Products ShopifyProductConnection `json:"products"`
}

type ProductUpdateData struct {
	ProductUpdate struct {
		Product    *ShopifyProduct    `json:"product"`
		UserErrors []ShopifyUserError `json:"userErrors,omitempty"`
	} `json:"productUpdate"`
}
