package dto

type InventoryItemNode struct {
	ID      string `json:"id,omitempty"`
	Tracked bool   `json:"tracked,omitempty"`
}

type VariantInventoryNode struct {
	ID            string             `json:"id,omitempty"`
	SKU           string             `json:"sku,omitempty"`
	InventoryItem *InventoryItemNode `json:"inventoryItem,omitempty"`
}

type ProductVariantsQueryData struct {
	Product *struct {
		Variants struct {
			Nodes []VariantInventoryNode `json:"nodes,omitempty"`
		} `json:"variants"`
	} `json:"product,omitempty"`
}

type InventorySetOnHandQuantitiesData struct {
	InventorySetOnHandQuantities struct {
		UserErrors []ShopifyUserError `json:"userErrors,omitempty"`
	} `json:"inventorySetOnHandQuantities"`
}
