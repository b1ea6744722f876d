package dto

type Product struct {
	ExternalID        string `json:"external_id"`
	Title             string `json:"title"`
	Description       string `json:"description,omitempty"`
	ImageURL          string `json:"image_url,omitempty"`
	Condition         string `json:"condition"`
	Brand             string `json:"brand"`
	Size              string `json:"size"`
	Price             string `json:"price"`
	InventoryQuantity int    `json:"inventory_quantity"`
}

type BulkRequest struct {
	MerchantKey string    `json:"merchant_key"`
	Products    []Product `json:"products"`
}

type BulkResponse struct {
	Status   string `json:"status"`
	Accepted int    `json:"accepted"`
}
