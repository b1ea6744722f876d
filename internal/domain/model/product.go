package model

import (
	"strings"
	"time"
)

type ProductRecord struct {
	MerchantKey       string
	ExternalID        string
	Title             string
	Description       string
	ImageURL          string
	Condition         string
	Brand             string
	Size              string
	Price             string
	InventoryQuantity int
	Version           int64
	UpdatedAt         time.Time
}

// NormalizeExternalID strips a path-style remote gid ("gid://shopify/Product/123")
// down to its trailing segment. Ids without a separator pass through unchanged.
func NormalizeExternalID(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if idx := strings.LastIndex(raw, "/"); idx >= 0 {
		return raw[idx+1:]
	}
	return raw
}
