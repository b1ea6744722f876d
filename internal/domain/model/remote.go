package model

// RemoteProduct is one item of the remote catalog snapshot, as fetched, before
// classification. Only the fields the sync core consumes are carried.
type RemoteProduct struct {
	RawID          string
	Title          string
	Description    string
	Vendor         string
	Tags           []string
	TotalInventory *int
	FeaturedImage  string
	PriceAmount    string
	PriceCurrency  string
	Variants       []RemoteVariant
}

type RemoteVariant struct {
	RawID             string
	InventoryQuantity int
	SelectedOptions   []SelectedOption
}

type SelectedOption struct {
	Name  string
	Value string
}

// Inventory is the provided total when the platform reported one, otherwise
// the sum of variant quantities.
func (p RemoteProduct) Inventory() int {
	if p.TotalInventory != nil {
		return *p.TotalInventory
	}
	total := 0
	for _, v := range p.Variants {
		total += v.InventoryQuantity
	}
	return total
}
