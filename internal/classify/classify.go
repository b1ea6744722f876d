package classify

import (
	"regexp"
	"strings"

	"shopify-sync/internal/domain/model"
)

// Service derives normalized merchandising fields from a raw remote product.
// Stateless and deterministic; the reconciliation engine runs it on every
// fetched item before comparison.
type Service interface {
	Classify(product model.RemoteProduct) NormalizedFields
}

type NormalizedFields struct {
	Brand     string
	Size      string
	Condition string
	Price     string
	ImageURL  string
	Inventory int
}

type heuristics struct{}

func NewService() Service {
	return heuristics{}
}

var knownBrands = []string{
	"Nike", "Adidas", "Puma", "Reebok", "New Balance", "Converse", "Vans",
	"Levi's", "Wrangler", "Carhartt", "Dickies", "Patagonia", "The North Face",
	"Columbia", "Ralph Lauren", "Tommy Hilfiger", "Lacoste", "Gucci", "Prada",
	"Burberry", "Supreme", "Stussy", "Champion", "Fila", "Zara", "H&M", "Uniqlo",
}

var (
	letterSizeRe  = regexp.MustCompile(`(?i)\b(XXS|XS|S|M|L|XL|XXL|XXXL|2XL|3XL)\b`)
	numericSizeRe = regexp.MustCompile(`(?i)\b(?:size|sz\.?|eu|uk|us|w)\s*(\d{1,2}(?:\.\d)?)\b`)
)

func (heuristics) Classify(product model.RemoteProduct) NormalizedFields {
	return NormalizedFields{
		Brand:     guessBrand(product),
		Size:      guessSize(product),
		Condition: guessCondition(product),
		Price:     formatPrice(product),
		ImageURL:  product.FeaturedImage,
		Inventory: product.Inventory(),
	}
}

func guessBrand(product model.RemoteProduct) string {
	if vendor := strings.TrimSpace(product.Vendor); vendor != "" {
		return vendor
	}
	title := strings.ToLower(product.Title)
	for _, brand := range knownBrands {
		if strings.Contains(title, strings.ToLower(brand)) {
			return brand
		}
	}
	return ""
}

func guessSize(product model.RemoteProduct) string {
	for _, variant := range product.Variants {
		for _, option := range variant.SelectedOptions {
			if strings.EqualFold(strings.TrimSpace(option.Name), "size") {
				if value := strings.TrimSpace(option.Value); value != "" {
					return value
				}
			}
		}
	}
	// Numeric forms first: "W32" would otherwise hit the single-letter rule
	// through the s in "Levi's".
	if groups := numericSizeRe.FindStringSubmatch(product.Title); len(groups) == 2 {
		return groups[1]
	}
	if match := letterSizeRe.FindString(product.Title); match != "" {
		return strings.ToUpper(match)
	}
	return ""
}

var conditionKeywords = []struct {
	keywords  []string
	condition string
}{
	{[]string{"new with tags", "nwt", "bnwt", "brand new", "deadstock"}, "new"},
	{[]string{"like new", "excellent condition", "barely worn"}, "like_new"},
	{[]string{"good condition", "gently used"}, "good"},
	{[]string{"fair condition", "well worn", "distressed"}, "fair"},
}

func guessCondition(product model.RemoteProduct) string {
	haystack := strings.ToLower(product.Title)
	for _, tag := range product.Tags {
		haystack += " " + strings.ToLower(tag)
	}
	for _, entry := range conditionKeywords {
		for _, keyword := range entry.keywords {
			if strings.Contains(haystack, keyword) {
				return entry.condition
			}
		}
	}
	return "used"
}

// formatPrice keeps the source system's "amount currency" string form.
func formatPrice(product model.RemoteProduct) string {
	amount := strings.TrimSpace(product.PriceAmount)
	if amount == "" {
		return ""
	}
	currency := strings.TrimSpace(product.PriceCurrency)
	if currency == "" {
		return amount
	}
	return amount + " " + currency
}
