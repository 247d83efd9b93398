package domain

import "sort"

// DefaultDays is granted when a product is absent or not in the table.
const DefaultDays = 30

// Product maps a provider product identifier to premium days.
type Product struct {
	ID   string `json:"id"`
	Days int    `json:"days"`
}

// productDays holds the premium duration for each product identifier.
// Identifiers are assumed not to collide across providers.
var productDays = map[Provider]map[string]int{
	ProviderCakto:  sharedProducts,
	ProviderKiwify: sharedProducts,
}

var sharedProducts = map[string]int{
	"mamae10-mensal":     30,
	"mamae10-trimestral": 90,
	"mamae10-anual":      365,
}

// ResolveDays returns the premium days for a product, or DefaultDays if the
// product is empty or unknown.
func ResolveDays(provider Provider, productID string) int {
	if productID == "" {
		return DefaultDays
	}
	if days, ok := productDays[provider][productID]; ok {
		return days
	}
	return DefaultDays
}

// Products returns the product table of a provider, sorted by ID.
func Products(provider Provider) []Product {
	table := productDays[provider]
	products := make([]Product, 0, len(table))
	for id, days := range table {
		products = append(products, Product{ID: id, Days: days})
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return products
}
