package handler

import (
	"net/http"

	"github.com/mamae10/webhook-relay/internal/domain"
)

// ProductsHandler exposes the entitlement product table.
type ProductsHandler struct{}

// NewProductsHandler creates a new ProductsHandler.
func NewProductsHandler() *ProductsHandler {
	return &ProductsHandler{}
}

// List handles GET /api/products.
func (h *ProductsHandler) List(w http.ResponseWriter, r *http.Request) {
	products := make(map[domain.Provider][]domain.Product, len(domain.Providers()))
	for _, p := range domain.Providers() {
		products[p] = domain.Products(p)
	}
	JSON(w, http.StatusOK, map[string]interface{}{
		"defaultDays": domain.DefaultDays,
		"products":    products,
	})
}
