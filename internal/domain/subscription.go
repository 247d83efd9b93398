package domain

// PaymentPayload is the normalized, request-scoped view of a webhook.
type PaymentPayload struct {
	Email     string
	Provider  Provider
	ProductID string // empty when the webhook carries no product
	// ExplicitDays overrides the product table when set.
	ExplicitDays *int
}

// Days returns the premium duration for the payload.
func (p PaymentPayload) Days() int {
	if p.ExplicitDays != nil {
		return *p.ExplicitDays
	}
	return ResolveDays(p.Provider, p.ProductID)
}

// Result is the outcome of handling an event; it is also the webhook response body.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
