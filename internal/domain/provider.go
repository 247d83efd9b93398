package domain

import "fmt"

// Provider identifies the payment platform a webhook came from.
type Provider string

const (
	ProviderCakto  Provider = "cakto"
	ProviderKiwify Provider = "kiwify"
)

// Providers lists every supported provider in routing order.
func Providers() []Provider {
	return []Provider{ProviderCakto, ProviderKiwify}
}

// ParseProvider validates a provider name.
func ParseProvider(name string) (Provider, error) {
	switch p := Provider(name); p {
	case ProviderCakto, ProviderKiwify:
		return p, nil
	}
	return "", fmt.Errorf("unknown provider %q", name)
}

// EmailFields returns the candidate email keys of a provider, in priority order.
func (p Provider) EmailFields() []string {
	switch p {
	case ProviderKiwify:
		return []string{"buyer_email", "email", "customer_email", "client_email"}
	default:
		return []string{"customer_email", "email", "buyer_email", "client_email"}
	}
}

// ProductFields returns the candidate product keys of a provider, in priority order.
func (p Provider) ProductFields() []string {
	switch p {
	case ProviderKiwify:
		return []string{"product_slug", "product_id", "offer_slug", "plan_id"}
	default:
		return []string{"plan_id", "product_id", "offer_slug"}
	}
}
