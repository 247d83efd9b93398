package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEvent(t *testing.T) {
	cases := map[string]Event{
		"payment_approved":      EventPaymentApproved,
		"charge_approved":       EventPaymentApproved,
		"subscription_created":  EventSubscriptionCreated,
		"subscription_renewed":  EventSubscriptionRenewed,
		"payment_failed":        EventPaymentFailed,
		"subscription_canceled": EventSubscriptionCanceled,
		"subscription_expired":  EventSubscriptionExpired,
		"refund_issued":         EventRefundIssued,
		"order_created":         EventUnrecognized,
		"PAYMENT_APPROVED":      EventUnrecognized,
		"":                      EventUnrecognized,
	}
	for raw, want := range cases {
		assert.Equal(t, want, ParseEvent(raw), "raw event %q", raw)
	}
}

func TestEventGrants(t *testing.T) {
	assert.True(t, EventPaymentApproved.Grants())
	assert.True(t, EventSubscriptionCreated.Grants())
	assert.True(t, EventSubscriptionRenewed.Grants())
	assert.False(t, EventPaymentFailed.Grants())
	assert.False(t, EventRefundIssued.Grants())
	assert.False(t, EventUnrecognized.Grants())
}

func TestParseProvider(t *testing.T) {
	p, err := ParseProvider("kiwify")
	require.NoError(t, err)
	assert.Equal(t, ProviderKiwify, p)

	_, err = ParseProvider("hotmart")
	assert.Error(t, err)
}

func TestProviderFieldOrder(t *testing.T) {
	assert.Equal(t, []string{"customer_email", "email", "buyer_email", "client_email"}, ProviderCakto.EmailFields())
	assert.Equal(t, []string{"buyer_email", "email", "customer_email", "client_email"}, ProviderKiwify.EmailFields())
	assert.Equal(t, []string{"plan_id", "product_id", "offer_slug"}, ProviderCakto.ProductFields())
	assert.Equal(t, []string{"product_slug", "product_id", "offer_slug", "plan_id"}, ProviderKiwify.ProductFields())
}
