package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamae10/webhook-relay/internal/domain"
)

type grantCall struct {
	email string
	days  int
}

type fakeBackend struct {
	calls  []grantCall
	result domain.Result
}

func (f *fakeBackend) ApplyPremium(_ context.Context, email string, days int) domain.Result {
	f.calls = append(f.calls, grantCall{email: email, days: days})
	return f.result
}

func TestGrantingHandlersDelegateToBackend(t *testing.T) {
	handlers := map[string]func(*SubscriptionService, context.Context, domain.PaymentPayload) domain.Result{
		"payment approved":     (*SubscriptionService).HandlePaymentApproved,
		"subscription created": (*SubscriptionService).HandleSubscriptionCreated,
		"subscription renewed": (*SubscriptionService).HandleSubscriptionRenewed,
	}

	for name, handle := range handlers {
		t.Run(name, func(t *testing.T) {
			backend := &fakeBackend{result: domain.Result{Success: false, Message: "backend says no"}}
			svc := NewSubscriptionService(backend)

			result := handle(svc, context.Background(), domain.PaymentPayload{
				Email:     "a@x.com",
				Provider:  domain.ProviderCakto,
				ProductID: "mamae10-trimestral",
			})

			require.Len(t, backend.calls, 1)
			assert.Equal(t, grantCall{email: "a@x.com", days: 90}, backend.calls[0])
			assert.Equal(t, backend.result, result)
		})
	}
}

func TestGrantUsesDefaultDaysForUnknownProduct(t *testing.T) {
	backend := &fakeBackend{result: domain.Result{Success: true}}
	svc := NewSubscriptionService(backend)

	svc.HandlePaymentApproved(context.Background(), domain.PaymentPayload{Email: "a@x.com", Provider: domain.ProviderKiwify})
	svc.HandlePaymentApproved(context.Background(), domain.PaymentPayload{Email: "a@x.com", Provider: domain.ProviderKiwify, ProductID: "unknown-id"})

	require.Len(t, backend.calls, 2)
	assert.Equal(t, 30, backend.calls[0].days)
	assert.Equal(t, 30, backend.calls[1].days)
}

func TestGrantPrefersExplicitDays(t *testing.T) {
	backend := &fakeBackend{result: domain.Result{Success: true}}
	svc := NewSubscriptionService(backend)
	days := 3650

	svc.HandleSubscriptionRenewed(context.Background(), domain.PaymentPayload{
		Email:        "a@x.com",
		Provider:     domain.ProviderCakto,
		ProductID:    "mamae10-mensal",
		ExplicitDays: &days,
	})

	require.Len(t, backend.calls, 1)
	assert.Equal(t, 3650, backend.calls[0].days)
}

func TestAcknowledgeHandlers(t *testing.T) {
	backend := &fakeBackend{}
	svc := NewSubscriptionService(backend)
	p := domain.PaymentPayload{Email: "b@x.com", Provider: domain.ProviderKiwify}
	ctx := context.Background()

	assert.Equal(t, domain.Result{Success: true, Message: "payment failed for b@x.com"}, svc.HandlePaymentFailed(ctx, p))
	assert.Equal(t, domain.Result{Success: true, Message: "subscription canceled for b@x.com"}, svc.HandleSubscriptionCanceled(ctx, p))
	assert.Equal(t, domain.Result{Success: true, Message: "subscription expired for b@x.com"}, svc.HandleSubscriptionExpired(ctx, p))
	assert.Equal(t, domain.Result{Success: true, Message: "refund issued, premium revoked for b@x.com"}, svc.HandleRefundIssued(ctx, p))
	assert.Empty(t, backend.calls)
}

func TestAcknowledgeIsIdempotent(t *testing.T) {
	backend := &fakeBackend{}
	svc := NewSubscriptionService(backend)
	p := domain.PaymentPayload{Email: "b@x.com", Provider: domain.ProviderCakto}

	first := svc.HandlePaymentFailed(context.Background(), p)
	second := svc.HandlePaymentFailed(context.Background(), p)

	assert.Equal(t, first, second)
	assert.Empty(t, backend.calls)
}

func TestDispatch(t *testing.T) {
	backend := &fakeBackend{result: domain.Result{Success: true, Message: "granted"}}
	svc := NewSubscriptionService(backend)
	p := domain.PaymentPayload{Email: "c@x.com", Provider: domain.ProviderCakto}

	result, ok := svc.Dispatch(context.Background(), domain.EventSubscriptionCreated, p)
	require.True(t, ok)
	assert.Equal(t, "granted", result.Message)

	result, ok = svc.Dispatch(context.Background(), domain.EventSubscriptionExpired, p)
	require.True(t, ok)
	assert.Equal(t, "subscription expired for c@x.com", result.Message)

	_, ok = svc.Dispatch(context.Background(), domain.EventUnrecognized, p)
	assert.False(t, ok)
	assert.Len(t, backend.calls, 1)
}
