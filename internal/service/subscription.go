package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/mamae10/webhook-relay/internal/domain"
	"github.com/mamae10/webhook-relay/pkg/premium"
)

// SubscriptionService applies canonical lifecycle events to the premium backend.
type SubscriptionService struct {
	backend premium.Backend
}

func NewSubscriptionService(backend premium.Backend) *SubscriptionService {
	return &SubscriptionService{backend: backend}
}

// Dispatch routes a canonical event to its handler. It reports false for
// EventUnrecognized, in which case no handler runs.
func (s *SubscriptionService) Dispatch(ctx context.Context, event domain.Event, p domain.PaymentPayload) (domain.Result, bool) {
	switch event {
	case domain.EventPaymentApproved:
		return s.HandlePaymentApproved(ctx, p), true
	case domain.EventSubscriptionCreated:
		return s.HandleSubscriptionCreated(ctx, p), true
	case domain.EventSubscriptionRenewed:
		return s.HandleSubscriptionRenewed(ctx, p), true
	case domain.EventPaymentFailed:
		return s.HandlePaymentFailed(ctx, p), true
	case domain.EventSubscriptionCanceled:
		return s.HandleSubscriptionCanceled(ctx, p), true
	case domain.EventSubscriptionExpired:
		return s.HandleSubscriptionExpired(ctx, p), true
	case domain.EventRefundIssued:
		return s.HandleRefundIssued(ctx, p), true
	}
	return domain.Result{}, false
}

// HandlePaymentApproved grants premium for a one-off approved payment.
func (s *SubscriptionService) HandlePaymentApproved(ctx context.Context, p domain.PaymentPayload) domain.Result {
	return s.grant(ctx, p)
}

// HandleSubscriptionCreated grants premium for a new subscription.
func (s *SubscriptionService) HandleSubscriptionCreated(ctx context.Context, p domain.PaymentPayload) domain.Result {
	return s.grant(ctx, p)
}

// HandleSubscriptionRenewed grants premium for a recurring renewal.
func (s *SubscriptionService) HandleSubscriptionRenewed(ctx context.Context, p domain.PaymentPayload) domain.Result {
	return s.grant(ctx, p)
}

// The handlers below only acknowledge. Revocation is left to the backend's
// own expiry; they never call it.

func (s *SubscriptionService) HandlePaymentFailed(_ context.Context, p domain.PaymentPayload) domain.Result {
	return acknowledge("payment failed for %s", p)
}

func (s *SubscriptionService) HandleSubscriptionCanceled(_ context.Context, p domain.PaymentPayload) domain.Result {
	return acknowledge("subscription canceled for %s", p)
}

func (s *SubscriptionService) HandleSubscriptionExpired(_ context.Context, p domain.PaymentPayload) domain.Result {
	return acknowledge("subscription expired for %s", p)
}

func (s *SubscriptionService) HandleRefundIssued(_ context.Context, p domain.PaymentPayload) domain.Result {
	return acknowledge("refund issued, premium revoked for %s", p)
}

func (s *SubscriptionService) grant(ctx context.Context, p domain.PaymentPayload) domain.Result {
	days := p.Days()
	log.Info().
		Str("provider", string(p.Provider)).
		Str("email", p.Email).
		Str("product_id", p.ProductID).
		Int("days", days).
		Msg("Applying premium")
	return s.backend.ApplyPremium(ctx, p.Email, days)
}

func acknowledge(format string, p domain.PaymentPayload) domain.Result {
	return domain.Result{Success: true, Message: fmt.Sprintf(format, p.Email)}
}
