// Package premium talks to the backend that stores premium entitlements.
package premium

import (
	"context"

	"github.com/mamae10/webhook-relay/internal/domain"
)

// Result messages for failed calls. The details are logged, not returned.
const (
	MsgBackendError         = "apply-premium backend error"
	MsgCommunicationFailure = "communication failure with backend"
	// MsgInvalidRequest reports a request rejected before any call was made.
	MsgInvalidRequest = "invalid apply-premium request"
)

// Backend grants premium access to a customer.
type Backend interface {
	// ApplyPremium grants days of premium to email. Failures are reported in
	// the result, never as an error.
	ApplyPremium(ctx context.Context, email string, days int) domain.Result
}

// Request is the body sent to the backend.
type Request struct {
	Email string `json:"email" validate:"required"`
	Days  int    `json:"days" validate:"gt=0"`
}
