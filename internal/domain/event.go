package domain

// Event is a canonical subscription lifecycle event.
type Event string

const (
	EventUnrecognized         Event = ""
	EventPaymentApproved      Event = "PaymentApproved"
	EventSubscriptionCreated  Event = "SubscriptionCreated"
	EventSubscriptionRenewed  Event = "SubscriptionRenewed"
	EventPaymentFailed        Event = "PaymentFailed"
	EventSubscriptionCanceled Event = "SubscriptionCanceled"
	EventSubscriptionExpired  Event = "SubscriptionExpired"
	EventRefundIssued         Event = "RefundIssued"
)

var rawEvents = map[string]Event{
	"payment_approved":      EventPaymentApproved,
	"charge_approved":       EventPaymentApproved,
	"subscription_created":  EventSubscriptionCreated,
	"subscription_renewed":  EventSubscriptionRenewed,
	"payment_failed":        EventPaymentFailed,
	"subscription_canceled": EventSubscriptionCanceled,
	"subscription_expired":  EventSubscriptionExpired,
	"refund_issued":         EventRefundIssued,
}

// ParseEvent maps a provider event name to its canonical event.
// Unknown names map to EventUnrecognized.
func ParseEvent(raw string) Event {
	return rawEvents[raw]
}

// Grants reports whether the event extends premium access.
func (e Event) Grants() bool {
	switch e {
	case EventPaymentApproved, EventSubscriptionCreated, EventSubscriptionRenewed:
		return true
	}
	return false
}
