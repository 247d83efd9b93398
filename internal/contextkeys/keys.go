package contextkeys

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey string

const (
	// RequestID is the context key for the inbound request's ID.
	RequestID contextKey = "requestID"
)
