package handler

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"runtime/debug"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mamae10/webhook-relay/internal/domain"
	"github.com/mamae10/webhook-relay/internal/extract"
	"github.com/mamae10/webhook-relay/internal/logging"
	"github.com/mamae10/webhook-relay/internal/metrics"
)

const (
	webhookBodyLimit = 1024 * 1024 // 1 MiB

	// SignatureHeader carries "sha256=<hex HMAC of the raw body>".
	SignatureHeader = "X-Webhook-Signature"
)

// Response messages.
const (
	MsgMissingEmail     = "missing email in webhook"
	MsgInternalError    = "internal webhook error"
	MsgInvalidBody      = "invalid webhook body"
	MsgBodyTooLarge     = "webhook body too large"
	MsgInvalidSignature = "invalid webhook signature"
)

// EventDispatcher applies a canonical event to a payload.
type EventDispatcher interface {
	Dispatch(ctx context.Context, event domain.Event, p domain.PaymentPayload) (domain.Result, bool)
}

// WebhookHandler normalizes one provider's webhooks into canonical events.
type WebhookHandler struct {
	provider domain.Provider
	events   EventDispatcher
	secret   string
}

// NewWebhookHandler creates the adapter for a provider. An empty secret
// disables signature verification.
func NewWebhookHandler(provider domain.Provider, events EventDispatcher, secret string) *WebhookHandler {
	return &WebhookHandler{
		provider: provider,
		events:   events,
		secret:   secret,
	}
}

// ServeHTTP handles POST /webhooks/{provider}.
func (h *WebhookHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	event := "none"
	status := http.StatusOK
	defer func() {
		metrics.WebhookRequestsTotal.WithLabelValues(string(h.provider), event, strconv.Itoa(status)).Inc()
		metrics.WebhookDuration.WithLabelValues(string(h.provider)).Observe(time.Since(start).Seconds())
	}()

	logger := logging.FromContext(r.Context()).With().
		Str("provider", string(h.provider)).
		Str("delivery_id", uuid.New().String()).
		Logger()

	defer func() {
		if rec := recover(); rec != nil {
			logger.Error().Interface("panic", rec).Bytes("stack", debug.Stack()).Msg("Webhook processing failed")
			status = http.StatusInternalServerError
			JSON(w, status, domain.Result{Success: false, Message: MsgInternalError})
		}
	}()

	doc, err := h.readDocument(w, r)
	if err != nil {
		logger.Warn().Err(err).Msg("Rejected webhook")
		status = Error(w, err)
		return
	}

	var canonical domain.Event
	var result domain.Result
	status, canonical, result = h.process(r.Context(), logger, doc)
	if canonical != domain.EventUnrecognized {
		event = string(canonical)
	} else if status == http.StatusOK {
		event = "ignored"
	}
	JSON(w, status, result)
}

func (h *WebhookHandler) process(ctx context.Context, logger zerolog.Logger, doc any) (int, domain.Event, domain.Result) {
	rawValue, _ := extract.First(doc, "event", "type")
	rawEvent := describeEvent(rawValue)
	data := doc
	if v, ok := extract.First(doc, "data"); ok {
		data = v
	}

	email := extract.FirstString(data, h.provider.EmailFields()...)
	productID := extract.FirstText(data, h.provider.ProductFields()...)

	logger = logger.With().Str("event", rawEvent).Logger()
	logger.Info().Str("email", email).Str("product_id", productID).Msg("Webhook received")

	if email == "" {
		logger.Warn().Msg("Webhook without identifiable email")
		return http.StatusBadRequest, domain.EventUnrecognized, domain.Result{Success: false, Message: MsgMissingEmail}
	}

	event := domain.ParseEvent(rawEvent)
	if event == domain.EventUnrecognized {
		logger.Info().Interface("raw_event", rawValue).Msg("Unhandled webhook event, ignoring")
		return http.StatusOK, event, domain.Result{Success: true, Message: fmt.Sprintf("ignored event: %s", rawEvent)}
	}

	result, _ := h.events.Dispatch(ctx, event, domain.PaymentPayload{
		Email:     email,
		Provider:  h.provider,
		ProductID: productID,
	})
	logger.Info().
		Str("canonical_event", string(event)).
		Bool("grant", event.Grants()).
		Bool("success", result.Success).
		Str("result", result.Message).
		Msg("Webhook processed")
	return http.StatusOK, event, result
}

// describeEvent renders an event field for logs and responses. Objects and
// arrays are rendered as compact JSON.
func describeEvent(v any) string {
	if v == nil {
		return ""
	}
	if s := extract.Text(v); s != "" {
		return s
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}

// readDocument reads, authenticates and decodes the request body.
func (h *WebhookHandler) readDocument(w http.ResponseWriter, r *http.Request) (any, error) {
	r.Body = http.MaxBytesReader(w, r.Body, webhookBodyLimit)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, &domain.AppError{Code: http.StatusRequestEntityTooLarge, Message: MsgBodyTooLarge, Err: err}
		}
		return nil, &domain.AppError{Code: http.StatusBadRequest, Message: MsgInvalidBody, Err: err}
	}

	if h.secret != "" && !verifySignature(r.Header.Get(SignatureHeader), body, h.secret) {
		return nil, domain.ErrUnauthorized(MsgInvalidSignature)
	}

	return decodeDocument(r.Header.Get("Content-Type"), body)
}

// decodeDocument accepts JSON objects and urlencoded bodies. An empty body is
// an empty object.
func decodeDocument(contentType string, body []byte) (any, error) {
	mediaType, _, _ := mime.ParseMediaType(contentType)
	if mediaType == "application/x-www-form-urlencoded" {
		values, err := url.ParseQuery(string(body))
		if err != nil {
			return nil, &domain.AppError{Code: http.StatusBadRequest, Message: MsgInvalidBody, Err: err}
		}
		return extract.FormDocument(values), nil
	}

	if len(strings.TrimSpace(string(body))) == 0 {
		return map[string]any{}, nil
	}
	dec := json.NewDecoder(strings.NewReader(string(body)))
	dec.UseNumber()
	var doc map[string]any
	if err := dec.Decode(&doc); err != nil || doc == nil {
		return nil, &domain.AppError{Code: http.StatusBadRequest, Message: MsgInvalidBody, Err: err}
	}
	return doc, nil
}

func verifySignature(signature string, payload []byte, secret string) bool {
	parts := strings.SplitN(signature, "=", 2)
	if len(parts) != 2 || parts[0] != "sha256" {
		return false
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	expectedSignature := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(strings.ToLower(parts[1])), []byte(expectedSignature))
}
