package premium

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/mamae10/webhook-relay/internal/domain"
	"github.com/mamae10/webhook-relay/internal/extract"
	"github.com/mamae10/webhook-relay/internal/metrics"
)

const (
	DefaultTimeout   = 10 * time.Second
	defaultRetryWait = 500 * time.Millisecond
	maxResponseBytes = 64 * 1024
)

// Options configures a Client.
type Options struct {
	URL     string
	Timeout time.Duration
	// TokenSecret enables bearer authentication when non-empty.
	TokenSecret string
	// MaxRetries bounds retries after a transport error or 5xx response.
	MaxRetries uint64
	RetryWait  time.Duration
	HTTPClient *http.Client
}

// Client is the HTTP implementation of Backend.
type Client struct {
	url        string
	httpClient *http.Client
	signer     *TokenSigner
	validate   *validator.Validate
	maxRetries uint64
	retryWait  time.Duration
}

// NewClient creates a backend client.
func NewClient(opts Options) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}
	retryWait := opts.RetryWait
	if retryWait <= 0 {
		retryWait = defaultRetryWait
	}

	c := &Client{
		url:        opts.URL,
		httpClient: httpClient,
		validate:   validator.New(),
		maxRetries: opts.MaxRetries,
		retryWait:  retryWait,
	}
	if opts.TokenSecret != "" {
		c.signer = NewTokenSigner(opts.TokenSecret)
	}
	return c
}

// ApplyPremium posts {email, days} to the backend.
func (c *Client) ApplyPremium(ctx context.Context, email string, days int) domain.Result {
	req := Request{Email: email, Days: days}
	if err := c.validate.Struct(req); err != nil {
		log.Warn().Err(err).Str("email", email).Int("days", days).Msg("Rejected invalid apply-premium request")
		metrics.BackendCallsTotal.WithLabelValues("invalid").Inc()
		return domain.Result{Success: false, Message: MsgInvalidRequest}
	}

	body, err := json.Marshal(req)
	if err != nil {
		metrics.BackendCallsTotal.WithLabelValues("invalid").Inc()
		return domain.Result{Success: false, Message: MsgInvalidRequest}
	}

	var token string
	if c.signer != nil {
		if token, err = c.signer.Sign(email); err != nil {
			log.Error().Err(err).Str("email", email).Msg("Failed to sign apply-premium request")
			metrics.BackendCallsTotal.WithLabelValues("transport_error").Inc()
			return domain.Result{Success: false, Message: MsgCommunicationFailure}
		}
	}

	var (
		status   int
		respBody []byte
		callErr  error
	)
	op := func() error {
		status, respBody, callErr = c.post(ctx, body, token)
		if callErr != nil {
			return callErr
		}
		if status >= http.StatusInternalServerError {
			return fmt.Errorf("backend returned status %d", status)
		}
		return nil
	}
	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewConstantBackOff(c.retryWait), c.maxRetries), ctx)
	notify := func(err error, wait time.Duration) {
		metrics.BackendRetriesTotal.Inc()
		log.Warn().Err(err).Str("email", email).Dur("backoff", wait).Msg("Retrying apply-premium call")
	}
	_ = backoff.RetryNotify(op, policy, notify)

	if callErr != nil {
		log.Error().Err(callErr).Str("email", email).Int("days", days).Msg("Failed to reach premium backend")
		metrics.BackendCallsTotal.WithLabelValues("transport_error").Inc()
		return domain.Result{Success: false, Message: MsgCommunicationFailure}
	}

	data := parseBody(respBody)
	if status < 200 || status >= 300 {
		log.Error().Int("status", status).Interface("body", data).Str("email", email).Msg("Premium backend returned an error")
		metrics.BackendCallsTotal.WithLabelValues("http_error").Inc()
		return domain.Result{Success: false, Message: MsgBackendError}
	}

	result := domain.Result{
		Success: extract.Truthy(data["success"]),
		Message: fmt.Sprintf("Premium granted for %d days to %s", days, email),
	}
	if msg, ok := data["message"]; ok && msg != nil {
		if s, isString := msg.(string); isString {
			result.Message = s
		} else if s := extract.Text(msg); s != "" {
			result.Message = s
		}
	}

	outcome := "granted"
	if !result.Success {
		outcome = "rejected"
	}
	metrics.BackendCallsTotal.WithLabelValues(outcome).Inc()
	return result
}

func (c *Client) post(ctx context.Context, body []byte, token string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return 0, nil, backoff.Permanent(fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("premium backend request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		log.Debug().Err(err).Int("status", resp.StatusCode).Msg("Failed to read premium backend response")
		return resp.StatusCode, nil, nil
	}
	return resp.StatusCode, respBody, nil
}

// parseBody decodes a JSON object, falling back to an empty object.
func parseBody(body []byte) map[string]any {
	data := map[string]any{}
	if len(body) == 0 {
		return data
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&data); err != nil {
		return map[string]any{}
	}
	return data
}
