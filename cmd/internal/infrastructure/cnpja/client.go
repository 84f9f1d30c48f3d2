package cnpja

import (
	"consultacnpj/cmd/internal/cnpj"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

const (
	DefaultBaseURL = "https://open.cnpja.com"

	// DefaultRetryWait is the fixed delay before retrying a rate-limited
	// lookup. The open API throttles per-IP; it asks for a minute.
	DefaultRetryWait = 60 * time.Second

	// DefaultMaxRetries bounds the 429 retry loop. The lookup blocks the
	// caller through every wait, so this stays small.
	DefaultMaxRetries = 3
)

var (
	ErrInvalidCNPJ = errors.New("cnpja: invalid cnpj")
	ErrNotFound    = errors.New("cnpja: office not found")
	ErrRateLimited = errors.New("cnpja: rate limited, retries exhausted")
)

var tracer = otel.Tracer("cnpja")

// StatusError is any registry response that is neither success, not-found
// nor rate-limiting.
type StatusError struct {
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("cnpja: request failed with status code %d", e.Status)
}

// ConnectionError is a transport-level failure: DNS, refused connection,
// timeout. The request never produced an HTTP status.
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("cnpja: connection failed: %v", e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// RateLimitNotice is invoked once per 429 response, before the client
// starts waiting. attempt is 1-based.
type RateLimitNotice func(attempt int, wait time.Duration)

type Client struct {
	baseURL    string
	httpClient *http.Client
	retryWait  time.Duration
	maxRetries int
}

type Option func(*Client)

func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = url }
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) { c.httpClient = httpClient }
}

func WithRetryWait(wait time.Duration) Option {
	return func(c *Client) { c.retryWait = wait }
}

func WithMaxRetries(retries int) Option {
	return func(c *Client) { c.maxRetries = retries }
}

func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{},
		retryWait:  DefaultRetryWait,
		maxRetries: DefaultMaxRetries,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Lookup fetches the office document for a canonical (14-digit) CNPJ.
// Every call is a fresh round trip; the client never caches. A 429 is
// retried up to maxRetries times with a fixed wait, notifying notice
// (when non-nil) before each wait.
func (c *Client) Lookup(ctx context.Context, cnpjID string, notice RateLimitNotice) (*Office, error) {
	if !cnpj.IsValid(cnpjID) {
		return nil, ErrInvalidCNPJ
	}

	ctx, span := tracer.Start(ctx, "cnpja.lookup")
	defer span.End()
	span.SetAttributes(attribute.String("cnpj", cnpjID))

	attempts := c.maxRetries + 1
	for attempt := 1; attempt <= attempts; attempt++ {
		span.SetAttributes(attribute.Int("attempts", attempt))

		office, err := c.fetch(ctx, cnpjID)
		if !errors.Is(err, ErrRateLimited) {
			return office, err
		}

		// Last attempt: surface the rate limit instead of waiting again.
		if attempt == attempts {
			return nil, ErrRateLimited
		}

		if notice != nil {
			notice(attempt, c.retryWait)
		}
		if err := c.wait(ctx); err != nil {
			return nil, err
		}
	}
	return nil, ErrRateLimited
}

func (c *Client) fetch(ctx context.Context, cnpjID string) (*Office, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/office/"+cnpjID, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &ConnectionError{Err: err}
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Fall through to the body parse below.
	case http.StatusNotFound:
		return nil, ErrNotFound
	case http.StatusTooManyRequests:
		return nil, ErrRateLimited
	default:
		return nil, &StatusError{Status: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ConnectionError{Err: err}
	}

	var office Office
	if err = json.Unmarshal(body, &office); err != nil {
		return nil, fmt.Errorf("cnpja: malformed office document: %w", err)
	}
	return &office, nil
}

func (c *Client) wait(ctx context.Context) error {
	timer := time.NewTimer(c.retryWait)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return &ConnectionError{Err: ctx.Err()}
	case <-timer.C:
		return nil
	}
}
