package flights

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// OfferSearcher is implemented by *Client and can be faked in tests.
type OfferSearcher interface {
	SearchOffers(ctx context.Context, req SearchRequest) (*OffersResponse, error)
}

// LocationSearcher is implemented by *Client and can be faked in tests.
type LocationSearcher interface {
	SearchLocations(ctx context.Context, query LocationQuery) (*LocationsResponse, error)
}

var (
	_ OfferSearcher    = (*Client)(nil)
	_ LocationSearcher = (*Client)(nil)
)

// ErrInvalidResponse reports a 2xx payload that lacks meta or data.
var ErrInvalidResponse = errors.New("invalid response: missing meta or data")

// Client talks to the flight-offer HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	log       zerolog.Logger
}

const (
	defaultAPIURL    = "127.0.0.1:8080"
	defaultUserAgent = "wayfare/0.1"
	requestTimeout   = 10 * time.Second
	maxErrorBody     = 64 << 10
)

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua = strings.TrimSpace(ua); ua != "" {
			c.userAgent = ua
		}
	}
}

// WithLogger attaches a logger for request tracing.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// NewClient builds a Client for the backend at baseURL. A bare host:port is
// accepted; any path, query or fragment is dropped.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL:   base,
		http:      &http.Client{Timeout: requestTimeout},
		userAgent: defaultUserAgent,
		log:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the normalised API address.
func (c *Client) BaseURL() string {
	if c == nil {
		return ""
	}
	return c.baseURL.String()
}

// SearchOffers queries /api/flights. The request is sent as-is; callers
// validate beforehand.
func (c *Client) SearchOffers(ctx context.Context, req SearchRequest) (*OffersResponse, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	rel := &url.URL{Path: "/api/flights", RawQuery: req.Values().Encode()}
	var payload OffersResponse
	if err := c.doURL(ctx, http.MethodGet, rel, &payload); err != nil {
		return nil, err
	}
	if payload.Meta == nil || payload.Data == nil {
		return nil, ErrInvalidResponse
	}
	return &payload, nil
}

// SearchLocations queries /api/locations for autocomplete suggestions.
func (c *Client) SearchLocations(ctx context.Context, query LocationQuery) (*LocationsResponse, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	if strings.TrimSpace(query.Keyword) == "" {
		return nil, fmt.Errorf("keyword required")
	}
	rel := &url.URL{Path: "/api/locations", RawQuery: query.Values().Encode()}
	var payload LocationsResponse
	if err := c.doURL(ctx, http.MethodGet, rel, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// APIError is returned for non-2xx responses.
type APIError struct {
	Path       string
	StatusCode int
	Code       string
	Message    string
	Details    []string
	RequestID  string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api %s returned status %d: %s", e.Path, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api %s returned status %d", e.Path, e.StatusCode)
}

// errorBody is the backend's error envelope.
type errorBody struct {
	Timestamp string   `json:"timestamp"`
	Status    int      `json:"status"`
	Error     string   `json:"error"`
	Message   string   `json:"message"`
	Code      string   `json:"code"`
	Details   []string `json:"details"`
}

func (c *Client) doURL(ctx context.Context, method string, rel *url.URL, dest any) error {
	reqURL := c.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-Id", requestID)

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.log.Debug().
		Str("request_id", requestID).
		Str("path", rel.Path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(started)).
		Msg("api request")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newAPIError(rel.Path, requestID, resp)
	}
	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func newAPIError(path, requestID string, resp *http.Response) *APIError {
	apiErr := &APIError{Path: path, StatusCode: resp.StatusCode, RequestID: requestID}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(raw) == 0 {
		return apiErr
	}
	var body errorBody
	if json.Unmarshal(raw, &body) == nil {
		apiErr.Message = strings.TrimSpace(body.Message)
		apiErr.Code = body.Code
		apiErr.Details = body.Details
		if apiErr.Message == "" {
			apiErr.Message = strings.TrimSpace(body.Error)
		}
	}
	return apiErr
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = defaultAPIURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api_url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse api_url %q: missing host", raw)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
