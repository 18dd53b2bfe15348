// Package grobid is a client for the GROBID document-extraction service.
// It drives the processHeaderDocument endpoint and maps the TEI response
// to sparse paper metadata.
package grobid

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is where a locally run GROBID listens.
	DefaultBaseURL = "http://localhost:8070"

	// DefaultTimeout bounds one processHeaderDocument call. Header
	// extraction on a slow consolidation pass can take tens of seconds.
	DefaultTimeout = 30 * time.Second

	// AliveTimeout bounds the liveness probe.
	AliveTimeout = 2 * time.Second

	// RateLimit is requests per second against the service.
	RateLimit = 10.0
)

// Client is a rate-limited HTTP client for a GROBID instance.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		c.baseURL = url
	}
}

// NewClient creates a GROBID client. An empty baseURL selects
// DefaultBaseURL.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(RateLimit), 1),
		baseURL:    DefaultBaseURL,
	}
	if baseURL != "" {
		c.baseURL = baseURL
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// IsAlive probes the service's liveness endpoint. It returns false on
// any failure; an unreachable service is an expected condition.
func (c *Client) IsAlive(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, AliveTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/isalive", nil)
	if err != nil {
		return false
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode >= 200 && resp.StatusCode < 300
}

// ProcessHeader uploads a PDF to processHeaderDocument and returns the
// decoded TEI header. The caller supplies the PDF bytes and a filename
// for the multipart form.
func (c *Client) ProcessHeader(ctx context.Context, pdf io.Reader, filename string) (*TEI, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("input", filename)
	if err != nil {
		return nil, fmt.Errorf("building form: %w", err)
	}
	if _, err := io.Copy(part, pdf); err != nil {
		return nil, fmt.Errorf("reading PDF: %w", err)
	}
	if err := mw.WriteField("consolidateHeader", "1"); err != nil {
		return nil, fmt.Errorf("building form: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("building form: %w", err)
	}

	url := c.baseURL + "/api/processHeaderDocument"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Accept", "application/xml")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("HTTP %d from processHeaderDocument", resp.StatusCode),
		}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	tei, err := ParseTEI(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return tei, nil
}
