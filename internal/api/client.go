package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	http "github.com/bogdanfinn/fhttp"
	tls_client "github.com/bogdanfinn/tls-client"
	"go.uber.org/zap"

	apierrors "github.com/diogo/medilingua/internal/errors"
	"github.com/diogo/medilingua/internal/logging"
	"github.com/diogo/medilingua/internal/models"
)

// BackendClient is the set of backend operations the chat needs
type BackendClient interface {
	Detect(ctx context.Context, text string) (string, error)
	Translate(ctx context.Context, req models.TranslateRequest) (*models.Translation, error)
	ProcessImage(ctx context.Context, filePath string) (string, error)
	ProcessImageFromReader(ctx context.Context, reader io.Reader, fileName, mimeType string) (string, error)
	BaseURL() string
	Close()
}

// Client talks to the MediLingua translation backend
type Client struct {
	httpClient     tls_client.HttpClient
	baseURL        string
	timeoutSeconds int
	logger         *zap.Logger
	mu             sync.RWMutex
	closed         bool
}

// Ensure Client implements BackendClient
var _ BackendClient = (*Client)(nil)

// ClientOption is a function that configures the client
type ClientOption func(*Client)

// WithBaseURL sets the backend origin
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithLogger sets the logger used for request tracing
func WithLogger(logger *zap.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithHTTPClient replaces the underlying transport (used by tests)
func WithHTTPClient(httpClient tls_client.HttpClient) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTimeoutSeconds sets the transport timeout used when the client builds its own transport
func WithTimeoutSeconds(seconds int) ClientOption {
	return func(c *Client) {
		c.timeoutSeconds = seconds
	}
}

// NewClient creates a new backend client
func NewClient(opts ...ClientOption) (*Client, error) {
	client := &Client{
		baseURL:        models.DefaultBackendURL,
		timeoutSeconds: 300,
	}

	for _, opt := range opts {
		opt(client)
	}

	client.logger = logging.OrNop(client.logger)

	if client.httpClient == nil {
		httpClient, err := NewHTTPClient(client.timeoutSeconds)
		if err != nil {
			return nil, err
		}
		client.httpClient = httpClient
	}

	return client, nil
}

// NewHTTPClient builds the shared transport used for backend and location requests
func NewHTTPClient(timeoutSeconds int) (tls_client.HttpClient, error) {
	options := []tls_client.HttpClientOption{
		tls_client.WithTimeoutSeconds(timeoutSeconds),
		tls_client.WithNotFollowRedirects(),
	}

	httpClient, err := tls_client.NewHttpClient(tls_client.NewNoopLogger(), options...)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP client: %w", err)
	}
	return httpClient, nil
}

// BaseURL returns the backend origin
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Close releases idle connections; later requests fail
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	c.httpClient.CloseIdleConnections()
}

// IsClosed returns whether the client is closed
func (c *Client) IsClosed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.closed
}

// post sends body to endpoint and returns the raw response body and status.
// Transport failures come back as NetworkError; status handling is left to the caller.
func (c *Client) post(ctx context.Context, endpoint, contentType string, body []byte) ([]byte, int, error) {
	if c.IsClosed() {
		return nil, 0, fmt.Errorf("client is closed")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}

	for key, value := range models.DefaultHeaders() {
		req.Header.Set(key, value)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("backend request failed", zap.String("endpoint", endpoint), zap.Error(err))
		return nil, 0, apierrors.NewNetworkError(endpoint, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, apierrors.NewNetworkError(endpoint, fmt.Errorf("failed to read response: %w", err))
	}

	c.logger.Debug("backend response",
		zap.String("endpoint", endpoint),
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(respBody)),
	)

	return respBody, resp.StatusCode, nil
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}
