// Package location finds the user's approximate position for the SOS
// hospital search.
package location

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	http "github.com/bogdanfinn/fhttp"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	apierrors "github.com/diogo/medilingua/internal/errors"
	"github.com/diogo/medilingua/internal/logging"
	"github.com/diogo/medilingua/internal/models"
)

// DefaultEndpoint is the IP geolocation service queried when none is configured
const DefaultEndpoint = "http://ip-api.com/json/"

// DefaultTimeout bounds a single lookup
const DefaultTimeout = 5 * time.Second

// Provider resolves the current position
type Provider interface {
	Locate(ctx context.Context) (models.Coordinates, error)
}

// Doer sends HTTP requests; tls_client.HttpClient satisfies it
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// IPLocator estimates the position from the public IP address
type IPLocator struct {
	client   Doer
	endpoint string
	timeout  time.Duration
	logger   *zap.Logger
}

// Option configures an IPLocator
type Option func(*IPLocator)

// WithEndpoint overrides the geolocation endpoint
func WithEndpoint(endpoint string) Option {
	return func(l *IPLocator) {
		if endpoint != "" {
			l.endpoint = endpoint
		}
	}
}

// WithTimeout overrides the lookup timeout
func WithTimeout(d time.Duration) Option {
	return func(l *IPLocator) {
		if d > 0 {
			l.timeout = d
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(l *IPLocator) {
		l.logger = logging.OrNop(logger)
	}
}

// NewIPLocator creates a locator sending requests through client
func NewIPLocator(client Doer, opts ...Option) *IPLocator {
	l := &IPLocator{
		client:   client,
		endpoint: DefaultEndpoint,
		timeout:  DefaultTimeout,
		logger:   logging.Nop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Locate queries the endpoint. Results are never cached.
func (l *IPLocator) Locate(ctx context.Context) (models.Coordinates, error) {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.endpoint, nil)
	if err != nil {
		return models.Coordinates{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		l.logger.Warn("location lookup failed", zap.Error(err))
		return models.Coordinates{}, apierrors.NewNetworkError(l.endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.Coordinates{}, apierrors.NewNetworkError(l.endpoint, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return models.Coordinates{}, apierrors.NewAPIError(resp.StatusCode, l.endpoint, "location lookup failed")
	}

	return parseCoordinates(body)
}

// parseCoordinates reads {"status","lat","lon"} as returned by ip-api
func parseCoordinates(body []byte) (models.Coordinates, error) {
	if !gjson.ValidBytes(body) {
		return models.Coordinates{}, apierrors.NewParseError("response is not valid JSON", "")
	}

	root := gjson.ParseBytes(body)
	if status := root.Get("status"); status.Exists() && status.String() != "success" {
		return models.Coordinates{}, apierrors.NewParseError(root.Get("message").String(), "status")
	}

	lat, lon := root.Get("lat"), root.Get("lon")
	if lat.Type != gjson.Number || lon.Type != gjson.Number {
		return models.Coordinates{}, apierrors.NewParseError("missing coordinates", "lat")
	}
	return models.Coordinates{Latitude: lat.Float(), Longitude: lon.Float()}, nil
}

// HospitalURL returns the map search for hospitals around c
func HospitalURL(c models.Coordinates) string {
	return fmt.Sprintf(models.HospitalSearchURL,
		strconv.FormatFloat(c.Latitude, 'f', -1, 64),
		strconv.FormatFloat(c.Longitude, 'f', -1, 64))
}
