package geocoding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/dtroode/georegions-server/internal/logger"
	"github.com/dtroode/georegions-server/internal/metrics"
	"github.com/dtroode/georegions-server/internal/model"
)

const (
	directionForward = "forward"
	directionReverse = "reverse"

	statusOK             = "OK"
	statusZeroResults    = "ZERO_RESULTS"
	statusOverQueryLimit = "OVER_QUERY_LIMIT"
	statusUnknownError   = "UNKNOWN_ERROR"
)

var errNoResult = fmt.Errorf("%w: no result", model.ErrResolution)

var _ model.Geocoder = (*GoogleClient)(nil)

type geocodeResponse struct {
	Status       string          `json:"status"`
	ErrorMessage string          `json:"error_message"`
	Results      []geocodeResult `json:"results"`
}

type geocodeResult struct {
	FormattedAddress string `json:"formatted_address"`
	Geometry         struct {
		Location struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"location"`
	} `json:"geometry"`
}

// GoogleClient talks to the Google Geocoding API.
type GoogleClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	maxRetries uint64
	newBackOff func() backoff.BackOff

	metrics *metrics.Metrics
	tracer  trace.Tracer
	log     *logger.Logger
}

// GoogleOption configures a GoogleClient.
type GoogleOption func(*GoogleClient)

// WithHTTPClient replaces the HTTP client. Its timeout bounds every attempt.
func WithHTTPClient(c *http.Client) GoogleOption {
	return func(g *GoogleClient) {
		g.httpClient = c
	}
}

// WithBackOff sets the retry schedule factory.
func WithBackOff(newBackOff func() backoff.BackOff) GoogleOption {
	return func(g *GoogleClient) {
		g.newBackOff = newBackOff
	}
}

// WithMetrics enables call metrics.
func WithMetrics(m *metrics.Metrics) GoogleOption {
	return func(g *GoogleClient) {
		g.metrics = m
	}
}

// NewGoogleClient creates a client for the API at baseURL.
func NewGoogleClient(baseURL, apiKey string, timeout time.Duration, maxRetries uint64, log *logger.Logger, opts ...GoogleOption) *GoogleClient {
	g := &GoogleClient{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		apiKey:     apiKey,
		maxRetries: maxRetries,
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 200 * time.Millisecond
			b.MaxInterval = 2 * time.Second
			return b
		},
		tracer: otel.Tracer("github.com/dtroode/georegions-server/internal/geocoding"),
		log:    log,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// Forward returns the coordinates of the first match for address.
func (g *GoogleClient) Forward(ctx context.Context, address string) (model.Point, error) {
	params := url.Values{}
	params.Set("address", address)

	result, err := g.lookup(ctx, directionForward, params)
	if err != nil {
		return model.Point{}, err
	}

	p := model.Point{Lat: result.Geometry.Location.Lat, Lng: result.Geometry.Location.Lng}
	if err := p.Validate(); err != nil {
		return model.Point{}, fmt.Errorf("%w: provider returned invalid coordinates", model.ErrResolution)
	}
	return p, nil
}

// Reverse returns the formatted address of the first match for p.
func (g *GoogleClient) Reverse(ctx context.Context, p model.Point) (string, error) {
	params := url.Values{}
	params.Set("latlng", p.String())

	result, err := g.lookup(ctx, directionReverse, params)
	if err != nil {
		return "", err
	}
	if result.FormattedAddress == "" {
		return "", errNoResult
	}
	return result.FormattedAddress, nil
}

func (g *GoogleClient) lookup(ctx context.Context, direction string, params url.Values) (geocodeResult, error) {
	ctx, span := g.tracer.Start(ctx, "geocoding."+direction,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("geocoding.direction", direction)),
	)
	defer span.End()

	start := time.Now()
	params.Set("key", g.apiKey)

	var (
		result   geocodeResult
		attempts int
	)
	operation := func() error {
		attempts++
		r, err := g.call(ctx, params)
		if err != nil {
			return err
		}
		result = r
		return nil
	}

	b := backoff.WithContext(backoff.WithMaxRetries(g.newBackOff(), g.maxRetries), ctx)
	err := backoff.RetryNotify(operation, b, func(err error, wait time.Duration) {
		g.log.Debug("Geocoder: retrying", "direction", direction, "attempt", attempts, "wait", wait, "error", err)
	})
	span.SetAttributes(attribute.Int("geocoding.attempts", attempts))

	switch {
	case err == nil:
		g.metrics.ObserveGeocoderCall(direction, metrics.OutcomeOK, time.Since(start))
		return result, nil
	case errors.Is(err, errNoResult):
		g.metrics.ObserveGeocoderCall(direction, metrics.OutcomeNoResult, time.Since(start))
		span.SetStatus(codes.Error, "no result")
		return geocodeResult{}, err
	default:
		g.metrics.ObserveGeocoderCall(direction, metrics.OutcomeError, time.Since(start))
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		g.log.Warn("Geocoder: lookup failed", "direction", direction, "attempts", attempts, "error", err)
		if errors.Is(err, model.ErrResolution) {
			return geocodeResult{}, err
		}
		return geocodeResult{}, fmt.Errorf("%w: %v", model.ErrResolution, err)
	}
}

// call performs one request. Errors wrapped in backoff.Permanent stop the
// retry loop; the rest are transient.
func (g *GoogleClient) call(ctx context.Context, params url.Values) (geocodeResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return geocodeResult{}, backoff.Permanent(fmt.Errorf("failed to build request: %w", err))
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return geocodeResult{}, backoff.Permanent(fmt.Errorf("request aborted: %w", err))
		}
		return geocodeResult{}, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return geocodeResult{}, fmt.Errorf("provider returned HTTP %d", resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return geocodeResult{}, backoff.Permanent(fmt.Errorf("provider returned HTTP %d", resp.StatusCode))
	}

	var body geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return geocodeResult{}, backoff.Permanent(fmt.Errorf("failed to decode response: %w", err))
	}

	switch body.Status {
	case statusOK:
		if len(body.Results) == 0 {
			return geocodeResult{}, backoff.Permanent(errNoResult)
		}
		return body.Results[0], nil
	case statusZeroResults:
		return geocodeResult{}, backoff.Permanent(errNoResult)
	case statusOverQueryLimit, statusUnknownError:
		return geocodeResult{}, fmt.Errorf("provider status %s", body.Status)
	default:
		return geocodeResult{}, backoff.Permanent(fmt.Errorf("%w: provider status %s: %s", model.ErrResolution, body.Status, body.ErrorMessage))
	}
}
