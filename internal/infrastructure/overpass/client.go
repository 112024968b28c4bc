package overpass

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/metro-parking/internal/config"
	"github.com/metro-parking/internal/domain"
	"github.com/metro-parking/internal/domain/repository"
	"github.com/metro-parking/internal/pkg/metrics"
)

type client struct {
	httpClient   *http.Client
	mirrors      []string
	queryTimeout time.Duration
	maxRetries   int
	backoffBase  time.Duration
	logger       *zap.Logger
}

// NewClient creates a geodata repository backed by the Overpass API.
// Mirrors are tried in order; each mirror gets bounded retries with
// exponential backoff before falling over to the next one.
func NewClient(cfg *config.OverpassConfig, logger *zap.Logger) repository.GeodataRepository {
	return &client{
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		mirrors:      cfg.Mirrors,
		queryTimeout: cfg.QueryTimeout,
		maxRetries:   cfg.MaxRetries,
		backoffBase:  cfg.BackoffBase,
		logger:       logger,
	}
}

// StationNames returns the unique, sorted subway station names in a city.
func (c *client) StationNames(ctx context.Context, city string) ([]string, error) {
	resp, err := c.execute(ctx, c.stationNamesQuery(city))
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	for _, el := range resp.Elements {
		if name, ok := el.Tags["name"]; ok && name != "" {
			seen[name] = struct{}{}
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)

	c.logger.Debug("Station names fetched",
		zap.String("city", city),
		zap.Int("count", len(names)))

	return names, nil
}

// StationLocations returns stations matching name, optionally within a city.
func (c *client) StationLocations(ctx context.Context, name, city string) ([]domain.Station, error) {
	resp, err := c.execute(ctx, c.stationLocationsQuery(name, city))
	if err != nil {
		return nil, err
	}

	stations := make([]domain.Station, 0, len(resp.Elements))
	for _, el := range resp.Elements {
		stationName := el.Tags["name"]
		if stationName == "" {
			stationName = name
		}
		stations = append(stations, domain.Station{
			Name: stationName,
			Lat:  el.Lat,
			Lon:  el.Lon,
		})
	}

	return stations, nil
}

// ParkingGeometries returns raw parking elements around a point.
func (c *client) ParkingGeometries(ctx context.Context, lat, lon float64, radius int, surfaceOnly bool) ([]repository.RawElement, error) {
	resp, err := c.execute(ctx, c.parkingQuery(lat, lon, radius, surfaceOnly))
	if err != nil {
		return nil, err
	}

	elements := make([]repository.RawElement, 0, len(resp.Elements))
	for _, el := range resp.Elements {
		raw := repository.RawElement{
			ID:   el.ID,
			Type: el.Type,
			Lat:  el.Lat,
			Lon:  el.Lon,
			Tags: el.Tags,
		}
		if len(el.Geometry) > 0 {
			raw.Geometry = make([]domain.Coordinate, 0, len(el.Geometry))
			for _, pt := range el.Geometry {
				raw.Geometry = append(raw.Geometry, domain.Coordinate{Lon: pt.Lon, Lat: pt.Lat})
			}
		}
		elements = append(elements, raw)
	}

	return elements, nil
}

// execute posts the query to each mirror in order until one answers.
func (c *client) execute(ctx context.Context, query string) (*response, error) {
	var lastErr error

	for _, mirror := range c.mirrors {
		resp, err := c.executeOnMirror(ctx, mirror, query)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		c.logger.Warn("Mirror failed, trying next",
			zap.String("mirror", mirror),
			zap.Error(err))
	}

	return nil, fmt.Errorf("all overpass mirrors failed: %w", lastErr)
}

// executeOnMirror retries a single mirror with exponential backoff on
// transport errors, 429 and 5xx; other statuses abort immediately.
func (c *client) executeOnMirror(ctx context.Context, mirror, query string) (*response, error) {
	var result *response

	operation := func() error {
		start := time.Now()
		resp, err := c.post(ctx, mirror, query)
		metrics.UpstreamRequestDuration.WithLabelValues(mirror).Observe(time.Since(start).Seconds())
		if err != nil {
			return err
		}
		result = resp
		return nil
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.backoffBase
	b.MaxElapsedTime = 0

	policy := backoff.WithContext(backoff.WithMaxRetries(b, uint64(c.maxRetries)), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *client) post(ctx context.Context, mirror, query string) (*response, error) {
	form := url.Values{"data": {query}}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, mirror, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.UpstreamRequests.WithLabelValues(mirror, "error").Inc()
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer httpResp.Body.Close()

	metrics.UpstreamRequests.WithLabelValues(mirror, strconv.Itoa(httpResp.StatusCode)).Inc()

	if httpResp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(httpResp.Body, 512))
		err := fmt.Errorf("overpass API error: status %d, body: %s", httpResp.StatusCode, string(body))
		if retryableStatus(httpResp.StatusCode) {
			return nil, err
		}
		return nil, backoff.Permanent(err)
	}

	var parsed response
	if err := json.NewDecoder(httpResp.Body).Decode(&parsed); err != nil {
		return nil, backoff.Permanent(fmt.Errorf("failed to decode response: %w", err))
	}

	return &parsed, nil
}

func retryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= 500
}
