package elevation

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"roadtrace/internal/geo"
)

// DefaultURL is the public Open-Elevation lookup endpoint.
const DefaultURL = "https://api.open-elevation.com/api/v1/lookup"

// maxPerRequest keeps query strings well under common URL limits.
const maxPerRequest = 100

// HTTPDoer is the subset of *http.Client the Client needs.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client is an Open-Elevation compatible Provider.
type Client struct {
	baseURL string
	http    HTTPDoer
	limiter *rate.Limiter
}

// NewClient creates a Client throttled to rps requests per second (5 when rps <= 0).
func NewClient(baseURL string, rps int) *Client {
	return NewClientWithHTTPDoer(baseURL, rps, &http.Client{Timeout: 30 * time.Second})
}

// NewClientWithHTTPDoer creates a Client over a custom transport.
func NewClientWithHTTPDoer(baseURL string, rps int, doer HTTPDoer) *Client {
	if baseURL == "" {
		baseURL = DefaultURL
	}
	if rps <= 0 {
		rps = 5
	}
	return &Client{
		baseURL: baseURL,
		http:    doer,
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
	}
}

type lookupResponse struct {
	Results []struct {
		Latitude  float64  `json:"latitude"`
		Longitude float64  `json:"longitude"`
		Elevation *float64 `json:"elevation"`
	} `json:"results"`
}

// Lookup implements Provider. Large requests are split into chunks and the
// results concatenated in order.
func (c *Client) Lookup(ctx context.Context, locations []geo.Vertex) ([]float64, error) {
	if len(locations) == 0 {
		return nil, ErrEmptyResult
	}
	out := make([]float64, 0, len(locations))
	for start := 0; start < len(locations); start += maxPerRequest {
		end := min(start+maxPerRequest, len(locations))
		chunk, err := c.lookupChunk(ctx, locations[start:end])
		if err != nil {
			return nil, err
		}
		out = append(out, chunk...)
	}
	return out, nil
}

func (c *Client) lookupChunk(ctx context.Context, locations []geo.Vertex) ([]float64, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid elevation url: %w", err)
	}
	pairs := make([]string, len(locations))
	for i, v := range locations {
		pairs[i] = v.String()
	}
	q := u.Query()
	q.Set("locations", strings.Join(pairs, "|"))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, fmt.Errorf("elevation rate limit exceeded")
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("elevation API error %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var decoded lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(decoded.Results) == 0 {
		return nil, ErrEmptyResult
	}
	if len(decoded.Results) != len(locations) {
		return nil, fmt.Errorf("%w: sent %d, got %d", ErrLengthMismatch, len(locations), len(decoded.Results))
	}

	elevations := make([]float64, len(decoded.Results))
	for i, r := range decoded.Results {
		if r.Elevation == nil {
			return nil, fmt.Errorf("elevation missing for %s", locations[i])
		}
		elevations[i] = *r.Elevation
	}
	return elevations, nil
}
