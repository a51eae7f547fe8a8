package siblings

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/wys-platform/project-service/config"
	"github.com/wys-platform/project-service/internal/logging"
	"github.com/wys-platform/project-service/internal/projects/domain"
)

// maxBodyBytes caps a sibling response; larger bodies are treated as not found.
const maxBodyBytes = 1 << 20

// Client performs single reference lookups against the sibling modules.
type Client struct {
	endpoints  map[domain.Kind]config.Endpoint
	httpClient *http.Client
	limiter    *rate.Limiter
	metrics    *Metrics
}

// NewClient creates a client for the endpoints in cfg. A RateLimit of zero
// disables outbound throttling.
func NewClient(cfg config.SiblingsConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	endpoints := make(map[domain.Kind]config.Endpoint, len(cfg.Endpoints))
	for kind, ep := range cfg.Endpoints {
		endpoints[domain.Kind(kind)] = ep
	}

	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		burst := cfg.RateBurst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}

	return &Client{
		endpoints: endpoints,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		limiter: limiter,
		metrics: NewMetrics(),
	}
}

// Metrics exposes the per-kind call counters.
func (c *Client) Metrics() *Metrics {
	return c.metrics
}

// DataURL returns {base_url}{path_prefix}data/{referenceID} for kind.
func (c *Client) DataURL(kind domain.Kind, referenceID int64) (string, error) {
	ep, ok := c.endpoints[kind]
	if !ok {
		return "", fmt.Errorf("no endpoint configured for %s", kind)
	}
	return fmt.Sprintf("%s%sdata/%d", ep.BaseURL(), ep.PathPrefix, referenceID), nil
}

// Lookup fetches one referenced record. credential is forwarded verbatim in
// the Authorization header. Only an HTTP 500 is reported as an upstream
// error; every other failure means the record is treated as absent.
func (c *Client) Lookup(ctx context.Context, kind domain.Kind, referenceID int64, credential string) Result {
	start := time.Now()
	res := c.lookup(ctx, kind, referenceID, credential)
	c.metrics.record(kind, res.Status, time.Since(start))
	return res
}

func (c *Client) lookup(ctx context.Context, kind domain.Kind, referenceID int64, credential string) Result {
	logger := logging.New(ctx)
	op := "sibling_lookup_" + string(kind)

	reqURL, err := c.DataURL(kind, referenceID)
	if err != nil {
		logger.Error(op, err)
		return NotFound()
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			logger.Warnf(op, "rate limiter: %v", err)
			return NotFound()
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		logger.Error(op, err)
		return NotFound()
	}
	if credential != "" {
		req.Header.Set("Authorization", credential)
	}
	req.Header.Set("Accept", "application/json")
	if rid := logging.RequestID(ctx); rid != "" {
		req.Header.Set("X-Request-Id", rid)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Warnf(op, "ref=%d request failed: %v", referenceID, err)
		return NotFound()
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
		if err != nil {
			logger.Warnf(op, "ref=%d read body: %v", referenceID, err)
			return NotFound()
		}
		if len(body) > maxBodyBytes {
			logger.Warnf(op, "ref=%d body too large (over %d bytes)", referenceID, maxBodyBytes)
			return NotFound()
		}
		payload, err := decodePayload(body)
		if err != nil {
			logger.Warnf(op, "ref=%d malformed body: %v", referenceID, err)
			return NotFound()
		}
		return Found(payload)
	case http.StatusInternalServerError:
		logger.Warnf(op, "ref=%d upstream returned status %d", referenceID, resp.StatusCode)
		return Upstream(kind)
	default:
		logger.Debugf(op, "ref=%d upstream returned status %d", referenceID, resp.StatusCode)
		return NotFound()
	}
}
