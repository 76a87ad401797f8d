package tracker

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"resty.dev/v3"

	"github.com/bimakw/wallet-radar/internal/config"
	"github.com/bimakw/wallet-radar/internal/domain/entities"
	"github.com/bimakw/wallet-radar/internal/domain/upstream"
	"github.com/bimakw/wallet-radar/internal/infrastructure/cache"
)

// Client talks to the tracker data API. All outbound calls from all callers
// funnel through a single serialized queue: at most one request is in flight
// at a time and no two requests leave closer together than the configured
// minimum interval. The upstream throttles aggressively enough that
// concurrent bursts are counterproductive, so serialization doubles as
// backpressure.
type Client struct {
	http   *resty.Client
	cfg    config.TrackerConfig
	store  cache.Store
	clock  Clock
	logger *zap.Logger

	// mu serializes the whole request path: pacing wait, request, retries.
	mu     sync.Mutex
	pace   *pacer
	flight singleflight.Group
}

var _ upstream.API = (*Client)(nil)

// Option customizes a Client.
type Option func(*Client)

// WithClock substitutes the clock used for pacing and backoff.
func WithClock(clock Clock) Option {
	return func(c *Client) {
		c.clock = clock
		c.pace = newPacer(clock, c.cfg.MinInterval)
	}
}

// NewClient creates a new tracker API client
func NewClient(cfg config.TrackerConfig, store cache.Store, logger *zap.Logger, opts ...Option) *Client {
	httpClient := resty.New().
		SetBaseURL(cfg.APIURL).
		SetTimeout(cfg.RequestTimeout).
		SetRetryCount(0)
	if cfg.APIKey != "" {
		httpClient.SetHeader("x-api-key", cfg.APIKey)
	}

	c := &Client{
		http:   httpClient,
		cfg:    cfg,
		store:  store,
		clock:  wallClock{},
		logger: logger,
	}
	c.pace = newPacer(c.clock, cfg.MinInterval)

	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Close releases the underlying HTTP client
func (c *Client) Close() error {
	return c.http.Close()
}

// fetch returns the raw response body for the given endpoint and subject,
// serving from the cache when possible. Cache hits take no queue slot.
// Concurrent identical cacheable calls collapse into a single request.
func (c *Client) fetch(ctx context.Context, ep Endpoint, subject string) ([]byte, error) {
	key := cache.Key(string(ep), subject)

	if ep.cacheable() {
		if payload, err := c.store.Get(ctx, key); err == nil {
			cacheHits.WithLabelValues(string(ep)).Inc()
			return payload, nil
		}
	}

	v, err, _ := c.flight.Do(key, func() (interface{}, error) {
		return c.do(ctx, ep, subject)
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

// do performs one upstream call with pacing and bounded retries. Holds the
// queue mutex for its whole duration.
func (c *Client) do(ctx context.Context, ep Endpoint, subject string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var throttled, transport, upstreamFails int
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		c.pace.reserve()

		resp, err := c.http.R().SetContext(ctx).Get(ep.path(subject))
		if err != nil {
			transport++
			if transport > c.cfg.TransportRetries {
				requestsTotal.WithLabelValues(string(ep), "transport_error").Inc()
				return nil, &APIError{Endpoint: ep, Subject: subject,
					Err: fmt.Errorf("%w: %v", ErrTransport, err)}
			}
			c.logger.Warn("Request failed, retrying",
				zap.String("endpoint", string(ep)),
				zap.String("subject", subject),
				zap.Int("attempt", transport),
				zap.Error(err),
			)
			c.clock.Sleep(c.cfg.TransportDelay)
			continue
		}

		status := resp.StatusCode()
		switch {
		case status == http.StatusTooManyRequests:
			throttled++
			if throttled > c.cfg.MaxRetries {
				requestsTotal.WithLabelValues(string(ep), "throttled").Inc()
				return nil, &APIError{Endpoint: ep, Subject: subject, Status: status, Err: ErrThrottled}
			}
			throttleRetries.Inc()
			backoff := time.Duration(throttled) * c.cfg.BackoffStep
			c.logger.Warn("Rate limited, backing off",
				zap.String("endpoint", string(ep)),
				zap.String("subject", subject),
				zap.Int("attempt", throttled),
				zap.Duration("backoff", backoff),
			)
			c.pace.penalize(backoff)

		case status >= 200 && status < 300:
			payload := resp.Bytes()
			requestsTotal.WithLabelValues(string(ep), "ok").Inc()
			if ep.cacheable() {
				if err := c.store.Set(ctx, cache.Key(string(ep), subject), payload); err != nil {
					c.logger.Warn("Failed to cache response", zap.Error(err))
				}
			}
			return payload, nil

		default:
			upstreamFails++
			if upstreamFails > c.cfg.TransportRetries {
				requestsTotal.WithLabelValues(string(ep), "upstream_error").Inc()
				return nil, &APIError{Endpoint: ep, Subject: subject, Status: status,
					Err: fmt.Errorf("%w: status %d", ErrUpstream, status)}
			}
			c.logger.Warn("Upstream returned error status, retrying",
				zap.String("endpoint", string(ep)),
				zap.String("subject", subject),
				zap.Int("status", status),
				zap.Int("attempt", upstreamFails),
			)
			c.clock.Sleep(c.cfg.TransportDelay)
		}
	}
}

// Token fetches token metadata
func (c *Client) Token(ctx context.Context, address string) (*entities.Token, error) {
	raw, err := c.fetch(ctx, EndpointToken, address)
	if err != nil {
		return nil, err
	}
	token := decodeToken(raw)
	token.Address = address
	return token, nil
}

// Holders fetches the token's top-holder list
func (c *Client) Holders(ctx context.Context, address string) ([]entities.Holder, error) {
	raw, err := c.fetch(ctx, EndpointHolders, address)
	if err != nil {
		return nil, err
	}
	return decodeHolders(raw), nil
}

// WalletBasic fetches the wallet's total portfolio value in USD
func (c *Client) WalletBasic(ctx context.Context, wallet string) (float64, error) {
	raw, err := c.fetch(ctx, EndpointWalletBasic, wallet)
	if err != nil {
		return 0, err
	}
	return decodeWalletBasic(raw), nil
}

// WalletTrades fetches the wallet's trade history
func (c *Client) WalletTrades(ctx context.Context, wallet string) ([]entities.TradeRecord, error) {
	raw, err := c.fetch(ctx, EndpointWalletTrades, wallet)
	if err != nil {
		return nil, err
	}
	return decodeTrades(raw), nil
}

// WalletPnL fetches the wallet's PnL report. Returns nil without error when
// the upstream had no usable data for the wallet.
func (c *Client) WalletPnL(ctx context.Context, wallet string) (*entities.PnLReport, error) {
	raw, err := c.fetch(ctx, EndpointWalletPnL, wallet)
	if err != nil {
		return nil, err
	}
	return decodePnL(raw), nil
}

// TopTraders fetches the token's top-trader list
func (c *Client) TopTraders(ctx context.Context, address string) ([]entities.TraderRecord, error) {
	raw, err := c.fetch(ctx, EndpointTopTraders, address)
	if err != nil {
		return nil, err
	}
	return decodeTraders(raw), nil
}

// FirstBuyers fetches the token's first-buyers list
func (c *Client) FirstBuyers(ctx context.Context, address string) ([]entities.FirstBuyer, error) {
	raw, err := c.fetch(ctx, EndpointFirstBuyers, address)
	if err != nil {
		return nil, err
	}
	return decodeFirstBuyers(raw), nil
}
