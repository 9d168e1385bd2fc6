package feed

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feeds is one fetch cycle of the two national documents.
type Feeds struct {
	Progress *Document
	Metadata *Document
}

// Getter performs a single GET and returns the body.
type Getter interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

// Client fetches feed documents for one election date.
type Client struct {
	cfg    Config
	getter Getter
	logger *zap.Logger
	sleep  func(ctx context.Context, d time.Duration) error
}

// NewClient creates a feed client using the fiber HTTP agent.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	return NewClientWithGetter(cfg, &AgentGetter{Timeout: cfg.Timeout(), UserAgent: cfg.UserAgent}, logger)
}

// NewClientWithGetter creates a feed client over an arbitrary transport.
func NewClientWithGetter(cfg Config, getter Getter, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{cfg: cfg, getter: getter, logger: logger, sleep: sleepContext}
}

// WithElectionDate returns a copy of the client bound to another election.
func (c *Client) WithElectionDate(date string) *Client {
	clone := *c
	clone.cfg.ElectionDate = date
	return &clone
}

// ElectionDate returns the election the client is bound to.
func (c *Client) ElectionDate() string {
	return c.cfg.ElectionDate
}

// ProgressURL returns the URL of the progress document.
func (c *Client) ProgressURL() string {
	return joinURL(c.cfg.BaseURL, c.cfg.ElectionDate, c.cfg.ProgressPath)
}

// MetadataURL returns the URL of the metadata document.
func (c *Client) MetadataURL() string {
	return joinURL(c.cfg.BaseURL, c.cfg.ElectionDate, c.cfg.MetadataPath)
}

// DetailURL returns the URL of a race's county detail document.
func (c *Client) DetailURL(state, raceID string) string {
	path := strings.NewReplacer("{state}", state, "{race}", raceID).Replace(c.cfg.DetailPath)
	return joinURL(c.cfg.BaseURL, c.cfg.ElectionDate, path)
}

// FetchFeeds fetches the progress and metadata documents.
func (c *Client) FetchFeeds(ctx context.Context) (*Feeds, error) {
	progress, err := c.FetchDocument(ctx, c.ProgressURL())
	if err != nil {
		return nil, fmt.Errorf("failed to fetch progress feed: %w", err)
	}
	metadata, err := c.FetchDocument(ctx, c.MetadataURL())
	if err != nil {
		return nil, fmt.Errorf("failed to fetch metadata feed: %w", err)
	}
	return &Feeds{Progress: progress, Metadata: metadata}, nil
}

// FetchDetail fetches the county detail document of one race.
func (c *Client) FetchDetail(ctx context.Context, state, raceID string) (*Document, error) {
	return c.FetchDocument(ctx, c.DetailURL(state, raceID))
}

// FetchDocument GETs a URL with retries and decodes it as a feed document.
// A body that is not a JSON object is not retried.
func (c *Client) FetchDocument(ctx context.Context, url string) (*Document, error) {
	var lastErr error
	for attempt := 0; attempt <= c.cfg.Retries; attempt++ {
		if attempt > 0 {
			c.logger.Warn("Retrying feed request",
				zap.String("url", url),
				zap.Int("attempt", attempt+1),
				zap.Error(lastErr),
			)
			if err := c.sleep(ctx, c.cfg.RetryDelay()); err != nil {
				return nil, err
			}
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		body, err := c.getter.Get(ctx, url)
		if err != nil {
			lastErr = err
			continue
		}
		doc, err := ParseDocument(body)
		if err != nil {
			return nil, fmt.Errorf("invalid feed document at %s: %w", url, err)
		}
		return doc, nil
	}
	return nil, fmt.Errorf("giving up on %s after %d attempts: %w", url, c.cfg.Retries+1, lastErr)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// AgentGetter performs GETs with the fiber client agent.
type AgentGetter struct {
	Timeout   time.Duration
	UserAgent string
}

// Get implements Getter. Non-2xx responses are errors.
func (g *AgentGetter) Get(ctx context.Context, url string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	agent := fiber.AcquireAgent()
	req := agent.Request()
	req.Header.SetMethod(fiber.MethodGet)
	req.SetRequestURI(url)
	if err := agent.Parse(); err != nil {
		fiber.ReleaseAgent(agent)
		return nil, fmt.Errorf("invalid feed url %s: %w", url, err)
	}

	agent.Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON)
	if g.UserAgent != "" {
		agent.UserAgent(g.UserAgent)
	}
	if g.Timeout > 0 {
		agent.Timeout(g.Timeout)
	}

	// Bytes releases the agent
	code, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return nil, fmt.Errorf("request to %s failed: %w", url, errs[0])
	}
	if code < 200 || code > 299 {
		return nil, fmt.Errorf("request to %s returned status %d", url, code)
	}
	return body, nil
}
