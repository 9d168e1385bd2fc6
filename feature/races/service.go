package races

import (
	"context"
	"fmt"
	"time"

	"election-results/core/feed"
	"election-results/core/logger"
	"election-results/core/reconcile"

	"go.uber.org/zap"
)

// Fetcher provides the two national feed documents of one election.
type Fetcher interface {
	ElectionDate() string
	FetchFeeds(ctx context.Context) (*feed.Feeds, error)
}

// Snapshot is a reconciled result set together with the feeds it was built from.
type Snapshot struct {
	ElectionDate string
	FetchedAt    time.Time
	Feeds        *feed.Feeds
	Results      *ResultSet
}

// Service fetches and reconciles live results.
type Service struct {
	fetcher Fetcher
	cache   *reconcile.Cache[*Snapshot]
	logger  *zap.Logger
	now     func() time.Time
}

// NewService creates a races service. A zero ttl disables caching.
func NewService(fetcher Fetcher, ttl time.Duration, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		fetcher: fetcher,
		cache:   reconcile.NewCache[*Snapshot](ttl),
		logger:  logger,
		now:     time.Now,
	}
}

// Fetch downloads both feeds and reconciles them, bypassing the cache.
func (s *Service) Fetch(ctx context.Context) (*Snapshot, error) {
	feeds, err := s.fetcher.FetchFeeds(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch feeds: %w", err)
	}

	rs := BuildResultSet(feeds.Progress, feeds.Metadata)
	LogFailures(s.logger, rs)
	s.logger.Info("Reconciled results",
		zap.String("election_date", s.fetcher.ElectionDate()),
		zap.Int("races", rs.Total()),
		zap.Int("unmatched", rs.Summary.Unmatched),
		zap.Int("failed", len(rs.Failures)),
	)

	return &Snapshot{
		ElectionDate: s.fetcher.ElectionDate(),
		FetchedAt:    s.now(),
		Feeds:        feeds,
		Results:      rs,
	}, nil
}

// Current returns the cached snapshot of the bound election, refetching when stale.
// Concurrent callers share a single fetch.
func (s *Service) Current(ctx context.Context) (*Snapshot, error) {
	return s.cache.GetOrBuild(ctx, s.fetcher.ElectionDate(), s.Fetch)
}

// Invalidate drops the cached snapshot.
func (s *Service) Invalidate() {
	s.cache.Invalidate(s.fetcher.ElectionDate())
}

// LogFailures logs every race that could not be reconciled.
func LogFailures(l *zap.Logger, rs *ResultSet) {
	for _, f := range rs.Failures {
		logger.WithRace(l, f.RaceID).Warn("Failed to reconcile race", zap.Error(f.Err))
	}
}
