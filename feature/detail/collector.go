package detail

import (
	"context"
	"fmt"

	"election-results/core/feed"
	"election-results/core/logger"
	"election-results/feature/races"
	"election-results/feature/races/models"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DetailCategories are the categories whose races get county breakdowns.
var DetailCategories = []races.Category{
	races.CategoryGovernor,
	races.CategoryBallotMeasures,
}

// Fetcher downloads the detail document of one race.
type Fetcher interface {
	FetchDetail(ctx context.Context, state, raceID string) (*feed.Document, error)
}

// RaceDetail is the county breakdown of one race.
type RaceDetail struct {
	Race     models.RaceRecord
	Category races.Category
	Counties []models.CountyResult
	// Skipped holds reporting units that could not be parsed.
	Skipped []error
	// Err is set when the detail document could not be fetched.
	Err error
}

// Collector fetches county detail with a bounded number of concurrent requests.
type Collector struct {
	fetcher Fetcher
	workers int
	logger  *zap.Logger
}

// NewCollector creates a collector with at most workers fetches in flight.
func NewCollector(fetcher Fetcher, workers int, logger *zap.Logger) *Collector {
	if workers < 1 {
		workers = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Collector{fetcher: fetcher, workers: workers, logger: logger}
}

// Targets returns the races of the detail categories, in canonical category order.
func Targets(rs *races.ResultSet) []models.RaceRecord {
	var out []models.RaceRecord
	for _, cat := range DetailCategories {
		out = append(out, rs.Races(cat)...)
	}
	return out
}

// Collect fetches and parses detail for every race. The output has one entry per input race,
// in input order. A failure only affects its own entry.
func (c *Collector) Collect(ctx context.Context, records []models.RaceRecord) []RaceDetail {
	results := make([]RaceDetail, len(records))

	g := new(errgroup.Group)
	g.SetLimit(c.workers)
	for i, record := range records {
		results[i] = RaceDetail{Race: record, Category: races.CategoryOf(record)}
		if err := ctx.Err(); err != nil {
			results[i].Err = err
			continue
		}
		g.Go(func() error {
			c.collectOne(ctx, &results[i])
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func (c *Collector) collectOne(ctx context.Context, out *RaceDetail) {
	base := out.Race.Common()
	l := logger.WithRace(c.logger, base.RaceID)

	doc, err := c.fetcher.FetchDetail(ctx, base.StatePostal, base.RaceID)
	if err != nil {
		out.Err = fmt.Errorf("fetch detail: %w", err)
		l.Warn("Failed to fetch county detail", zap.Error(err))
		return
	}

	out.Counties, out.Skipped = ParseDetail(base.RaceID, base.StatePostal, doc)
	for _, err := range out.Skipped {
		l.Warn("Skipped reporting unit", zap.Error(err))
	}
	l.Debug("Fetched county detail", zap.Int("counties", len(out.Counties)))
}
