package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"election-results/core/feed"
	"election-results/feature/races"
	"election-results/feature/store"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	yearsFlag         string
	historyDetailFlag bool
	historyDirFlag    string
)

// historyCmd fetches several past elections into per-year folders.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Fetch historical elections into per-year CSV folders",
	Long: `Fetches the general election of every requested year, writes its CSV files into
<data-dir>/<year>/ and records every attempt in the election_fetches table.

Examples:
  history --years 2020,2022,2024`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().StringVar(&yearsFlag, "years", "2020,2022,2024", "Comma separated election years")
	historyCmd.Flags().StringVar(&historyDirFlag, "data-dir", "", "Base directory for CSV files (default DATA_DIR)")
	historyCmd.Flags().BoolVar(&historyDetailFlag, "detail", false, "Also fetch county detail for governor races and ballot measures")

	RootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	years, err := parseYears(yearsFlag)
	if err != nil {
		return err
	}

	cfg, l, err := bootstrap()
	if err != nil {
		return err
	}
	defer l.Sync()

	st, err := openStore(ctx, cfg, l)
	if err != nil {
		return err
	}
	baseDir := cfg.Data.Dir
	if historyDirFlag != "" {
		baseDir = historyDirFlag
	}

	// Attempts are counted per election; single requests are not retried again.
	attempts := cfg.Feed.Retries + 1
	feedCfg := cfg.Feed
	feedCfg.Retries = 0

	var failed []int
	for _, year := range years {
		date := feed.ElectionDate(year)
		yl := l.With(zap.Int("year", year), zap.String("election_date", date))
		client := liveClient(feedCfg, date, yl)

		snap, err := fetchWithRetries(ctx, client, st, year, attempts, cfg.Feed.RetryDelay(), yl)
		if err != nil {
			yl.Error("Giving up on election", zap.Error(err))
			failed = append(failed, year)
			continue
		}

		r := &run{date: date, year: year, snapshot: snap}
		if historyDetailFlag {
			r.collectDetail(ctx, client, cfg.Feed.Workers(), yl)
		}
		if err := r.writeFiles(filepath.Join(baseDir, strconv.Itoa(year)), yl); err != nil {
			return err
		}
		for _, f := range r.files {
			if err := st.RecordExport(ctx, year, string(f.Type), f.Path); err != nil {
				return err
			}
		}
		yl.Info("Election fetched", zap.Int("races", snap.Results.Total()), zap.Int("files", len(r.files)))
	}

	if len(failed) > 0 {
		return fmt.Errorf("failed to fetch %d of %d elections: %v", len(failed), len(years), failed)
	}
	return nil
}

// fetchWithRetries fetches one election, recording every attempt.
func fetchWithRetries(ctx context.Context, fetcher races.Fetcher, st *store.Store, year, attempts int, delay time.Duration, l *zap.Logger) (*races.Snapshot, error) {
	svc := races.NewService(fetcher, 0, l)

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			l.Warn("Retrying election fetch", zap.Int("attempt", attempt), zap.Error(lastErr))
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}

		snap, err := svc.Fetch(ctx)
		recordFetch(ctx, st, l, year, err)
		if err == nil {
			return snap, nil
		}
		lastErr = err
	}
	return nil, lastErr
}
