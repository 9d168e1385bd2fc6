package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"election-results/core/config"
	"election-results/core/database"
	"election-results/core/feed"
	"election-results/core/storage"
	"election-results/feature/archive"
	"election-results/feature/detail"
	"election-results/feature/export"
	"election-results/feature/races"
	"election-results/feature/store"

	"go.uber.org/zap"
)

// electionYear extracts the year of a YYYY-MM-DD election date.
func electionYear(date string) (int, error) {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return 0, fmt.Errorf("invalid election date %q: %w", date, err)
	}
	return t.Year(), nil
}

// parseYears parses a comma separated year list such as "2020,2022,2024".
func parseYears(list string) ([]int, error) {
	var years []int
	for _, part := range strings.Split(list, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		y, err := strconv.Atoi(part)
		if err != nil || y < 1900 || y > 2999 {
			return nil, fmt.Errorf("invalid year %q", part)
		}
		years = append(years, y)
	}
	if len(years) == 0 {
		return nil, fmt.Errorf("no years given")
	}
	return years, nil
}

func openStore(ctx context.Context, cfg *config.Config, l *zap.Logger) (*store.Store, error) {
	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, err
	}
	st := store.New(db, l)
	if err := st.Migrate(ctx); err != nil {
		return nil, err
	}
	l.Debug("Opened results database", zap.String("driver", cfg.Database.Driver), zap.String("name", cfg.Database.Name))
	return st, nil
}

func openArchive(ctx context.Context, cfg *config.Config, l *zap.Logger) (*archive.Archive, error) {
	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return nil, err
	}
	arc := archive.New(client, cfg.Storage, l)
	if err := arc.EnsureBucket(ctx); err != nil {
		return nil, err
	}
	return arc, nil
}

// run is one fetch cycle and everything produced from it.
type run struct {
	date     string
	year     int
	snapshot *races.Snapshot
	details  []detail.RaceDetail
	files    []export.WrittenFile
}

// collectDetail fetches county detail for the governor and ballot measure races.
func (r *run) collectDetail(ctx context.Context, fetcher detail.Fetcher, workers int, l *zap.Logger) {
	targets := detail.Targets(r.snapshot.Results)
	l.Info("Fetching county detail", zap.Int("races", len(targets)), zap.Int("workers", workers))
	r.details = detail.NewCollector(fetcher, workers, l).Collect(ctx, targets)

	failed := 0
	for _, d := range r.details {
		if d.Err != nil {
			failed++
		}
	}
	if failed > 0 {
		l.Warn("County detail incomplete", zap.Int("failed", failed), zap.Int("races", len(r.details)))
	}
}

// writeFiles writes the result CSVs and one detail CSV per race with counties.
func (r *run) writeFiles(dir string, l *zap.Logger) error {
	ts := export.Timestamp(r.snapshot.FetchedAt)
	files, err := export.WriteResults(dir, ts, r.snapshot.Results)
	if err != nil {
		return fmt.Errorf("write results: %w", err)
	}
	for _, d := range r.details {
		if d.Err != nil {
			continue
		}
		f, err := export.WriteDetail(dir, ts, d)
		if err != nil {
			return fmt.Errorf("write detail for %s: %w", d.Race.Common().RaceID, err)
		}
		if f != nil {
			files = append(files, *f)
		}
	}
	r.files = files

	for _, f := range files {
		l.Info("Wrote CSV", zap.String("type", string(f.Type)), zap.String("path", f.Path), zap.Int("rows", f.Rows))
	}
	return nil
}

// persist saves results, county rows and written files to the store.
func (r *run) persist(ctx context.Context, st *store.Store, l *zap.Logger) error {
	written, err := st.SaveResults(ctx, r.snapshot.Results)
	if err != nil {
		return err
	}
	for table, n := range written {
		l.Info("Saved rows", zap.String("table", table), zap.Int("rows", n))
	}

	counties := 0
	for _, d := range r.details {
		if d.Err != nil || len(d.Counties) == 0 {
			continue
		}
		n, err := st.SaveCountyResults(ctx, d)
		if err != nil {
			return err
		}
		counties += n
	}
	if counties > 0 {
		l.Info("Saved county rows", zap.Int("rows", counties))
	}

	for _, f := range r.files {
		if err := st.RecordExport(ctx, r.year, string(f.Type), f.Path); err != nil {
			return err
		}
	}
	return nil
}

// upload archives the written files and, for live runs, the raw feeds.
func (r *run) upload(ctx context.Context, arc *archive.Archive, withSnapshot bool, l *zap.Logger) error {
	if withSnapshot {
		if _, err := arc.UploadSnapshot(ctx, r.date, r.snapshot.Feeds, r.snapshot.FetchedAt); err != nil {
			return err
		}
	}
	keys, err := arc.UploadFiles(ctx, r.date, r.files)
	l.Info("Archived files", zap.Int("uploaded", len(keys)), zap.Int("files", len(r.files)))
	return err
}

// recordFetch stores the outcome of a fetch attempt. Failures to record are only logged.
func recordFetch(ctx context.Context, st *store.Store, l *zap.Logger, year int, fetchErr error) {
	msg := ""
	if fetchErr != nil {
		msg = fetchErr.Error()
	}
	if err := st.RecordFetch(ctx, year, fetchErr == nil, msg); err != nil {
		l.Error("Failed to record fetch", zap.Int("year", year), zap.Error(err))
	}
}

// liveClient returns a feed client bound to an election date.
func liveClient(cfg feed.Config, date string, l *zap.Logger) *feed.Client {
	return feed.NewClient(cfg, l).WithElectionDate(date)
}
