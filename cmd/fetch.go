package cmd

import (
	"os"

	"election-results/feature/archive"
	"election-results/feature/export"
	"election-results/feature/races"
	"election-results/feature/store"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	saveFlag    bool
	detailFlag  bool
	dbSaveFlag  bool
	uploadFlag  bool
	replayFlag  bool
	dataDirFlag string
	dateFlag    string
	limitFlag   int
)

// fetchCmd fetches, reconciles and prints one election.
var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch and reconcile the live results",
	Long: `Fetches the national progress and metadata feeds, reconciles them and prints a summary.

Examples:
  # Print the summary only
  fetch

  # Write CSV files and county detail into ./data
  fetch --save

  # Store the results and archive the feeds and files
  fetch --save --db --upload

  # Re-run the pipeline on the newest archived snapshot
  fetch --replay --date 2024-11-05`,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().BoolVar(&saveFlag, "save", false, "Write CSV files into the data directory")
	fetchCmd.Flags().StringVar(&dataDirFlag, "data-dir", "", "Directory for CSV files (default DATA_DIR)")
	fetchCmd.Flags().BoolVar(&detailFlag, "detail", true, "Also fetch county detail for governor races and ballot measures")
	fetchCmd.Flags().BoolVar(&dbSaveFlag, "db", false, "Persist results and exports to the database")
	fetchCmd.Flags().BoolVar(&uploadFlag, "upload", false, "Archive the feeds and written files to object storage")
	fetchCmd.Flags().BoolVar(&replayFlag, "replay", false, "Reconcile the newest archived snapshot instead of the live feeds")
	fetchCmd.Flags().StringVar(&dateFlag, "date", "", "Election date YYYY-MM-DD (default FEED_ELECTION_DATE)")
	fetchCmd.Flags().IntVar(&limitFlag, "limit", 0, "Races printed per category (default DATA_CONSOLE_LIMIT)")

	RootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, l, err := bootstrap()
	if err != nil {
		return err
	}
	defer l.Sync()

	date := cfg.Feed.ElectionDate
	if dateFlag != "" {
		date = dateFlag
	}
	year, err := electionYear(date)
	if err != nil {
		return err
	}
	dataDir := cfg.Data.Dir
	if dataDirFlag != "" {
		dataDir = dataDirFlag
	}
	limit := cfg.Data.ConsoleLimit
	if limitFlag > 0 {
		limit = limitFlag
	}

	live := liveClient(cfg.Feed, date, l)
	var fetcher races.Fetcher = live

	var arc *archive.Archive
	if uploadFlag || replayFlag {
		if arc, err = openArchive(ctx, cfg, l); err != nil {
			return err
		}
	}
	if replayFlag {
		fetcher = archive.NewSnapshotFetcher(arc, date)
	}

	var st *store.Store
	if dbSaveFlag {
		if st, err = openStore(ctx, cfg, l); err != nil {
			return err
		}
	}

	l.Info("Fetching election results", zap.String("election_date", date), zap.Bool("replay", replayFlag))
	snap, err := races.NewService(fetcher, 0, l).Fetch(ctx)
	if st != nil && !replayFlag {
		recordFetch(ctx, st, l, year, err)
	}
	if err != nil {
		return err
	}

	if err := export.WriteSummary(os.Stdout, snap.Results, limit); err != nil {
		return err
	}

	r := &run{date: date, year: year, snapshot: snap}
	if detailFlag && (saveFlag || st != nil) {
		// County detail is only available from the live feed.
		r.collectDetail(ctx, live, cfg.Feed.Workers(), l)
	}
	if saveFlag {
		l.Info("Saving results", zap.String("data_dir", dataDir))
		if err := r.writeFiles(dataDir, l); err != nil {
			return err
		}
	}
	if st != nil {
		if err := r.persist(ctx, st, l); err != nil {
			return err
		}
	}
	if uploadFlag {
		if err := r.upload(ctx, arc, !replayFlag, l); err != nil {
			return err
		}
	}
	return nil
}
