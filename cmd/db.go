package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"election-results/feature/store"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var yesConfirm bool

// dbCmd is the parent command for results database operations.
var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Manage the results database",
}

var dbLoadCmd = &cobra.Command{
	Use:   "load [dir]",
	Short: "Load CSV files from a directory tree into the database",
	Long: `Loads every CSV file below dir (default DATA_DIR). The election year is taken from the
parent folder name, a leading year in the file name, or any 20xx in the file name.
Files without a year are skipped. Result files load before county detail files.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDBLoad,
}

var dbSummaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print row counts and yearly statistics",
	Args:  cobra.NoArgs,
	RunE:  runDBSummary,
}

var dbClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all results; fetch and export history is kept",
	Args:  cobra.NoArgs,
	RunE:  runDBClear,
}

func init() {
	dbClearCmd.Flags().BoolVar(&yesConfirm, "yes", false, "Auto-confirm (non-interactive)")

	dbCmd.AddCommand(dbLoadCmd, dbSummaryCmd, dbClearCmd)
	RootCmd.AddCommand(dbCmd)
}

func runDBLoad(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg, l, err := bootstrap()
	if err != nil {
		return err
	}
	defer l.Sync()

	dir := cfg.Data.Dir
	if len(args) == 1 {
		dir = args[0]
	}

	st, err := openStore(ctx, cfg, l)
	if err != nil {
		return err
	}

	l.Info("Loading CSV files", zap.String("dir", dir))
	report, err := st.LoadDirectory(ctx, dir)
	if err != nil {
		return err
	}

	l.Info("Load finished",
		zap.Int("files", report.Files),
		zap.Int("loaded", report.Loaded),
		zap.String("rows", humanize.Comma(int64(report.Rows))),
		zap.Int("skipped", len(report.Skipped)),
		zap.Int("failed", len(report.Failed)),
	)
	if len(report.Failed) > 0 {
		return fmt.Errorf("%d files failed to load", len(report.Failed))
	}
	return nil
}

func runDBSummary(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg, l, err := bootstrap()
	if err != nil {
		return err
	}
	defer l.Sync()

	st, err := openStore(ctx, cfg, l)
	if err != nil {
		return err
	}
	sum, err := st.Summary(ctx)
	if err != nil {
		return err
	}
	return store.PrintSummary(os.Stdout, sum)
}

func runDBClear(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg, l, err := bootstrap()
	if err != nil {
		return err
	}
	defer l.Sync()

	if !confirmDestructiveAction() {
		l.Warn("Operation cancelled by user. No changes were made.")
		return nil
	}

	st, err := openStore(ctx, cfg, l)
	if err != nil {
		return err
	}
	_, err = st.Clear(ctx)
	return err
}

// confirmDestructiveAction prompts the user for confirmation or uses --yes flag.
func confirmDestructiveAction() bool {
	if yesConfirm {
		return true
	}

	fmt.Print("Type 'yes' to delete all stored results: ")
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	return strings.TrimSpace(response) == "yes"
}
