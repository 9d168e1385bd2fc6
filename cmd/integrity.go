package cmd

import (
	"context"
	"errors"

	"election-results/core/database"
	"election-results/core/storage"
	"election-results/feature/integrity"
	"election-results/feature/store"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var fixFlag bool

// integrityCmd represents the integrity command
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Check the archive bucket and the results database",
	Long: `Checks that the archive bucket has its exports and snapshots folders, that every results
table matches its model, and that recorded exports were archived. --fix creates missing
folders and migrates the schema.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), fixFlag)
	},
}

func init() {
	integrityCmd.Flags().BoolVar(&fixFlag, "fix", false, "Create missing folders and migrate the schema")
	RootCmd.AddCommand(integrityCmd)
}

func runIntegrityChecks(ctx context.Context, fix bool) error {
	cfg, logg, err := bootstrap()
	if err != nil {
		return err
	}
	defer logg.Sync()

	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return err
	}

	// Connect to Database (Optional)
	var db *gorm.DB
	if conn, err := database.Connect(cfg.Database); err != nil {
		logg.Warn("Optional database connection failed", zap.Error(err))
	} else {
		db = conn
	}

	svc := integrity.NewService(client, cfg.Storage, db, logg)
	healthy := true

	logg.Info("Checking archive structure...", zap.String("bucket", cfg.Storage.Bucket))
	missing, err := svc.CheckStructure(ctx)
	if err != nil {
		if !fix {
			return err
		}
		logg.Warn("Structure check failed", zap.Error(err))
		missing = svc.RequiredFolders()
	}
	if len(missing) == 0 {
		logg.Info("Structure is intact.")
	} else if fix {
		logg.Info("Fixing missing folders...", zap.Strings("missing", missing))
		if err := svc.FixStructure(ctx, missing); err != nil {
			return err
		}
		logg.Info("Structure fixed successfully.")
	} else {
		healthy = false
		logg.Warn("Missing folders detected", zap.Strings("missing", missing))
		logg.Info("Run with --fix to create missing folders.")
	}

	logg.Info("Checking database schema...")
	report, err := svc.CheckSchema()
	switch {
	case errors.Is(err, integrity.ErrNoDatabase):
		logg.Warn("Skipping database checks", zap.Error(err))
		return summarize(logg, healthy)
	case err != nil:
		return err
	}
	if !report.Matched && fix {
		logg.Info("Migrating schema...", zap.Strings("missing_tables", report.MissingTables()))
		if err := svc.FixSchema(ctx); err != nil {
			return err
		}
		if report, err = svc.CheckSchema(); err != nil {
			return err
		}
	}
	if report.Matched {
		logg.Info("Schema matches the models.", zap.String("dialect", report.Dialect))
	} else {
		healthy = false
		for table, tbl := range report.Tables {
			if tbl.Status == "ok" {
				continue
			}
			if !tbl.Exists {
				logg.Warn("Missing table", zap.String("table", table))
			} else if len(tbl.MissingColumns) > 0 {
				logg.Warn("Missing columns", zap.String("table", table), zap.Strings("columns", tbl.MissingColumns))
			}
		}
		for _, e := range report.Errors {
			logg.Error("Inspection error", zap.String("error", e))
		}
	}

	if report.Tables[store.TableExports].Exists {
		logg.Info("Checking archived exports...")
		missingExports, err := svc.CheckExports(ctx)
		if err != nil {
			return err
		}
		if len(missingExports) > 0 {
			healthy = false
			logg.Warn("Recorded exports missing from archive", zap.Strings("keys", missingExports))
		} else {
			logg.Info("All recorded exports are archived.")
		}
	}

	return summarize(logg, healthy)
}

func summarize(l *zap.Logger, healthy bool) error {
	if !healthy {
		return errors.New("integrity checks found problems")
	}
	l.Info("All integrity checks passed.")
	return nil
}
