package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"election-results/core/database"
	"election-results/feature/detail"
	"election-results/feature/export"
	"election-results/feature/races"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// insertBatchSize keeps multi-row inserts below sqlite's bound-variable limit.
const insertBatchSize = 200

// ErrUnknownFile is returned when a CSV file name maps to no table.
var ErrUnknownFile = errors.New("cannot determine table for file")

// Store persists reconciled results and export bookkeeping.
type Store struct {
	db     *gorm.DB
	logger *zap.Logger
	now    func() time.Time
}

// New creates a store over an open connection.
func New(db *gorm.DB, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{db: db, logger: logger, now: time.Now}
}

// DB returns the underlying connection.
func (s *Store) DB() *gorm.DB {
	return s.db
}

// Migrate creates or updates every table.
func (s *Store) Migrate(ctx context.Context) error {
	db := s.db.WithContext(ctx)
	for _, table := range AllTables {
		model, _ := ModelFor(table)
		if err := db.Table(table).AutoMigrate(model); err != nil {
			return fmt.Errorf("migrate %s: %w", table, err)
		}
	}
	return nil
}

// RecordFetch records one fetch attempt for a year.
func (s *Store) RecordFetch(ctx context.Context, year int, success bool, errMsg string) error {
	row := ElectionFetch{Year: year, FetchTimestamp: s.now(), Success: success}
	if errMsg != "" {
		row.ErrorMessage = &errMsg
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("record fetch: %w", err)
	}
	return nil
}

// RecordExport records a file for a year, refreshing the timestamp of a known file.
func (s *Store) RecordExport(ctx context.Context, year int, fileType, path string) error {
	row := CSVExport{Year: year, ExportTimestamp: s.now(), FileType: fileType, FilePath: path}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "year"}, {Name: "file_type"}, {Name: "file_path"}},
		DoUpdates: clause.AssignmentColumns([]string{"export_timestamp"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("record export: %w", err)
	}
	return nil
}

// TableForFileType maps an export family to its table.
func TableForFileType(ft export.FileType) string {
	switch ft {
	case export.FilePresident:
		return TablePresidential
	case export.FileSenate:
		return TableSenate
	case export.FileHouse:
		return TableHouse
	case export.FileGovernor:
		return TableGovernor
	default:
		return TableBallot
	}
}

// SaveResults replaces the rows of every race in the result set, in one transaction.
// It returns the number of rows written per table.
func (s *Store) SaveResults(ctx context.Context, rs *races.ResultSet) (map[string]int, error) {
	byTable := make(map[string][]export.Row)
	for ft, rows := range export.Rows(rs) {
		table := TableForFileType(ft)
		byTable[table] = append(byTable[table], rows...)
	}

	written := make(map[string]int, len(byTable))
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, table := range DataTables {
			rows := byTable[table]
			if len(rows) == 0 {
				continue
			}
			if err := replaceRows(tx, table, rows); err != nil {
				return err
			}
			written[table] = len(rows)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("save results: %w", err)
	}
	return written, nil
}

// SaveCountyResults replaces the county rows of one race.
func (s *Store) SaveCountyResults(ctx context.Context, d detail.RaceDetail) (int, error) {
	rows := export.DetailRows(d.Race, d.Counties)
	if len(rows) == 0 {
		return 0, nil
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return replaceRows(tx, TableCountyResults, rows)
	})
	if err != nil {
		return 0, fmt.Errorf("save county results for %s: %w", d.Race.Common().RaceID, err)
	}
	return len(rows), nil
}

// replaceRows deletes every row of the race ids present in rows, then inserts rows.
func replaceRows(tx *gorm.DB, table string, rows []export.Row) error {
	values := make([]map[string]any, 0, len(rows))
	var ids []string
	seen := make(map[string]struct{})
	for _, row := range rows {
		v := convertRow(table, row)
		values = append(values, v)
		id := row["race_id"]
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}

	if err := tx.Exec(fmt.Sprintf("DELETE FROM %s WHERE race_id IN ?", tx.Statement.Quote(table)), ids).Error; err != nil {
		return fmt.Errorf("delete from %s: %w", table, err)
	}
	for start := 0; start < len(values); start += insertBatchSize {
		end := min(start+insertBatchSize, len(values))
		if err := tx.Table(table).Create(values[start:end]).Error; err != nil {
			return fmt.Errorf("insert into %s: %w", table, err)
		}
	}
	return nil
}

// Clear empties every data table. Fetch and export history is kept.
func (s *Store) Clear(ctx context.Context) ([]string, error) {
	var cleared []string
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, table := range DataTables {
			if !tx.Migrator().HasTable(table) {
				continue
			}
			if err := tx.Exec("DELETE FROM " + tx.Statement.Quote(table)).Error; err != nil {
				return fmt.Errorf("clear %s: %w", table, err)
			}
			cleared = append(cleared, table)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("Cleared data tables", zap.Strings("tables", cleared))
	return cleared, nil
}

// CandidateRows returns the rows of a race table, optionally restricted to one year.
func (s *Store) CandidateRows(ctx context.Context, table string, year int) ([]RaceRow, error) {
	var rows []RaceRow
	q := s.db.WithContext(ctx).Table(table)
	if year > 0 {
		q = q.Where("race_id LIKE ?", fmt.Sprintf("%d%%", year))
	}
	if err := q.Order("race_id, candidate_id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("query %s: %w", table, err)
	}
	return rows, nil
}

// MeasureRows returns ballot measure rows, optionally restricted to one year.
func (s *Store) MeasureRows(ctx context.Context, year int) ([]BallotMeasureRow, error) {
	var rows []BallotMeasureRow
	q := s.db.WithContext(ctx).Model(&BallotMeasureRow{})
	if year > 0 {
		q = q.Where("race_id LIKE ?", fmt.Sprintf("%d%%", year))
	}
	if err := q.Order("race_id, candidate_id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("query %s: %w", TableBallot, err)
	}
	return rows, nil
}

// Races returns the stored rows of a category for the API.
func (s *Store) Races(ctx context.Context, cat races.Category, year int) (any, error) {
	switch cat {
	case races.CategoryBallotMeasures:
		return s.MeasureRows(ctx, year)
	case races.CategoryPresidential:
		return s.CandidateRows(ctx, TablePresidential, year)
	case races.CategorySenate:
		return s.CandidateRows(ctx, TableSenate, year)
	case races.CategoryHouse:
		return s.CandidateRows(ctx, TableHouse, year)
	case races.CategoryGovernor:
		return s.CandidateRows(ctx, TableGovernor, year)
	}
	return nil, fmt.Errorf("category %s is not stored", strings.ToLower(string(cat)))
}

// ColumnsOf returns the live columns of a table via the schema inspector.
func (s *Store) ColumnsOf(table string) (map[string]struct{}, error) {
	return database.ColumnSet(s.db, table)
}

// Exports returns the recorded export files, newest first.
func (s *Store) Exports(ctx context.Context) ([]CSVExport, error) {
	var rows []CSVExport
	if err := s.db.WithContext(ctx).Order("export_timestamp DESC, id DESC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("query %s: %w", TableExports, err)
	}
	return rows, nil
}
