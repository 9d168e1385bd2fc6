package store

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"election-results/feature/export"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var yearPattern = regexp.MustCompile(`20\d{2}`)

// TableForFile picks the destination table from a CSV file name.
func TableForFile(path string) (string, bool) {
	name := strings.ToLower(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
	switch {
	case strings.Contains(name, "_detail"):
		return TableCountyResults, true
	case strings.Contains(name, "ballot"):
		return TableBallot, true
	case strings.Contains(name, "house"):
		return TableHouse, true
	case strings.Contains(name, "governor"):
		return TableGovernor, true
	case strings.Contains(name, "senate"):
		return TableSenate, true
	case strings.Contains(name, "president"):
		return TablePresidential, true
	}
	return "", false
}

// YearFromPath resolves the election year of a file: the parent directory name,
// else a leading 4-digit file name prefix, else the first 20xx in the file name.
func YearFromPath(path string) (int, bool) {
	if y, err := strconv.Atoi(filepath.Base(filepath.Dir(path))); err == nil {
		return y, true
	}
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if len(stem) >= 4 {
		if y, err := strconv.Atoi(stem[:4]); err == nil {
			return y, true
		}
	}
	if m := yearPattern.FindString(stem); m != "" {
		y, _ := strconv.Atoi(m)
		return y, true
	}
	return 0, false
}

// LoadCSVFile replaces the rows of the file's race ids in its table and records the file.
// Columns the table does not have are ignored.
func (s *Store) LoadCSVFile(ctx context.Context, path string, year int) (int, error) {
	table, ok := TableForFile(path)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownFile, path)
	}

	rows, err := readRows(path)
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		s.logger.Info("Skipping empty file", zap.String("path", path))
		return 0, nil
	}

	columns, err := s.ColumnsOf(table)
	if err != nil {
		return 0, err
	}
	if len(columns) > 0 {
		dropped := make(map[string]struct{})
		for _, row := range rows {
			for col := range row {
				if _, ok := columns[col]; !ok {
					delete(row, col)
					dropped[col] = struct{}{}
				}
			}
		}
		for col := range dropped {
			s.logger.Warn("Ignoring unknown column", zap.String("path", path), zap.String("column", col))
		}
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return replaceRows(tx, table, rows)
	})
	if err != nil {
		return 0, fmt.Errorf("load %s: %w", path, err)
	}

	if err := s.RecordExport(ctx, year, table, path); err != nil {
		return len(rows), err
	}
	s.logger.Info("Loaded CSV file",
		zap.String("path", path),
		zap.String("table", table),
		zap.Int("rows", len(rows)),
	)
	return len(rows), nil
}

func readRows(path string) ([]export.Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header of %s: %w", path, err)
	}
	for i := range header {
		header[i] = strings.ToLower(strings.TrimSpace(header[i]))
	}

	var rows []export.Row
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		row := make(export.Row, len(header))
		for i, col := range header {
			if i < len(record) {
				row[col] = record[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// LoadReport summarizes a directory load.
type LoadReport struct {
	Files   int               `json:"files"`
	Loaded  int               `json:"loaded"`
	Rows    int               `json:"rows"`
	Skipped []string          `json:"skipped"`
	Failed  map[string]string `json:"failed"`
}

// LoadDirectory loads every CSV below dir. Base files load before detail files.
// A file that fails is reported and the walk continues.
func (s *Store) LoadDirectory(ctx context.Context, dir string) (*LoadReport, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".csv") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", dir, err)
	}

	sort.SliceStable(files, func(i, j int) bool {
		return !isDetailFile(files[i]) && isDetailFile(files[j])
	})

	report := &LoadReport{Files: len(files), Failed: make(map[string]string)}
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		year, ok := YearFromPath(path)
		if !ok {
			s.logger.Warn("Skipping file without a year", zap.String("path", path))
			report.Skipped = append(report.Skipped, path)
			continue
		}
		n, err := s.LoadCSVFile(ctx, path, year)
		if err != nil {
			s.logger.Error("Failed to load CSV file", zap.String("path", path), zap.Error(err))
			report.Failed[path] = err.Error()
			continue
		}
		report.Loaded++
		report.Rows += n
	}
	return report, nil
}

func isDetailFile(path string) bool {
	return strings.Contains(strings.ToLower(filepath.Base(path)), "_detail")
}
