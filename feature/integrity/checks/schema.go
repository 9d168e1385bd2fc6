package checks

import (
	"errors"
	"reflect"
	"sort"
	"strings"

	"election-results/core/database"
	"election-results/feature/store"

	"gorm.io/gorm"
)

// SchemaReport is the result of comparing the database against the store models.
type SchemaReport struct {
	Dialect string                 `json:"dialect"`
	Matched bool                   `json:"matched"`
	Tables  map[string]TableReport `json:"tables"`
	Errors  []string               `json:"errors"`
}

// TableReport describes one table.
type TableReport struct {
	Exists         bool     `json:"exists"`
	MissingColumns []string `json:"missing_columns"`
	Status         string   `json:"status"` // "ok", "error"
}

// MissingTables returns the tables that do not exist, sorted.
func (r *SchemaReport) MissingTables() []string {
	var missing []string
	for name, tbl := range r.Tables {
		if !tbl.Exists {
			missing = append(missing, name)
		}
	}
	sort.Strings(missing)
	return missing
}

// CheckSchema verifies every store table using the gorm models as the source of truth.
func CheckSchema(db *gorm.DB) (*SchemaReport, error) {
	if db == nil {
		return nil, errors.New("database connection is nil")
	}

	report := &SchemaReport{
		Dialect: db.Dialector.Name(),
		Matched: true,
		Tables:  make(map[string]TableReport, len(store.AllTables)),
		Errors:  []string{},
	}

	for _, table := range store.AllTables {
		model, _ := store.ModelFor(table)

		actual, err := database.GetTableColumns(db, table)
		if err != nil {
			// MySQL reports a missing table as an error.
			report.Errors = append(report.Errors, err.Error())
			report.Tables[table] = TableReport{MissingColumns: []string{}, Status: "error"}
			report.Matched = false
			continue
		}

		tbl := TableReport{
			Exists:         len(actual) > 0,
			MissingColumns: []string{},
			Status:         "ok",
		}
		present := make(map[string]struct{}, len(actual))
		for _, col := range actual {
			present[col.Field] = struct{}{}
		}
		for _, col := range modelColumns(model) {
			if _, ok := present[col]; !ok {
				tbl.MissingColumns = append(tbl.MissingColumns, col)
			}
		}
		if !tbl.Exists || len(tbl.MissingColumns) > 0 {
			tbl.Status = "error"
			report.Matched = false
		}
		report.Tables[table] = tbl
	}

	return report, nil
}

// modelColumns lists the column names declared in the gorm tags of a model.
func modelColumns(model any) []string {
	t := reflect.TypeOf(model)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	var cols []string
	for i := 0; i < t.NumField(); i++ {
		if col := parseGormColumn(t.Field(i).Tag.Get("gorm")); col != "" {
			cols = append(cols, col)
		}
	}
	return cols
}

func parseGormColumn(tag string) string {
	for _, p := range strings.Split(tag, ";") {
		if strings.HasPrefix(p, "column:") {
			return strings.TrimPrefix(p, "column:")
		}
	}
	return ""
}
