package store

import (
	"strconv"
	"strings"

	"election-results/core/utils"
	"election-results/feature/export"
	"election-results/feature/races/models"
)

var (
	intColumns = map[string]struct{}{
		"precincts_reporting": {}, "precincts_total": {}, "total_votes": {},
		"registered_voters": {}, "vote_count": {},
	}
	floatColumns = map[string]struct{}{
		"precincts_reporting_pct": {}, "expected_vote_pct": {}, "vote_pct": {},
	}
	// nullableStrings become NULL when empty; other strings keep "".
	nullableStrings = map[string]struct{}{
		"office_id": {}, "seat_name": {}, "seat_num": {}, "category": {}, "summary": {},
	}
	countySentinels = map[string]any{
		"county_name": models.UnknownCountyName,
		"county_fips": models.UnknownCountyFIPS,
		"county_id":   models.UnknownCountyID,
		"vote_count":  0,
		"vote_pct":    0.0,
	}
)

// convertRow turns CSV cells into typed column values for table.
func convertRow(table string, row export.Row) map[string]any {
	out := make(map[string]any, len(row))
	county := table == TableCountyResults

	for col, cell := range row {
		cell = strings.TrimSpace(cell)
		if cell == "" {
			if v, ok := countySentinels[col]; ok && county {
				out[col] = v
				continue
			}
		}
		out[col] = convertCell(col, cell, county)
	}

	if county {
		for col, v := range countySentinels {
			if _, ok := out[col]; !ok {
				out[col] = v
			}
		}
	}
	return out
}

func convertCell(col, cell string, county bool) any {
	if col == "incumbent" {
		return utils.ToBool(cell)
	}
	if _, ok := intColumns[col]; ok {
		if cell == "" {
			return nil
		}
		return utils.ToInt(cell)
	}
	if _, ok := floatColumns[col]; ok {
		f, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return nil
		}
		return f
	}
	if col == "last_updated" {
		if t, err := utils.ParseISOTime(cell); err == nil {
			return t
		}
		return cell
	}
	if cell == "" {
		if _, ok := nullableStrings[col]; ok || county {
			return nil
		}
	}
	return cell
}
