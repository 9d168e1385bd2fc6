package store

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
)

// RaceStats are yearly statistics of one candidate race table.
type RaceStats struct {
	Races         int `json:"races"`
	States        int `json:"states"`
	Candidates    int `json:"candidates"`
	UniqueParties int `json:"unique_parties"`
	Incumbents    int `json:"incumbents"`
}

// MeasureStats are yearly ballot measure statistics.
type MeasureStats struct {
	Races      int `json:"races"`
	States     int `json:"states"`
	Options    int `json:"options"`
	Categories int `json:"categories"`
}

// CountyStats are yearly county coverage statistics.
type CountyStats struct {
	Races    int `json:"races"`
	Counties int `json:"counties"`
	States   int `json:"states"`
}

// YearStats groups the statistics of one year.
type YearStats struct {
	Races    map[string]RaceStats `json:"races,omitempty"`
	Measures *MeasureStats        `json:"ballot_measures,omitempty"`
	Counties *CountyStats         `json:"county_details,omitempty"`
}

// Summary describes the contents of the store.
type Summary struct {
	Tables      map[string]int64      `json:"tables"`
	Years       map[string]*YearStats `json:"yearly_stats"`
	Warnings    []string              `json:"warnings,omitempty"`
	Database    string                `json:"database"`
	GeneratedAt time.Time             `json:"generated_at"`
}

var raceTableLabels = map[string]string{
	TablePresidential: "Presidential",
	TableSenate:       "Senate",
	TableHouse:        "House",
	TableGovernor:     "Governor",
}

// Summary collects row counts and per-year statistics. Missing tables produce warnings.
func (s *Store) Summary(ctx context.Context) (*Summary, error) {
	db := s.db.WithContext(ctx)
	sum := &Summary{
		Tables:      make(map[string]int64, len(AllTables)),
		Years:       make(map[string]*YearStats),
		Database:    db.Dialector.Name(),
		GeneratedAt: s.now(),
	}
	warn := func(msg string) {
		s.logger.Warn(msg)
		sum.Warnings = append(sum.Warnings, msg)
	}
	year := func(y string) *YearStats {
		ys, ok := sum.Years[y]
		if !ok {
			ys = &YearStats{}
			sum.Years[y] = ys
		}
		return ys
	}

	for _, table := range AllTables {
		var count int64
		if err := db.Table(table).Count(&count).Error; err != nil {
			warn(fmt.Sprintf("table %s not available: %v", table, err))
		}
		sum.Tables[table] = count
	}

	for _, table := range RaceTables {
		var rows []struct {
			Year       string
			Races      int
			States     int
			Candidates int
			Parties    int
			Incumbents int
		}
		err := db.Raw(fmt.Sprintf(`SELECT SUBSTR(race_id, 1, 4) AS year,
			COUNT(DISTINCT race_id) AS races,
			COUNT(DISTINCT state_postal) AS states,
			COUNT(*) AS candidates,
			COUNT(DISTINCT party) AS parties,
			SUM(CASE WHEN incumbent = 1 THEN 1 ELSE 0 END) AS incumbents
			FROM %s GROUP BY SUBSTR(race_id, 1, 4)`, table)).Scan(&rows).Error
		if err != nil {
			warn(fmt.Sprintf("stats for %s: %v", table, err))
			continue
		}
		for _, r := range rows {
			ys := year(r.Year)
			if ys.Races == nil {
				ys.Races = make(map[string]RaceStats)
			}
			ys.Races[raceTableLabels[table]] = RaceStats{
				Races: r.Races, States: r.States, Candidates: r.Candidates,
				UniqueParties: r.Parties, Incumbents: r.Incumbents,
			}
		}
	}

	var measures []struct {
		Year       string
		Races      int
		States     int
		Options    int
		Categories int
	}
	err := db.Raw(`SELECT SUBSTR(race_id, 1, 4) AS year,
		COUNT(DISTINCT race_id) AS races,
		COUNT(DISTINCT state_postal) AS states,
		COUNT(*) AS options,
		COUNT(DISTINCT category) AS categories
		FROM ` + TableBallot + ` GROUP BY SUBSTR(race_id, 1, 4)`).Scan(&measures).Error
	if err != nil {
		warn(fmt.Sprintf("ballot measure stats: %v", err))
	}
	for _, m := range measures {
		year(m.Year).Measures = &MeasureStats{Races: m.Races, States: m.States, Options: m.Options, Categories: m.Categories}
	}

	var counties []struct {
		Year     string
		Races    int
		Counties int
		States   int
	}
	err = db.Raw(`SELECT SUBSTR(race_id, 1, 4) AS year,
		COUNT(DISTINCT race_id) AS races,
		COUNT(DISTINCT county_fips) AS counties,
		COUNT(DISTINCT state_postal) AS states
		FROM ` + TableCountyResults + ` GROUP BY SUBSTR(race_id, 1, 4)`).Scan(&counties).Error
	if err != nil {
		warn(fmt.Sprintf("county stats: %v", err))
	}
	for _, c := range counties {
		year(c.Year).Counties = &CountyStats{Races: c.Races, Counties: c.Counties, States: c.States}
	}

	s.logger.Debug("Built store summary", zap.Int("years", len(sum.Years)))
	return sum, nil
}

// PrintSummary renders a summary for the terminal.
func PrintSummary(w io.Writer, sum *Summary) error {
	var b strings.Builder
	b.WriteString("\nDatabase Summary\n================\n")
	fmt.Fprintf(&b, "Database: %s\n", sum.Database)
	fmt.Fprintf(&b, "Generated: %s\n", sum.GeneratedAt.Format(time.RFC3339))

	b.WriteString("\nTable Row Counts:\n----------------\n")
	for _, table := range AllTables {
		fmt.Fprintf(&b, "%s: %s rows\n", table, humanize.Comma(sum.Tables[table]))
	}

	b.WriteString("\nYearly Statistics:\n-----------------\n")
	years := make([]string, 0, len(sum.Years))
	for y := range sum.Years {
		years = append(years, y)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(years)))

	for _, y := range years {
		stats := sum.Years[y]
		fmt.Fprintf(&b, "\nYear %s:\n", y)
		for _, table := range RaceTables {
			label := raceTableLabels[table]
			rs, ok := stats.Races[label]
			if !ok {
				continue
			}
			fmt.Fprintf(&b, "  %s:\n", label)
			fmt.Fprintf(&b, "    Races: %s across %d states\n", humanize.Comma(int64(rs.Races)), rs.States)
			fmt.Fprintf(&b, "    Candidates: %s (%d parties)\n", humanize.Comma(int64(rs.Candidates)), rs.UniqueParties)
			fmt.Fprintf(&b, "    Incumbents: %s\n", humanize.Comma(int64(rs.Incumbents)))
		}
		if m := stats.Measures; m != nil {
			b.WriteString("  Ballot Measures:\n")
			fmt.Fprintf(&b, "    Measures: %s across %d states\n", humanize.Comma(int64(m.Races)), m.States)
			fmt.Fprintf(&b, "    Options: %s\n", humanize.Comma(int64(m.Options)))
			fmt.Fprintf(&b, "    Categories: %s\n", humanize.Comma(int64(m.Categories)))
		}
		if c := stats.Counties; c != nil {
			b.WriteString("  County Details:\n")
			fmt.Fprintf(&b, "    Coverage: %s counties in %d states\n", humanize.Comma(int64(c.Counties)), c.States)
			fmt.Fprintf(&b, "    Races with county data: %s\n", humanize.Comma(int64(c.Races)))
		}
	}

	for _, msg := range sum.Warnings {
		fmt.Fprintf(&b, "\nWarning: %s", msg)
	}
	if len(sum.Warnings) > 0 {
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}
