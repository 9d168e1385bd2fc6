package export

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"election-results/feature/races"
	"election-results/feature/races/models"

	"github.com/dustin/go-humanize"
)

// DefaultConsoleLimit is the number of races printed per category.
const DefaultConsoleLimit = 5

const separator = "--------------------------------------------------------------------------------"

// WriteSummary prints the result set: overall counts, then the top races of every category.
func WriteSummary(w io.Writer, rs *races.ResultSet, limit int) error {
	if limit <= 0 {
		limit = DefaultConsoleLimit
	}

	var b strings.Builder
	b.WriteString("\n=== Election Results Summary ===\n")
	fmt.Fprintf(&b, "Total Races: %d\n", rs.Total())
	for _, cat := range rs.Categories() {
		fmt.Fprintf(&b, "%s: %d races\n", cat, len(rs.Races(cat)))
	}

	for _, cat := range rs.Categories() {
		fmt.Fprintf(&b, "\n\n=== %s ===\n", cat)

		sorted := SortForDisplay(rs.Races(cat))
		shown := sorted
		if len(shown) > limit {
			shown = shown[:limit]
		}
		for _, race := range shown {
			b.WriteString(FormatRace(race, cat == races.CategoryBallotMeasures))
			b.WriteString("\n" + separator + "\n")
		}
		if rest := len(sorted) - len(shown); rest > 0 {
			fmt.Fprintf(&b, "...and %d more %s races\n", rest, cat)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// SortForDisplay orders races key races first, then by reporting percentage descending.
// The input slice is not modified.
func SortForDisplay(in []models.RaceRecord) []models.RaceRecord {
	out := make([]models.RaceRecord, len(in))
	copy(out, in)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Common(), out[j].Common()
		if a.KeyRace != b.KeyRace {
			return a.KeyRace
		}
		return a.PrecinctsReportingPct > b.PrecinctsReportingPct
	})
	return out
}

// SortCandidates orders candidates by vote percentage descending.
func SortCandidates(in []models.Candidate) []models.Candidate {
	out := make([]models.Candidate, len(in))
	copy(out, in)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Common().VotePct > out[j].Common().VotePct
	})
	return out
}

// FormatRace renders one race block.
func FormatRace(record models.RaceRecord, showDescription bool) string {
	r := record.Common()
	lines := []string{
		"",
		fmt.Sprintf("%s - %s", r.StateName, r.OfficeName),
		fmt.Sprintf("AP ID: %s", r.RaceID),
	}

	if m, ok := record.(*models.BallotMeasure); ok && showDescription {
		if m.Description != m.OfficeName {
			lines = append(lines, "Description: "+m.Description)
		}
		if m.Summary != "" {
			lines = append(lines, "Summary: "+m.Summary)
		}
	}

	lines = append(lines,
		fmt.Sprintf("Reporting: %.1f%% (%s/%s precincts)",
			r.PrecinctsReportingPct, humanize.Comma(int64(r.PrecinctsReporting)), humanize.Comma(int64(r.PrecinctsTotal))),
		fmt.Sprintf("Last Updated: %s ET", r.LastUpdated.Format("03:04 PM")),
		fmt.Sprintf("Status: %s", r.RaceCallStatus),
	)

	for _, c := range SortCandidates(r.Candidates) {
		lines = append(lines, formatCandidate(c))
	}
	return strings.Join(lines, "\n")
}

func formatCandidate(c models.Candidate) string {
	base := c.Common()
	votes := fmt.Sprintf("%8s votes (%5.1f%%)", humanize.Comma(int64(base.VoteCount)), base.VotePct)

	if p, ok := c.(*models.PersonCandidate); ok {
		marker := " "
		if p.Incumbent {
			marker = "*"
		}
		return fmt.Sprintf("  %s%-30s (%-3s): %s", marker, p.DisplayName(), p.Party, votes)
	}
	return fmt.Sprintf("  %-32s: %s", c.DisplayName(), votes)
}
