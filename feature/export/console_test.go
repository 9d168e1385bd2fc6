package export

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"election-results/feature/races"
	"election-results/feature/races/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatRace(t *testing.T) {
	out := FormatRace(governorRace("2024-NC-G", 49.36, false), false)
	lines := strings.Split(out, "\n")

	require.Len(t, lines, 8)
	assert.Equal(t, "North Carolina - Governor", lines[1])
	assert.Equal(t, "AP ID: 2024-NC-G", lines[2])
	assert.Equal(t, "Reporting: 49.4% (1,234/2,500 precincts)", lines[3])
	assert.Equal(t, "Last Updated: 08:04 PM ET", lines[4])
	assert.Equal(t, "Status: Not Called", lines[5])
	assert.Equal(t, fmt.Sprintf("  *%-30s (Dem): %8s votes ( 55.0%%)", "Jane Doe", "1,100"), lines[6])
	assert.Equal(t, fmt.Sprintf("   %-30s (GOP): %8s votes ( 45.0%%)", "Tom Roe", "82"), lines[7])
}

func TestFormatRace_BallotMeasure(t *testing.T) {
	rs := fixtureResultSet()
	measure := rs.Races(races.CategoryBallotMeasures)[0]

	out := FormatRace(measure, true)
	assert.Contains(t, out, "Description: Limit government interference")
	assert.Contains(t, out, "Summary: Short summary")
	assert.Contains(t, out, fmt.Sprintf("  %-32s: %8s votes ( 62.5%%)", "Yes", "10"))

	assert.NotContains(t, FormatRace(measure, false), "Description:")
}

func TestWriteSummary(t *testing.T) {
	var recs []models.RaceRecord
	for i := 0; i < 7; i++ {
		recs = append(recs, governorRace(fmt.Sprintf("g%d", i), float64(i*10), i == 2))
	}
	rs := races.NewResultSet(recs)

	var buf bytes.Buffer
	require.NoError(t, WriteSummary(&buf, rs, 0))
	out := buf.String()

	assert.Contains(t, out, "=== Election Results Summary ===")
	assert.Contains(t, out, "Total Races: 7")
	assert.Contains(t, out, "Governor: 7 races")
	assert.Contains(t, out, "=== Governor ===")
	assert.Contains(t, out, "...and 2 more Governor races")

	// key race first, then by reporting percentage
	order := []string{"AP ID: g2", "AP ID: g6", "AP ID: g5", "AP ID: g4", "AP ID: g3"}
	last := -1
	for _, id := range order {
		idx := strings.Index(out, id)
		require.NotEqual(t, -1, idx, id)
		assert.Greater(t, idx, last, id)
		last = idx
	}
	assert.NotContains(t, out, "AP ID: g1")
	assert.NotContains(t, out, "AP ID: g0")
}

func TestSortForDisplay_DoesNotMutate(t *testing.T) {
	in := []models.RaceRecord{governorRace("a", 10, false), governorRace("b", 90, false)}
	out := SortForDisplay(in)

	assert.Equal(t, "b", out[0].Common().RaceID)
	assert.Equal(t, "a", in[0].Common().RaceID)
}
