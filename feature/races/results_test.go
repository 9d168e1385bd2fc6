package races

import (
	"testing"

	"election-results/core/feed"
	"election-results/feature/races/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseDoc(t *testing.T, raw string) *feed.Document {
	t.Helper()
	doc, err := feed.ParseDocument([]byte(raw))
	require.NoError(t, err)
	return doc
}

func TestBuildResultSet_EndToEnd(t *testing.T) {
	progress := parseDoc(t, `{"2024-X-1": `+governorProgress+`}`)
	metadata := parseDoc(t, `{"2024-X-1": `+governorMetadata+`}`)

	rs := BuildResultSet(progress, metadata)

	assert.Equal(t, []Category{CategoryGovernor}, rs.Categories())
	assert.Equal(t, 1, rs.Total())
	assert.Empty(t, rs.Failures)

	races := rs.Races(CategoryGovernor)
	require.Len(t, races, 1)
	race, ok := races[0].(*models.CandidateRace)
	require.True(t, ok)
	assert.Equal(t, "2024-X-1", race.RaceID)
	assert.Equal(t, 0, race.TotalVotes)
	assert.Equal(t, 0, race.RegisteredVoters)

	var names []string
	for _, c := range race.Candidates {
		p, ok := c.(*models.PersonCandidate)
		require.True(t, ok)
		names = append(names, p.FirstName+" "+p.LastName)
	}
	assert.Equal(t, []string{"Jane Doe", "Tom Roe"}, names)
}

func TestBuildResultSet_PartialFailures(t *testing.T) {
	badProgress := `{"statePostal":"NC","stateName":"North Carolina","lastUpdated":"not a time",
		"precinctsReporting":1,"precinctsTotal":2,"precinctsReportingPct":50,"candidates":[]}`

	senateMeta := `{"officeName":"U.S. Senate","officeID":"S","raceType":"General","raceCallStatus":"Called",
		"seatName":"Class II","seatNum":2,"candidates":{"c1":{"first":"Jane","last":"Doe","party":"Dem","ballotOrder":1},
		"c2":{"first":"Tom","last":"Roe","party":"GOP","ballotOrder":2}}}`

	progress := parseDoc(t, `{
		"gov": `+governorProgress+`,
		"bad": `+badProgress+`,
		"orphan": `+governorProgress+`,
		"sen": `+governorProgress+`
	}`)
	metadata := parseDoc(t, `{
		"sen": `+senateMeta+`,
		"bad": `+governorMetadata+`,
		"gov": `+governorMetadata+`,
		"extra": `+governorMetadata+`
	}`)

	rs := BuildResultSet(progress, metadata)

	assert.Equal(t, 2, rs.Total())
	assert.Equal(t, []Category{CategorySenate, CategoryGovernor}, rs.Categories())
	require.Len(t, rs.Failures, 1)
	assert.Equal(t, "bad", rs.Failures[0].RaceID)
	assert.ErrorIs(t, rs.Failures[0].Err, ErrInvalidTimestamp)

	assert.Equal(t, 4, rs.Summary.TotalKeys)
	assert.Equal(t, 1, rs.Summary.Unmatched)
	assert.Equal(t, 3, rs.Summary.Matched)
	assert.Equal(t, 1, rs.Summary.Failed)

	sen, ok := rs.Find("sen")
	require.True(t, ok)
	senate := sen.(*models.CandidateRace)
	require.NotNil(t, senate.SeatNum)
	assert.Equal(t, "2", *senate.SeatNum)

	_, ok = rs.Find("orphan")
	assert.False(t, ok)
}

func TestBuildResultSet_DeterministicOrder(t *testing.T) {
	progress := parseDoc(t, `{"b": `+governorProgress+`, "a": `+governorProgress+`, "c": `+governorProgress+`}`)
	metadata := parseDoc(t, `{"a": `+governorMetadata+`, "b": `+governorMetadata+`, "c": `+governorMetadata+`}`)

	ids := func(rs *ResultSet) []string {
		var out []string
		for _, r := range rs.Races(CategoryGovernor) {
			out = append(out, r.Common().RaceID)
		}
		return out
	}

	first := BuildResultSet(progress, metadata)
	second := BuildResultSet(progress, metadata)
	assert.Equal(t, []string{"b", "a", "c"}, ids(first))
	assert.Equal(t, ids(first), ids(second))
}

func TestNewResultSet(t *testing.T) {
	rs := NewResultSet([]models.RaceRecord{
		&models.BallotMeasure{RaceBase: models.RaceBase{RaceID: "m"}},
		&models.CandidateRace{RaceBase: models.RaceBase{RaceID: "p"}, OfficeID: "P"},
	})

	assert.Equal(t, []Category{CategoryPresidential, CategoryBallotMeasures}, rs.Categories())
	assert.Equal(t, map[Category]int{CategoryPresidential: 1, CategoryBallotMeasures: 1}, rs.Counts())
}
