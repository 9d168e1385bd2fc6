package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"election-results/feature/detail"
	"election-results/feature/races"
	"election-results/feature/races/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return records
}

func TestTimestamp(t *testing.T) {
	assert.Equal(t, "20241105_200405", Timestamp(time.Date(2024, 11, 5, 20, 4, 5, 0, time.UTC)))
}

func TestWriteResults(t *testing.T) {
	dir := t.TempDir()
	written, err := WriteResults(dir, "20241105_200000", fixtureResultSet())
	require.NoError(t, err)

	require.Len(t, written, 3)
	assert.Equal(t, FileSenate, written[0].Type)
	assert.Equal(t, FileGovernor, written[1].Type)
	assert.Equal(t, FileBallot, written[2].Type)
	assert.Equal(t, filepath.Join(dir, "governor_20241105_200000.csv"), written[1].Path)

	senate := readCSV(t, written[0].Path)
	require.Len(t, senate, 2, "ballot options are not exported for candidate races")
	assert.Equal(t, congressHeaders, senate[0])
	assert.Equal(t, []string{
		"2024-NC-S", "NC", "North Carolina", "S", "Class II", "2",
		"", "2024-11-05T20:04:00-05:00", "0", "0", "0", "", "0",
		"s1", "Ann", "Lee", "Dem", "false", "10", "50",
	}, senate[1])

	governor := readCSV(t, written[1].Path)
	require.Len(t, governor, 3)
	assert.Equal(t, personHeaders, governor[0])
	assert.Equal(t, "60", governor[1][8])
	assert.Equal(t, "Tom", governor[1][11])
	assert.Equal(t, "true", governor[2][14])

	ballot := readCSV(t, written[2].Path)
	require.Len(t, ballot, 3)
	assert.Equal(t, ballotHeaders, ballot[0])
	assert.Equal(t, "Rights", ballot[1][4])
	assert.Equal(t, "Yes", ballot[1][14])
	assert.Equal(t, "62.5", ballot[1][16])

	_, err = os.Stat(filepath.Join(dir, "president_20241105_200000.csv"))
	assert.True(t, os.IsNotExist(err))
}

func TestWriteDetail(t *testing.T) {
	dir := t.TempDir()
	race := governorRace("2024-NC-G", 50, false)
	counties := []models.CountyResult{{
		RaceID: "2024-NC-G", StatePostal: "NC", CountyName: "Wake", CountyFIPS: "37183", CountyID: "183",
		PrecinctsReporting: 1, PrecinctsTotal: 2, PrecinctsReportingPct: 50, LastUpdated: updated,
		CandidateVotes: map[string]models.VoteShare{
			"c1": {VoteCount: 7, VotePct: 70},
			"zz": {VoteCount: 3, VotePct: 30},
		},
		CandidateOrder: []string{"c1", "zz"},
	}}

	file, err := WriteDetail(dir, "20241105_200000", detail.RaceDetail{
		Race: race, Category: races.CategoryGovernor, Counties: counties,
	})
	require.NoError(t, err)
	require.NotNil(t, file)
	assert.Equal(t, filepath.Join(dir, "governor_2024-NC-G_detailed_20241105_200000.csv"), file.Path)
	assert.Equal(t, 2, file.Rows)

	records := readCSV(t, file.Path)
	require.Len(t, records, 3)
	assert.Equal(t, DetailHeaders, records[0])
	assert.Equal(t, "Jane", records[1][13])
	assert.Equal(t, "Dem", records[1][16])
	assert.Equal(t, "", records[2][13], "unknown candidates keep empty names")
	assert.Equal(t, "3", records[2][17])
}

func TestWriteDetail_NoCounties(t *testing.T) {
	file, err := WriteDetail(t.TempDir(), "ts", detail.RaceDetail{
		Race: governorRace("g", 0, false), Category: races.CategoryGovernor,
	})
	assert.NoError(t, err)
	assert.Nil(t, file)

	_, err = WriteDetail(t.TempDir(), "ts", detail.RaceDetail{
		Race: governorRace("g", 0, false), Category: races.CategorySenate,
	})
	assert.Error(t, err)
}
