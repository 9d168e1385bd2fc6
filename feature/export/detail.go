package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"election-results/feature/detail"
	"election-results/feature/races"
	"election-results/feature/races/models"
)

// DetailFileType maps a detail category to the file name prefix of its county exports.
func DetailFileType(cat races.Category) (FileType, bool) {
	switch cat {
	case races.CategoryGovernor:
		return FileGovernor, true
	case races.CategoryBallotMeasures:
		return FileBallot, true
	}
	return "", false
}

// DetailRows flattens county results into one row per county and candidate.
// Candidate names and party are resolved from the reconciled race.
func DetailRows(race models.RaceRecord, counties []models.CountyResult) []Row {
	byID := make(map[string]models.Candidate)
	for _, c := range race.Common().Candidates {
		byID[c.Common().CandidateID] = c
	}

	var rows []Row
	for _, county := range counties {
		for _, id := range county.CandidateOrder {
			share := county.CandidateVotes[id]
			row := Row{
				"race_id":                 county.RaceID,
				"state_postal":            county.StatePostal,
				"county_name":             county.CountyName,
				"county_fips":             county.CountyFIPS,
				"county_id":               county.CountyID,
				"precincts_reporting":     strconv.Itoa(county.PrecinctsReporting),
				"precincts_total":         strconv.Itoa(county.PrecinctsTotal),
				"precincts_reporting_pct": formatFloat(county.PrecinctsReportingPct),
				"expected_vote_pct":       formatOptional(county.ExpectedVotePct),
				"total_votes":             strconv.Itoa(county.TotalVotes),
				"registered_voters":       strconv.Itoa(county.RegisteredVoters),
				"last_updated":            county.LastUpdated.Format(TimeLayout),
				"candidate_id":            id,
				"vote_count":              strconv.Itoa(share.VoteCount),
				"vote_pct":                formatFloat(share.VotePct),
			}
			switch c := byID[id].(type) {
			case *models.PersonCandidate:
				row["first_name"] = c.FirstName
				row["last_name"] = c.LastName
				row["party"] = c.Party
			case *models.BallotOptionCandidate:
				row["option_name"] = c.OptionName
				row["party"] = c.Party
			}
			rows = append(rows, row)
		}
	}
	return rows
}

// WriteDetail writes the county breakdown of one race. Races without counties produce no file.
func WriteDetail(dir, timestamp string, d detail.RaceDetail) (*WrittenFile, error) {
	ft, ok := DetailFileType(d.Category)
	if !ok {
		return nil, fmt.Errorf("no detail export for category %s", d.Category)
	}
	rows := DetailRows(d.Race, d.Counties)
	if len(rows) == 0 {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("%s_%s_detailed_%s.csv", ft, d.Race.Common().RaceID, timestamp))
	if err := WriteCSV(path, DetailHeaders, rows); err != nil {
		return nil, err
	}
	return &WrittenFile{Type: ft, Path: path, Rows: len(rows)}, nil
}
