package export

import (
	"time"

	"election-results/feature/races"
	"election-results/feature/races/models"
)

func ptr[T any](v T) *T { return &v }

var updated = time.Date(2024, 11, 5, 20, 4, 0, 0, time.FixedZone("EST", -5*3600))

func person(id, first, last, party string, votes int, pct float64, incumbent bool) *models.PersonCandidate {
	return &models.PersonCandidate{
		CandidateBase: models.CandidateBase{CandidateID: id, Party: party, VoteCount: votes, VotePct: pct},
		FirstName:     first,
		LastName:      last,
		Incumbent:     incumbent,
	}
}

func option(id, name string, votes int, pct float64) *models.BallotOptionCandidate {
	return &models.BallotOptionCandidate{
		CandidateBase: models.CandidateBase{CandidateID: id, VoteCount: votes, VotePct: pct},
		OptionName:    name,
	}
}

func governorRace(id string, pct float64, key bool) *models.CandidateRace {
	return &models.CandidateRace{
		RaceBase: models.RaceBase{
			RaceID: id, StatePostal: "NC", StateName: "North Carolina", OfficeName: "Governor",
			RaceCallStatus: "Not Called", LastUpdated: updated,
			PrecinctsReporting: 1234, PrecinctsTotal: 2500, PrecinctsReportingPct: pct,
			ExpectedVotePct: ptr(60.0), TotalVotes: 1182, KeyRace: key,
			Candidates: []models.Candidate{
				person("c2", "Tom", "Roe", "GOP", 82, 45.0, false),
				person("c1", "Jane", "Doe", "Dem", 1100, 55.0, true),
			},
		},
		OfficeID: "G",
	}
}

func fixtureResultSet() *races.ResultSet {
	senate := &models.CandidateRace{
		RaceBase: models.RaceBase{
			RaceID: "2024-NC-S", StatePostal: "NC", StateName: "North Carolina", OfficeName: "U.S. Senate",
			LastUpdated: updated,
			Candidates: []models.Candidate{
				person("s1", "Ann", "Lee", "Dem", 10, 50, false),
				option("s2", "Write-ins", 1, 1),
			},
		},
		OfficeID: "S", SeatName: ptr("Class II"), SeatNum: ptr("2"),
	}
	measure := &models.BallotMeasure{
		RaceBase: models.RaceBase{
			RaceID: "2024-FL-A4", StatePostal: "FL", StateName: "Florida", OfficeName: "Amendment 4",
			LastUpdated: updated,
			Candidates: []models.Candidate{
				option("y", "Yes", 10, 62.5),
				option("n", "No", 6, 37.5),
			},
		},
		Description: "Limit government interference", Category: "Rights", Summary: "Short summary",
	}
	other := &models.CandidateRace{
		RaceBase: models.RaceBase{RaceID: "2024-NC-A", LastUpdated: updated,
			Candidates: []models.Candidate{person("a1", "Al", "Ng", "Dem", 1, 100, false)}},
		OfficeID: "A",
	}
	return races.NewResultSet([]models.RaceRecord{governorRace("2024-NC-G", 50, false), senate, measure, other})
}
