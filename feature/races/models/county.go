package models

import "time"

// Sentinels used when a reporting unit omits its identity.
const (
	UnknownCountyName = "Unknown"
	UnknownCountyFIPS = "00000"
	UnknownCountyID   = "0"
)

// VoteShare is one candidate's result in a reporting unit.
type VoteShare struct {
	VoteCount int     `json:"vote_count"`
	VotePct   float64 `json:"vote_pct"`
}

// CountyResult is the result of one race in one reporting unit.
type CountyResult struct {
	RaceID                string    `json:"race_id"`
	StatePostal           string    `json:"state_postal"`
	CountyName            string    `json:"county_name"`
	CountyFIPS            string    `json:"county_fips"`
	CountyID              string    `json:"county_id"`
	PrecinctsReporting    int       `json:"precincts_reporting"`
	PrecinctsTotal        int       `json:"precincts_total"`
	PrecinctsReportingPct float64   `json:"precincts_reporting_pct"`
	ExpectedVotePct       *float64  `json:"expected_vote_pct,omitempty"`
	TotalVotes            int       `json:"total_votes"`
	RegisteredVoters      int       `json:"registered_voters"`
	LastUpdated           time.Time `json:"last_updated"`
	// CandidateVotes is keyed by candidate id.
	CandidateVotes map[string]VoteShare `json:"candidate_votes"`
	// CandidateOrder keeps the upstream candidate order of CandidateVotes.
	CandidateOrder []string `json:"-"`
}
