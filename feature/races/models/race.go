package models

import "time"

// RaceKind discriminates the RaceRecord variants.
type RaceKind string

const (
	// KindCandidateRace is a contest between people.
	KindCandidateRace RaceKind = "candidate_race"
	// KindBallotMeasure is a referendum, amendment or proposition.
	KindBallotMeasure RaceKind = "ballot_measure"
)

// RaceRecord is a reconciled race: either *CandidateRace or *BallotMeasure.
type RaceRecord interface {
	// Kind returns the variant discriminator.
	Kind() RaceKind
	// Common returns the fields shared by every variant.
	Common() *RaceBase
}

// RaceBase holds the fields shared by every race variant.
type RaceBase struct {
	RaceID                string    `json:"race_id"`
	StatePostal           string    `json:"state_postal"`
	StateName             string    `json:"state_name"`
	RaceType              string    `json:"race_type"`
	RaceCallStatus        string    `json:"race_call_status"`
	OfficeName            string    `json:"office_name"`
	LastUpdated           time.Time `json:"last_updated"`
	PrecinctsReporting    int       `json:"precincts_reporting"`
	PrecinctsTotal        int       `json:"precincts_total"`
	PrecinctsReportingPct float64   `json:"precincts_reporting_pct"`
	// ExpectedVotePct is nil when upstream omits eevp.
	ExpectedVotePct  *float64 `json:"expected_vote_pct,omitempty"`
	TotalVotes       int      `json:"total_votes"`
	RegisteredVoters int      `json:"registered_voters"` // 0 means not reported
	KeyRace          bool     `json:"key_race"`
	// Candidates keep upstream progress order.
	Candidates []Candidate `json:"candidates"`
}

// CandidateRace is a race between people for an office.
type CandidateRace struct {
	RaceBase
	// OfficeID is P, S, H, G or an uncategorized upstream code.
	OfficeID    string  `json:"office_id"`
	SeatName    *string `json:"seat_name,omitempty"`
	SeatNum     *string `json:"seat_num,omitempty"`
	IncumbentID *string `json:"incumbent_id,omitempty"`
}

// Kind implements RaceRecord.
func (r *CandidateRace) Kind() RaceKind { return KindCandidateRace }

// Common implements RaceRecord.
func (r *CandidateRace) Common() *RaceBase { return &r.RaceBase }

// BallotMeasure is a non-candidate ballot item.
type BallotMeasure struct {
	RaceBase
	Description string `json:"description"`
	Category    string `json:"category"`
	Summary     string `json:"summary"`
	Designation string `json:"designation"`
}

// Kind implements RaceRecord.
func (r *BallotMeasure) Kind() RaceKind { return KindBallotMeasure }

// Common implements RaceRecord.
func (r *BallotMeasure) Common() *RaceBase { return &r.RaceBase }

// Office ids with a dedicated category.
const (
	OfficePresident = "P"
	OfficeSenate    = "S"
	OfficeHouse     = "H"
	OfficeGovernor  = "G"
)

// DefaultMeasureCategory is used when a ballot measure has no category.
const DefaultMeasureCategory = "Uncategorized"
