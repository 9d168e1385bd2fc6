package store

import "time"

// Table names.
const (
	TableFetches       = "election_fetches"
	TableExports       = "csv_exports"
	TablePresidential  = "presidential_races"
	TableSenate        = "senate_races"
	TableHouse         = "house_races"
	TableGovernor      = "governor_races"
	TableBallot        = "ballot_measures"
	TableCountyResults = "county_results"
)

// RaceTables share the RaceRow shape.
var RaceTables = []string{TablePresidential, TableSenate, TableHouse, TableGovernor}

// DataTables hold results and are emptied by Clear. Tracking tables are kept.
var DataTables = []string{TableBallot, TableHouse, TableGovernor, TableSenate, TablePresidential, TableCountyResults}

// ElectionFetch records one attempt to fetch an election's feeds.
type ElectionFetch struct {
	ID             uint      `gorm:"column:id;primaryKey;autoIncrement"`
	Year           int       `gorm:"column:year;not null;index"`
	FetchTimestamp time.Time `gorm:"column:fetch_timestamp;not null"`
	Success        bool      `gorm:"column:success;not null"`
	ErrorMessage   *string   `gorm:"column:error_message"`
}

// TableName overrides the table name.
func (ElectionFetch) TableName() string {
	return TableFetches
}

// CSVExport records a file written or loaded for a year.
type CSVExport struct {
	ID              uint      `gorm:"column:id;primaryKey;autoIncrement"`
	Year            int       `gorm:"column:year;not null;uniqueIndex:idx_csv_exports_file"`
	ExportTimestamp time.Time `gorm:"column:export_timestamp;not null"`
	FileType        string    `gorm:"column:file_type;size:64;not null;uniqueIndex:idx_csv_exports_file"`
	FilePath        string    `gorm:"column:file_path;size:512;not null;uniqueIndex:idx_csv_exports_file"`
}

// TableName overrides the table name.
func (CSVExport) TableName() string {
	return TableExports
}

// RaceRow is one candidate of a candidate race. Used for all four race tables.
// Office and seat columns are only filled for senate and house rows.
type RaceRow struct {
	RaceID                string    `gorm:"column:race_id;primaryKey;size:64" json:"race_id"`
	StatePostal           string    `gorm:"column:state_postal;size:8;not null" json:"state_postal"`
	StateName             string    `gorm:"column:state_name;size:64;not null" json:"state_name"`
	OfficeID              *string   `gorm:"column:office_id;size:8" json:"office_id,omitempty"`
	SeatName              *string   `gorm:"column:seat_name;size:128" json:"seat_name,omitempty"`
	SeatNum               *string   `gorm:"column:seat_num;size:16" json:"seat_num,omitempty"`
	RaceCallStatus        string    `gorm:"column:race_call_status;size:64;not null" json:"race_call_status"`
	LastUpdated           time.Time `gorm:"column:last_updated;not null" json:"last_updated"`
	PrecinctsReporting    int       `gorm:"column:precincts_reporting;not null" json:"precincts_reporting"`
	PrecinctsTotal        int       `gorm:"column:precincts_total;not null" json:"precincts_total"`
	PrecinctsReportingPct float64   `gorm:"column:precincts_reporting_pct;not null" json:"precincts_reporting_pct"`
	ExpectedVotePct       *float64  `gorm:"column:expected_vote_pct" json:"expected_vote_pct,omitempty"`
	TotalVotes            int       `gorm:"column:total_votes;not null" json:"total_votes"`
	CandidateID           string    `gorm:"column:candidate_id;primaryKey;size:64" json:"candidate_id"`
	FirstName             string    `gorm:"column:first_name;size:128;not null" json:"first_name"`
	LastName              string    `gorm:"column:last_name;size:128;not null" json:"last_name"`
	Party                 string    `gorm:"column:party;size:32;not null" json:"party"`
	Incumbent             *bool     `gorm:"column:incumbent" json:"incumbent"`
	VoteCount             int       `gorm:"column:vote_count;not null" json:"vote_count"`
	VotePct               float64   `gorm:"column:vote_pct;not null" json:"vote_pct"`
}

// BallotMeasureRow is one option of a ballot measure.
type BallotMeasureRow struct {
	RaceID                string    `gorm:"column:race_id;primaryKey;size:64" json:"race_id"`
	StatePostal           string    `gorm:"column:state_postal;size:8;not null" json:"state_postal"`
	StateName             string    `gorm:"column:state_name;size:64;not null" json:"state_name"`
	Description           string    `gorm:"column:description;type:text;not null" json:"description"`
	Category              *string   `gorm:"column:category;size:128" json:"category"`
	Summary               *string   `gorm:"column:summary;type:text" json:"summary"`
	RaceCallStatus        string    `gorm:"column:race_call_status;size:64;not null" json:"race_call_status"`
	LastUpdated           time.Time `gorm:"column:last_updated;not null" json:"last_updated"`
	PrecinctsReporting    int       `gorm:"column:precincts_reporting;not null" json:"precincts_reporting"`
	PrecinctsTotal        int       `gorm:"column:precincts_total;not null" json:"precincts_total"`
	PrecinctsReportingPct float64   `gorm:"column:precincts_reporting_pct;not null" json:"precincts_reporting_pct"`
	ExpectedVotePct       *float64  `gorm:"column:expected_vote_pct" json:"expected_vote_pct,omitempty"`
	TotalVotes            int       `gorm:"column:total_votes;not null" json:"total_votes"`
	CandidateID           string    `gorm:"column:candidate_id;primaryKey;size:64" json:"candidate_id"`
	OptionName            string    `gorm:"column:option_name;size:128;not null" json:"option_name"`
	VoteCount             int       `gorm:"column:vote_count;not null" json:"vote_count"`
	VotePct               float64   `gorm:"column:vote_pct;not null" json:"vote_pct"`
}

// TableName overrides the table name.
func (BallotMeasureRow) TableName() string {
	return TableBallot
}

// CountyResultRow is one candidate's result in one county.
type CountyResultRow struct {
	RaceID                string    `gorm:"column:race_id;primaryKey;size:64" json:"race_id"`
	StatePostal           string    `gorm:"column:state_postal;size:8;not null" json:"state_postal"`
	CountyName            *string   `gorm:"column:county_name;size:128" json:"county_name"`
	CountyFIPS            string    `gorm:"column:county_fips;primaryKey;size:16" json:"county_fips"`
	CountyID              *string   `gorm:"column:county_id;size:32" json:"county_id"`
	PrecinctsReporting    *int      `gorm:"column:precincts_reporting" json:"precincts_reporting"`
	PrecinctsTotal        *int      `gorm:"column:precincts_total" json:"precincts_total"`
	PrecinctsReportingPct *float64  `gorm:"column:precincts_reporting_pct" json:"precincts_reporting_pct"`
	ExpectedVotePct       *float64  `gorm:"column:expected_vote_pct" json:"expected_vote_pct,omitempty"`
	TotalVotes            *int      `gorm:"column:total_votes" json:"total_votes"`
	RegisteredVoters      *int      `gorm:"column:registered_voters" json:"registered_voters"`
	LastUpdated           time.Time `gorm:"column:last_updated;not null" json:"last_updated"`
	CandidateID           string    `gorm:"column:candidate_id;primaryKey;size:64" json:"candidate_id"`
	FirstName             *string   `gorm:"column:first_name;size:128" json:"first_name"`
	LastName              *string   `gorm:"column:last_name;size:128" json:"last_name"`
	OptionName            *string   `gorm:"column:option_name;size:128" json:"option_name"`
	Party                 *string   `gorm:"column:party;size:32" json:"party"`
	VoteCount             int       `gorm:"column:vote_count;not null" json:"vote_count"`
	VotePct               float64   `gorm:"column:vote_pct;not null" json:"vote_pct"`
}

// TableName overrides the table name.
func (CountyResultRow) TableName() string {
	return TableCountyResults
}

// ModelFor returns a zero model of a table, used for migration and schema checks.
func ModelFor(table string) (any, bool) {
	switch table {
	case TableFetches:
		return &ElectionFetch{}, true
	case TableExports:
		return &CSVExport{}, true
	case TablePresidential, TableSenate, TableHouse, TableGovernor:
		return &RaceRow{}, true
	case TableBallot:
		return &BallotMeasureRow{}, true
	case TableCountyResults:
		return &CountyResultRow{}, true
	}
	return nil, false
}

// AllTables lists every table of the schema.
var AllTables = []string{
	TableFetches, TableExports,
	TablePresidential, TableSenate, TableHouse, TableGovernor,
	TableBallot, TableCountyResults,
}
