package models

// CandidateKind discriminates the Candidate variants.
type CandidateKind string

const (
	// KindPerson is a candidate who is a person.
	KindPerson CandidateKind = "person"
	// KindBallotOption is an option of a ballot measure, e.g. "Yes".
	KindBallotOption CandidateKind = "ballot_option"
)

// Candidate is one line of a race: either *PersonCandidate or *BallotOptionCandidate.
type Candidate interface {
	// Kind returns the variant discriminator.
	Kind() CandidateKind
	// Common returns the fields shared by every variant.
	Common() *CandidateBase
	// DisplayName returns "First Last" or the option name.
	DisplayName() string
}

// CandidateBase holds the fields shared by every candidate variant.
type CandidateBase struct {
	CandidateID string  `json:"candidate_id"`
	Party       string  `json:"party"`
	BallotOrder int     `json:"ballot_order"`
	VoteCount   int     `json:"vote_count"`
	VotePct     float64 `json:"vote_pct"`
	// AdvanceTotal is set for multi-round contests only.
	AdvanceTotal *int `json:"advance_total,omitempty"`
	ColorIndex   *int `json:"color_index,omitempty"`
}

// PersonCandidate is a candidate who is a person.
type PersonCandidate struct {
	CandidateBase
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Incumbent bool   `json:"incumbent"`
}

// Kind implements Candidate.
func (c *PersonCandidate) Kind() CandidateKind { return KindPerson }

// Common implements Candidate.
func (c *PersonCandidate) Common() *CandidateBase { return &c.CandidateBase }

// DisplayName implements Candidate.
func (c *PersonCandidate) DisplayName() string {
	switch {
	case c.FirstName == "":
		return c.LastName
	case c.LastName == "":
		return c.FirstName
	default:
		return c.FirstName + " " + c.LastName
	}
}

// BallotOptionCandidate is an option of a ballot measure.
type BallotOptionCandidate struct {
	CandidateBase
	OptionName string `json:"option_name"`
}

// Kind implements Candidate.
func (c *BallotOptionCandidate) Kind() CandidateKind { return KindBallotOption }

// Common implements Candidate.
func (c *BallotOptionCandidate) Common() *CandidateBase { return &c.CandidateBase }

// DisplayName implements Candidate.
func (c *BallotOptionCandidate) DisplayName() string { return c.OptionName }
