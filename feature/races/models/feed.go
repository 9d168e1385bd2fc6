package models

import (
	"bytes"
	"encoding/json"
	"fmt"

	"election-results/core/utils"
)

// ProgressEntry is one race of the progress feed. Pointer fields make presence observable.
type ProgressEntry struct {
	StatePostal           *string             `json:"statePostal"`
	StateName             *string             `json:"stateName"`
	LastUpdated           *string             `json:"lastUpdated"`
	PrecinctsReporting    *Count              `json:"precinctsReporting"`
	PrecinctsTotal        *Count              `json:"precinctsTotal"`
	PrecinctsReportingPct *float64            `json:"precinctsReportingPct"`
	EEVP                  *float64            `json:"eevp"`
	Candidates            []ProgressCandidate `json:"candidates"`
}

// ProgressCandidate is one candidate tally of the progress feed.
type ProgressCandidate struct {
	CandidateID  *string  `json:"candidateID"`
	VoteCount    *Count   `json:"voteCount"`
	VotePct      *float64 `json:"votePct"`
	AdvanceTotal *Count   `json:"advanceTotal"`
	ColorIndex   *Count   `json:"colorIndex"`
}

// MetadataEntry is one race of the metadata feed.
type MetadataEntry struct {
	RaceType       *string                      `json:"raceType"`
	RaceCallStatus *string                      `json:"raceCallStatus"`
	OfficeName     *string                      `json:"officeName"`
	OfficeID       *string                      `json:"officeID"`
	KeyRace        *bool                        `json:"keyRace"`
	SeatName       *FlexString                  `json:"seatName"`
	SeatNum        *FlexString                  `json:"seatNum"`
	IncumbentID    *FlexString                  `json:"incumbentID"`
	SuppOfficeID   *string                      `json:"suppOfficeID"`
	Description    *string                      `json:"description"`
	Category       *string                      `json:"category"`
	Summary        *string                      `json:"summary"`
	Designation    *FlexString                  `json:"designation"`
	Candidates     map[string]MetadataCandidate `json:"candidates"`
	// Parameters and Vote are probed leniently for vote totals.
	Parameters json.RawMessage `json:"parameters"`
	Vote       json.RawMessage `json:"vote"`
}

// MetadataCandidate is one candidate of the metadata feed. First is absent for ballot options.
type MetadataCandidate struct {
	Party       *string `json:"party"`
	BallotOrder *Count  `json:"ballotOrder"`
	First       *string `json:"first"`
	Last        *string `json:"last"`
	Incumbent   *bool   `json:"incumbent"`
	// HasFirst reports whether the first key was present, even as null.
	HasFirst bool `json:"-"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (m *MetadataCandidate) UnmarshalJSON(data []byte) error {
	type plain MetadataCandidate
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	_, p.HasFirst = fields["first"]
	*m = MetadataCandidate(p)
	return nil
}

// DetailEntry is one reporting unit of a race's detail feed.
type DetailEntry struct {
	StatePostal           *string             `json:"statePostal"`
	ReportingUnitName     *string             `json:"reportingunitName"`
	FIPSCode              *FlexString         `json:"fipsCode"`
	ReportingUnitID       *FlexString         `json:"reportingunitID"`
	PrecinctsReporting    *Count              `json:"precinctsReporting"`
	PrecinctsTotal        *Count              `json:"precinctsTotal"`
	PrecinctsReportingPct *float64            `json:"precinctsReportingPct"`
	EEVP                  *float64            `json:"eevp"`
	LastUpdated           *string             `json:"lastUpdated"`
	Candidates            []ProgressCandidate `json:"candidates"`
	Parameters            json.RawMessage     `json:"parameters"`
	Vote                  json.RawMessage     `json:"vote"`
}

// Count is a vote or precinct count. Upstream sometimes writes whole counts as floats.
type Count int

// UnmarshalJSON implements json.Unmarshaler.
func (c *Count) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return err
	}
	n, ok := v.(json.Number)
	if !ok {
		return fmt.Errorf("count must be a number, got %s", data)
	}
	*c = Count(utils.ToInt(n))
	return nil
}

// Int returns the count, 0 when nil.
func (c *Count) Int() int {
	if c == nil {
		return 0
	}
	return int(*c)
}

// Ptr returns the count as a *int, nil-safe.
func (c *Count) Ptr() *int {
	if c == nil {
		return nil
	}
	i := int(*c)
	return &i
}

// FlexString decodes a JSON string or number as a string.
// Upstream encodes seat numbers and FIPS codes either way.
type FlexString string

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexString(n.String())
	return nil
}

// String returns the value as a plain string.
func (f FlexString) String() string {
	return string(f)
}

// Ptr returns the value as a *string, nil-safe.
func (f *FlexString) Ptr() *string {
	if f == nil {
		return nil
	}
	s := string(*f)
	return &s
}
