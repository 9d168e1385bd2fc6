package races

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"election-results/core/utils"
	"election-results/feature/races/models"
)

var (
	// ErrMissingField is returned when a required feed key is absent or null.
	ErrMissingField = errors.New("missing required field")
	// ErrUnknownCandidate is returned when a progress candidate has no metadata entry.
	ErrUnknownCandidate = errors.New("candidate not found in metadata")
	// ErrInvalidTimestamp is returned when lastUpdated is not ISO-8601.
	ErrInvalidTimestamp = errors.New("invalid lastUpdated timestamp")
)

// Vote info fields.
const (
	VoteFieldTotal      = "total"
	VoteFieldRegistered = "registered"
)

// VoteInfo resolves a vote total from parameters.vote, falling back to a top-level vote object.
// The first container that is a JSON object wins; anything missing or malformed yields 0.
func VoteInfo(parameters, vote json.RawMessage, field string) int {
	if container, ok := jsonObject(parameters); ok {
		if nested, ok := jsonObject(container["vote"]); ok {
			return utils.ToInt(rawValue(nested[field]))
		}
	}
	if container, ok := jsonObject(vote); ok {
		return utils.ToInt(rawValue(container[field]))
	}
	return 0
}

func jsonObject(raw json.RawMessage) (map[string]json.RawMessage, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return nil, false
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, false
	}
	return obj, true
}

func rawValue(raw json.RawMessage) any {
	if len(raw) == 0 {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil
	}
	return v
}

// ParseCandidate merges a progress tally with its metadata candidate.
// The presence of a first key, even as null, decides person versus ballot option.
func ParseCandidate(progress models.ProgressCandidate, candidates map[string]models.MetadataCandidate) (models.Candidate, error) {
	if progress.CandidateID == nil {
		return nil, missing("candidateID")
	}
	id := *progress.CandidateID

	meta, ok := candidates[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCandidate, id)
	}

	switch {
	case progress.VoteCount == nil:
		return nil, missing("candidates[" + id + "].voteCount")
	case progress.VotePct == nil:
		return nil, missing("candidates[" + id + "].votePct")
	case meta.Party == nil:
		return nil, missing("candidates[" + id + "].party")
	case meta.BallotOrder == nil:
		return nil, missing("candidates[" + id + "].ballotOrder")
	case meta.Last == nil:
		return nil, missing("candidates[" + id + "].last")
	}

	base := models.CandidateBase{
		CandidateID:  id,
		Party:        *meta.Party,
		BallotOrder:  meta.BallotOrder.Int(),
		VoteCount:    progress.VoteCount.Int(),
		VotePct:      *progress.VotePct,
		AdvanceTotal: progress.AdvanceTotal.Ptr(),
		ColorIndex:   progress.ColorIndex.Ptr(),
	}

	if meta.HasFirst {
		return &models.PersonCandidate{
			CandidateBase: base,
			FirstName:     stringOr(meta.First, ""),
			LastName:      *meta.Last,
			Incumbent:     meta.Incumbent != nil && *meta.Incumbent,
		}, nil
	}
	return &models.BallotOptionCandidate{
		CandidateBase: base,
		OptionName:    *meta.Last,
	}, nil
}

// ParseRace reconciles one race's progress and metadata entries into a RaceRecord.
// Its signature matches reconcile.Func so it can be driven by reconcile.ReconcileAll.
func ParseRace(raceID string, progressRaw, metadataRaw json.RawMessage) (models.RaceRecord, error) {
	var progress models.ProgressEntry
	if err := json.Unmarshal(progressRaw, &progress); err != nil {
		return nil, fmt.Errorf("decode progress entry: %w", err)
	}
	var meta models.MetadataEntry
	if err := json.Unmarshal(metadataRaw, &meta); err != nil {
		return nil, fmt.Errorf("decode metadata entry: %w", err)
	}
	return Reconcile(raceID, &progress, &meta)
}

// Reconcile builds a RaceRecord from already decoded feed entries.
func Reconcile(raceID string, progress *models.ProgressEntry, meta *models.MetadataEntry) (models.RaceRecord, error) {
	if err := requireProgress(progress); err != nil {
		return nil, err
	}
	if err := requireMetadata(meta); err != nil {
		return nil, err
	}

	updated, err := utils.ParseISOTime(*progress.LastUpdated)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTimestamp, *progress.LastUpdated)
	}

	candidates := make([]models.Candidate, 0, len(progress.Candidates))
	for _, pc := range progress.Candidates {
		c, err := ParseCandidate(pc, meta.Candidates)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, c)
	}

	base := models.RaceBase{
		RaceID:                raceID,
		StatePostal:           *progress.StatePostal,
		StateName:             *progress.StateName,
		RaceType:              *meta.RaceType,
		RaceCallStatus:        *meta.RaceCallStatus,
		OfficeName:            *meta.OfficeName,
		LastUpdated:           updated,
		PrecinctsReporting:    progress.PrecinctsReporting.Int(),
		PrecinctsTotal:        progress.PrecinctsTotal.Int(),
		PrecinctsReportingPct: *progress.PrecinctsReportingPct,
		ExpectedVotePct:       progress.EEVP,
		TotalVotes:            VoteInfo(meta.Parameters, meta.Vote, VoteFieldTotal),
		RegisteredVoters:      VoteInfo(meta.Parameters, meta.Vote, VoteFieldRegistered),
		KeyRace:               meta.KeyRace != nil && *meta.KeyRace,
		Candidates:            candidates,
	}

	if IsBallotMeasure(meta) {
		return &models.BallotMeasure{
			RaceBase:    base,
			Description: stringOr(meta.Description, *meta.OfficeName),
			Category:    stringOr(meta.Category, models.DefaultMeasureCategory),
			Summary:     stringOr(meta.Summary, ""),
			Designation: stringOr(meta.Designation.Ptr(), ""),
		}, nil
	}

	if meta.OfficeID == nil {
		return nil, missing("officeID")
	}
	return &models.CandidateRace{
		RaceBase:    base,
		OfficeID:    *meta.OfficeID,
		SeatName:    meta.SeatName.Ptr(),
		SeatNum:     meta.SeatNum.Ptr(),
		IncumbentID: meta.IncumbentID.Ptr(),
	}, nil
}

func requireProgress(p *models.ProgressEntry) error {
	switch {
	case p.StatePostal == nil:
		return missing("statePostal")
	case p.StateName == nil:
		return missing("stateName")
	case p.LastUpdated == nil:
		return missing("lastUpdated")
	case p.PrecinctsReporting == nil:
		return missing("precinctsReporting")
	case p.PrecinctsTotal == nil:
		return missing("precinctsTotal")
	case p.PrecinctsReportingPct == nil:
		return missing("precinctsReportingPct")
	case p.Candidates == nil:
		return missing("candidates")
	}
	return nil
}

func requireMetadata(m *models.MetadataEntry) error {
	switch {
	case m.RaceType == nil:
		return missing("raceType")
	case m.RaceCallStatus == nil:
		return missing("raceCallStatus")
	case m.OfficeName == nil:
		return missing("officeName")
	}
	return nil
}

func missing(field string) error {
	return fmt.Errorf("%w: %s", ErrMissingField, field)
}

func stringOr(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}
