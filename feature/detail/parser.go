package detail

import (
	"encoding/json"
	"fmt"

	"election-results/core/feed"
	"election-results/core/utils"
	"election-results/feature/races"
	"election-results/feature/races/models"
)

// ParseDetail builds one CountyResult per reporting unit, in document order.
// Malformed units are skipped and reported in the returned error list.
func ParseDetail(raceID, state string, doc *feed.Document) ([]models.CountyResult, []error) {
	var (
		counties []models.CountyResult
		skipped  []error
	)
	for _, key := range doc.Keys() {
		raw, _ := doc.Get(key)
		county, err := parseUnit(raceID, state, raw)
		if err != nil {
			skipped = append(skipped, fmt.Errorf("reporting unit %s: %w", key, err))
			continue
		}
		counties = append(counties, county)
	}
	return counties, skipped
}

func parseUnit(raceID, state string, raw json.RawMessage) (models.CountyResult, error) {
	var unit models.DetailEntry
	if err := json.Unmarshal(raw, &unit); err != nil {
		return models.CountyResult{}, fmt.Errorf("decode: %w", err)
	}

	switch {
	case unit.PrecinctsReporting == nil:
		return models.CountyResult{}, fmt.Errorf("%w: precinctsReporting", races.ErrMissingField)
	case unit.PrecinctsTotal == nil:
		return models.CountyResult{}, fmt.Errorf("%w: precinctsTotal", races.ErrMissingField)
	case unit.PrecinctsReportingPct == nil:
		return models.CountyResult{}, fmt.Errorf("%w: precinctsReportingPct", races.ErrMissingField)
	case unit.LastUpdated == nil:
		return models.CountyResult{}, fmt.Errorf("%w: lastUpdated", races.ErrMissingField)
	case unit.Candidates == nil:
		return models.CountyResult{}, fmt.Errorf("%w: candidates", races.ErrMissingField)
	}

	updated, err := utils.ParseISOTime(*unit.LastUpdated)
	if err != nil {
		return models.CountyResult{}, fmt.Errorf("%w: %q", races.ErrInvalidTimestamp, *unit.LastUpdated)
	}

	county := models.CountyResult{
		RaceID:                raceID,
		StatePostal:           valueOr(unit.StatePostal, state),
		CountyName:            valueOr(unit.ReportingUnitName, models.UnknownCountyName),
		CountyFIPS:            valueOr(unit.FIPSCode.Ptr(), models.UnknownCountyFIPS),
		CountyID:              valueOr(unit.ReportingUnitID.Ptr(), models.UnknownCountyID),
		PrecinctsReporting:    unit.PrecinctsReporting.Int(),
		PrecinctsTotal:        unit.PrecinctsTotal.Int(),
		PrecinctsReportingPct: *unit.PrecinctsReportingPct,
		ExpectedVotePct:       unit.EEVP,
		TotalVotes:            races.VoteInfo(unit.Parameters, unit.Vote, races.VoteFieldTotal),
		RegisteredVoters:      races.VoteInfo(unit.Parameters, unit.Vote, races.VoteFieldRegistered),
		LastUpdated:           updated,
		CandidateVotes:        make(map[string]models.VoteShare, len(unit.Candidates)),
		CandidateOrder:        make([]string, 0, len(unit.Candidates)),
	}

	for _, c := range unit.Candidates {
		if c.CandidateID == nil {
			return models.CountyResult{}, fmt.Errorf("%w: candidateID", races.ErrMissingField)
		}
		id := *c.CandidateID
		if _, dup := county.CandidateVotes[id]; !dup {
			county.CandidateOrder = append(county.CandidateOrder, id)
		}
		county.CandidateVotes[id] = models.VoteShare{
			VoteCount: c.VoteCount.Int(),
			VotePct:   derefFloat(c.VotePct),
		}
	}
	return county, nil
}

func valueOr(s *string, fallback string) string {
	if s == nil || *s == "" {
		return fallback
	}
	return *s
}

func derefFloat(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}
