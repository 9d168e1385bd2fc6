package races

import (
	"strings"

	"election-results/feature/races/models"
)

// Category is a reporting bucket for reconciled races.
type Category string

const (
	CategoryPresidential   Category = "Presidential"
	CategorySenate         Category = "Senate"
	CategoryHouse          Category = "House"
	CategoryGovernor       Category = "Governor"
	CategoryBallotMeasures Category = "Ballot Measures"
	CategoryOther          Category = "Other"
)

// CategoryOrder is the canonical presentation order of categories.
var CategoryOrder = []Category{
	CategoryPresidential,
	CategorySenate,
	CategoryHouse,
	CategoryGovernor,
	CategoryBallotMeasures,
	CategoryOther,
}

// ParseCategory resolves a category name case-insensitively. Slugs such as "ballot-measures" are accepted.
func ParseCategory(name string) (Category, bool) {
	normalized := strings.ReplaceAll(strings.ReplaceAll(name, "-", " "), "_", " ")
	for _, c := range CategoryOrder {
		if strings.EqualFold(string(c), normalized) {
			return c, true
		}
	}
	return "", false
}

// supplementalMeasureOffice is the suppOfficeID upstream uses for issues and measures.
const supplementalMeasureOffice = "IME"

var measureKeywords = map[string]struct{}{
	"Amendment":   {},
	"Issue":       {},
	"Question":    {},
	"Measure":     {},
	"Proposition": {},
	"Prop":        {},
}

// IsBallotMeasure decides from metadata alone whether a race is a ballot measure.
// Missing office names or candidates count as no evidence. A candidate race whose
// surnames happen to be Yes/No or For/Against is reported as a measure.
func IsBallotMeasure(meta *models.MetadataEntry) bool {
	if meta == nil {
		return false
	}

	if meta.SuppOfficeID != nil && *meta.SuppOfficeID == supplementalMeasureOffice {
		return true
	}

	if meta.OfficeName != nil {
		for _, token := range strings.Fields(*meta.OfficeName) {
			if _, ok := measureKeywords[token]; ok {
				return true
			}
		}
	}

	names := make(map[string]struct{}, len(meta.Candidates))
	for _, c := range meta.Candidates {
		last := ""
		if c.Last != nil {
			last = *c.Last
		}
		names[strings.ToLower(last)] = struct{}{}
	}
	return hasAll(names, "yes", "no") || hasAll(names, "for", "against")
}

func hasAll(set map[string]struct{}, keys ...string) bool {
	for _, k := range keys {
		if _, ok := set[k]; !ok {
			return false
		}
	}
	return true
}

// CategoryOf buckets a reconciled race.
func CategoryOf(record models.RaceRecord) Category {
	switch r := record.(type) {
	case *models.BallotMeasure:
		return CategoryBallotMeasures
	case *models.CandidateRace:
		switch r.OfficeID {
		case models.OfficePresident:
			return CategoryPresidential
		case models.OfficeSenate:
			return CategorySenate
		case models.OfficeHouse:
			return CategoryHouse
		case models.OfficeGovernor:
			return CategoryGovernor
		}
	}
	return CategoryOther
}
