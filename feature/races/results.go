package races

import (
	"encoding/json"

	"election-results/core/reconcile"
	"election-results/feature/races/models"
)

// Failure is a race that was present in both feeds but could not be reconciled.
type Failure struct {
	RaceID string `json:"race_id"`
	Err    error  `json:"-"`
	// Message mirrors Err for JSON output.
	Message string `json:"error"`
}

// ResultSet is the reconciled output of one fetch cycle, bucketed by category.
type ResultSet struct {
	buckets  map[Category][]models.RaceRecord
	Failures []Failure
	Summary  reconcile.Summary
}

// ParseResults reconciles every race id of the progress source that also appears in metadata.
func ParseResults(progress, metadata reconcile.Source[json.RawMessage]) *reconcile.Plan[models.RaceRecord] {
	return reconcile.ReconcileAll(progress, metadata, ParseRace)
}

// Categorize buckets the successful outcomes of a plan and collects its failures.
func Categorize(plan *reconcile.Plan[models.RaceRecord]) *ResultSet {
	rs := &ResultSet{
		buckets: make(map[Category][]models.RaceRecord),
		Summary: plan.Summary,
	}
	for _, o := range plan.Outcomes {
		if !o.OK() {
			rs.Failures = append(rs.Failures, Failure{RaceID: o.Key, Err: o.Err, Message: o.Err.Error()})
			continue
		}
		cat := CategoryOf(o.Value)
		rs.buckets[cat] = append(rs.buckets[cat], o.Value)
	}
	return rs
}

// BuildResultSet runs ParseResults and Categorize.
func BuildResultSet(progress, metadata reconcile.Source[json.RawMessage]) *ResultSet {
	return Categorize(ParseResults(progress, metadata))
}

// NewResultSet groups already reconciled records. Used when replaying stored data.
func NewResultSet(records []models.RaceRecord) *ResultSet {
	rs := &ResultSet{buckets: make(map[Category][]models.RaceRecord)}
	for _, r := range records {
		cat := CategoryOf(r)
		rs.buckets[cat] = append(rs.buckets[cat], r)
	}
	n := len(records)
	rs.Summary = reconcile.Summary{TotalKeys: n, Matched: n, Succeeded: n}
	return rs
}

// Categories lists the non-empty categories in canonical order.
func (rs *ResultSet) Categories() []Category {
	var out []Category
	for _, c := range CategoryOrder {
		if len(rs.buckets[c]) > 0 {
			out = append(out, c)
		}
	}
	return out
}

// Races returns the races of one category in reconcile order.
func (rs *ResultSet) Races(c Category) []models.RaceRecord {
	return rs.buckets[c]
}

// Total is the number of successfully reconciled races.
func (rs *ResultSet) Total() int {
	n := 0
	for _, races := range rs.buckets {
		n += len(races)
	}
	return n
}

// Counts returns the number of races per non-empty category.
func (rs *ResultSet) Counts() map[Category]int {
	counts := make(map[Category]int, len(rs.buckets))
	for _, c := range rs.Categories() {
		counts[c] = len(rs.buckets[c])
	}
	return counts
}

// Find returns the race with the given id, if any.
func (rs *ResultSet) Find(raceID string) (models.RaceRecord, bool) {
	for _, c := range CategoryOrder {
		for _, r := range rs.buckets[c] {
			if r.Common().RaceID == raceID {
				return r, true
			}
		}
	}
	return nil, false
}
