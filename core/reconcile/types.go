package reconcile

import "errors"

// ErrPanic wraps a panic raised while reconciling a single key.
var ErrPanic = errors.New("reconcile panicked")

// Source is a keyed collection with a stable key order.
type Source[T any] interface {
	// Keys returns every key in iteration order.
	Keys() []string
	// Get returns the entry stored under key.
	Get(key string) (T, bool)
}

// Func reconciles the primary and secondary entries of one key into a value.
type Func[P, S, V any] func(key string, primary P, secondary S) (V, error)

// Outcome is the result of reconciling one key: a value or an error, never both.
type Outcome[V any] struct {
	// Key is the entity identifier.
	Key string `json:"key"`

	// Value is the reconciled value; zero when Err is set.
	Value V `json:"value,omitempty"`

	// Err is the reason this key could not be reconciled.
	Err error `json:"-"`
}

// OK reports whether the key reconciled successfully.
func (o Outcome[V]) OK() bool {
	return o.Err == nil
}

// Summary provides aggregate counts for a reconcile run.
type Summary struct {
	// TotalKeys is the number of keys in the primary source.
	TotalKeys int `json:"total_keys"`

	// Matched counts keys present in both sources.
	Matched int `json:"matched"`

	// Unmatched counts primary keys absent from the secondary source.
	Unmatched int `json:"unmatched"`

	// Succeeded counts matched keys that reconciled.
	Succeeded int `json:"succeeded"`

	// Failed counts matched keys whose reconciliation returned an error.
	Failed int `json:"failed"`
}

// Plan is the full output of a reconcile run.
type Plan[V any] struct {
	// Outcomes holds one entry per matched key, in primary key order.
	Outcomes []Outcome[V] `json:"outcomes"`

	// Unmatched lists primary keys that had no secondary entry.
	Unmatched []string `json:"unmatched"`

	// Summary provides aggregate counts.
	Summary Summary `json:"summary"`
}

// Values returns the successfully reconciled values in outcome order.
func (p *Plan[V]) Values() []V {
	values := make([]V, 0, p.Summary.Succeeded)
	for _, o := range p.Outcomes {
		if o.OK() {
			values = append(values, o.Value)
		}
	}
	return values
}

// Failures returns the failed outcomes in outcome order.
func (p *Plan[V]) Failures() []Outcome[V] {
	var failures []Outcome[V]
	for _, o := range p.Outcomes {
		if !o.OK() {
			failures = append(failures, o)
		}
	}
	return failures
}
