package reconcile

import "fmt"

// ReconcileAll walks the primary source in key order and reconciles every key that also exists
// in the secondary source. Keys missing from the secondary source are recorded as unmatched.
// A failing key never stops the run: its error is kept on its Outcome.
func ReconcileAll[P, S, V any](primary Source[P], secondary Source[S], fn Func[P, S, V]) *Plan[V] {
	keys := primary.Keys()
	plan := &Plan[V]{
		Outcomes: make([]Outcome[V], 0, len(keys)),
	}
	plan.Summary.TotalKeys = len(keys)

	for _, key := range keys {
		p, ok := primary.Get(key)
		if !ok {
			continue
		}
		s, ok := secondary.Get(key)
		if !ok {
			plan.Unmatched = append(plan.Unmatched, key)
			plan.Summary.Unmatched++
			continue
		}

		plan.Summary.Matched++
		outcome := ReconcileOne(key, p, s, fn)
		if outcome.OK() {
			plan.Summary.Succeeded++
		} else {
			plan.Summary.Failed++
		}
		plan.Outcomes = append(plan.Outcomes, outcome)
	}

	return plan
}

// ReconcileOne reconciles a single key, converting a panic into an error outcome.
func ReconcileOne[P, S, V any](key string, primary P, secondary S, fn Func[P, S, V]) (outcome Outcome[V]) {
	outcome.Key = key
	defer func() {
		if r := recover(); r != nil {
			var zero V
			outcome.Value = zero
			outcome.Err = fmt.Errorf("%w: %v", ErrPanic, r)
		}
	}()

	value, err := fn(key, primary, secondary)
	if err != nil {
		outcome.Err = err
		return outcome
	}
	outcome.Value = value
	return outcome
}

// MapSource adapts an ordered key list and a map to a Source.
type MapSource[T any] struct {
	Order   []string
	Entries map[string]T
}

// Keys implements Source.
func (m MapSource[T]) Keys() []string {
	return m.Order
}

// Get implements Source.
func (m MapSource[T]) Get(key string) (T, bool) {
	v, ok := m.Entries[key]
	return v, ok
}
