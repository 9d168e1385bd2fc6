package reconcile

import (
	"errors"
	"fmt"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sumFunc(key string, primary int, secondary string) (string, error) {
	if secondary == "bad" {
		return "", fmt.Errorf("bad entry for %s", key)
	}
	return strconv.Itoa(primary) + secondary, nil
}

func TestReconcileAll(t *testing.T) {
	primary := MapSource[int]{
		Order:   []string{"c", "a", "b", "d"},
		Entries: map[string]int{"a": 1, "b": 2, "c": 3, "d": 4},
	}
	secondary := MapSource[string]{
		Order:   []string{"a", "b", "c", "z"},
		Entries: map[string]string{"a": "x", "b": "bad", "c": "y", "z": "only-secondary"},
	}

	plan := ReconcileAll[int, string, string](primary, secondary, sumFunc)

	require.Len(t, plan.Outcomes, 3)
	assert.Equal(t, "c", plan.Outcomes[0].Key)
	assert.Equal(t, "a", plan.Outcomes[1].Key)
	assert.Equal(t, "b", plan.Outcomes[2].Key)

	assert.Equal(t, []string{"3y", "1x"}, plan.Values())
	failures := plan.Failures()
	require.Len(t, failures, 1)
	assert.Equal(t, "b", failures[0].Key)
	assert.EqualError(t, failures[0].Err, "bad entry for b")
	assert.Empty(t, failures[0].Value)

	assert.Equal(t, []string{"d"}, plan.Unmatched)
	assert.Equal(t, Summary{TotalKeys: 4, Matched: 3, Unmatched: 1, Succeeded: 2, Failed: 1}, plan.Summary)
}

func TestReconcileAll_Deterministic(t *testing.T) {
	primary := MapSource[int]{Order: []string{"k1", "k2", "k3"}, Entries: map[string]int{"k1": 1, "k2": 2, "k3": 3}}
	secondary := MapSource[string]{Entries: map[string]string{"k1": "a", "k2": "b", "k3": "c"}}

	first := ReconcileAll[int, string, string](primary, secondary, sumFunc)
	second := ReconcileAll[int, string, string](primary, secondary, sumFunc)
	assert.Equal(t, first.Values(), second.Values())
}

func TestReconcileOne_RecoversPanic(t *testing.T) {
	fn := func(key string, p int, s string) (string, error) {
		var m map[string]int
		m["boom"] = p // nil map write
		return s, nil
	}

	outcome := ReconcileOne[int, string, string]("k", 1, "x", fn)
	assert.False(t, outcome.OK())
	assert.True(t, errors.Is(outcome.Err, ErrPanic))
	assert.Equal(t, "", outcome.Value)
}

func TestReconcileAll_Empty(t *testing.T) {
	plan := ReconcileAll[int, string, string](MapSource[int]{}, MapSource[string]{}, sumFunc)
	assert.Empty(t, plan.Outcomes)
	assert.Empty(t, plan.Values())
	assert.Nil(t, plan.Failures())
	assert.Equal(t, Summary{}, plan.Summary)
}
