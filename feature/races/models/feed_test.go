package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCount_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    int
		wantErr bool
	}{
		{"integer", `42`, 42, false},
		{"whole float", `100.0`, 100, false},
		{"exponent", `1e3`, 1000, false},
		{"fraction truncated", `7.9`, 7, false},
		{"string", `"ten"`, 0, true},
		{"numeric string", `"10"`, 0, true},
		{"bool", `true`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Count
			err := json.Unmarshal([]byte(tt.raw), &c)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, c.Int())
		})
	}
}

func TestCount_NilSafe(t *testing.T) {
	var c *Count
	assert.Equal(t, 0, c.Int())
	assert.Nil(t, c.Ptr())

	var entry ProgressCandidate
	require.NoError(t, json.Unmarshal([]byte(`{"voteCount":null,"colorIndex":3.0}`), &entry))
	assert.Nil(t, entry.VoteCount)
	require.NotNil(t, entry.ColorIndex.Ptr())
	assert.Equal(t, 3, *entry.ColorIndex.Ptr())
}

func TestMetadataCandidate_HasFirst(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantFirst bool
	}{
		{"named", `{"first":"Jane","last":"Doe"}`, true},
		{"empty", `{"first":"","last":"Doe"}`, true},
		{"null", `{"first":null,"last":"Doe"}`, true},
		{"absent", `{"last":"Yes"}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var m MetadataCandidate
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &m))
			assert.Equal(t, tt.wantFirst, m.HasFirst)
			require.NotNil(t, m.Last)
		})
	}

	var entry MetadataEntry
	require.NoError(t, json.Unmarshal([]byte(`{"candidates":{"c1":{"first":null,"last":"Doe","ballotOrder":2.0}}}`), &entry))
	assert.True(t, entry.Candidates["c1"].HasFirst)
	assert.Equal(t, 2, entry.Candidates["c1"].BallotOrder.Int())
}
