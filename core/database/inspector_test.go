package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetTableColumns(t *testing.T) {
	db, err := Connect(Config{Driver: DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)

	err = db.Exec("CREATE TABLE test_races (race_id TEXT NOT NULL, candidate_id TEXT NOT NULL, vote_count INTEGER, PRIMARY KEY (race_id, candidate_id))").Error
	require.NoError(t, err)

	columns, err := GetTableColumns(db, "test_races")
	require.NoError(t, err)
	assert.Len(t, columns, 3)

	colMap := make(map[string]ColumnInfo)
	for _, col := range columns {
		colMap[col.Field] = col
	}

	assert.Equal(t, "text", colMap["race_id"].Type)
	assert.Equal(t, "NO", colMap["race_id"].Null)
	assert.Equal(t, "PRI", colMap["race_id"].Key)
	assert.Equal(t, "integer", colMap["vote_count"].Type)
	assert.Equal(t, "YES", colMap["vote_count"].Null)

	// PRAGMA table_info returns an empty result for a missing table
	cols, err := GetTableColumns(db, "non_existent")
	assert.NoError(t, err)
	assert.Empty(t, cols)
}

func TestColumnSet(t *testing.T) {
	db, err := Connect(Config{Driver: DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.Exec("CREATE TABLE fetches (id INTEGER PRIMARY KEY, Year INTEGER)").Error)

	set, err := ColumnSet(db, "fetches")
	require.NoError(t, err)
	assert.Contains(t, set, "id")
	assert.Contains(t, set, "year")
}
