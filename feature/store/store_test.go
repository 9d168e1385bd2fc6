package store

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"election-results/core/database"
	"election-results/feature/detail"
	"election-results/feature/export"
	"election-results/feature/races"
	"election-results/feature/races/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	s := New(db, zap.NewNop())
	require.NoError(t, s.Migrate(context.Background()))
	return s
}

// setupMockDB creates a mock GORM DB over the MySQL dialector.
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func ptr[T any](v T) *T { return &v }

var updated = time.Date(2024, 11, 5, 20, 0, 0, 0, time.FixedZone("EST", -5*3600))

func person(id, first, last, party string, incumbent bool) *models.PersonCandidate {
	return &models.PersonCandidate{
		CandidateBase: models.CandidateBase{CandidateID: id, Party: party, VoteCount: 10, VotePct: 50},
		FirstName:     first, LastName: last, Incumbent: incumbent,
	}
}

func fixtureResults() *races.ResultSet {
	gov := &models.CandidateRace{
		RaceBase: models.RaceBase{
			RaceID: "2024-NC-G", StatePostal: "NC", StateName: "North Carolina", RaceCallStatus: "Called",
			LastUpdated: updated, PrecinctsReporting: 10, PrecinctsTotal: 20, PrecinctsReportingPct: 50,
			ExpectedVotePct: ptr(60.0), TotalVotes: 20,
			Candidates: []models.Candidate{person("c1", "Jane", "Doe", "Dem", true), person("c2", "Tom", "Roe", "GOP", false)},
		},
		OfficeID: "G",
	}
	house := &models.CandidateRace{
		RaceBase: models.RaceBase{
			RaceID: "2024-NC-H1", StatePostal: "NC", StateName: "North Carolina", RaceCallStatus: "Not Called",
			LastUpdated: updated,
			Candidates:  []models.Candidate{person("h1", "Al", "Ng", "Dem", false)},
		},
		OfficeID: "H", SeatName: ptr("District 1"), SeatNum: ptr("1"),
	}
	measure := &models.BallotMeasure{
		RaceBase: models.RaceBase{
			RaceID: "2024-FL-A4", StatePostal: "FL", StateName: "Florida", RaceCallStatus: "Called",
			LastUpdated: updated,
			Candidates: []models.Candidate{
				&models.BallotOptionCandidate{CandidateBase: models.CandidateBase{CandidateID: "y", VoteCount: 6, VotePct: 60}, OptionName: "Yes"},
				&models.BallotOptionCandidate{CandidateBase: models.CandidateBase{CandidateID: "n", VoteCount: 4, VotePct: 40}, OptionName: "No"},
			},
		},
		Description: "Amendment 4", Category: "Rights",
	}
	return races.NewResultSet([]models.RaceRecord{gov, house, measure})
}

func countRows(t *testing.T, s *Store, table string) int64 {
	t.Helper()
	var n int64
	require.NoError(t, s.DB().Table(table).Count(&n).Error)
	return n
}

func TestSaveResults(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	written, err := s.SaveResults(ctx, fixtureResults())
	require.NoError(t, err)
	assert.Equal(t, map[string]int{TableGovernor: 2, TableHouse: 1, TableBallot: 2}, written)

	// saving again replaces rather than duplicates
	_, err = s.SaveResults(ctx, fixtureResults())
	require.NoError(t, err)
	assert.Equal(t, int64(2), countRows(t, s, TableGovernor))

	rows, err := s.CandidateRows(ctx, TableGovernor, 2024)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Jane", rows[0].FirstName)
	require.NotNil(t, rows[0].Incumbent)
	assert.True(t, *rows[0].Incumbent)
	require.NotNil(t, rows[0].ExpectedVotePct)
	assert.Equal(t, 60.0, *rows[0].ExpectedVotePct)
	assert.Nil(t, rows[0].OfficeID)
	assert.True(t, updated.Equal(rows[0].LastUpdated))

	house, err := s.CandidateRows(ctx, TableHouse, 0)
	require.NoError(t, err)
	require.Len(t, house, 1)
	assert.Equal(t, "District 1", *house[0].SeatName)

	measures, err := s.MeasureRows(ctx, 2024)
	require.NoError(t, err)
	require.Len(t, measures, 2)
	assert.Equal(t, "No", measures[0].OptionName)

	none, err := s.CandidateRows(ctx, TableGovernor, 2020)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestSaveCountyResults(t *testing.T) {
	s := setupStore(t)
	rs := fixtureResults()
	gov, _ := rs.Find("2024-NC-G")

	d := detail.RaceDetail{
		Race:     gov,
		Category: races.CategoryGovernor,
		Counties: []models.CountyResult{{
			RaceID: "2024-NC-G", StatePostal: "NC", CountyName: "Wake", CountyFIPS: "37183", CountyID: "183",
			LastUpdated:    updated,
			CandidateVotes: map[string]models.VoteShare{"c1": {VoteCount: 5, VotePct: 50}, "c2": {VoteCount: 5, VotePct: 50}},
			CandidateOrder: []string{"c1", "c2"},
		}},
	}

	n, err := s.SaveCountyResults(context.Background(), d)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	var rows []CountyResultRow
	require.NoError(t, s.DB().Order("candidate_id").Find(&rows).Error)
	require.Len(t, rows, 2)
	assert.Equal(t, "Doe", *rows[0].LastName)
	assert.Nil(t, rows[0].OptionName)
	assert.Equal(t, "37183", rows[0].CountyFIPS)
}

func TestRecordExport_Upsert(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	require.NoError(t, s.RecordExport(ctx, 2024, TableGovernor, "data/2024/governor.csv"))
	require.NoError(t, s.RecordExport(ctx, 2024, TableGovernor, "data/2024/governor.csv"))
	require.NoError(t, s.RecordExport(ctx, 2022, TableGovernor, "data/2024/governor.csv"))

	assert.Equal(t, int64(2), countRows(t, s, TableExports))
}

func TestLoadDirectory(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()
	root := t.TempDir()
	yearDir := filepath.Join(root, "2024")

	rs := fixtureResults()
	files, err := export.WriteResults(yearDir, "20241105_200000", rs)
	require.NoError(t, err)
	require.Len(t, files, 3)

	gov, _ := rs.Find("2024-NC-G")
	_, err = export.WriteDetail(yearDir, "20241105_200000", detail.RaceDetail{
		Race: gov, Category: races.CategoryGovernor,
		Counties: []models.CountyResult{{
			RaceID: "2024-NC-G", StatePostal: "NC", CountyFIPS: "37001", LastUpdated: updated,
			CandidateVotes: map[string]models.VoteShare{"c1": {VoteCount: 1, VotePct: 100}},
			CandidateOrder: []string{"c1"},
		}},
	})
	require.NoError(t, err)

	// unknown family and a file without a year are reported, not fatal
	miscDir := filepath.Join(root, "misc")
	require.NoError(t, os.MkdirAll(miscDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(miscDir, "notes_misc.csv"), []byte("a,b\n1,2\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(yearDir, "mayor_x.csv"), []byte("race_id\n2024-X\n"), 0o644))

	report, err := s.LoadDirectory(ctx, root)
	require.NoError(t, err)
	assert.Equal(t, 6, report.Files)
	assert.Equal(t, 4, report.Loaded)
	assert.Equal(t, []string{filepath.Join(miscDir, "notes_misc.csv")}, report.Skipped)
	assert.Contains(t, report.Failed, filepath.Join(yearDir, "mayor_x.csv"))

	assert.Equal(t, int64(2), countRows(t, s, TableGovernor))
	assert.Equal(t, int64(1), countRows(t, s, TableHouse))
	assert.Equal(t, int64(2), countRows(t, s, TableBallot))
	assert.Equal(t, int64(1), countRows(t, s, TableCountyResults))
	assert.Equal(t, int64(4), countRows(t, s, TableExports))

	var county CountyResultRow
	require.NoError(t, s.DB().First(&county).Error)
	assert.Equal(t, models.UnknownCountyName, *county.CountyName)
	assert.Equal(t, models.UnknownCountyID, *county.CountyID)

	// reloading is idempotent
	_, err = s.LoadDirectory(ctx, root)
	require.NoError(t, err)
	assert.Equal(t, int64(2), countRows(t, s, TableGovernor))
	assert.Equal(t, int64(4), countRows(t, s, TableExports))
}

func TestClear(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()
	_, err := s.SaveResults(ctx, fixtureResults())
	require.NoError(t, err)
	require.NoError(t, s.RecordFetch(ctx, 2024, true, ""))

	cleared, err := s.Clear(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, DataTables, cleared)

	for _, table := range DataTables {
		assert.Equal(t, int64(0), countRows(t, s, table), table)
	}
	assert.Equal(t, int64(1), countRows(t, s, TableFetches))
}

func TestSummary(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()
	_, err := s.SaveResults(ctx, fixtureResults())
	require.NoError(t, err)

	sum, err := s.Summary(ctx)
	require.NoError(t, err)
	assert.Empty(t, sum.Warnings)
	assert.Equal(t, int64(2), sum.Tables[TableGovernor])

	y := sum.Years["2024"]
	require.NotNil(t, y)
	assert.Equal(t, RaceStats{Races: 1, States: 1, Candidates: 2, UniqueParties: 2, Incumbents: 1}, y.Races["Governor"])
	require.NotNil(t, y.Measures)
	assert.Equal(t, 2, y.Measures.Options)
	assert.Nil(t, y.Counties)

	var buf bytes.Buffer
	require.NoError(t, PrintSummary(&buf, sum))
	assert.Contains(t, buf.String(), "Year 2024:")
	assert.Contains(t, buf.String(), "Races: 1 across 1 states")
}

func TestSummary_MissingTables(t *testing.T) {
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)

	sum, err := New(db, nil).Summary(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, sum.Warnings)
	assert.Equal(t, int64(0), sum.Tables[TableGovernor])
}

func TestRecordFetch_MySQL(t *testing.T) {
	db, mock := setupMockDB(t)
	s := New(db, zap.NewNop())

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `election_fetches`").
		WithArgs(2024, sqlmock.AnyArg(), false, "timeout").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	require.NoError(t, s.RecordFetch(context.Background(), 2024, false, "timeout"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordExport_MySQLUpsert(t *testing.T) {
	db, mock := setupMockDB(t)
	s := New(db, zap.NewNop())

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `csv_exports` .* ON DUPLICATE KEY UPDATE").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	require.NoError(t, s.RecordExport(context.Background(), 2024, TableSenate, "senate.csv"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTableForFile(t *testing.T) {
	tests := map[string]string{
		"governor_2024-NC-G_detailed_20241105_200000.csv": TableCountyResults,
		"ballot_20241105_200000.csv":                      TableBallot,
		"House_20241105.csv":                              TableHouse,
		"governor_x.csv":                                  TableGovernor,
		"senate_x.csv":                                    TableSenate,
		"president_x.csv":                                 TablePresidential,
	}
	for name, want := range tests {
		got, ok := TableForFile(filepath.Join("data", name))
		assert.True(t, ok, name)
		assert.Equal(t, want, got, name)
	}

	_, ok := TableForFile("mayor.csv")
	assert.False(t, ok)
}

func TestYearFromPath(t *testing.T) {
	tests := []struct {
		path string
		year int
		ok   bool
	}{
		{"data/2022/senate_x.csv", 2022, true},
		{"data/exports/2020_senate.csv", 2020, true},
		{"data/exports/senate_20241105_200000.csv", 2024, true},
		{"data/exports/senate.csv", 0, false},
	}
	for _, tt := range tests {
		y, ok := YearFromPath(filepath.FromSlash(tt.path))
		assert.Equal(t, tt.ok, ok, tt.path)
		assert.Equal(t, tt.year, y, tt.path)
	}
}
