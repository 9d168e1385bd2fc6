package integrity

import (
	"context"
	"testing"
	"time"

	"election-results/core/database"
	"election-results/core/storage"
	"election-results/core/storage/mocks"
	"election-results/feature/store"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

var testConfig = storage.Config{Bucket: "test-bucket", Prefix: "results"}

// setupMockDB creates a mock GORM DB for testing.
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

func setupSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	return db
}

func emptyListing() <-chan minio.ObjectInfo {
	ch := make(chan minio.ObjectInfo)
	close(ch)
	return ch
}

func TestService_Structure(t *testing.T) {
	mockClient := new(mocks.Client)
	svc := NewService(mockClient, testConfig, nil, zap.NewNop())

	assert.Equal(t, []string{"results/exports", "results/snapshots"}, svc.RequiredFolders())

	t.Run("CheckStructure", func(t *testing.T) {
		mockClient.On("BucketExists", mock.Anything, "test-bucket").Return(true, nil)
		mockClient.On("ListObjects", mock.Anything, "test-bucket", mock.Anything).Return(emptyListing())

		missing, err := svc.CheckStructure(context.Background())
		assert.NoError(t, err)
		assert.Equal(t, svc.RequiredFolders(), missing)
	})

	t.Run("FixStructure", func(t *testing.T) {
		mockClient.On("PutObject", mock.Anything, "test-bucket", "results/exports/", mock.Anything, int64(0), mock.Anything).
			Return(minio.UploadInfo{}, nil)

		err := svc.FixStructure(context.Background(), []string{"results/exports"})
		assert.NoError(t, err)
		mockClient.AssertExpectations(t)
	})
}

func TestService_NoDatabase(t *testing.T) {
	svc := NewService(new(mocks.Client), testConfig, nil, zap.NewNop())

	_, err := svc.CheckSchema()
	assert.ErrorIs(t, err, ErrNoDatabase)
	assert.ErrorIs(t, svc.FixSchema(context.Background()), ErrNoDatabase)
	_, err = svc.CheckExports(context.Background())
	assert.ErrorIs(t, err, ErrNoDatabase)
}

func TestService_Schema(t *testing.T) {
	db := setupSQLite(t)
	svc := NewService(new(mocks.Client), testConfig, db, zap.NewNop())

	report, err := svc.CheckSchema()
	require.NoError(t, err)
	assert.False(t, report.Matched)
	assert.Len(t, report.MissingTables(), len(store.AllTables))

	require.NoError(t, svc.FixSchema(context.Background()))

	report, err = svc.CheckSchema()
	require.NoError(t, err)
	assert.True(t, report.Matched)
	assert.Empty(t, report.MissingTables())
}

func TestService_Exports(t *testing.T) {
	db := setupSQLite(t)
	s := store.New(db, zap.NewNop())
	require.NoError(t, s.Migrate(context.Background()))
	require.NoError(t, s.RecordExport(context.Background(), 2024, "house", "/data/2024/house_20241105_210000.csv"))
	require.NoError(t, s.RecordExport(context.Background(), 2024, "senate", "/data/2024/senate_20241105_210000.csv"))

	mockClient := new(mocks.Client)
	present := "results/exports/2024-11-05/house_20241105_210000.csv"
	mockClient.On("ListObjects", mock.Anything, "test-bucket", mock.MatchedBy(func(opts minio.ListObjectsOptions) bool {
		return opts.Prefix == present
	})).Return(func(context.Context, string, minio.ListObjectsOptions) <-chan minio.ObjectInfo {
		ch := make(chan minio.ObjectInfo, 1)
		ch <- minio.ObjectInfo{Key: present, LastModified: time.Now()}
		close(ch)
		return ch
	})
	mockClient.On("ListObjects", mock.Anything, "test-bucket", mock.Anything).Return(emptyListing())

	svc := NewService(mockClient, testConfig, db, zap.NewNop())
	missing, err := svc.CheckExports(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"results/exports/2024-11-05/senate_20241105_210000.csv"}, missing)
}
