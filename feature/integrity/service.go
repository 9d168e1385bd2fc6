package integrity

import (
	"context"
	"errors"
	"strings"

	"election-results/core/feed"
	"election-results/core/storage"
	"election-results/feature/archive"
	"election-results/feature/integrity/checks"
	"election-results/feature/store"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrNoDatabase is returned by checks that need the results database when none is configured.
var ErrNoDatabase = errors.New("database not configured")

// Service handles integrity checks.
type Service struct {
	client  storage.Client
	archive *archive.Archive
	db      *gorm.DB
	logger  *zap.Logger
}

// NewService creates a new integrity service. db may be nil.
func NewService(client storage.Client, cfg storage.Config, db *gorm.DB, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		client:  client,
		archive: archive.New(client, cfg, logger),
		db:      db,
		logger:  logger,
	}
}

// RequiredFolders lists the folders that must exist in the archive bucket.
func (s *Service) RequiredFolders() []string {
	return []string{
		strings.TrimSuffix(s.archive.Folder(archive.ExportsFolder), "/"),
		strings.TrimSuffix(s.archive.Folder(archive.SnapshotsFolder), "/"),
	}
}

// CheckStructure returns a list of missing folders.
func (s *Service) CheckStructure(ctx context.Context) ([]string, error) {
	return checks.CheckStructure(ctx, s.client, s.archive.Bucket(), s.RequiredFolders())
}

// FixStructure creates the bucket when needed, then the missing folders.
func (s *Service) FixStructure(ctx context.Context, missing []string) error {
	if err := s.archive.EnsureBucket(ctx); err != nil {
		return err
	}
	return checks.FixStructure(ctx, s.client, s.archive.Bucket(), s.logger, missing)
}

// CheckSchema compares the database against the store models.
func (s *Service) CheckSchema() (*checks.SchemaReport, error) {
	if s.db == nil {
		return nil, ErrNoDatabase
	}
	return checks.CheckSchema(s.db)
}

// FixSchema migrates every store table.
func (s *Service) FixSchema(ctx context.Context) error {
	if s.db == nil {
		return ErrNoDatabase
	}
	return store.New(s.db, s.logger).Migrate(ctx)
}

// CheckExports returns the object keys of recorded exports that are missing from the archive.
func (s *Service) CheckExports(ctx context.Context) ([]string, error) {
	if s.db == nil {
		return nil, ErrNoDatabase
	}
	rows, err := store.New(s.db, s.logger).Exports(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(rows))
	keys := make([]string, 0, len(rows))
	for _, row := range rows {
		key := s.archive.ExportKey(feed.ElectionDate(row.Year), row.FilePath)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	}
	return checks.CheckObjects(ctx, s.client, s.archive.Bucket(), keys)
}
