package archive

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"election-results/core/feed"
	"election-results/core/storage"
	"election-results/feature/export"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// Top-level folders below the configured prefix.
const (
	ExportsFolder   = "exports"
	SnapshotsFolder = "snapshots"
)

// snapshotLayout timestamps snapshot objects; it sorts lexically in time order.
const snapshotLayout = "20060102T150405Z"

const (
	progressName = "progress.json"
	metadataName = "metadata.json"
)

// ErrNoSnapshot is returned when no complete snapshot exists for an election.
var ErrNoSnapshot = errors.New("no archived snapshot")

// Archive stores exported files and raw feed snapshots in an S3-compatible bucket.
//
// Layout:
//
//	<prefix>/exports/<election_date>/<file>.csv
//	<prefix>/snapshots/<election_date>/<timestamp>/progress.json
//	<prefix>/snapshots/<election_date>/<timestamp>/metadata.json
type Archive struct {
	client storage.Client
	bucket string
	prefix string
	logger *zap.Logger
}

// New creates an archive over a storage client.
func New(client storage.Client, cfg storage.Config, logger *zap.Logger) *Archive {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Archive{
		client: client,
		bucket: cfg.Bucket,
		prefix: strings.Trim(cfg.Prefix, "/"),
		logger: logger,
	}
}

// Bucket returns the bucket name.
func (a *Archive) Bucket() string {
	return a.bucket
}

// Folder returns the object key of a top-level folder, with a trailing slash.
func (a *Archive) Folder(name string) string {
	return a.key(name) + "/"
}

func (a *Archive) key(parts ...string) string {
	if a.prefix != "" {
		parts = append([]string{a.prefix}, parts...)
	}
	return path.Join(parts...)
}

// EnsureBucket creates the bucket when it does not exist.
func (a *Archive) EnsureBucket(ctx context.Context) error {
	exists, err := a.client.BucketExists(ctx, a.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if exists {
		return nil
	}
	if err := a.client.MakeBucket(ctx, a.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", a.bucket, err)
	}
	a.logger.Info("Created bucket", zap.String("bucket", a.bucket))
	return nil
}

// ExportKey returns the object key a local export file is archived under.
func (a *Archive) ExportKey(electionDate, localPath string) string {
	return a.key(ExportsFolder, electionDate, filepath.Base(localPath))
}

// UploadFile uploads one local file below the exports folder of an election.
func (a *Archive) UploadFile(ctx context.Context, electionDate, localPath string) (string, error) {
	data, err := os.ReadFile(localPath)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", localPath, err)
	}
	key := a.ExportKey(electionDate, localPath)
	if err := a.put(ctx, key, data, "text/csv"); err != nil {
		return "", err
	}
	return key, nil
}

// UploadFiles uploads every written file. Failures are joined; other files still upload.
func (a *Archive) UploadFiles(ctx context.Context, electionDate string, files []export.WrittenFile) ([]string, error) {
	var (
		keys []string
		errs []error
	)
	for _, f := range files {
		key, err := a.UploadFile(ctx, electionDate, f.Path)
		if err != nil {
			a.logger.Error("Failed to archive file", zap.String("path", f.Path), zap.Error(err))
			errs = append(errs, err)
			continue
		}
		keys = append(keys, key)
	}
	return keys, errors.Join(errs...)
}

// UploadSnapshot stores both feed documents of one fetch cycle.
func (a *Archive) UploadSnapshot(ctx context.Context, electionDate string, feeds *feed.Feeds, at time.Time) ([]string, error) {
	stamp := at.UTC().Format(snapshotLayout)
	docs := []struct {
		name string
		doc  *feed.Document
	}{
		{progressName, feeds.Progress},
		{metadataName, feeds.Metadata},
	}

	keys := make([]string, 0, len(docs))
	for _, d := range docs {
		key := a.key(SnapshotsFolder, electionDate, stamp, d.name)
		if err := a.put(ctx, key, d.doc.Bytes(), "application/json"); err != nil {
			return keys, err
		}
		keys = append(keys, key)
	}
	a.logger.Info("Archived feed snapshot", zap.String("election_date", electionDate), zap.String("snapshot", stamp))
	return keys, nil
}

// Snapshots lists the complete snapshot timestamps of an election, newest first.
func (a *Archive) Snapshots(ctx context.Context, electionDate string) ([]string, error) {
	prefix := a.key(SnapshotsFolder, electionDate) + "/"
	found := make(map[string]map[string]bool)
	for obj := range a.client.ListObjects(ctx, a.bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("list snapshots: %w", obj.Err)
		}
		rest := strings.TrimPrefix(obj.Key, prefix)
		stamp, name, ok := strings.Cut(rest, "/")
		if !ok {
			continue
		}
		if found[stamp] == nil {
			found[stamp] = make(map[string]bool)
		}
		found[stamp][name] = true
	}

	var stamps []string
	for stamp, names := range found {
		if names[progressName] && names[metadataName] {
			stamps = append(stamps, stamp)
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(stamps)))
	return stamps, nil
}

// LoadSnapshot reads one archived snapshot back into feed documents.
func (a *Archive) LoadSnapshot(ctx context.Context, electionDate, stamp string) (*feed.Feeds, error) {
	progress, err := a.getDocument(ctx, a.key(SnapshotsFolder, electionDate, stamp, progressName))
	if err != nil {
		return nil, err
	}
	metadata, err := a.getDocument(ctx, a.key(SnapshotsFolder, electionDate, stamp, metadataName))
	if err != nil {
		return nil, err
	}
	return &feed.Feeds{Progress: progress, Metadata: metadata}, nil
}

// LatestSnapshot loads the newest complete snapshot of an election.
func (a *Archive) LatestSnapshot(ctx context.Context, electionDate string) (*feed.Feeds, error) {
	stamps, err := a.Snapshots(ctx, electionDate)
	if err != nil {
		return nil, err
	}
	if len(stamps) == 0 {
		return nil, fmt.Errorf("%w for %s", ErrNoSnapshot, electionDate)
	}
	return a.LoadSnapshot(ctx, electionDate, stamps[0])
}

func (a *Archive) put(ctx context.Context, key string, data []byte, contentType string) error {
	_, err := a.client.PutObject(ctx, a.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("upload %s: %w", key, err)
	}
	a.logger.Debug("Uploaded object", zap.String("key", key), zap.Int("bytes", len(data)))
	return nil
}

func (a *Archive) getDocument(ctx context.Context, key string) (*feed.Document, error) {
	obj, err := a.client.GetObject(ctx, a.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	doc, err := feed.ParseDocument(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	return doc, nil
}

// SnapshotFetcher replays archived snapshots in place of the live feeds.
type SnapshotFetcher struct {
	archive *Archive
	date    string
}

// NewSnapshotFetcher creates a fetcher that serves the newest snapshot of an election.
func NewSnapshotFetcher(archive *Archive, electionDate string) *SnapshotFetcher {
	return &SnapshotFetcher{archive: archive, date: electionDate}
}

// ElectionDate returns the replayed election.
func (f *SnapshotFetcher) ElectionDate() string {
	return f.date
}

// FetchFeeds loads the newest archived snapshot.
func (f *SnapshotFetcher) FetchFeeds(ctx context.Context) (*feed.Feeds, error) {
	return f.archive.LatestSnapshot(ctx, f.date)
}
