// Package storage provides the S3-compatible object storage client used to archive CSV exports
// and raw feed snapshots.
//
// The Client interface is a narrow view over minio-go so that callers can be tested with the
// mock in storage/mocks. NewClient builds a real client with strict transport timeouts.
package storage
