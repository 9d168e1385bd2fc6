// Package archive keeps exported CSV files and raw feed snapshots in object storage.
//
// Snapshots can be replayed later through SnapshotFetcher, which satisfies the same
// fetcher contract as the live feed client.
package archive
