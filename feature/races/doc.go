// Package races reconciles the progress and metadata feeds into typed race records.
//
// ParseRace merges one race's progress entry and metadata entry. IsBallotMeasure decides
// the variant from metadata alone, and CategoryOf buckets the result. BuildResultSet drives
// both over every race id of the progress feed through core/reconcile, keeping failed races
// as explicit outcomes instead of aborting the batch.
//
// The Service and Handler expose the live result set over HTTP behind a TTL cache.
package races
