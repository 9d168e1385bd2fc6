// Package reconcile provides a generic engine for merging two independently shaped sources that
// share a key space.
//
// The engine walks the primary source in its key order, pairs every key with the secondary
// source and hands both entries to a model-specific Func. Each key yields an explicit Outcome
// holding either a value or an error, so one bad entity never aborts a batch.
//
// # Architecture
//
//  1. Source: a keyed collection with a stable key order (feed documents implement it).
//  2. Func: model-specific logic that turns the two entries of one key into a value.
//  3. Plan: the outcomes, the unmatched keys and a Summary of the run.
//  4. Cache: TTL cache with stampede protection for serving reconciled values repeatedly.
//
// # Usage Example
//
//	plan := reconcile.ReconcileAll[json.RawMessage, json.RawMessage, models.RaceRecord](
//	    feeds.Progress, feeds.Metadata, races.ParseRace)
//
//	for _, failed := range plan.Failures() {
//	    log.Warn("race skipped", zap.String("race_id", failed.Key), zap.Error(failed.Err))
//	}
package reconcile
