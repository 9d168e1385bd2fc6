// Package feed fetches the upstream election results documents.
//
// Two national documents make up one fetch cycle: the progress document (live tallies) and the
// metadata document (names, parties, offices), both JSON objects keyed by race id. Per-race
// county detail documents are keyed by reporting unit id.
//
// Document decodes such an object while keeping its keys in document order, so everything built
// from it iterates deterministically. Client builds URLs from Config, performs GETs through the
// fiber client agent and retries transient failures with a fixed delay.
//
// # Usage
//
//	client := feed.NewClient(cfg.Feed, log)
//	feeds, err := client.FetchFeeds(ctx)
//	if err != nil {
//	    return err
//	}
//	for _, raceID := range feeds.Progress.Keys() { ... }
package feed
