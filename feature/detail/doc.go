// Package detail fetches and parses per-county breakdowns of selected races.
//
// Only Governor and Ballot Measures races get detail. Fetches run through an errgroup
// bounded by feed.detail_workers; each race writes only its own slot of the result slice.
package detail
