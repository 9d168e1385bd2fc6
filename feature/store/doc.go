// Package store persists reconciled results in a relational database through gorm.
//
// Tables mirror the CSV exports: one table per office family, one for ballot measures and
// one for county detail, plus the election_fetches and csv_exports tracking tables.
// Writes replace every row of the touched race ids inside a single transaction, so loading
// the same export twice is idempotent.
//
// Works on sqlite for a local history file and on MySQL for shared deployments.
package store
