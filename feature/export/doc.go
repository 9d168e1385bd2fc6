// Package export renders reconciled results for people and files.
//
// The console summary prints counts per category and the top races of each. The CSV
// exporters write one file per office family plus one detailed file per race with
// county breakdowns. File names carry a per-run timestamp so repeated runs never collide.
package export
