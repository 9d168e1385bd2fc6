// Package integrity provides health checks for the archive bucket and the results database.
//
// # Checks Provided
//
//   - Structure: the archive bucket exists and has the exports and snapshots folders below the
//     configured prefix.
//   - Schema: every results table exists with the columns declared by its gorm model.
//   - Exports: every CSV export recorded in the database has its object in the archive.
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/structure : Runs structure check (supports ?fix=true).
//   - GET /integrity/schema : Runs schema check (supports ?fix=true, which migrates).
//   - GET /integrity/exports : Runs exports check.
package integrity
