// Package database handles database connections and schema inspection.
//
// It wraps GORM to open the results store with either the sqlite driver (a local history file,
// the default) or MySQL (a shared deployment), based on the application's configuration.
//
// # Connect
//
// Connect picks the dialector from Config.Driver, applies pool settings suitable for the driver
// and verifies the connection with a bounded ping.
//
// # Schema Inspection
//
// GetTableColumns and ColumnSet read the live column list of a table. The integrity feature
// compares them with the store's GORM models, and the store summary uses them to tell a missing
// table apart from an empty one.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	columns, err := database.GetTableColumns(db, "governor_races")
package database
