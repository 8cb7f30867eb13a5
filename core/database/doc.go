// Package database handles database connections for parsed-audit persistence.
//
// It provides a wrapper around GORM (Go Object Relational Mapping) to properly
// configure MySQL connections based on the application's configuration.
//
// # Connect
//
// The Connect function establishes a connection to the database, configures
// the connection pool, and verifies reachability with an initial ping. The
// database is optional: when it is unavailable the ingest service still
// parses files, it just skips persistence.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Warn("Database connection failed, running without persistence", err)
//	}
package database
