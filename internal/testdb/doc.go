// Package testdb provides helpers for integration tests that run against a
// real PostgreSQL database.
//
// Tests obtain a migrated connection with Open, which skips the test when no
// database URL is configured, and isolate their writes with WithTx, which
// always rolls back.
package testdb
