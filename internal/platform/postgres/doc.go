// Package postgres provides PostgreSQL-specific implementations for the data
// storage interfaces defined in the internal/store package, along with the
// embedded schema migrations. Connections go through the pgx stdlib driver.
package postgres
