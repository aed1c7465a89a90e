// Package mocks provides in-memory implementations of the store interfaces
// and other collaborators for use in tests.
//
// The store fakes share a Database that enforces the same uniqueness and
// reference rules as the Postgres schema, so service tests exercise the same
// delete policies and conflict errors the real stores produce. Every store
// also exposes function fields (CreateFn, GetByIDFn, ...) to override single
// calls.
package mocks
