// Package store defines the persistence interfaces for users, task statuses,
// labels and tasks, along with the errors every implementation reports.
// Services depend on these interfaces; internal/platform/postgres provides
// the production implementations and internal/mocks the in-memory ones.
package store
