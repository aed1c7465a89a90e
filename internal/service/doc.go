// Package service contains the application use cases for users, task statuses,
// labels and tasks. It translates between the external payloads (the DTOs in
// dto.go) and the domain entity graph, resolves external references such as
// status slugs and label IDs, applies partial updates, and runs every write in
// a single store transaction.
//
// The service layer depends on domain entities and the store interfaces, never
// on a specific storage implementation.
package service
