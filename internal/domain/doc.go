// Package domain contains the core business entities of the task tracker:
// users, task statuses, labels and tasks, along with their validation rules.
// It is independent of any storage engine or delivery mechanism.
package domain
