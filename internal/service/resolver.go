package service

import (
	"context"
	"fmt"

	"github.com/phrazzld/task-tracker/internal/domain"
	"github.com/phrazzld/task-tracker/internal/store"
)

// StatusLookup finds task statuses by their external key.
type StatusLookup interface {
	GetBySlug(ctx context.Context, slug string) (*domain.TaskStatus, error)
}

// UserLookup finds users by ID.
type UserLookup interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// LabelLookup finds labels by ID, returning only the ones that exist.
type LabelLookup interface {
	GetByIDs(ctx context.Context, ids []int64) ([]*domain.Label, error)
}

// ReferenceResolver turns external references in task payloads into entities.
// It has no side effects and caches nothing between calls.
type ReferenceResolver struct {
	statuses StatusLookup
	users    UserLookup
	labels   LabelLookup
}

// NewReferenceResolver creates a resolver over the given lookups.
func NewReferenceResolver(statuses StatusLookup, users UserLookup, labels LabelLookup) *ReferenceResolver {
	return &ReferenceResolver{
		statuses: statuses,
		users:    users,
		labels:   labels,
	}
}

// ResolveStatus returns the status with the given slug, or store.ErrTaskStatusNotFound.
func (r *ReferenceResolver) ResolveStatus(ctx context.Context, slug string) (*domain.TaskStatus, error) {
	if slug == "" {
		return nil, domain.NewValidationError("status", "is required", nil)
	}
	status, err := r.statuses.GetBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("status %q: %w", slug, err)
	}
	return status, nil
}

// ResolveAssignee returns the user with the given ID, or nil for a nil ID.
func (r *ReferenceResolver) ResolveAssignee(ctx context.Context, id *int64) (*domain.User, error) {
	if id == nil {
		return nil, nil
	}
	return r.resolveUser(ctx, *id)
}

func (r *ReferenceResolver) resolveUser(ctx context.Context, id int64) (*domain.User, error) {
	user, err := r.users.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("assignee %d: %w", id, err)
	}
	return user, nil
}

// ResolveLabels returns the set of labels with the given IDs. Duplicate IDs
// collapse. If any ID is unknown, the error names the first one in input order
// and no labels are returned.
func (r *ReferenceResolver) ResolveLabels(ctx context.Context, ids []int64) (domain.LabelSet, error) {
	if len(ids) == 0 {
		return domain.LabelSet{}, nil
	}

	unique := make([]int64, 0, len(ids))
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			unique = append(unique, id)
		}
	}

	found, err := r.labels.GetByIDs(ctx, unique)
	if err != nil {
		return nil, fmt.Errorf("failed to load labels: %w", err)
	}

	set := domain.NewLabelSet(found...)
	for _, id := range unique {
		if !set.Contains(id) {
			return nil, fmt.Errorf("%w: id %d", store.ErrLabelNotFound, id)
		}
	}
	return set, nil
}
