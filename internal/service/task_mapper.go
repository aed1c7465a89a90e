package service

import (
	"context"

	"github.com/phrazzld/task-tracker/internal/domain"
)

// TaskMapper translates between task payloads and domain.Task.
type TaskMapper struct {
	resolver *ReferenceResolver
}

// NewTaskMapper creates a mapper that resolves references with resolver.
func NewTaskMapper(resolver *ReferenceResolver) *TaskMapper {
	return &TaskMapper{resolver: resolver}
}

// ToEntity validates a create payload and builds a new, unsaved task from it.
func (m *TaskMapper) ToEntity(ctx context.Context, in TaskCreate) (*domain.Task, error) {
	if err := validatePayload(in); err != nil {
		return nil, err
	}

	status, err := m.resolver.ResolveStatus(ctx, in.Status)
	if err != nil {
		return nil, err
	}
	assignee, err := m.resolver.ResolveAssignee(ctx, in.AssigneeID)
	if err != nil {
		return nil, err
	}
	labels, err := m.resolver.ResolveLabels(ctx, in.TaskLabelIDs)
	if err != nil {
		return nil, err
	}

	task := &domain.Task{
		Name:        in.Title,
		Index:       in.Index,
		Description: in.Content,
		Status:      status,
		Assignee:    assignee,
		Labels:      labels,
	}
	if err := task.Validate(); err != nil {
		return nil, externalTaskError(err)
	}
	return task, nil
}

// ToView renders a task in its external representation.
func (m *TaskMapper) ToView(t *domain.Task) TaskView {
	return newTaskView(t)
}

func newTaskView(t *domain.Task) TaskView {
	view := TaskView{
		ID:           t.ID,
		Title:        t.Name,
		Index:        t.Index,
		Content:      t.Description,
		AssigneeID:   t.AssigneeID(),
		TaskLabelIDs: t.Labels.IDs(),
		CreatedAt:    t.CreatedAt,
	}
	if t.Status != nil {
		view.Status = t.Status.Slug
	}
	return view
}
