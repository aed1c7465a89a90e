package service

import (
	"context"
	"fmt"

	"github.com/phrazzld/task-tracker/internal/domain"
	"github.com/phrazzld/task-tracker/internal/patch"
)

// ApplyUpdate applies a partial update to task. Every present reference is
// resolved and every present value validated before anything is assigned,
// so on error task is left exactly as it was.
func (m *TaskMapper) ApplyUpdate(ctx context.Context, in TaskUpdate, task *domain.Task) (*domain.Task, error) {
	p := patch.NewPlan()
	for _, f := range taskFields {
		m.planField(ctx, p, f, in, task)
	}
	if err := p.Apply(); err != nil {
		return nil, err
	}
	return task, nil
}

func (m *TaskMapper) planField(ctx context.Context, p *patch.Plan, f taskField, in TaskUpdate, task *domain.Task) {
	switch f.Internal {
	case "name":
		patch.SetRequired(p, f.External, in.Title, &task.Name, minLength(f.External, 1))
	case "index":
		patch.SetNullable(p, f.External, in.Index, &task.Index, domain.ValidateTaskIndex)
	case "description":
		patch.SetNullable(p, f.External, in.Content, &task.Description)
	case "taskStatus":
		patch.SetResolved(ctx, p, f.External, in.Status, m.resolver.ResolveStatus, &task.Status)
	case "assignee":
		patch.SetNullableResolved(ctx, p, f.External, in.AssigneeID, m.resolver.resolveUser, &task.Assignee)
	case "labels":
		patch.SetResolvedSet(ctx, p, f.External, in.TaskLabelIDs, m.resolver.ResolveLabels, emptyLabelSet, &task.Labels)
	default:
		p.Fail(fmt.Errorf("no update rule for task field %q", f.Internal))
	}
}

func emptyLabelSet() domain.LabelSet {
	return domain.LabelSet{}
}
