// Package taskfilter builds task list filters from optional query criteria.
//
// Each supplied criterion renders two ways: as an in-memory predicate over a
// domain.Task and as a SQL fragment for the Postgres task store. Both renderings
// are built from the same Params so they cannot drift apart.
package taskfilter

import (
	"fmt"
	"strings"

	"github.com/phrazzld/task-tracker/internal/domain"
)

// Params holds the optional task list criteria. A nil field is not applied.
type Params struct {
	TitleCont  *string
	AssigneeID *int64
	Status     *string
	LabelID    *int64
}

// Args accumulates positional SQL arguments.
type Args struct {
	values []any
}

// Add appends v and returns its $n placeholder.
func (a *Args) Add(v any) string {
	a.values = append(a.values, v)
	return fmt.Sprintf("$%d", len(a.values))
}

// Values returns the arguments in placeholder order.
func (a *Args) Values() []any {
	return a.values
}

// Criterion is one filter condition.
type Criterion interface {
	Matches(t *domain.Task) bool
	Clause(args *Args) string
}

// Filter is the conjunction of its criteria. The zero value matches every task.
type Filter struct {
	criteria []Criterion
}

// Build folds the supplied params into a Filter, in a fixed order.
func Build(p Params) Filter {
	var f Filter
	if p.TitleCont != nil {
		f.criteria = append(f.criteria, titleContains(*p.TitleCont))
	}
	if p.AssigneeID != nil {
		f.criteria = append(f.criteria, assigneeIs(*p.AssigneeID))
	}
	if p.Status != nil {
		f.criteria = append(f.criteria, statusIs(*p.Status))
	}
	if p.LabelID != nil {
		f.criteria = append(f.criteria, hasLabel(*p.LabelID))
	}
	return f
}

// And returns a filter holding the criteria of f followed by c.
func (f Filter) And(c ...Criterion) Filter {
	criteria := make([]Criterion, 0, len(f.criteria)+len(c))
	criteria = append(criteria, f.criteria...)
	criteria = append(criteria, c...)
	return Filter{criteria: criteria}
}

// Empty reports whether the filter has no criteria.
func (f Filter) Empty() bool {
	return len(f.criteria) == 0
}

// Matches reports whether t satisfies every criterion.
func (f Filter) Matches(t *domain.Task) bool {
	for _, c := range f.criteria {
		if !c.Matches(t) {
			return false
		}
	}
	return true
}

// Where renders the filter as a WHERE clause over the tasks table aliased as t,
// with the task_statuses table aliased as ts. An empty filter renders as "".
func (f Filter) Where() (string, []any) {
	if f.Empty() {
		return "", nil
	}
	args := &Args{}
	clauses := make([]string, 0, len(f.criteria))
	for _, c := range f.criteria {
		clauses = append(clauses, c.Clause(args))
	}
	return "WHERE " + strings.Join(clauses, " AND "), args.Values()
}

type titleContains string

func (c titleContains) Matches(t *domain.Task) bool {
	return strings.Contains(strings.ToLower(t.Name), strings.ToLower(string(c)))
}

func (c titleContains) Clause(args *Args) string {
	return fmt.Sprintf("t.name ILIKE '%%' || %s || '%%'", args.Add(escapeLike(string(c))))
}

type assigneeIs int64

func (c assigneeIs) Matches(t *domain.Task) bool {
	return t.Assignee != nil && t.Assignee.ID == int64(c)
}

func (c assigneeIs) Clause(args *Args) string {
	return "t.assignee_id = " + args.Add(int64(c))
}

type statusIs string

func (c statusIs) Matches(t *domain.Task) bool {
	return t.Status != nil && t.Status.Slug == string(c)
}

func (c statusIs) Clause(args *Args) string {
	return "ts.slug = " + args.Add(string(c))
}

type hasLabel int64

func (c hasLabel) Matches(t *domain.Task) bool {
	return t.HasLabel(int64(c))
}

func (c hasLabel) Clause(args *Args) string {
	return "EXISTS (SELECT 1 FROM task_labels tl WHERE tl.task_id = t.id AND tl.label_id = " + args.Add(int64(c)) + ")"
}

// escapeLike escapes ILIKE wildcards so the search text matches literally.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
