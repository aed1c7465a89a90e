package mocks

import (
	"sync"
	"time"

	"github.com/phrazzld/task-tracker/internal/domain"
)

// taskRow mirrors a row of the tasks table plus its task_labels links.
type taskRow struct {
	id          int64
	name        string
	index       *int
	description *string
	statusID    int64
	assigneeID  *int64
	labelIDs    map[int64]struct{}
	createdAt   time.Time
}

// Database is the shared in-memory backing for the mock stores.
// Rows are stored by value; callers always receive copies.
type Database struct {
	mu       sync.Mutex
	nextID   int64
	now      func() time.Time
	users    map[int64]domain.User
	statuses map[int64]domain.TaskStatus
	labels   map[int64]domain.Label
	tasks    map[int64]*taskRow
}

// NewDatabase creates an empty in-memory database.
func NewDatabase() *Database {
	return &Database{
		now:      func() time.Time { return time.Now().UTC() },
		users:    make(map[int64]domain.User),
		statuses: make(map[int64]domain.TaskStatus),
		labels:   make(map[int64]domain.Label),
		tasks:    make(map[int64]*taskRow),
	}
}

// SetClock replaces the clock used for created_at values.
func (d *Database) SetClock(now func() time.Time) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.now = now
}

// ids are shared across tables, like a single sequence; tests only rely on them being increasing.
func (d *Database) newID() int64 {
	d.nextID++
	return d.nextID
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func copyInt(i *int) *int {
	if i == nil {
		return nil
	}
	v := *i
	return &v
}

func (d *Database) userCopy(id int64) *domain.User {
	u, ok := d.users[id]
	if !ok {
		return nil
	}
	u.FirstName = copyString(u.FirstName)
	u.LastName = copyString(u.LastName)
	return &u
}

func (d *Database) statusCopy(id int64) *domain.TaskStatus {
	s, ok := d.statuses[id]
	if !ok {
		return nil
	}
	return &s
}

func (d *Database) labelCopy(id int64) *domain.Label {
	l, ok := d.labels[id]
	if !ok {
		return nil
	}
	return &l
}

// loadTask assembles the task graph the way the Postgres store joins it.
func (d *Database) loadTask(row *taskRow) *domain.Task {
	t := &domain.Task{
		ID:          row.id,
		Name:        row.name,
		Index:       copyInt(row.index),
		Description: copyString(row.description),
		Status:      d.statusCopy(row.statusID),
		Labels:      domain.LabelSet{},
		CreatedAt:   row.createdAt,
	}
	if row.assigneeID != nil {
		t.Assignee = d.userCopy(*row.assigneeID)
	}
	for id := range row.labelIDs {
		if l := d.labelCopy(id); l != nil {
			t.Labels.Add(l)
		}
	}
	return t
}

func (d *Database) statusReferenced(id int64) bool {
	for _, row := range d.tasks {
		if row.statusID == id {
			return true
		}
	}
	return false
}

func (d *Database) userReferenced(id int64) bool {
	for _, row := range d.tasks {
		if row.assigneeID != nil && *row.assigneeID == id {
			return true
		}
	}
	return false
}
