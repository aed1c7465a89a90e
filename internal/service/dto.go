package service

import (
	"time"

	"github.com/phrazzld/task-tracker/internal/patch"
)

// TaskCreate is the payload for creating a task.
type TaskCreate struct {
	Title        string  `json:"title" validate:"required,min=1"`
	Index        *int    `json:"index,omitempty" validate:"omitempty,min=-2147483648,max=2147483647"`
	Content      *string `json:"content,omitempty"`
	Status       string  `json:"status" validate:"required,min=1"`
	AssigneeID   *int64  `json:"assignee_id,omitempty"`
	TaskLabelIDs []int64 `json:"taskLabelIds"`
}

// TaskUpdate is the payload for a partial task update. A key left out of the
// JSON body is absent and leaves the field unchanged.
type TaskUpdate struct {
	Title        patch.Optional[string]  `json:"title"`
	Index        patch.Optional[int]     `json:"index"`
	Content      patch.Optional[string]  `json:"content"`
	Status       patch.Optional[string]  `json:"status"`
	AssigneeID   patch.Optional[int64]   `json:"assignee_id"`
	TaskLabelIDs patch.Optional[[]int64] `json:"taskLabelIds"`
}

// TaskView is the external representation of a task.
type TaskView struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Index        *int      `json:"index"`
	Content      *string   `json:"content"`
	Status       string    `json:"status"`
	AssigneeID   *int64    `json:"assignee_id,omitempty"`
	TaskLabelIDs []int64   `json:"taskLabelIds"`
	CreatedAt    time.Time `json:"createdAt"`
}

// UserCreate is the payload for registering a user.
type UserCreate struct {
	Email     string  `json:"email" validate:"required,email"`
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	Password  string  `json:"password" validate:"required,min=3,max=72"`
}

// UserUpdate is the payload for a partial user update.
type UserUpdate struct {
	Email     patch.Optional[string] `json:"email"`
	FirstName patch.Optional[string] `json:"firstName"`
	LastName  patch.Optional[string] `json:"lastName"`
	Password  patch.Optional[string] `json:"password"`
}

// UserView is the external representation of a user. It never carries the password digest.
type UserView struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	FirstName *string   `json:"firstName"`
	LastName  *string   `json:"lastName"`
	CreatedAt time.Time `json:"createdAt"`
}

// TaskStatusCreate is the payload for creating a task status.
type TaskStatusCreate struct {
	Name string `json:"name" validate:"required,min=1"`
	Slug string `json:"slug" validate:"required,min=1"`
}

// TaskStatusUpdate is the payload for a partial task status update.
type TaskStatusUpdate struct {
	Name patch.Optional[string] `json:"name"`
	Slug patch.Optional[string] `json:"slug"`
}

// TaskStatusView is the external representation of a task status.
type TaskStatusView struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"createdAt"`
}

// LabelCreate is the payload for creating a label.
type LabelCreate struct {
	Name string `json:"name" validate:"required,min=3,max=1000"`
}

// LabelUpdate is the payload for a partial label update.
type LabelUpdate struct {
	Name patch.Optional[string] `json:"name"`
}

// LabelView is the external representation of a label.
type LabelView struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}
