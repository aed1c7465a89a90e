package domain

import (
	"errors"
	"sort"
	"time"
	"unicode/utf8"
)

// Label name length limits, counted in characters.
const (
	MinLabelNameLength = 3
	MaxLabelNameLength = 1000
)

// ErrLabelNameLength is returned when a label name is outside the allowed length range.
var ErrLabelNameLength = errors.New("label name must be between 3 and 1000 characters")

// Label tags tasks. A label can be attached to many tasks and a task can carry many labels.
type Label struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// Validate checks the label name length.
func (l *Label) Validate() error {
	return ValidateLabelName(l.Name)
}

// ValidateLabelName checks that name has between MinLabelNameLength and MaxLabelNameLength characters.
func ValidateLabelName(name string) error {
	n := utf8.RuneCountInString(name)
	if n < MinLabelNameLength || n > MaxLabelNameLength {
		return NewValidationError("name", "must be between 3 and 1000 characters", ErrLabelNameLength)
	}
	return nil
}

// LabelSet is a set of labels keyed by ID. The zero value is an empty set.
type LabelSet map[int64]*Label

// NewLabelSet builds a set from labels, collapsing duplicates by ID.
func NewLabelSet(labels ...*Label) LabelSet {
	set := make(LabelSet, len(labels))
	for _, l := range labels {
		if l != nil {
			set[l.ID] = l
		}
	}
	return set
}

// Add inserts the label, replacing any label with the same ID.
func (s LabelSet) Add(l *Label) {
	s[l.ID] = l
}

// Contains reports whether the set holds a label with the given ID.
func (s LabelSet) Contains(id int64) bool {
	_, ok := s[id]
	return ok
}

// IDs returns the label IDs in ascending order.
func (s LabelSet) IDs() []int64 {
	ids := make([]int64, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Sorted returns the labels ordered by ID.
func (s LabelSet) Sorted() []*Label {
	labels := make([]*Label, 0, len(s))
	for _, id := range s.IDs() {
		labels = append(labels, s[id])
	}
	return labels
}

// Clone returns a shallow copy of the set.
func (s LabelSet) Clone() LabelSet {
	out := make(LabelSet, len(s))
	for id, l := range s {
		out[id] = l
	}
	return out
}
