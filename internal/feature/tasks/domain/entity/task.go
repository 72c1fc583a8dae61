// Package entity defines the domain models for the tasks feature.
package entity

import (
	"errors"
	"strings"
	"time"
)

// Priority is the urgency of a task.
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// DueDateLayout is the calendar-date wire format of a due date.
const DueDateLayout = "2006-01-02"

// ErrInvalidDueDate is returned by ParseDueDate for unparseable input.
var ErrInvalidDueDate = errors.New("dueDate must be YYYY-MM-DD or an RFC 3339 timestamp")

// Task is a unit of personal work owned by exactly one user.
type Task struct {
	ID        string
	Title     string
	Priority  Priority
	DueDate   *time.Time // calendar date at UTC midnight, nil when unset
	Completed bool
	OwnerID   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ParsePriority returns the priority named by s and whether it is one of Low, Medium or High.
func ParsePriority(s string) (Priority, bool) {
	switch p := Priority(strings.TrimSpace(s)); p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return p, true
	default:
		return "", false
	}
}

// ParseDueDate parses a due date given as YYYY-MM-DD or RFC 3339.
// An empty string yields nil. Only the calendar date is kept.
func ParseDueDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(DueDateLayout, s)
	if err != nil {
		ts, tsErr := time.Parse(time.RFC3339, s)
		if tsErr != nil {
			return nil, ErrInvalidDueDate
		}
		t = time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC)
	}
	return &t, nil
}

// TaskPatch is a partial update. Nil fields are left unchanged.
type TaskPatch struct {
	Title        *string
	Priority     *Priority
	DueDate      *time.Time
	ClearDueDate bool
	Completed    *bool
}

// Apply writes the set fields of p onto t.
func (p TaskPatch) Apply(t *Task) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	switch {
	case p.ClearDueDate:
		t.DueDate = nil
	case p.DueDate != nil:
		d := *p.DueDate
		t.DueDate = &d
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
}
