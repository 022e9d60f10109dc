package domain

import (
	"github.com/google/uuid"
)

// TaskStatus enumerates the lifecycle states of a Task.
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

// Valid reports whether the status is one of the known values.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted:
		return true
	}
	return false
}

// NewID generates a new entity identifier.
func NewID() string {
	return uuid.NewString()
}

// Client represents a billable client owned by a user.
type Client struct {
	ID     string
	UserID string
	Name   string
}

// Project represents a project belonging to a client.
// ClientID is a soft reference: deleting a client does not cascade, so it
// may point at a client that no longer exists.
type Project struct {
	ID       string
	UserID   string
	ClientID string
	Name     string
	Color    string // RGB hex, e.g. "#1677ff"
	IsShared bool
}

// Task represents a unit of work within a project, optionally assigned
// to a user. Referenced optionally by time entries.
type Task struct {
	ID          string
	ProjectID   string
	Title       string
	Description *string
	Status      TaskStatus
	AssignedTo  *string
	CreatedBy   string
	CreatedAt   int64 // epoch millis
}

// TimeEntry represents a tracked span of work. EndTime == nil is the sole
// marker of a running entry; at most one entry per user may be running.
type TimeEntry struct {
	ID          string
	UserID      string
	ProjectID   string
	TaskID      *string
	Description string
	StartTime   int64 // epoch millis
	EndTime     *int64
}

// Running reports whether the entry is still open.
func (e TimeEntry) Running() bool {
	return e.EndTime == nil
}

// DurationMillis returns the elapsed time of a closed entry. A running
// entry contributes zero to historical aggregates.
func (e TimeEntry) DurationMillis() int64 {
	if e.EndTime == nil {
		return 0
	}
	return *e.EndTime - e.StartTime
}

// IsValid reports whether the entry satisfies basic integrity rules:
// a closed entry must end strictly after it starts.
func (e TimeEntry) IsValid() bool {
	if e.ID == "" || e.ProjectID == "" {
		return false
	}
	if e.EndTime != nil && *e.EndTime <= e.StartTime {
		return false
	}
	return true
}
