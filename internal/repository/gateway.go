package repository

import (
	"context"
)

// EntryFilter narrows time entry listings. UserID is mandatory; the
// remaining fields are optional. From/To bound StartTime (epoch millis,
// inclusive).
type EntryFilter struct {
	UserID    string
	From      *int64
	To        *int64
	ProjectID *string
}

// Gateway is the persistence boundary for the entity store. It is the
// system of record; implementations (SQLite database, in-memory store)
// are swappable. Every call honors the context deadline.
type Gateway interface {
	// Clients
	ListClients(ctx context.Context, userID string) ([]*ClientRecord, error)
	CreateClient(ctx context.Context, record *ClientRecord) error
	DeleteClient(ctx context.Context, id string) error

	// Projects
	ListProjects(ctx context.Context, userID string) ([]*ProjectRecord, error)
	CreateProject(ctx context.Context, record *ProjectRecord) error
	UpdateProject(ctx context.Context, record *ProjectRecord) error
	DeleteProject(ctx context.Context, id string) error

	// Tasks
	ListTasks(ctx context.Context, userID string) ([]*TaskRecord, error)
	CreateTask(ctx context.Context, record *TaskRecord) error
	UpdateTask(ctx context.Context, record *TaskRecord) error
	DeleteTask(ctx context.Context, id string) error

	// Time entries
	ListTimeEntries(ctx context.Context, filter EntryFilter) ([]*TimeEntryRecord, error)
	CreateTimeEntry(ctx context.Context, record *TimeEntryRecord) error
	UpdateTimeEntry(ctx context.Context, record *TimeEntryRecord) error
	DeleteTimeEntry(ctx context.Context, id string) error

	// Utility
	Close() error
}
