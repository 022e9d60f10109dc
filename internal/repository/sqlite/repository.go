package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"timeflow/internal/errors"
	"timeflow/internal/repository"
	"timeflow/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// Repository implements repository.Gateway on a SQLite database.
type Repository struct {
	db *sql.DB
}

var _ repository.Gateway = (*Repository)(nil)

// New creates a new SQLite gateway instance and runs pending migrations.
func New(dbPath string) (*Repository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.NewPersistenceError("open database", err)
	}

	if err := migrations.RunMigrations(db); err != nil {
		db.Close()
		return nil, errors.NewPersistenceError("run migrations", err)
	}

	return &Repository{db: db}, nil
}

// Close closes the database connection
func (r *Repository) Close() error {
	return r.db.Close()
}

// ListClients retrieves all clients owned by a user
func (r *Repository) ListClients(ctx context.Context, userID string) ([]*repository.ClientRecord, error) {
	query := `
	SELECT id, user_id, name
	FROM clients
	WHERE user_id = ?
	ORDER BY name ASC`

	return QueryMultiple(ctx, r.db, query, ScanClients, "clients", userID)
}

// CreateClient inserts a new client record
func (r *Repository) CreateClient(ctx context.Context, record *repository.ClientRecord) error {
	query := `INSERT INTO clients (id, user_id, name) VALUES (?, ?, ?)`
	return Execute(ctx, r.db, query, record.ID, record.UserID, record.Name)
}

// DeleteClient removes a client by ID. Dependent projects keep their
// client_id reference; there is no cascade.
func (r *Repository) DeleteClient(ctx context.Context, id string) error {
	query := `DELETE FROM clients WHERE id = ?`
	return ExecuteWithRowsAffected(ctx, r.db, query, "client", id, id)
}

// ListProjects retrieves all projects owned by a user
func (r *Repository) ListProjects(ctx context.Context, userID string) ([]*repository.ProjectRecord, error) {
	query := `
	SELECT id, user_id, client_id, name, color, is_shared
	FROM projects
	WHERE user_id = ?
	ORDER BY name ASC`

	return QueryMultiple(ctx, r.db, query, ScanProjects, "projects", userID)
}

// CreateProject inserts a new project record. The client_id is not
// checked against the clients table; dangling references are resolved
// at read time.
func (r *Repository) CreateProject(ctx context.Context, record *repository.ProjectRecord) error {
	query := `
	INSERT INTO projects (id, user_id, client_id, name, color, is_shared)
	VALUES (?, ?, ?, ?, ?, ?)`
	return Execute(ctx, r.db, query, record.ID, record.UserID, record.ClientID, record.Name, record.Color, boolToInt(record.IsShared))
}

// UpdateProject updates an existing project record
func (r *Repository) UpdateProject(ctx context.Context, record *repository.ProjectRecord) error {
	query := `
	UPDATE projects
	SET client_id = ?, name = ?, color = ?, is_shared = ?
	WHERE id = ?`
	return ExecuteWithRowsAffected(ctx, r.db, query, "project", record.ID, record.ClientID, record.Name, record.Color, boolToInt(record.IsShared), record.ID)
}

// DeleteProject removes a project by ID without cascading to entries
func (r *Repository) DeleteProject(ctx context.Context, id string) error {
	query := `DELETE FROM projects WHERE id = ?`
	return ExecuteWithRowsAffected(ctx, r.db, query, "project", id, id)
}

// ListTasks retrieves all tasks created by or assigned to a user
func (r *Repository) ListTasks(ctx context.Context, userID string) ([]*repository.TaskRecord, error) {
	query := `
	SELECT id, project_id, title, description, status, assigned_to, created_by, created_at
	FROM tasks
	WHERE created_by = ? OR assigned_to = ?
	ORDER BY created_at DESC`

	return QueryMultiple(ctx, r.db, query, ScanTasks, "tasks", userID, userID)
}

// CreateTask inserts a new task record
func (r *Repository) CreateTask(ctx context.Context, record *repository.TaskRecord) error {
	query := `
	INSERT INTO tasks (id, project_id, title, description, status, assigned_to, created_by, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	return Execute(ctx, r.db, query, record.ID, record.ProjectID, record.Title, record.Description, record.Status, record.AssignedTo, record.CreatedBy, record.CreatedAt)
}

// UpdateTask updates an existing task record
func (r *Repository) UpdateTask(ctx context.Context, record *repository.TaskRecord) error {
	query := `
	UPDATE tasks
	SET project_id = ?, title = ?, description = ?, status = ?, assigned_to = ?
	WHERE id = ?`
	return ExecuteWithRowsAffected(ctx, r.db, query, "task", record.ID, record.ProjectID, record.Title, record.Description, record.Status, record.AssignedTo, record.ID)
}

// DeleteTask removes a task by ID
func (r *Repository) DeleteTask(ctx context.Context, id string) error {
	query := `DELETE FROM tasks WHERE id = ?`
	return ExecuteWithRowsAffected(ctx, r.db, query, "task", id, id)
}

// ListTimeEntries retrieves time entries matching the filter, ordered by
// start_time descending (the canonical ordering for entry listings).
func (r *Repository) ListTimeEntries(ctx context.Context, filter repository.EntryFilter) ([]*repository.TimeEntryRecord, error) {
	conditions := []string{"user_id = ?"}
	args := []interface{}{filter.UserID}

	if filter.From != nil {
		conditions = append(conditions, "start_time >= ?")
		args = append(args, *filter.From)
	}
	if filter.To != nil {
		conditions = append(conditions, "start_time <= ?")
		args = append(args, *filter.To)
	}
	if filter.ProjectID != nil {
		conditions = append(conditions, "project_id = ?")
		args = append(args, *filter.ProjectID)
	}

	query := `
	SELECT id, user_id, project_id, task_id, description, start_time, end_time
	FROM time_entries
	WHERE ` + strings.Join(conditions, " AND ") + `
	ORDER BY start_time DESC`

	return QueryMultiple(ctx, r.db, query, ScanTimeEntries, "time entries", args...)
}

// CreateTimeEntry inserts a new time entry record
func (r *Repository) CreateTimeEntry(ctx context.Context, record *repository.TimeEntryRecord) error {
	query := `
	INSERT INTO time_entries (id, user_id, project_id, task_id, description, start_time, end_time)
	VALUES (?, ?, ?, ?, ?, ?, ?)`
	return Execute(ctx, r.db, query, record.ID, record.UserID, record.ProjectID, record.TaskID, record.Description, record.StartTime, nullableInt64(record.EndTime))
}

// UpdateTimeEntry updates an existing time entry record
func (r *Repository) UpdateTimeEntry(ctx context.Context, record *repository.TimeEntryRecord) error {
	query := `
	UPDATE time_entries
	SET project_id = ?, task_id = ?, description = ?, start_time = ?, end_time = ?
	WHERE id = ?`
	return ExecuteWithRowsAffected(ctx, r.db, query, "time entry", record.ID, record.ProjectID, record.TaskID, record.Description, record.StartTime, nullableInt64(record.EndTime), record.ID)
}

// DeleteTimeEntry removes a time entry by ID
func (r *Repository) DeleteTimeEntry(ctx context.Context, id string) error {
	query := `DELETE FROM time_entries WHERE id = ?`
	return ExecuteWithRowsAffected(ctx, r.db, query, "time entry", id, id)
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

func nullableInt64(v *int64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}
