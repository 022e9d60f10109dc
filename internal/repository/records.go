package repository

// Record structs mirror the persisted schema exactly: underscore-separated
// column names, integer epoch milliseconds for timestamps. The domain
// mapper owns the translation to in-memory entity shapes; nothing above
// the gateway should touch these types directly.

// ClientRecord maps to clients{id, user_id, name}.
type ClientRecord struct {
	ID     string
	UserID string
	Name   string
}

// ProjectRecord maps to projects{id, user_id, client_id, name, color, is_shared}.
type ProjectRecord struct {
	ID       string
	UserID   string
	ClientID string
	Name     string
	Color    string
	IsShared bool
}

// TaskRecord maps to tasks{id, project_id, title, description, status,
// assigned_to, created_by, created_at}.
type TaskRecord struct {
	ID          string
	ProjectID   string
	Title       string
	Description *string
	Status      string
	AssignedTo  *string
	CreatedBy   string
	CreatedAt   int64
}

// TimeEntryRecord maps to time_entries{id, user_id, project_id, task_id,
// description, start_time, end_time}. A NULL end_time marks a running entry.
type TimeEntryRecord struct {
	ID          string
	UserID      string
	ProjectID   string
	TaskID      *string
	Description string
	StartTime   int64
	EndTime     *int64
}
