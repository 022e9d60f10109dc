package domain

import (
	"timeflow/internal/repository"
)

// Mappers translate between the persisted record shapes (underscore
// columns, see repository package) and the in-memory entity shapes.
// The mapping is explicit and exhaustively tested so that schema
// mismatches surface at compile or test time instead of producing
// undefined fields.

// ClientMapper handles conversion between domain and persisted Client shapes.
type ClientMapper struct{}

// NewClientMapper creates a new ClientMapper instance.
func NewClientMapper() *ClientMapper {
	return &ClientMapper{}
}

// ToRecord converts a domain Client to a persisted record.
func (m *ClientMapper) ToRecord(client Client) repository.ClientRecord {
	return repository.ClientRecord{
		ID:     client.ID,
		UserID: client.UserID,
		Name:   client.Name,
	}
}

// FromRecord converts a persisted record to a domain Client.
func (m *ClientMapper) FromRecord(record repository.ClientRecord) Client {
	return Client{
		ID:     record.ID,
		UserID: record.UserID,
		Name:   record.Name,
	}
}

// FromRecordSlice converts a slice of persisted records to domain Clients.
func (m *ClientMapper) FromRecordSlice(records []*repository.ClientRecord) []Client {
	clients := make([]Client, len(records))
	for i, record := range records {
		clients[i] = m.FromRecord(*record)
	}
	return clients
}

// ProjectMapper handles conversion between domain and persisted Project shapes.
type ProjectMapper struct{}

// NewProjectMapper creates a new ProjectMapper instance.
func NewProjectMapper() *ProjectMapper {
	return &ProjectMapper{}
}

// ToRecord converts a domain Project to a persisted record.
func (m *ProjectMapper) ToRecord(project Project) repository.ProjectRecord {
	return repository.ProjectRecord{
		ID:       project.ID,
		UserID:   project.UserID,
		ClientID: project.ClientID,
		Name:     project.Name,
		Color:    project.Color,
		IsShared: project.IsShared,
	}
}

// FromRecord converts a persisted record to a domain Project.
func (m *ProjectMapper) FromRecord(record repository.ProjectRecord) Project {
	return Project{
		ID:       record.ID,
		UserID:   record.UserID,
		ClientID: record.ClientID,
		Name:     record.Name,
		Color:    record.Color,
		IsShared: record.IsShared,
	}
}

// FromRecordSlice converts a slice of persisted records to domain Projects.
func (m *ProjectMapper) FromRecordSlice(records []*repository.ProjectRecord) []Project {
	projects := make([]Project, len(records))
	for i, record := range records {
		projects[i] = m.FromRecord(*record)
	}
	return projects
}

// TaskMapper handles conversion between domain and persisted Task shapes.
type TaskMapper struct{}

// NewTaskMapper creates a new TaskMapper instance.
func NewTaskMapper() *TaskMapper {
	return &TaskMapper{}
}

// ToRecord converts a domain Task to a persisted record.
func (m *TaskMapper) ToRecord(task Task) repository.TaskRecord {
	return repository.TaskRecord{
		ID:          task.ID,
		ProjectID:   task.ProjectID,
		Title:       task.Title,
		Description: task.Description,
		Status:      string(task.Status),
		AssignedTo:  task.AssignedTo,
		CreatedBy:   task.CreatedBy,
		CreatedAt:   task.CreatedAt,
	}
}

// FromRecord converts a persisted record to a domain Task.
func (m *TaskMapper) FromRecord(record repository.TaskRecord) Task {
	return Task{
		ID:          record.ID,
		ProjectID:   record.ProjectID,
		Title:       record.Title,
		Description: record.Description,
		Status:      TaskStatus(record.Status),
		AssignedTo:  record.AssignedTo,
		CreatedBy:   record.CreatedBy,
		CreatedAt:   record.CreatedAt,
	}
}

// FromRecordSlice converts a slice of persisted records to domain Tasks.
func (m *TaskMapper) FromRecordSlice(records []*repository.TaskRecord) []Task {
	tasks := make([]Task, len(records))
	for i, record := range records {
		tasks[i] = m.FromRecord(*record)
	}
	return tasks
}

// TimeEntryMapper handles conversion between domain and persisted TimeEntry shapes.
type TimeEntryMapper struct{}

// NewTimeEntryMapper creates a new TimeEntryMapper instance.
func NewTimeEntryMapper() *TimeEntryMapper {
	return &TimeEntryMapper{}
}

// ToRecord converts a domain TimeEntry to a persisted record.
func (m *TimeEntryMapper) ToRecord(entry TimeEntry) repository.TimeEntryRecord {
	return repository.TimeEntryRecord{
		ID:          entry.ID,
		UserID:      entry.UserID,
		ProjectID:   entry.ProjectID,
		TaskID:      entry.TaskID,
		Description: entry.Description,
		StartTime:   entry.StartTime,
		EndTime:     entry.EndTime,
	}
}

// FromRecord converts a persisted record to a domain TimeEntry.
func (m *TimeEntryMapper) FromRecord(record repository.TimeEntryRecord) TimeEntry {
	return TimeEntry{
		ID:          record.ID,
		UserID:      record.UserID,
		ProjectID:   record.ProjectID,
		TaskID:      record.TaskID,
		Description: record.Description,
		StartTime:   record.StartTime,
		EndTime:     record.EndTime,
	}
}

// FromRecordSlice converts a slice of persisted records to domain TimeEntries.
func (m *TimeEntryMapper) FromRecordSlice(records []*repository.TimeEntryRecord) []TimeEntry {
	entries := make([]TimeEntry, len(records))
	for i, record := range records {
		entries[i] = m.FromRecord(*record)
	}
	return entries
}

// Mapper provides a unified interface for all mapping operations.
type Mapper struct {
	Client    *ClientMapper
	Project   *ProjectMapper
	Task      *TaskMapper
	TimeEntry *TimeEntryMapper
}

// NewMapper creates a new Mapper instance with all sub-mappers.
func NewMapper() *Mapper {
	return &Mapper{
		Client:    NewClientMapper(),
		Project:   NewProjectMapper(),
		Task:      NewTaskMapper(),
		TimeEntry: NewTimeEntryMapper(),
	}
}
