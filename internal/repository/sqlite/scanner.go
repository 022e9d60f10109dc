package sqlite

import (
	"database/sql"
	"fmt"
	"strconv"

	"timeflow/internal/repository"
)

// Scanner interface defines the common scanning behavior for both sql.Row and sql.Rows
type Scanner interface {
	Scan(dest ...interface{}) error
}

// Rows interface defines the common behavior for sql.Rows
type Rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

// epochMillis scans an integer epoch-millisecond column. Some transports
// serialize numbers as text, so TEXT values holding an integer are
// accepted too.
type epochMillis int64

func (m *epochMillis) Scan(value interface{}) error {
	switch v := value.(type) {
	case int64:
		*m = epochMillis(v)
		return nil
	case []byte:
		parsed, err := strconv.ParseInt(string(v), 10, 64)
		if err != nil {
			return fmt.Errorf("parse epoch millis %q: %w", string(v), err)
		}
		*m = epochMillis(parsed)
		return nil
	case string:
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("parse epoch millis %q: %w", v, err)
		}
		*m = epochMillis(parsed)
		return nil
	default:
		return fmt.Errorf("unsupported epoch millis type %T", value)
	}
}

// nullEpochMillis is the nullable variant of epochMillis.
type nullEpochMillis struct {
	Millis epochMillis
	Valid  bool
}

func (m *nullEpochMillis) Scan(value interface{}) error {
	if value == nil {
		m.Valid = false
		return nil
	}
	if err := m.Millis.Scan(value); err != nil {
		return err
	}
	m.Valid = true
	return nil
}

// ScanClient scans a single client from a database row
func ScanClient(scanner Scanner) (*repository.ClientRecord, error) {
	record := &repository.ClientRecord{}
	err := scanner.Scan(&record.ID, &record.UserID, &record.Name)
	if err != nil {
		return nil, err
	}
	return record, nil
}

// ScanClients scans multiple clients from database rows
func ScanClients(rows Rows) ([]*repository.ClientRecord, error) {
	var records []*repository.ClientRecord
	for rows.Next() {
		record, err := ScanClient(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

// ScanProject scans a single project from a database row
func ScanProject(scanner Scanner) (*repository.ProjectRecord, error) {
	record := &repository.ProjectRecord{}
	var isShared int64

	err := scanner.Scan(
		&record.ID,
		&record.UserID,
		&record.ClientID,
		&record.Name,
		&record.Color,
		&isShared,
	)
	if err != nil {
		return nil, err
	}

	record.IsShared = isShared != 0
	return record, nil
}

// ScanProjects scans multiple projects from database rows
func ScanProjects(rows Rows) ([]*repository.ProjectRecord, error) {
	var records []*repository.ProjectRecord
	for rows.Next() {
		record, err := ScanProject(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

// ScanTask scans a single task from a database row
func ScanTask(scanner Scanner) (*repository.TaskRecord, error) {
	record := &repository.TaskRecord{}
	var description sql.NullString
	var assignedTo sql.NullString
	var createdAt epochMillis

	err := scanner.Scan(
		&record.ID,
		&record.ProjectID,
		&record.Title,
		&description,
		&record.Status,
		&assignedTo,
		&record.CreatedBy,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	if description.Valid {
		record.Description = &description.String
	}
	if assignedTo.Valid {
		record.AssignedTo = &assignedTo.String
	}
	record.CreatedAt = int64(createdAt)

	return record, nil
}

// ScanTasks scans multiple tasks from database rows
func ScanTasks(rows Rows) ([]*repository.TaskRecord, error) {
	var records []*repository.TaskRecord
	for rows.Next() {
		record, err := ScanTask(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

// ScanTimeEntry scans a single time entry from a database row
func ScanTimeEntry(scanner Scanner) (*repository.TimeEntryRecord, error) {
	record := &repository.TimeEntryRecord{}
	var taskID sql.NullString
	var startTime epochMillis
	var endTime nullEpochMillis

	err := scanner.Scan(
		&record.ID,
		&record.UserID,
		&record.ProjectID,
		&taskID,
		&record.Description,
		&startTime,
		&endTime,
	)
	if err != nil {
		return nil, err
	}

	if taskID.Valid {
		record.TaskID = &taskID.String
	}
	record.StartTime = int64(startTime)
	if endTime.Valid {
		end := int64(endTime.Millis)
		record.EndTime = &end
	}

	return record, nil
}

// ScanTimeEntries scans multiple time entries from database rows
func ScanTimeEntries(rows Rows) ([]*repository.TimeEntryRecord, error) {
	var records []*repository.TimeEntryRecord
	for rows.Next() {
		record, err := ScanTimeEntry(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}
