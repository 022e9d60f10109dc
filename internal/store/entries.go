package store

import (
	"context"

	"timeflow/internal/domain"
	"timeflow/internal/errors"
)

// CreateEntry persists a new time entry for the session user. An id is
// assigned when missing. Creating a running entry while another is already
// running is rejected; the timer closes the old entry first.
func (s *Store) CreateEntry(ctx context.Context, entry domain.TimeEntry) (*domain.TimeEntry, error) {
	if err := s.ensureLoaded(); err != nil {
		return nil, err
	}

	if entry.ID == "" {
		entry.ID = domain.NewID()
	}
	entry.UserID = s.userID

	if err := s.timeEntries.ValidateEntry(&entry); err != nil {
		return nil, err
	}

	if entry.Running() {
		active, err := s.ActiveEntry()
		if err != nil {
			return nil, err
		}
		if active != nil {
			return nil, errors.NewValidationError("another time entry is already running", nil)
		}
	}

	record := s.mapper.TimeEntry.ToRecord(entry)
	err := s.persist(ctx, func(ctx context.Context) error {
		return s.gateway.CreateTimeEntry(ctx, &record)
	})
	if err != nil {
		return nil, err
	}

	s.entries = append(s.entries, entry)
	s.sortEntries()

	copied := entry
	return &copied, nil
}

// CloseEntry sets an entry's end time. Closed entries must end strictly
// after they start.
func (s *Store) CloseEntry(ctx context.Context, id string, endMillis int64) (*domain.TimeEntry, error) {
	if err := s.ensureLoaded(); err != nil {
		return nil, err
	}

	entry, err := s.FindEntry(id)
	if err != nil {
		return nil, err
	}
	entry.EndTime = &endMillis

	return s.applyEntryUpdate(ctx, *entry)
}

// UpdateEntry replaces an existing entry's fields. The start time may be
// changed here; the closed-entry ordering rule is re-checked against the
// new values.
func (s *Store) UpdateEntry(ctx context.Context, entry domain.TimeEntry) (*domain.TimeEntry, error) {
	if err := s.ensureLoaded(); err != nil {
		return nil, err
	}

	existing, err := s.FindEntry(entry.ID)
	if err != nil {
		return nil, err
	}
	entry.UserID = existing.UserID

	// An edit may not reopen a closed entry while another one is running.
	if entry.Running() && !existing.Running() {
		active, err := s.ActiveEntry()
		if err != nil {
			return nil, err
		}
		if active != nil && active.ID != entry.ID {
			return nil, errors.NewValidationError("another time entry is already running", nil)
		}
	}

	return s.applyEntryUpdate(ctx, entry)
}

// DeleteEntry removes an entry, running or closed.
func (s *Store) DeleteEntry(ctx context.Context, id string) error {
	if err := s.ensureLoaded(); err != nil {
		return err
	}
	if _, err := s.FindEntry(id); err != nil {
		return err
	}

	err := s.persist(ctx, func(ctx context.Context) error {
		return s.gateway.DeleteTimeEntry(ctx, id)
	})
	if err != nil {
		return err
	}

	for i := range s.entries {
		if s.entries[i].ID == id {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			break
		}
	}
	return nil
}

// AddManualEntry records a closed entry for a past range.
func (s *Store) AddManualEntry(ctx context.Context, projectID, description string, taskID *string, startMillis, endMillis int64) (*domain.TimeEntry, error) {
	if err := s.ensureLoaded(); err != nil {
		return nil, err
	}

	if err := s.timeEntries.ValidateManualRange(startMillis, endMillis); err != nil {
		return nil, err
	}

	entry := domain.TimeEntry{
		ID:          domain.NewID(),
		UserID:      s.userID,
		ProjectID:   projectID,
		TaskID:      taskID,
		Description: description,
		StartTime:   startMillis,
		EndTime:     &endMillis,
	}
	return s.CreateEntry(ctx, entry)
}

func (s *Store) applyEntryUpdate(ctx context.Context, entry domain.TimeEntry) (*domain.TimeEntry, error) {
	if err := s.timeEntries.ValidateEntry(&entry); err != nil {
		return nil, err
	}

	record := s.mapper.TimeEntry.ToRecord(entry)
	err := s.persist(ctx, func(ctx context.Context) error {
		return s.gateway.UpdateTimeEntry(ctx, &record)
	})
	if err != nil {
		return nil, err
	}

	for i := range s.entries {
		if s.entries[i].ID == entry.ID {
			s.entries[i] = entry
			break
		}
	}
	s.sortEntries()

	copied := entry
	return &copied, nil
}
