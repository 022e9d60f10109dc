package timer

import (
	"context"

	"timeflow/internal/domain"
	"timeflow/internal/errors"
	"timeflow/internal/logging"
	"timeflow/internal/store"
)

// Timer is the start/stop state machine over the session's time entries.
// It has no state of its own: Idle vs Running is derived from the store's
// single running entry, so the timer survives process restarts for free.
type Timer struct {
	store *store.Store
	clock Clock
}

// Status describes the timer at a point in time.
type Status struct {
	Running       bool
	Entry         *domain.TimeEntry
	ElapsedMillis int64
}

// Amendment carries optional changes to the running entry. Nil fields are
// left untouched; ClearTask removes the task link.
type Amendment struct {
	ProjectID   *string
	Description *string
	TaskID      *string
	ClearTask   bool
}

// New creates a timer on the system clock.
func New(st *store.Store) *Timer {
	return NewWithClock(st, SystemClock())
}

// NewWithClock creates a timer with an injected clock.
func NewWithClock(st *store.Store, clock Clock) *Timer {
	return &Timer{store: st, clock: clock}
}

// Status reports whether a timer is running and how long it has run.
func (t *Timer) Status() (*Status, error) {
	active, err := t.store.ActiveEntry()
	if err != nil {
		return nil, err
	}
	if active == nil {
		return &Status{}, nil
	}

	elapsed := t.clock.NowMillis() - active.StartTime
	if elapsed < 0 {
		elapsed = 0
	}
	return &Status{Running: true, Entry: active, ElapsedMillis: elapsed}, nil
}

// Start begins tracking on a project. If an entry is already running it is
// closed first, using the same instant for its end and the new entry's
// start, so the two entries meet without gap or overlap. If closing
// succeeds but creating the new entry fails, the timer is left idle.
func (t *Timer) Start(ctx context.Context, projectID, description string, taskID *string) (*domain.TimeEntry, error) {
	if projectID == "" {
		return nil, errors.NewInvalidInputError("project_id", projectID, "a project is required to start the timer")
	}

	active, err := t.store.ActiveEntry()
	if err != nil {
		return nil, err
	}

	now := t.clock.NowMillis()
	if active != nil && now <= active.StartTime {
		// Clock went backwards since the running entry started. Nudge the
		// switch instant past its start so the closed entry stays valid.
		now = active.StartTime + 1
	}

	if active != nil {
		if _, err := t.store.CloseEntry(ctx, active.ID, now); err != nil {
			return nil, err
		}
		logging.Debugf("timer: auto-stopped %s at %d", active.ID, now)
	}

	entry := domain.TimeEntry{
		ProjectID:   projectID,
		TaskID:      taskID,
		Description: description,
		StartTime:   now,
	}
	created, err := t.store.CreateEntry(ctx, entry)
	if err != nil {
		// The previous entry, if any, is already closed; the timer is idle.
		return nil, err
	}
	return created, nil
}

// Stop closes the running entry. Stopping an idle timer is a no-op and
// returns nil.
func (t *Timer) Stop(ctx context.Context) (*domain.TimeEntry, error) {
	active, err := t.store.ActiveEntry()
	if err != nil {
		return nil, err
	}
	if active == nil {
		return nil, nil
	}

	now := t.clock.NowMillis()
	if now <= active.StartTime {
		now = active.StartTime + 1
	}
	return t.store.CloseEntry(ctx, active.ID, now)
}

// Discard deletes the running entry without recording any time. Discarding
// an idle timer is a no-op.
func (t *Timer) Discard(ctx context.Context) error {
	active, err := t.store.ActiveEntry()
	if err != nil {
		return err
	}
	if active == nil {
		return nil
	}
	return t.store.DeleteEntry(ctx, active.ID)
}

// Amend changes the running entry's project, description, or task link.
// Start time and running state are never touched here.
func (t *Timer) Amend(ctx context.Context, amendment Amendment) (*domain.TimeEntry, error) {
	active, err := t.store.ActiveEntry()
	if err != nil {
		return nil, err
	}
	if active == nil {
		return nil, errors.NewValidationError("no timer is running", nil)
	}

	entry := *active
	if amendment.ProjectID != nil {
		entry.ProjectID = *amendment.ProjectID
	}
	if amendment.Description != nil {
		entry.Description = *amendment.Description
	}
	if amendment.ClearTask {
		entry.TaskID = nil
	} else if amendment.TaskID != nil {
		entry.TaskID = amendment.TaskID
	}

	return t.store.UpdateEntry(ctx, entry)
}
