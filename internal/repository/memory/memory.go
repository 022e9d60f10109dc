package memory

import (
	"context"
	"sort"
	"sync"

	"timeflow/internal/errors"
	"timeflow/internal/repository"
)

// Gateway is an in-memory implementation of repository.Gateway. It backs
// the local (no remote database) profile and doubles as the gateway used
// by store and timer tests. Records are copied on the way in and out so
// callers never share memory with the gateway.
type Gateway struct {
	mu      sync.RWMutex
	clients map[string]repository.ClientRecord
	project map[string]repository.ProjectRecord
	tasks   map[string]repository.TaskRecord
	entries map[string]repository.TimeEntryRecord

	failErr   error
	failSkip  int
	failCount int
}

var _ repository.Gateway = (*Gateway)(nil)

// New creates an empty in-memory gateway.
func New() *Gateway {
	return &Gateway{
		clients: make(map[string]repository.ClientRecord),
		project: make(map[string]repository.ProjectRecord),
		tasks:   make(map[string]repository.TaskRecord),
		entries: make(map[string]repository.TimeEntryRecord),
	}
}

// FailNext makes the next gateway call fail with the given error. Used by
// tests to exercise persistence-failure paths.
func (g *Gateway) FailNext(err error) {
	g.FailNextN(err, 1)
}

// FailNextN makes the next n gateway calls fail with the given error.
func (g *Gateway) FailNextN(err error, n int) {
	g.FailAfter(err, 0, n)
}

// FailAfter lets the next skip calls through, then fails the n calls that
// follow. Useful for breaking the second write of a two-write sequence.
func (g *Gateway) FailAfter(err error, skip, n int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.failErr = err
	g.failSkip = skip
	g.failCount = n
}

func (g *Gateway) takeFailure() error {
	if g.failSkip > 0 {
		g.failSkip--
		return nil
	}
	if g.failCount > 0 {
		g.failCount--
		return errors.NewPersistenceError("memory gateway", g.failErr)
	}
	return nil
}

// Close implements repository.Gateway; nothing to release.
func (g *Gateway) Close() error {
	return nil
}

// ListClients returns all clients owned by a user, ordered by name.
func (g *Gateway) ListClients(ctx context.Context, userID string) ([]*repository.ClientRecord, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.takeFailure(); err != nil {
		return nil, err
	}

	var records []*repository.ClientRecord
	for _, record := range g.clients {
		if record.UserID == userID {
			copied := record
			records = append(records, &copied)
		}
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Name < records[j].Name })
	return records, nil
}

// CreateClient stores a new client record.
func (g *Gateway) CreateClient(ctx context.Context, record *repository.ClientRecord) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.takeFailure(); err != nil {
		return err
	}
	g.clients[record.ID] = *record
	return nil
}

// DeleteClient removes a client. Dependent projects are untouched.
func (g *Gateway) DeleteClient(ctx context.Context, id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.takeFailure(); err != nil {
		return err
	}
	if _, ok := g.clients[id]; !ok {
		return errors.NewNotFoundError("client", id)
	}
	delete(g.clients, id)
	return nil
}

// ListProjects returns all projects owned by a user, ordered by name.
func (g *Gateway) ListProjects(ctx context.Context, userID string) ([]*repository.ProjectRecord, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.takeFailure(); err != nil {
		return nil, err
	}

	var records []*repository.ProjectRecord
	for _, record := range g.project {
		if record.UserID == userID {
			copied := record
			records = append(records, &copied)
		}
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Name < records[j].Name })
	return records, nil
}

// CreateProject stores a new project record without validating client_id.
func (g *Gateway) CreateProject(ctx context.Context, record *repository.ProjectRecord) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.takeFailure(); err != nil {
		return err
	}
	g.project[record.ID] = *record
	return nil
}

// UpdateProject replaces an existing project record.
func (g *Gateway) UpdateProject(ctx context.Context, record *repository.ProjectRecord) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.takeFailure(); err != nil {
		return err
	}
	if _, ok := g.project[record.ID]; !ok {
		return errors.NewNotFoundError("project", record.ID)
	}
	g.project[record.ID] = *record
	return nil
}

// DeleteProject removes a project without cascading to entries.
func (g *Gateway) DeleteProject(ctx context.Context, id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.takeFailure(); err != nil {
		return err
	}
	if _, ok := g.project[id]; !ok {
		return errors.NewNotFoundError("project", id)
	}
	delete(g.project, id)
	return nil
}

// ListTasks returns tasks created by or assigned to a user, most recent first.
func (g *Gateway) ListTasks(ctx context.Context, userID string) ([]*repository.TaskRecord, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.takeFailure(); err != nil {
		return nil, err
	}

	var records []*repository.TaskRecord
	for _, record := range g.tasks {
		if record.CreatedBy == userID || (record.AssignedTo != nil && *record.AssignedTo == userID) {
			copied := record
			records = append(records, &copied)
		}
	}
	sort.Slice(records, func(i, j int) bool { return records[i].CreatedAt > records[j].CreatedAt })
	return records, nil
}

// CreateTask stores a new task record.
func (g *Gateway) CreateTask(ctx context.Context, record *repository.TaskRecord) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.takeFailure(); err != nil {
		return err
	}
	g.tasks[record.ID] = *record
	return nil
}

// UpdateTask replaces an existing task record.
func (g *Gateway) UpdateTask(ctx context.Context, record *repository.TaskRecord) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.takeFailure(); err != nil {
		return err
	}
	if _, ok := g.tasks[record.ID]; !ok {
		return errors.NewNotFoundError("task", record.ID)
	}
	g.tasks[record.ID] = *record
	return nil
}

// DeleteTask removes a task.
func (g *Gateway) DeleteTask(ctx context.Context, id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.takeFailure(); err != nil {
		return err
	}
	if _, ok := g.tasks[id]; !ok {
		return errors.NewNotFoundError("task", id)
	}
	delete(g.tasks, id)
	return nil
}

// ListTimeEntries returns entries matching the filter, start_time descending.
func (g *Gateway) ListTimeEntries(ctx context.Context, filter repository.EntryFilter) ([]*repository.TimeEntryRecord, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.takeFailure(); err != nil {
		return nil, err
	}

	var records []*repository.TimeEntryRecord
	for _, record := range g.entries {
		if record.UserID != filter.UserID {
			continue
		}
		if filter.From != nil && record.StartTime < *filter.From {
			continue
		}
		if filter.To != nil && record.StartTime > *filter.To {
			continue
		}
		if filter.ProjectID != nil && record.ProjectID != *filter.ProjectID {
			continue
		}
		copied := record
		records = append(records, &copied)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].StartTime > records[j].StartTime })
	return records, nil
}

// CreateTimeEntry stores a new time entry record.
func (g *Gateway) CreateTimeEntry(ctx context.Context, record *repository.TimeEntryRecord) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.takeFailure(); err != nil {
		return err
	}
	g.entries[record.ID] = *record
	return nil
}

// UpdateTimeEntry replaces an existing time entry record.
func (g *Gateway) UpdateTimeEntry(ctx context.Context, record *repository.TimeEntryRecord) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.takeFailure(); err != nil {
		return err
	}
	if _, ok := g.entries[record.ID]; !ok {
		return errors.NewNotFoundError("time entry", record.ID)
	}
	g.entries[record.ID] = *record
	return nil
}

// DeleteTimeEntry removes a time entry.
func (g *Gateway) DeleteTimeEntry(ctx context.Context, id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.takeFailure(); err != nil {
		return err
	}
	if _, ok := g.entries[id]; !ok {
		return errors.NewNotFoundError("time entry", id)
	}
	delete(g.entries, id)
	return nil
}
