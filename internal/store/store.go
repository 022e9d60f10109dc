package store

import (
	"context"
	"sort"
	"time"

	"timeflow/internal/domain"
	"timeflow/internal/errors"
	"timeflow/internal/logging"
	"timeflow/internal/repository"
	"timeflow/internal/validation"
)

// DefaultWriteTimeout bounds each gateway call made by the store.
const DefaultWriteTimeout = 10 * time.Second

// Store is the session-scoped working set for one signed-in user. It keeps
// clients, projects, tasks, and time entries in memory and writes every
// mutation through the persistence gateway before applying it locally, so a
// failed write leaves the in-memory state untouched.
//
// The store is owned by a single session and is not safe for concurrent
// use; callers serialize mutations.
type Store struct {
	gateway repository.Gateway
	mapper  *domain.Mapper

	entities    *validation.EntityValidator
	timeEntries *validation.TimeEntryValidator

	writeTimeout time.Duration

	userID string
	loaded bool

	clients  []domain.Client
	projects []domain.Project
	tasks    []domain.Task
	entries  []domain.TimeEntry // ordered by StartTime descending
}

// Filter narrows ListEntries. Nil bounds are open; From/To compare against
// StartTime inclusively.
type Filter struct {
	From      *int64
	To        *int64
	ProjectID *string
}

// New creates a store backed by the given gateway. The store is empty until
// Load is called for a user.
func New(gateway repository.Gateway) *Store {
	return &Store{
		gateway:      gateway,
		mapper:       domain.NewMapper(),
		entities:     validation.NewEntityValidator(),
		timeEntries:  validation.NewTimeEntryValidator(),
		writeTimeout: DefaultWriteTimeout,
	}
}

// NewWithTimeout creates a store with an explicit per-call gateway timeout.
func NewWithTimeout(gateway repository.Gateway, timeout time.Duration) *Store {
	s := New(gateway)
	if timeout > 0 {
		s.writeTimeout = timeout
	}
	return s
}

// UserID returns the user the store is loaded for, empty when unloaded.
func (s *Store) UserID() string {
	return s.userID
}

// Loaded reports whether a session is currently loaded.
func (s *Store) Loaded() bool {
	return s.loaded
}

// Load fetches the user's working set from the gateway, replacing any
// previously loaded session.
func (s *Store) Load(ctx context.Context, userID string) error {
	if userID == "" {
		return errors.NewValidationError("user id is required to load a session", nil)
	}

	var (
		clientRecords  []*repository.ClientRecord
		projectRecords []*repository.ProjectRecord
		taskRecords    []*repository.TaskRecord
		entryRecords   []*repository.TimeEntryRecord
	)

	err := s.persist(ctx, func(ctx context.Context) error {
		var err error
		if clientRecords, err = s.gateway.ListClients(ctx, userID); err != nil {
			return err
		}
		if projectRecords, err = s.gateway.ListProjects(ctx, userID); err != nil {
			return err
		}
		if taskRecords, err = s.gateway.ListTasks(ctx, userID); err != nil {
			return err
		}
		entryRecords, err = s.gateway.ListTimeEntries(ctx, repository.EntryFilter{UserID: userID})
		return err
	})
	if err != nil {
		return err
	}

	s.userID = userID
	s.loaded = true
	s.clients = s.mapper.Client.FromRecordSlice(clientRecords)
	s.projects = s.mapper.Project.FromRecordSlice(projectRecords)
	s.tasks = s.mapper.Task.FromRecordSlice(taskRecords)
	s.entries = s.mapper.TimeEntry.FromRecordSlice(entryRecords)
	s.sortEntries()

	logging.Debugf("store: loaded session for %s (%d clients, %d projects, %d tasks, %d entries)",
		userID, len(s.clients), len(s.projects), len(s.tasks), len(s.entries))
	return nil
}

// Clear drops the loaded session. Persisted data is untouched.
func (s *Store) Clear() {
	s.userID = ""
	s.loaded = false
	s.clients = nil
	s.projects = nil
	s.tasks = nil
	s.entries = nil
}

// Clients returns a copy of the loaded clients, ordered by name.
func (s *Store) Clients() []domain.Client {
	out := make([]domain.Client, len(s.clients))
	copy(out, s.clients)
	return out
}

// Projects returns a copy of the loaded projects, ordered by name.
func (s *Store) Projects() []domain.Project {
	out := make([]domain.Project, len(s.projects))
	copy(out, s.projects)
	return out
}

// Tasks returns a copy of the loaded tasks, most recently created first.
func (s *Store) Tasks() []domain.Task {
	out := make([]domain.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Entries returns a copy of all loaded entries, StartTime descending.
func (s *Store) Entries() []domain.TimeEntry {
	out := make([]domain.TimeEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// ListEntries returns copies of the entries matching the filter, StartTime
// descending.
func (s *Store) ListEntries(filter Filter) []domain.TimeEntry {
	var out []domain.TimeEntry
	for _, entry := range s.entries {
		if filter.From != nil && entry.StartTime < *filter.From {
			continue
		}
		if filter.To != nil && entry.StartTime > *filter.To {
			continue
		}
		if filter.ProjectID != nil && entry.ProjectID != *filter.ProjectID {
			continue
		}
		out = append(out, entry)
	}
	return out
}

// ActiveEntry returns the user's running entry, or nil when idle. Finding
// more than one running entry means the single-running-entry rule has been
// broken outside this session; that is reported as an invariant error
// rather than silently picking one.
func (s *Store) ActiveEntry() (*domain.TimeEntry, error) {
	var active *domain.TimeEntry
	for i := range s.entries {
		if !s.entries[i].Running() {
			continue
		}
		if active != nil {
			return nil, errors.NewInvariantError("multiple running time entries found; resolve manually before continuing")
		}
		copied := s.entries[i]
		active = &copied
	}
	return active, nil
}

// FindClient returns a copy of the client with the given id.
func (s *Store) FindClient(id string) (*domain.Client, error) {
	for i := range s.clients {
		if s.clients[i].ID == id {
			copied := s.clients[i]
			return &copied, nil
		}
	}
	return nil, errors.NewNotFoundError("client", id)
}

// FindProject returns a copy of the project with the given id.
func (s *Store) FindProject(id string) (*domain.Project, error) {
	for i := range s.projects {
		if s.projects[i].ID == id {
			copied := s.projects[i]
			return &copied, nil
		}
	}
	return nil, errors.NewNotFoundError("project", id)
}

// FindTask returns a copy of the task with the given id.
func (s *Store) FindTask(id string) (*domain.Task, error) {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			copied := s.tasks[i]
			return &copied, nil
		}
	}
	return nil, errors.NewNotFoundError("task", id)
}

// FindEntry returns a copy of the entry with the given id.
func (s *Store) FindEntry(id string) (*domain.TimeEntry, error) {
	for i := range s.entries {
		if s.entries[i].ID == id {
			copied := s.entries[i]
			return &copied, nil
		}
	}
	return nil, errors.NewNotFoundError("time entry", id)
}

// ensureLoaded guards mutators against use before sign-in.
func (s *Store) ensureLoaded() error {
	if !s.loaded {
		return errors.NewValidationError("no session loaded", nil)
	}
	return nil
}

// persist runs a gateway operation under the write timeout, retrying once
// on a persistence failure before surfacing it.
func (s *Store) persist(ctx context.Context, op func(context.Context) error) error {
	run := func() error {
		opCtx, cancel := context.WithTimeout(ctx, s.writeTimeout)
		defer cancel()
		return op(opCtx)
	}

	err := run()
	if err == nil || !errors.IsErrorType(err, errors.ErrorTypePersistence) {
		return err
	}

	logging.Debugf("store: retrying after persistence failure: %v", err)
	return run()
}

func (s *Store) sortEntries() {
	sort.SliceStable(s.entries, func(i, j int) bool {
		return s.entries[i].StartTime > s.entries[j].StartTime
	})
}
