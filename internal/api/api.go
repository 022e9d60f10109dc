package api

import (
	"context"
	"io"
	"time"

	"timeflow/internal/domain"
	"timeflow/internal/errors"
	"timeflow/internal/report"
	"timeflow/internal/repository"
	"timeflow/internal/store"
	"timeflow/internal/timer"
)

// API is the action and query surface for one session. It wires the
// session store, the timer, and the aggregation queries together behind a
// single type so hosts (the CLI today) never touch the parts directly.
type API struct {
	identity Identity
	store    *store.Store
	timer    *timer.Timer
}

// New creates an API on the given gateway and identity, using the system
// clock for the timer.
func New(gateway repository.Gateway, identity Identity) *API {
	return NewWithClock(gateway, identity, timer.SystemClock())
}

// NewWithClock creates an API with an injected clock.
func NewWithClock(gateway repository.Gateway, identity Identity, clock timer.Clock) *API {
	st := store.New(gateway)
	return &API{
		identity: identity,
		store:    st,
		timer:    timer.NewWithClock(st, clock),
	}
}

// NewWithTimeout creates an API whose store bounds each gateway call with
// the given timeout.
func NewWithTimeout(gateway repository.Gateway, identity Identity, timeout time.Duration) *API {
	st := store.NewWithTimeout(gateway, timeout)
	return &API{
		identity: identity,
		store:    st,
		timer:    timer.New(st),
	}
}

// SignIn resolves the current user and loads their working set.
func (a *API) SignIn(ctx context.Context) error {
	userID, ok := a.identity.CurrentUserID()
	if !ok {
		return errors.NewValidationError("nobody is signed in", nil)
	}
	return a.store.Load(ctx, userID)
}

// SignOut drops the loaded session.
func (a *API) SignOut() {
	a.store.Clear()
}

// Clients, projects, tasks

func (a *API) Clients() []domain.Client   { return a.store.Clients() }
func (a *API) Projects() []domain.Project { return a.store.Projects() }
func (a *API) Tasks() []domain.Task       { return a.store.Tasks() }

func (a *API) CreateClient(ctx context.Context, name string) (*domain.Client, error) {
	return a.store.CreateClient(ctx, name)
}

func (a *API) DeleteClient(ctx context.Context, id string) error {
	return a.store.DeleteClient(ctx, id)
}

func (a *API) CreateProject(ctx context.Context, name, clientID, color string, isShared bool) (*domain.Project, error) {
	return a.store.CreateProject(ctx, name, clientID, color, isShared)
}

func (a *API) UpdateProject(ctx context.Context, project domain.Project) (*domain.Project, error) {
	return a.store.UpdateProject(ctx, project)
}

func (a *API) DeleteProject(ctx context.Context, id string) error {
	return a.store.DeleteProject(ctx, id)
}

func (a *API) CreateTask(ctx context.Context, projectID, title string, description, assignedTo *string) (*domain.Task, error) {
	return a.store.CreateTask(ctx, projectID, title, description, assignedTo)
}

func (a *API) UpdateTask(ctx context.Context, task domain.Task) (*domain.Task, error) {
	return a.store.UpdateTask(ctx, task)
}

func (a *API) SetTaskStatus(ctx context.Context, id string, status domain.TaskStatus) (*domain.Task, error) {
	return a.store.SetTaskStatus(ctx, id, status)
}

func (a *API) DeleteTask(ctx context.Context, id string) error {
	return a.store.DeleteTask(ctx, id)
}

// Timer

func (a *API) TimerStatus() (*timer.Status, error) {
	return a.timer.Status()
}

func (a *API) StartTimer(ctx context.Context, projectID, description string, taskID *string) (*domain.TimeEntry, error) {
	return a.timer.Start(ctx, projectID, description, taskID)
}

func (a *API) StopTimer(ctx context.Context) (*domain.TimeEntry, error) {
	return a.timer.Stop(ctx)
}

func (a *API) DiscardTimer(ctx context.Context) error {
	return a.timer.Discard(ctx)
}

func (a *API) AmendTimer(ctx context.Context, amendment timer.Amendment) (*domain.TimeEntry, error) {
	return a.timer.Amend(ctx, amendment)
}

// Entries

func (a *API) ListEntries(filter store.Filter) []domain.TimeEntry {
	return a.store.ListEntries(filter)
}

func (a *API) AddManualEntry(ctx context.Context, projectID, description string, taskID *string, startMillis, endMillis int64) (*domain.TimeEntry, error) {
	return a.store.AddManualEntry(ctx, projectID, description, taskID, startMillis, endMillis)
}

func (a *API) UpdateEntry(ctx context.Context, entry domain.TimeEntry) (*domain.TimeEntry, error) {
	return a.store.UpdateEntry(ctx, entry)
}

func (a *API) DeleteEntry(ctx context.Context, id string) error {
	return a.store.DeleteEntry(ctx, id)
}

// Reports

func (a *API) TotalDuration(filter store.Filter) int64 {
	return report.TotalDuration(a.store.ListEntries(filter))
}

func (a *API) ReportByClient(filter store.Filter) []report.ClientTotal {
	return report.GroupByClient(a.store.ListEntries(filter), a.store.Projects(), a.store.Clients())
}

func (a *API) ReportByProject(filter store.Filter) []report.ProjectTotal {
	return report.GroupByProject(a.store.ListEntries(filter), a.store.Projects(), a.store.Clients())
}

func (a *API) ReportByDay(filter store.Filter) []report.DayTotal {
	return report.GroupByDay(a.store.ListEntries(filter))
}

// ExportCSV writes the matching entries as CSV.
func (a *API) ExportCSV(w io.Writer, filter store.Filter) error {
	rows := report.ExportRows(a.store.ListEntries(filter), a.store.Projects(), a.store.Clients())
	return report.WriteCSV(w, rows)
}

// FilterForDay narrows to entries starting within t's local day.
func FilterForDay(t time.Time) store.Filter {
	start, end := report.DayBounds(t)
	return rangeFilter(start, end)
}

// FilterForWeek narrows to entries starting within t's Monday-first week.
func FilterForWeek(t time.Time) store.Filter {
	start, end := report.WeekRange(t)
	return rangeFilter(start, end)
}

// FilterForMonth narrows to entries starting within t's month.
func FilterForMonth(t time.Time) store.Filter {
	start, end := report.MonthBounds(t)
	return rangeFilter(start, end)
}

func rangeFilter(start, end time.Time) store.Filter {
	from := start.UnixMilli()
	to := end.UnixMilli() - 1
	return store.Filter{From: &from, To: &to}
}
