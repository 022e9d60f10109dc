package api

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"timeflow/internal/errors"
	"timeflow/internal/repository/memory"
	"timeflow/internal/timer"
)

type fixedClock struct {
	millis int64
}

func (c *fixedClock) NowMillis() int64 { return c.millis }

func setupAPI(t *testing.T) (*API, *fixedClock) {
	clock := &fixedClock{millis: time.Date(2026, time.March, 2, 10, 0, 0, 0, time.Local).UnixMilli()}
	a := NewWithClock(memory.New(), NewLocalIdentity(), clock)
	require.NoError(t, a.SignIn(context.Background()))
	return a, clock
}

func TestSignInRequiresIdentity(t *testing.T) {
	a := New(memory.New(), &LocalIdentity{})
	err := a.SignIn(context.Background())
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeValidation))
}

func TestSignOutClearsSession(t *testing.T) {
	a, _ := setupAPI(t)
	ctx := context.Background()

	_, err := a.CreateClient(ctx, "Acme")
	require.NoError(t, err)
	require.Len(t, a.Clients(), 1)

	a.SignOut()
	assert.Empty(t, a.Clients())

	// Signing back in restores the persisted data.
	require.NoError(t, a.SignIn(ctx))
	assert.Len(t, a.Clients(), 1)
}

func TestTimerRoundTrip(t *testing.T) {
	a, clock := setupAPI(t)
	ctx := context.Background()

	client, err := a.CreateClient(ctx, "Acme")
	require.NoError(t, err)
	project, err := a.CreateProject(ctx, "Website", client.ID, "#1677ff", false)
	require.NoError(t, err)

	_, err = a.StartTimer(ctx, project.ID, "deep work", nil)
	require.NoError(t, err)

	status, err := a.TimerStatus()
	require.NoError(t, err)
	assert.True(t, status.Running)

	clock.millis += 90 * 60 * 1000
	stopped, err := a.StopTimer(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(90*60*1000), stopped.DurationMillis())

	totals := a.ReportByClient(FilterForDay(time.UnixMilli(stopped.StartTime)))
	require.Len(t, totals, 1)
	assert.Equal(t, "Acme", totals[0].Name)
	assert.Equal(t, int64(90*60*1000), totals[0].TotalMillis)
	assert.Equal(t, 1, totals[0].Entries)
}

func TestReportFiltersByRange(t *testing.T) {
	a, _ := setupAPI(t)
	ctx := context.Background()

	day := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.Local)
	otherWeek := day.AddDate(0, 0, 14)

	_, err := a.AddManualEntry(ctx, "p1", "in week", nil, day.UnixMilli(), day.Add(time.Hour).UnixMilli())
	require.NoError(t, err)
	_, err = a.AddManualEntry(ctx, "p1", "out of week", nil, otherWeek.UnixMilli(), otherWeek.Add(time.Hour).UnixMilli())
	require.NoError(t, err)

	assert.Equal(t, int64(time.Hour/time.Millisecond), a.TotalDuration(FilterForWeek(day)))
	assert.Equal(t, int64(2*time.Hour/time.Millisecond), a.TotalDuration(FilterForMonth(day)))

	days := a.ReportByDay(FilterForWeek(day))
	require.Len(t, days, 1)
	assert.Equal(t, "2026-03-02", days[0].Day)
}

func TestExportCSV(t *testing.T) {
	a, _ := setupAPI(t)
	ctx := context.Background()

	client, err := a.CreateClient(ctx, "Acme")
	require.NoError(t, err)
	project, err := a.CreateProject(ctx, "Website", client.ID, "#1677ff", false)
	require.NoError(t, err)

	start := time.Date(2026, time.March, 2, 9, 30, 0, 0, time.Local)
	_, err = a.AddManualEntry(ctx, project.ID, `said "hola"`, nil, start.UnixMilli(), start.Add(90*time.Minute).UnixMilli())
	require.NoError(t, err)

	var sb strings.Builder
	require.NoError(t, a.ExportCSV(&sb, FilterForDay(start)))

	out := sb.String()
	assert.Contains(t, out, "Fecha,Cliente,Proyecto,Descripción,Hora Inicio,Hora Fin,Duración (horas)")
	assert.Contains(t, out, `02/03/2026,Acme,Website,"said ""hola""",02/03/2026 09:30:00,02/03/2026 11:00:00,1.50`)
}

func TestAmendThroughFacade(t *testing.T) {
	a, _ := setupAPI(t)
	ctx := context.Background()

	_, err := a.StartTimer(ctx, "p1", "old", nil)
	require.NoError(t, err)

	desc := "new"
	amended, err := a.AmendTimer(ctx, timer.Amendment{Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, "new", amended.Description)

	require.NoError(t, a.DiscardTimer(ctx))
	status, err := a.TimerStatus()
	require.NoError(t, err)
	assert.False(t, status.Running)
}
