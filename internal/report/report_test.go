package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"timeflow/internal/domain"
)

func closedEntry(projectID string, start, end int64) domain.TimeEntry {
	return domain.TimeEntry{
		ID: domain.NewID(), UserID: "u1", ProjectID: projectID,
		StartTime: start, EndTime: &end,
	}
}

func runningEntry(projectID string, start int64) domain.TimeEntry {
	return domain.TimeEntry{
		ID: domain.NewID(), UserID: "u1", ProjectID: projectID, StartTime: start,
	}
}

func TestTotalDuration(t *testing.T) {
	entries := []domain.TimeEntry{
		closedEntry("p1", 1000, 4000),
		closedEntry("p2", 5000, 6000),
		runningEntry("p1", 9000),
	}

	// 3000 + 1000; the running entry contributes nothing.
	assert.Equal(t, int64(4000), TotalDuration(entries))
	assert.Zero(t, TotalDuration(nil))
}

func TestGroupByClient(t *testing.T) {
	clients := []domain.Client{
		{ID: "c1", UserID: "u1", Name: "Acme"},
		{ID: "c2", UserID: "u1", Name: "Beta"},
	}
	projects := []domain.Project{
		{ID: "p1", UserID: "u1", ClientID: "c1", Name: "Website"},
		{ID: "p2", UserID: "u1", ClientID: "c2", Name: "App"},
		{ID: "p3", UserID: "u1", ClientID: "missing", Name: "Orphaned"},
	}
	entries := []domain.TimeEntry{
		closedEntry("p1", 0, 1000),
		closedEntry("p2", 0, 5000),
		closedEntry("p1", 0, 2000),
		closedEntry("p3", 0, 500),      // client deleted
		closedEntry("no-such", 0, 250), // project deleted
	}

	totals := GroupByClient(entries, projects, clients)
	require.Len(t, totals, 3)

	// Ordered by total descending.
	assert.Equal(t, "Beta", totals[0].Name)
	assert.Equal(t, int64(5000), totals[0].TotalMillis)
	assert.Equal(t, 1, totals[0].Entries)
	assert.Equal(t, "Acme", totals[1].Name)
	assert.Equal(t, int64(3000), totals[1].TotalMillis)
	assert.Equal(t, 2, totals[1].Entries)

	// Both unresolvable entries share the unknown bucket.
	assert.Equal(t, UnknownLabel, totals[2].Name)
	assert.Equal(t, int64(750), totals[2].TotalMillis)
	assert.Equal(t, 2, totals[2].Entries)
	assert.Empty(t, totals[2].ClientID)
}

func TestGroupByClientDropsZeroBuckets(t *testing.T) {
	clients := []domain.Client{{ID: "c1", UserID: "u1", Name: "Acme"}}
	projects := []domain.Project{{ID: "p1", UserID: "u1", ClientID: "c1", Name: "Website"}}
	entries := []domain.TimeEntry{runningEntry("p1", 1000)}

	assert.Empty(t, GroupByClient(entries, projects, clients))
}

func TestGroupByProject(t *testing.T) {
	clients := []domain.Client{{ID: "c1", UserID: "u1", Name: "Acme"}}
	projects := []domain.Project{
		{ID: "p1", UserID: "u1", ClientID: "c1", Name: "Website", Color: "#1677ff"},
	}
	entries := []domain.TimeEntry{
		closedEntry("p1", 0, 2000),
		closedEntry("gone", 0, 9000),
		closedEntry("p1", 3000, 4000),
	}

	totals := GroupByProject(entries, projects, clients)
	require.Len(t, totals, 2)

	assert.Equal(t, UnknownLabel, totals[0].Name)
	assert.Equal(t, int64(9000), totals[0].TotalMillis)
	assert.Equal(t, 1, totals[0].Entries)

	assert.Equal(t, "Website", totals[1].Name)
	assert.Equal(t, "Acme", totals[1].ClientName)
	assert.Equal(t, "#1677ff", totals[1].Color)
	assert.Equal(t, int64(3000), totals[1].TotalMillis)
	assert.Equal(t, 2, totals[1].Entries)
}

func TestGroupByDay(t *testing.T) {
	// Noon local time avoids day-boundary surprises across zones.
	day1 := mustMillis(t, "2026-03-02 12:00:00")
	day2 := mustMillis(t, "2026-03-03 12:00:00")

	entries := []domain.TimeEntry{
		closedEntry("p1", day2, day2+1000),
		closedEntry("p1", day1, day1+2000),
		closedEntry("p1", day1+3_600_000, day1+3_601_000),
	}

	totals := GroupByDay(entries)
	require.Len(t, totals, 2)

	assert.Equal(t, "2026-03-02", totals[0].Day)
	assert.Equal(t, int64(3000), totals[0].TotalMillis)
	assert.Equal(t, 2, totals[0].Entries)

	assert.Equal(t, "2026-03-03", totals[1].Day)
	assert.Equal(t, int64(1000), totals[1].TotalMillis)
	assert.Equal(t, 1, totals[1].Entries)
}
