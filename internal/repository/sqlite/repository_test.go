package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"timeflow/internal/errors"
	"timeflow/internal/repository"
)

func setupTestDB(t *testing.T) (*Repository, func()) {
	repo, err := New(":memory:")
	require.NoError(t, err)

	cleanup := func() {
		repo.Close()
	}

	return repo, cleanup
}

func TestCreateAndListClients(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	err := repo.CreateClient(ctx, &repository.ClientRecord{ID: "c1", UserID: "u1", Name: "Beta Corp"})
	require.NoError(t, err)
	err = repo.CreateClient(ctx, &repository.ClientRecord{ID: "c2", UserID: "u1", Name: "Acme"})
	require.NoError(t, err)
	err = repo.CreateClient(ctx, &repository.ClientRecord{ID: "c3", UserID: "u2", Name: "Other User"})
	require.NoError(t, err)

	clients, err := repo.ListClients(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, clients, 2)

	// Ordered by name
	assert.Equal(t, "Acme", clients[0].Name)
	assert.Equal(t, "Beta Corp", clients[1].Name)
}

func TestDeleteClient(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	err := repo.CreateClient(ctx, &repository.ClientRecord{ID: "c1", UserID: "u1", Name: "Acme"})
	require.NoError(t, err)

	err = repo.DeleteClient(ctx, "c1")
	require.NoError(t, err)

	clients, err := repo.ListClients(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, clients)

	// Deleting again reports not found
	err = repo.DeleteClient(ctx, "c1")
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
}

func TestDeleteClientLeavesProjects(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	err := repo.CreateClient(ctx, &repository.ClientRecord{ID: "c1", UserID: "u1", Name: "Acme"})
	require.NoError(t, err)
	err = repo.CreateProject(ctx, &repository.ProjectRecord{ID: "p1", UserID: "u1", ClientID: "c1", Name: "Website", Color: "#111111"})
	require.NoError(t, err)

	err = repo.DeleteClient(ctx, "c1")
	require.NoError(t, err)

	// Project survives with its dangling client reference
	projects, err := repo.ListProjects(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "c1", projects[0].ClientID)
}

func TestProjectLifecycle(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	record := &repository.ProjectRecord{
		ID:       "p1",
		UserID:   "u1",
		ClientID: "c1",
		Name:     "Website",
		Color:    "#1677ff",
		IsShared: true,
	}
	err := repo.CreateProject(ctx, record)
	require.NoError(t, err)

	projects, err := repo.ListProjects(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "Website", projects[0].Name)
	assert.True(t, projects[0].IsShared)

	record.Name = "Website v2"
	record.IsShared = false
	err = repo.UpdateProject(ctx, record)
	require.NoError(t, err)

	projects, err = repo.ListProjects(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "Website v2", projects[0].Name)
	assert.False(t, projects[0].IsShared)

	err = repo.DeleteProject(ctx, "p1")
	require.NoError(t, err)

	projects, err = repo.ListProjects(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, projects)
}

func TestTaskLifecycle(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	desc := "gather requirements"

	record := &repository.TaskRecord{
		ID:          "t1",
		ProjectID:   "p1",
		Title:       "Kickoff",
		Description: &desc,
		Status:      "pending",
		CreatedBy:   "u1",
		CreatedAt:   1700000000000,
	}
	err := repo.CreateTask(ctx, record)
	require.NoError(t, err)

	tasks, err := repo.ListTasks(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Kickoff", tasks[0].Title)
	require.NotNil(t, tasks[0].Description)
	assert.Equal(t, desc, *tasks[0].Description)
	assert.Nil(t, tasks[0].AssignedTo)
	assert.Equal(t, int64(1700000000000), tasks[0].CreatedAt)

	record.Status = "completed"
	err = repo.UpdateTask(ctx, record)
	require.NoError(t, err)

	tasks, err = repo.ListTasks(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "completed", tasks[0].Status)

	err = repo.DeleteTask(ctx, "t1")
	require.NoError(t, err)
}

func TestListTasksIncludesAssigned(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	assignee := "u2"

	err := repo.CreateTask(ctx, &repository.TaskRecord{
		ID: "t1", ProjectID: "p1", Title: "Created by u1", Status: "pending",
		CreatedBy: "u1", CreatedAt: 1,
	})
	require.NoError(t, err)
	err = repo.CreateTask(ctx, &repository.TaskRecord{
		ID: "t2", ProjectID: "p1", Title: "Assigned to u2", Status: "pending",
		AssignedTo: &assignee, CreatedBy: "u1", CreatedAt: 2,
	})
	require.NoError(t, err)

	tasks, err := repo.ListTasks(ctx, "u2")
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Assigned to u2", tasks[0].Title)
}

func TestTimeEntryLifecycle(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	// Running entry
	entry := &repository.TimeEntryRecord{
		ID:          "e1",
		UserID:      "u1",
		ProjectID:   "p1",
		Description: "deep work",
		StartTime:   1000,
	}
	err := repo.CreateTimeEntry(ctx, entry)
	require.NoError(t, err)

	entries, err := repo.ListTimeEntries(ctx, repository.EntryFilter{UserID: "u1"})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Nil(t, entries[0].EndTime)
	assert.Equal(t, int64(1000), entries[0].StartTime)

	// Close it
	end := int64(5000)
	entry.EndTime = &end
	err = repo.UpdateTimeEntry(ctx, entry)
	require.NoError(t, err)

	entries, err = repo.ListTimeEntries(ctx, repository.EntryFilter{UserID: "u1"})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.NotNil(t, entries[0].EndTime)
	assert.Equal(t, int64(5000), *entries[0].EndTime)

	// Delete it
	err = repo.DeleteTimeEntry(ctx, "e1")
	require.NoError(t, err)

	entries, err = repo.ListTimeEntries(ctx, repository.EntryFilter{UserID: "u1"})
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestListTimeEntriesOrderedAndFiltered(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	mk := func(id, projectID string, start int64) {
		end := start + 1000
		err := repo.CreateTimeEntry(ctx, &repository.TimeEntryRecord{
			ID: id, UserID: "u1", ProjectID: projectID, StartTime: start, EndTime: &end,
		})
		require.NoError(t, err)
	}
	mk("e1", "p1", 1000)
	mk("e2", "p2", 3000)
	mk("e3", "p1", 2000)

	// Default ordering is start_time descending
	entries, err := repo.ListTimeEntries(ctx, repository.EntryFilter{UserID: "u1"})
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "e2", entries[0].ID)
	assert.Equal(t, "e3", entries[1].ID)
	assert.Equal(t, "e1", entries[2].ID)

	// Date range filter
	from := int64(1500)
	to := int64(2500)
	entries, err = repo.ListTimeEntries(ctx, repository.EntryFilter{UserID: "u1", From: &from, To: &to})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "e3", entries[0].ID)

	// Project filter
	projectID := "p1"
	entries, err = repo.ListTimeEntries(ctx, repository.EntryFilter{UserID: "u1", ProjectID: &projectID})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "e3", entries[0].ID)
	assert.Equal(t, "e1", entries[1].ID)
}

func TestUpdateTimeEntryNotFound(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	err := repo.UpdateTimeEntry(context.Background(), &repository.TimeEntryRecord{
		ID: "missing", UserID: "u1", ProjectID: "p1", StartTime: 1000,
	})
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
}
