package store

import (
	"context"
	"sort"
	"time"

	"timeflow/internal/domain"
	"timeflow/internal/errors"
)

// CreateClient persists a new client for the session user and adds it to
// the working set.
func (s *Store) CreateClient(ctx context.Context, name string) (*domain.Client, error) {
	if err := s.ensureLoaded(); err != nil {
		return nil, err
	}

	client := domain.Client{
		ID:     domain.NewID(),
		UserID: s.userID,
		Name:   name,
	}
	if err := s.entities.ValidateClient(&client); err != nil {
		return nil, err
	}

	record := s.mapper.Client.ToRecord(client)
	err := s.persist(ctx, func(ctx context.Context) error {
		return s.gateway.CreateClient(ctx, &record)
	})
	if err != nil {
		return nil, err
	}

	s.clients = append(s.clients, client)
	s.sortClients()

	copied := client
	return &copied, nil
}

// DeleteClient removes a client. Projects referencing it are left alone and
// resolve to the unknown bucket in reports.
func (s *Store) DeleteClient(ctx context.Context, id string) error {
	if err := s.ensureLoaded(); err != nil {
		return err
	}
	if _, err := s.FindClient(id); err != nil {
		return err
	}

	err := s.persist(ctx, func(ctx context.Context) error {
		return s.gateway.DeleteClient(ctx, id)
	})
	if err != nil {
		return err
	}

	for i := range s.clients {
		if s.clients[i].ID == id {
			s.clients = append(s.clients[:i], s.clients[i+1:]...)
			break
		}
	}
	return nil
}

// CreateProject persists a new project. The client reference is stored as
// given and is not checked for existence.
func (s *Store) CreateProject(ctx context.Context, name, clientID, color string, isShared bool) (*domain.Project, error) {
	if err := s.ensureLoaded(); err != nil {
		return nil, err
	}

	project := domain.Project{
		ID:       domain.NewID(),
		UserID:   s.userID,
		ClientID: clientID,
		Name:     name,
		Color:    color,
		IsShared: isShared,
	}
	if err := s.entities.ValidateProject(&project); err != nil {
		return nil, err
	}

	record := s.mapper.Project.ToRecord(project)
	err := s.persist(ctx, func(ctx context.Context) error {
		return s.gateway.CreateProject(ctx, &record)
	})
	if err != nil {
		return nil, err
	}

	s.projects = append(s.projects, project)
	s.sortProjects()

	copied := project
	return &copied, nil
}

// UpdateProject replaces an existing project's fields. Ownership and id are
// taken from the stored project.
func (s *Store) UpdateProject(ctx context.Context, project domain.Project) (*domain.Project, error) {
	if err := s.ensureLoaded(); err != nil {
		return nil, err
	}

	existing, err := s.FindProject(project.ID)
	if err != nil {
		return nil, err
	}
	project.UserID = existing.UserID

	if err := s.entities.ValidateProject(&project); err != nil {
		return nil, err
	}

	record := s.mapper.Project.ToRecord(project)
	err = s.persist(ctx, func(ctx context.Context) error {
		return s.gateway.UpdateProject(ctx, &record)
	})
	if err != nil {
		return nil, err
	}

	for i := range s.projects {
		if s.projects[i].ID == project.ID {
			s.projects[i] = project
			break
		}
	}
	s.sortProjects()

	copied := project
	return &copied, nil
}

// DeleteProject removes a project. Entries referencing it are left alone.
func (s *Store) DeleteProject(ctx context.Context, id string) error {
	if err := s.ensureLoaded(); err != nil {
		return err
	}
	if _, err := s.FindProject(id); err != nil {
		return err
	}

	err := s.persist(ctx, func(ctx context.Context) error {
		return s.gateway.DeleteProject(ctx, id)
	})
	if err != nil {
		return err
	}

	for i := range s.projects {
		if s.projects[i].ID == id {
			s.projects = append(s.projects[:i], s.projects[i+1:]...)
			break
		}
	}
	return nil
}

// CreateTask persists a new task created by the session user.
func (s *Store) CreateTask(ctx context.Context, projectID, title string, description, assignedTo *string) (*domain.Task, error) {
	if err := s.ensureLoaded(); err != nil {
		return nil, err
	}

	task := domain.Task{
		ID:          domain.NewID(),
		ProjectID:   projectID,
		Title:       title,
		Description: description,
		Status:      domain.TaskStatusPending,
		AssignedTo:  assignedTo,
		CreatedBy:   s.userID,
		CreatedAt:   time.Now().UnixMilli(),
	}
	if err := s.entities.ValidateTask(&task); err != nil {
		return nil, err
	}

	record := s.mapper.Task.ToRecord(task)
	err := s.persist(ctx, func(ctx context.Context) error {
		return s.gateway.CreateTask(ctx, &record)
	})
	if err != nil {
		return nil, err
	}

	s.tasks = append(s.tasks, task)
	s.sortTasks()

	copied := task
	return &copied, nil
}

// UpdateTask replaces an existing task's fields. Creator and creation time
// are taken from the stored task.
func (s *Store) UpdateTask(ctx context.Context, task domain.Task) (*domain.Task, error) {
	if err := s.ensureLoaded(); err != nil {
		return nil, err
	}

	existing, err := s.FindTask(task.ID)
	if err != nil {
		return nil, err
	}
	task.CreatedBy = existing.CreatedBy
	task.CreatedAt = existing.CreatedAt

	if err := s.entities.ValidateTask(&task); err != nil {
		return nil, err
	}

	record := s.mapper.Task.ToRecord(task)
	err = s.persist(ctx, func(ctx context.Context) error {
		return s.gateway.UpdateTask(ctx, &record)
	})
	if err != nil {
		return nil, err
	}

	for i := range s.tasks {
		if s.tasks[i].ID == task.ID {
			s.tasks[i] = task
			break
		}
	}

	copied := task
	return &copied, nil
}

// SetTaskStatus moves a task to a new status.
func (s *Store) SetTaskStatus(ctx context.Context, id string, status domain.TaskStatus) (*domain.Task, error) {
	if !status.Valid() {
		return nil, errors.NewInvalidInputError("status", string(status), "must be pending, in_progress, or completed")
	}

	task, err := s.FindTask(id)
	if err != nil {
		return nil, err
	}
	task.Status = status
	return s.UpdateTask(ctx, *task)
}

// DeleteTask removes a task. Entries referencing it are left alone.
func (s *Store) DeleteTask(ctx context.Context, id string) error {
	if err := s.ensureLoaded(); err != nil {
		return err
	}
	if _, err := s.FindTask(id); err != nil {
		return err
	}

	err := s.persist(ctx, func(ctx context.Context) error {
		return s.gateway.DeleteTask(ctx, id)
	})
	if err != nil {
		return err
	}

	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			break
		}
	}
	return nil
}

func (s *Store) sortClients() {
	sort.SliceStable(s.clients, func(i, j int) bool {
		return s.clients[i].Name < s.clients[j].Name
	})
}

func (s *Store) sortProjects() {
	sort.SliceStable(s.projects, func(i, j int) bool {
		return s.projects[i].Name < s.projects[j].Name
	})
}

func (s *Store) sortTasks() {
	sort.SliceStable(s.tasks, func(i, j int) bool {
		return s.tasks[i].CreatedAt > s.tasks[j].CreatedAt
	})
}
