package cli

import (
	"context"

	"timeflow/internal/domain"
	"timeflow/internal/errors"
)

// ClientCommand handles client add/rm/ls
type ClientCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewClientCommand creates a new client command handler
func NewClientCommand(app *App) *ClientCommand {
	return &ClientCommand{app: app, errorHandler: NewErrorHandler()}
}

// Add creates a client.
func (c *ClientCommand) Add(ctx context.Context, name string) error {
	client, err := c.app.api.CreateClient(ctx, name)
	if err != nil {
		return c.errorHandler.Handle("add client", err)
	}
	c.app.printf("Added client %s (%s)\n", client.Name, client.ID)
	return nil
}

// Remove deletes a client; its projects keep their reference.
func (c *ClientCommand) Remove(ctx context.Context, id string) error {
	if err := c.app.api.DeleteClient(ctx, id); err != nil {
		return c.errorHandler.Handle("remove client", err)
	}
	c.app.printf("Removed client %s\n", id)
	return nil
}

// List prints all clients.
func (c *ClientCommand) List(ctx context.Context) error {
	clients := c.app.api.Clients()
	if len(clients) == 0 {
		c.app.println("No clients")
		return nil
	}
	for _, client := range clients {
		c.app.printf("%s  %s\n", client.ID, client.Name)
	}
	return nil
}

// ProjectCommand handles project add/edit/rm/ls
type ProjectCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewProjectCommand creates a new project command handler
func NewProjectCommand(app *App) *ProjectCommand {
	return &ProjectCommand{app: app, errorHandler: NewErrorHandler()}
}

// Add creates a project.
func (c *ProjectCommand) Add(ctx context.Context, name, clientID, color string, shared bool) error {
	project, err := c.app.api.CreateProject(ctx, name, clientID, color, shared)
	if err != nil {
		return c.errorHandler.Handle("add project", err)
	}
	c.app.printf("Added project %s (%s)\n", project.Name, project.ID)
	return nil
}

// Edit updates a project's fields; empty strings leave a field alone.
func (c *ProjectCommand) Edit(ctx context.Context, id, name, clientID, color string, shared *bool) error {
	var target *domain.Project
	for _, project := range c.app.api.Projects() {
		if project.ID == id {
			copied := project
			target = &copied
			break
		}
	}
	if target == nil {
		return c.errorHandler.HandleSimple(errors.NewNotFoundError("project", id))
	}

	if name != "" {
		target.Name = name
	}
	if clientID != "" {
		target.ClientID = clientID
	}
	if color != "" {
		target.Color = color
	}
	if shared != nil {
		target.IsShared = *shared
	}

	updated, err := c.app.api.UpdateProject(ctx, *target)
	if err != nil {
		return c.errorHandler.Handle("edit project", err)
	}
	c.app.printf("Updated project %s\n", updated.ID)
	return nil
}

// Remove deletes a project; entries keep their reference.
func (c *ProjectCommand) Remove(ctx context.Context, id string) error {
	if err := c.app.api.DeleteProject(ctx, id); err != nil {
		return c.errorHandler.Handle("remove project", err)
	}
	c.app.printf("Removed project %s\n", id)
	return nil
}

// List prints all projects with their client.
func (c *ProjectCommand) List(ctx context.Context) error {
	projects := c.app.api.Projects()
	if len(projects) == 0 {
		c.app.println("No projects")
		return nil
	}
	for _, project := range projects {
		shared := ""
		if project.IsShared {
			shared = "  (shared)"
		}
		c.app.printf("%s  %s%s\n", project.ID, c.app.projectLabel(project.ID), shared)
	}
	return nil
}

// TaskCommand handles task add/edit/done/rm/ls
type TaskCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewTaskCommand creates a new task command handler
func NewTaskCommand(app *App) *TaskCommand {
	return &TaskCommand{app: app, errorHandler: NewErrorHandler()}
}

// Add creates a task on a project.
func (c *TaskCommand) Add(ctx context.Context, projectID, title, description, assignedTo string) error {
	var descRef, assigneeRef *string
	if description != "" {
		descRef = &description
	}
	if assignedTo != "" {
		assigneeRef = &assignedTo
	}

	task, err := c.app.api.CreateTask(ctx, projectID, title, descRef, assigneeRef)
	if err != nil {
		return c.errorHandler.Handle("add task", err)
	}
	c.app.printf("Added task %s (%s)\n", task.Title, task.ID)
	return nil
}

// SetStatus moves a task to a new status.
func (c *TaskCommand) SetStatus(ctx context.Context, id string, status domain.TaskStatus) error {
	task, err := c.app.api.SetTaskStatus(ctx, id, status)
	if err != nil {
		return c.errorHandler.Handle("update task", err)
	}
	c.app.printf("Task %s is now %s\n", task.ID, task.Status)
	return nil
}

// Remove deletes a task.
func (c *TaskCommand) Remove(ctx context.Context, id string) error {
	if err := c.app.api.DeleteTask(ctx, id); err != nil {
		return c.errorHandler.Handle("remove task", err)
	}
	c.app.printf("Removed task %s\n", id)
	return nil
}

// List prints the session user's tasks.
func (c *TaskCommand) List(ctx context.Context) error {
	tasks := c.app.api.Tasks()
	if len(tasks) == 0 {
		c.app.println("No tasks")
		return nil
	}
	for _, task := range tasks {
		c.app.printf("%s  [%s]  %s\n", task.ID, task.Status, task.Title)
	}
	return nil
}
