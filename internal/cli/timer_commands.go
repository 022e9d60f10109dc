package cli

import (
	"context"
	"strings"

	"timeflow/internal/domain"
	"timeflow/internal/errors"
	"timeflow/internal/timer"
)

// StartCommand handles the start command
type StartCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewStartCommand creates a new start command handler
func NewStartCommand(app *App) *StartCommand {
	return &StartCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute runs the start command: args are the project id followed by an
// optional description.
func (c *StartCommand) Execute(ctx context.Context, args []string, taskID string) error {
	if len(args) < 1 {
		return errors.NewInvalidInputError("command", "start", `usage: timeflow start <project-id> [description]`)
	}

	projectID := args[0]
	description := strings.Join(args[1:], " ")

	var taskRef *string
	if taskID != "" {
		taskRef = &taskID
	}

	status, err := c.app.api.TimerStatus()
	if err != nil {
		return c.errorHandler.Handle("start timer", err)
	}
	wasRunning := status.Running

	entry, err := c.app.api.StartTimer(ctx, projectID, description, taskRef)
	if err != nil {
		return c.errorHandler.Handle("start timer", err)
	}

	if wasRunning {
		c.app.println("Stopped the running entry")
	}
	c.app.printf("Started tracking on %s\n", c.app.projectLabel(entry.ProjectID))
	return nil
}

// StopCommand handles the stop command
type StopCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewStopCommand creates a new stop command handler
func NewStopCommand(app *App) *StopCommand {
	return &StopCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute runs the stop command
func (c *StopCommand) Execute(ctx context.Context) error {
	entry, err := c.app.api.StopTimer(ctx)
	if err != nil {
		return c.errorHandler.Handle("stop timer", err)
	}
	if entry == nil {
		c.app.println("No timer is running")
		return nil
	}
	c.app.printf("Stopped after %s\n", domain.FormatClock(entry.DurationMillis()))
	return nil
}

// DiscardCommand handles the discard command
type DiscardCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewDiscardCommand creates a new discard command handler
func NewDiscardCommand(app *App) *DiscardCommand {
	return &DiscardCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute runs the discard command
func (c *DiscardCommand) Execute(ctx context.Context) error {
	status, err := c.app.api.TimerStatus()
	if err != nil {
		return c.errorHandler.Handle("discard timer", err)
	}
	if !status.Running {
		c.app.println("No timer is running")
		return nil
	}

	if err := c.app.api.DiscardTimer(ctx); err != nil {
		return c.errorHandler.Handle("discard timer", err)
	}
	c.app.println("Discarded the running entry")
	return nil
}

// StatusCommand handles the status command
type StatusCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewStatusCommand creates a new status command handler
func NewStatusCommand(app *App) *StatusCommand {
	return &StatusCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute runs the status command
func (c *StatusCommand) Execute(ctx context.Context) error {
	status, err := c.app.api.TimerStatus()
	if err != nil {
		return c.errorHandler.Handle("read timer status", err)
	}
	if !status.Running {
		c.app.println("Idle")
		return nil
	}

	c.app.printf("Running on %s for %s\n",
		c.app.projectLabel(status.Entry.ProjectID),
		domain.FormatClock(status.ElapsedMillis))
	if status.Entry.Description != "" {
		c.app.printf("  %s\n", status.Entry.Description)
	}
	return nil
}

// AmendCommand handles the amend command
type AmendCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewAmendCommand creates a new amend command handler
func NewAmendCommand(app *App) *AmendCommand {
	return &AmendCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute runs the amend command with values taken from flags; empty
// strings mean "leave unchanged".
func (c *AmendCommand) Execute(ctx context.Context, projectID, description, taskID string, clearTask bool) error {
	amendment := timer.Amendment{ClearTask: clearTask}
	if projectID != "" {
		amendment.ProjectID = &projectID
	}
	if description != "" {
		amendment.Description = &description
	}
	if taskID != "" {
		amendment.TaskID = &taskID
	}

	if amendment.ProjectID == nil && amendment.Description == nil && amendment.TaskID == nil && !clearTask {
		return errors.NewInvalidInputError("command", "amend", "nothing to change; pass --project, --description, --task, or --clear-task")
	}

	entry, err := c.app.api.AmendTimer(ctx, amendment)
	if err != nil {
		return c.errorHandler.Handle("amend running entry", err)
	}
	c.app.printf("Amended the running entry on %s\n", c.app.projectLabel(entry.ProjectID))
	return nil
}
