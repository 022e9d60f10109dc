package cli

import (
	"context"

	"timeflow/internal/api"
	"timeflow/internal/errors"
	"timeflow/internal/store"
)

// AddEntryCommand handles manual entry creation
type AddEntryCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewAddEntryCommand creates a new add command handler
func NewAddEntryCommand(app *App) *AddEntryCommand {
	return &AddEntryCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute records a closed entry for a past range.
func (c *AddEntryCommand) Execute(ctx context.Context, projectID, description, startValue, endValue, taskID string) error {
	start, err := parseLocalTime(startValue)
	if err != nil {
		return c.errorHandler.HandleSimple(err)
	}
	end, err := parseLocalTime(endValue)
	if err != nil {
		return c.errorHandler.HandleSimple(err)
	}

	var taskRef *string
	if taskID != "" {
		taskRef = &taskID
	}

	entry, err := c.app.api.AddManualEntry(ctx, projectID, description, taskRef, start, end)
	if err != nil {
		return c.errorHandler.Handle("add entry", err)
	}
	c.app.printf("Added entry %s\n", entry.ID)
	return nil
}

// EditEntryCommand handles entry edits
type EditEntryCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewEditEntryCommand creates a new edit command handler
func NewEditEntryCommand(app *App) *EditEntryCommand {
	return &EditEntryCommand{app: app, errorHandler: NewErrorHandler()}
}

// EntryEdit carries the changed fields; empty strings leave a field alone.
type EntryEdit struct {
	ProjectID   string
	Description string
	HasDesc     bool
	Start       string
	End         string
}

// Execute applies an edit to an existing entry.
func (c *EditEntryCommand) Execute(ctx context.Context, id string, edit EntryEdit) error {
	entries := c.app.api.ListEntries(store.Filter{})

	for _, entry := range entries {
		if entry.ID != id {
			continue
		}

		if edit.ProjectID != "" {
			entry.ProjectID = edit.ProjectID
		}
		if edit.HasDesc {
			entry.Description = edit.Description
		}
		if edit.Start != "" {
			start, err := parseLocalTime(edit.Start)
			if err != nil {
				return c.errorHandler.HandleSimple(err)
			}
			entry.StartTime = start
		}
		if edit.End != "" {
			end, err := parseLocalTime(edit.End)
			if err != nil {
				return c.errorHandler.HandleSimple(err)
			}
			entry.EndTime = &end
		}

		updated, err := c.app.api.UpdateEntry(ctx, entry)
		if err != nil {
			return c.errorHandler.Handle("edit entry", err)
		}
		c.app.printf("Updated entry %s\n", updated.ID)
		return nil
	}

	return c.errorHandler.HandleSimple(errors.NewNotFoundError("time entry", id))
}

// RemoveEntryCommand handles entry deletion
type RemoveEntryCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewRemoveEntryCommand creates a new rm command handler
func NewRemoveEntryCommand(app *App) *RemoveEntryCommand {
	return &RemoveEntryCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute deletes an entry by id.
func (c *RemoveEntryCommand) Execute(ctx context.Context, id string) error {
	if err := c.app.api.DeleteEntry(ctx, id); err != nil {
		return c.errorHandler.Handle("remove entry", err)
	}
	c.app.printf("Removed entry %s\n", id)
	return nil
}

// LogCommand lists entries
type LogCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewLogCommand creates a new log command handler
func NewLogCommand(app *App) *LogCommand {
	return &LogCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute prints entries, newest first, optionally narrowed to a day and a
// project.
func (c *LogCommand) Execute(ctx context.Context, dayValue, projectID string) error {
	filter := store.Filter{}
	if dayValue != "" {
		day, err := parseLocalDay(dayValue)
		if err != nil {
			return c.errorHandler.HandleSimple(err)
		}
		dayFilter := api.FilterForDay(day)
		filter.From = dayFilter.From
		filter.To = dayFilter.To
	}
	if projectID != "" {
		filter.ProjectID = &projectID
	}

	entries := c.app.api.ListEntries(filter)
	if len(entries) == 0 {
		c.app.println("No entries")
		return nil
	}

	for i := range entries {
		c.app.printEntry(&entries[i])
	}
	return nil
}
