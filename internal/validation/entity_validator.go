package validation

import (
	"timeflow/internal/domain"
)

// EntityValidator validates clients, projects, and tasks before they reach
// the persistence gateway.
type EntityValidator struct {
	validator *Validator
}

// NewEntityValidator creates a new entity validator
func NewEntityValidator() *EntityValidator {
	return &EntityValidator{
		validator: NewValidator(),
	}
}

// ValidateClient checks a client before create or update.
func (ev *EntityValidator) ValidateClient(client *domain.Client) error {
	ve := NewValidationError()

	if !ev.validator.IsNonEmptyString(client.Name) {
		ve.AddRequiredError("name")
	} else if !ev.validator.IsValidNameLength(client.Name) {
		ve.AddInvalidLengthError("name", client.Name, nameMinLength, nameMaxLength)
	}

	if !ev.validator.IsNonEmptyString(client.UserID) {
		ve.AddRequiredError("user_id")
	}

	return ve.ErrOrNil()
}

// ValidateProject checks a project before create or update. The client
// reference is not resolved here; dangling references are tolerated
// downstream.
func (ev *EntityValidator) ValidateProject(project *domain.Project) error {
	ve := NewValidationError()

	if !ev.validator.IsNonEmptyString(project.Name) {
		ve.AddRequiredError("name")
	} else if !ev.validator.IsValidNameLength(project.Name) {
		ve.AddInvalidLengthError("name", project.Name, nameMinLength, nameMaxLength)
	}

	if !ev.validator.IsNonEmptyString(project.UserID) {
		ve.AddRequiredError("user_id")
	}

	if !ev.validator.IsNonEmptyString(project.ClientID) {
		ve.AddRequiredError("client_id")
	}

	if project.Color != "" && !ev.validator.IsValidHexColor(project.Color) {
		ve.AddInvalidFormatError("color", project.Color, "#rrggbb")
	}

	return ve.ErrOrNil()
}

// ValidateTask checks a task before create or update.
func (ev *EntityValidator) ValidateTask(task *domain.Task) error {
	ve := NewValidationError()

	if !ev.validator.IsNonEmptyString(task.Title) {
		ve.AddRequiredError("title")
	} else if !ev.validator.IsValidNameLength(task.Title) {
		ve.AddInvalidLengthError("title", task.Title, nameMinLength, nameMaxLength)
	}

	if !ev.validator.IsNonEmptyString(task.ProjectID) {
		ve.AddRequiredError("project_id")
	}

	if !ev.validator.IsNonEmptyString(task.CreatedBy) {
		ve.AddRequiredError("created_by")
	}

	if !task.Status.Valid() {
		ve.AddInvalidValueError("status", string(task.Status), "must be pending, in_progress, or completed")
	}

	if task.Description != nil && !ev.validator.IsValidDescriptionLength(*task.Description) {
		ve.AddInvalidLengthError("description", *task.Description, 0, descriptionMaxLength)
	}

	return ve.ErrOrNil()
}
