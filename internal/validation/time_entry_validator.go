package validation

import (
	"timeflow/internal/domain"
)

// TimeEntryValidator validates time entries before they reach the
// persistence gateway.
type TimeEntryValidator struct {
	validator *Validator
}

// NewTimeEntryValidator creates a new time entry validator
func NewTimeEntryValidator() *TimeEntryValidator {
	return &TimeEntryValidator{
		validator: NewValidator(),
	}
}

// ValidateEntry checks an entry before create or update. Running entries
// (nil end time) are valid; closed entries must end strictly after they
// start.
func (tv *TimeEntryValidator) ValidateEntry(entry *domain.TimeEntry) error {
	ve := NewValidationError()

	if !tv.validator.IsNonEmptyString(entry.UserID) {
		ve.AddRequiredError("user_id")
	}

	if !tv.validator.IsNonEmptyString(entry.ProjectID) {
		ve.AddRequiredError("project_id")
	}

	if entry.StartTime <= 0 {
		ve.AddInvalidValueError("start_time", entry.StartTime, "must be a positive epoch-millisecond timestamp")
	}

	if !tv.validator.IsValidTimeRange(entry.StartTime, entry.EndTime) {
		ve.AddInvalidRangeError("end_time", entry.EndTime, "must be strictly after start_time")
	}

	if !tv.validator.IsValidDescriptionLength(entry.Description) {
		ve.AddInvalidLengthError("description", entry.Description, 0, descriptionMaxLength)
	}

	return ve.ErrOrNil()
}

// ValidateManualRange checks a user-supplied manual range before an entry
// is built from it.
func (tv *TimeEntryValidator) ValidateManualRange(startMillis, endMillis int64) error {
	ve := NewValidationError()

	if startMillis <= 0 {
		ve.AddInvalidValueError("start_time", startMillis, "must be a positive epoch-millisecond timestamp")
	}

	if endMillis <= startMillis {
		ve.AddInvalidRangeError("end_time", endMillis, "must be strictly after start_time")
	}

	return ve.ErrOrNil()
}
