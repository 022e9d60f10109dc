package cli

import (
	"fmt"
	"strings"
	"testing"

	"timeflow/internal/errors"
	"timeflow/internal/validation"
)

func TestHandleAppError(t *testing.T) {
	eh := NewErrorHandler()

	err := eh.Handle("save entry", errors.NewPersistenceError("insert", fmt.Errorf("disk full")))
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), "failed to save entry") {
		t.Errorf("missing operation context: %v", err)
	}
	if strings.Contains(err.Error(), "disk full") {
		t.Errorf("internal cause leaked to the user: %v", err)
	}
}

func TestHandleValidationError(t *testing.T) {
	eh := NewErrorHandler()

	ve := validation.NewValidationError()
	ve.AddRequiredError("name")

	err := eh.Handle("add client", ve)
	if !strings.Contains(err.Error(), "name is required") {
		t.Errorf("expected the field message, got %v", err)
	}
}

func TestHandleUnknownError(t *testing.T) {
	eh := NewErrorHandler()

	err := eh.Handle("do thing", fmt.Errorf("boom"))
	if !strings.Contains(err.Error(), "boom") {
		t.Errorf("unknown errors pass through, got %v", err)
	}
}

func TestErrorClassifiers(t *testing.T) {
	eh := NewErrorHandler()

	if !eh.IsNotFoundError(errors.NewNotFoundError("client", "c1")) {
		t.Error("expected not-found classification")
	}
	if !eh.IsValidationError(errors.NewValidationError("bad", nil)) {
		t.Error("expected validation classification")
	}
	if !eh.IsValidationError(validation.NewValidationError()) {
		t.Error("expected field-level validation classification")
	}
	if !eh.IsPersistenceError(errors.NewPersistenceError("op", nil)) {
		t.Error("expected persistence classification")
	}
}
