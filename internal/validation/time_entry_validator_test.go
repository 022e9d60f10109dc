package validation

import (
	"testing"

	"timeflow/internal/domain"
)

func TestValidateEntry(t *testing.T) {
	tv := NewTimeEntryValidator()

	end := int64(2000)
	badEnd := int64(1000)

	tests := []struct {
		name    string
		entry   *domain.TimeEntry
		wantErr bool
	}{
		{
			"running entry",
			&domain.TimeEntry{ID: "e1", UserID: "u1", ProjectID: "p1", StartTime: 1000},
			false,
		},
		{
			"closed entry",
			&domain.TimeEntry{ID: "e1", UserID: "u1", ProjectID: "p1", StartTime: 1000, EndTime: &end},
			false,
		},
		{
			"end equals start",
			&domain.TimeEntry{ID: "e1", UserID: "u1", ProjectID: "p1", StartTime: 1000, EndTime: &badEnd},
			true,
		},
		{
			"missing project",
			&domain.TimeEntry{ID: "e1", UserID: "u1", StartTime: 1000},
			true,
		},
		{
			"zero start time",
			&domain.TimeEntry{ID: "e1", UserID: "u1", ProjectID: "p1"},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tv.ValidateEntry(tt.entry)
			if tt.wantErr && !IsValidationError(err) {
				t.Errorf("expected validation error, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("expected no error, got %v", err)
			}
		})
	}
}

func TestValidateManualRange(t *testing.T) {
	tv := NewTimeEntryValidator()

	if err := tv.ValidateManualRange(1000, 2000); err != nil {
		t.Errorf("expected no error, got %v", err)
	}
	if err := tv.ValidateManualRange(2000, 1000); !IsValidationError(err) {
		t.Errorf("expected validation error, got %v", err)
	}
	if err := tv.ValidateManualRange(1000, 1000); !IsValidationError(err) {
		t.Errorf("expected validation error for equal bounds, got %v", err)
	}
}
