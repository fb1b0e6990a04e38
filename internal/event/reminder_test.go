package event

import (
	"errors"
	"testing"
	"time"

	"github.com/eventful-api/eventful-backend/utils"
)

func TestComputeReminderTime(t *testing.T) {
	start := time.Date(2026, 9, 15, 18, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		offset string
		want   time.Time
	}{
		{"minutes", "30 minutes", start.Add(-30 * time.Minute)},
		{"hours", "2 hours", start.Add(-2 * time.Hour)},
		{"single hour singular", "1 hour", start.Add(-time.Hour)},
		{"days", "3 days", start.Add(-3 * 24 * time.Hour)},
		{"one week", "1 week", start.Add(-7 * 24 * time.Hour)},
		{"case insensitive", "2 Hours", start.Add(-2 * time.Hour)},
		{"extra whitespace", "  2   hours  ", start.Add(-2 * time.Hour)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeReminderTime(start, tt.offset)
			if err != nil {
				t.Fatalf("ComputeReminderTime(%q) returned error: %v", tt.offset, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ComputeReminderTime(%q) = %v, want %v", tt.offset, got, tt.want)
			}
		})
	}
}

func TestComputeReminderTimeRejectsBadInput(t *testing.T) {
	start := time.Date(2026, 9, 15, 18, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		offset string
	}{
		{"empty", ""},
		{"missing unit", "2"},
		{"missing number", "hours"},
		{"too many tokens", "2 hours before"},
		{"zero count", "0 hours"},
		{"negative count", "-1 day"},
		{"not a number", "two hours"},
		{"unknown unit", "3 fortnights"},
		{"unknown unit month", "1 month"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputeReminderTime(start, tt.offset)
			if err == nil {
				t.Fatalf("ComputeReminderTime(%q) accepted invalid input", tt.offset)
			}

			var apiErr *utils.APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("ComputeReminderTime(%q) error = %v, want *utils.APIError", tt.offset, err)
			}
			if apiErr.StatusCode != 400 {
				t.Errorf("ComputeReminderTime(%q) status = %d, want 400", tt.offset, apiErr.StatusCode)
			}
		})
	}
}
