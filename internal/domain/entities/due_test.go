package entities

import (
	"testing"
	"time"
)

func TestIsOverdue(t *testing.T) {
	tests := []struct {
		name string
		due  string
		now  time.Time
		want bool
	}{
		{
			name: "date-only due, now past end of day",
			due:  "2024-01-01",
			now:  time.Date(2024, 1, 2, 0, 0, 0, 0, time.Local),
			want: true,
		},
		{
			name: "date-only due, one second before end of day",
			due:  "2024-01-01",
			now:  time.Date(2023, 12, 31, 23, 59, 59, 0, time.Local),
			want: false,
		},
		{
			name: "timed due, now before",
			due:  "2024-01-01 10:00",
			now:  time.Date(2024, 1, 1, 9, 0, 0, 0, time.Local),
			want: false,
		},
		{
			name: "timed due, now after",
			due:  "2024-01-01 10:00",
			now:  time.Date(2024, 1, 1, 11, 0, 0, 0, time.Local),
			want: true,
		},
		{
			name: "empty due is always overdue",
			due:  "",
			now:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local),
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsOverdue(tt.due, tt.now); got != tt.want {
				t.Errorf("IsOverdue(%q, %v) = %v, want %v", tt.due, tt.now, got, tt.want)
			}
		})
	}
}

func TestEffectiveDueInstant(t *testing.T) {
	tests := []struct {
		due  string
		want string
	}{
		{"2024-01-01", "2024-01-01 23:59:59"},
		{"2024-01-01 10:00", "2024-01-01 10:00"},
		{"", " 23:59:59"},
	}

	for _, tt := range tests {
		if got := EffectiveDueInstant(tt.due); got != tt.want {
			t.Errorf("EffectiveDueInstant(%q) = %q, want %q", tt.due, got, tt.want)
		}
	}
}

func TestCombineDue(t *testing.T) {
	tests := []struct {
		date     string
		timePart string
		want     string
	}{
		{"2024-01-01", "10:00", "2024-01-01 10:00"},
		{"2024-01-01", "", "2024-01-01"},
		{"", "", ""},
	}

	for _, tt := range tests {
		if got := CombineDue(tt.date, tt.timePart); got != tt.want {
			t.Errorf("CombineDue(%q, %q) = %q, want %q", tt.date, tt.timePart, got, tt.want)
		}
	}
}

func TestSplitDue(t *testing.T) {
	tests := []struct {
		due      string
		date     string
		timePart string
	}{
		{"2024-01-01 10:00", "2024-01-01", "10:00"},
		{"2024-01-01", "2024-01-01", ""},
		{"", "", ""},
	}

	for _, tt := range tests {
		date, timePart := SplitDue(tt.due)
		if date != tt.date || timePart != tt.timePart {
			t.Errorf("SplitDue(%q) = (%q, %q), want (%q, %q)", tt.due, date, timePart, tt.date, tt.timePart)
		}
	}
}

func TestSplitCombineRoundTrip(t *testing.T) {
	for _, due := range []string{"2024-01-01", "2024-01-01 10:00", ""} {
		date, timePart := SplitDue(due)
		if got := CombineDue(date, timePart); got != due {
			t.Errorf("CombineDue(SplitDue(%q)) = %q", due, got)
		}
	}
}
