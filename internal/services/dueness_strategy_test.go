package services

import (
	"testing"
	"time"

	"extraque/internal/core"
)

func TestDailyChecker(t *testing.T) {
	checker := DailyChecker{}
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		lastExecution time.Time
		expected      bool
	}{
		{name: "never executed", lastExecution: time.Time{}, expected: true},
		{name: "executed yesterday", lastExecution: now.AddDate(0, 0, -1), expected: true},
		{name: "executed today", lastExecution: now.Add(-2 * time.Hour), expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := checker.IsDue(tt.lastExecution, now, core.Date{}); got != tt.expected {
				t.Errorf("IsDue() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestWeeklyChecker(t *testing.T) {
	checker := WeeklyChecker{}
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		lastExecution time.Time
		expected      bool
	}{
		{name: "never executed", lastExecution: time.Time{}, expected: true},
		{name: "6 days ago", lastExecution: now.AddDate(0, 0, -6), expected: false},
		{name: "exactly 7 days ago", lastExecution: now.AddDate(0, 0, -7), expected: true},
		{name: "10 days ago", lastExecution: now.AddDate(0, 0, -10), expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := checker.IsDue(tt.lastExecution, now, core.Date{}); got != tt.expected {
				t.Errorf("IsDue() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestMonthlyChecker(t *testing.T) {
	checker := MonthlyChecker{}

	tests := []struct {
		name          string
		lastExecution time.Time
		now           time.Time
		startDate     core.Date
		expected      bool
	}{
		{
			name:      "never executed",
			now:       time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
			startDate: core.NewDate(2024, 1, 15),
			expected:  true,
		},
		{
			name:          "already ran this month",
			lastExecution: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			now:           time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC),
			startDate:     core.NewDate(2024, 1, 15),
			expected:      false,
		},
		{
			name:          "new month, target day reached",
			lastExecution: time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC),
			now:           time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
			startDate:     core.NewDate(2024, 1, 15),
			expected:      true,
		},
		{
			name:          "new month, before target day",
			lastExecution: time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC),
			now:           time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
			startDate:     core.NewDate(2024, 1, 15),
			expected:      false,
		},
		{
			name:          "target day 31 in a 29-day month",
			lastExecution: time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
			now:           time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
			startDate:     core.NewDate(2023, 12, 31),
			expected:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := checker.IsDue(tt.lastExecution, tt.now, tt.startDate); got != tt.expected {
				t.Errorf("IsDue() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestYearlyChecker(t *testing.T) {
	checker := YearlyChecker{}

	tests := []struct {
		name          string
		lastExecution time.Time
		now           time.Time
		startDate     core.Date
		expected      bool
	}{
		{
			name:      "never executed",
			now:       time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
			startDate: core.NewDate(2023, 6, 1),
			expected:  true,
		},
		{
			name:          "already ran this year",
			lastExecution: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
			now:           time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC),
			startDate:     core.NewDate(2023, 6, 1),
			expected:      false,
		},
		{
			name:          "new year, before target month",
			lastExecution: time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC),
			now:           time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
			startDate:     core.NewDate(2023, 6, 1),
			expected:      false,
		},
		{
			name:          "new year, past target month",
			lastExecution: time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC),
			now:           time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
			startDate:     core.NewDate(2023, 6, 1),
			expected:      true,
		},
		{
			name:          "new year, target month and day reached",
			lastExecution: time.Date(2023, 6, 15, 0, 0, 0, 0, time.UTC),
			now:           time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
			startDate:     core.NewDate(2023, 6, 15),
			expected:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := checker.IsDue(tt.lastExecution, tt.now, tt.startDate); got != tt.expected {
				t.Errorf("IsDue() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetDuenessChecker(t *testing.T) {
	for _, p := range []core.Period{core.PeriodDaily, core.PeriodWeekly, core.PeriodMonthly, core.PeriodYearly} {
		if _, err := GetDuenessChecker(p); err != nil {
			t.Errorf("GetDuenessChecker(%s): %v", p, err)
		}
	}
	if _, err := GetDuenessChecker(core.PeriodCustom); err == nil {
		t.Error("expected error for custom frequency")
	}
}
