package services

import (
	"fmt"
	"time"

	"extraque/internal/core"
)

// DuenessChecker decides whether a recurring template should be materialized
// again, given when it last was.
type DuenessChecker interface {
	// IsDue reports whether a new occurrence should be created. lastExecution
	// is zero when the template has never been materialized.
	IsDue(lastExecution, now time.Time, startDate core.Date) bool
}

type DailyChecker struct{}

// IsDue returns true if the last occurrence was before today.
func (DailyChecker) IsDue(lastExecution, now time.Time, _ core.Date) bool {
	if lastExecution.IsZero() {
		return true
	}
	return lastExecution.Format("2006-01-02") != now.Format("2006-01-02")
}

type WeeklyChecker struct{}

// IsDue returns true if 7 or more days have passed since the last occurrence.
func (WeeklyChecker) IsDue(lastExecution, now time.Time, _ core.Date) bool {
	if lastExecution.IsZero() {
		return true
	}
	daysSince := now.Sub(lastExecution).Hours() / 24
	return daysSince >= 7
}

type MonthlyChecker struct{}

// IsDue returns true in a new month once the template's day of month has been
// reached. Templates anchored past a short month's end fire on its last day.
func (MonthlyChecker) IsDue(lastExecution, now time.Time, startDate core.Date) bool {
	if lastExecution.IsZero() {
		return true
	}

	if lastExecution.Year() == now.Year() && lastExecution.Month() == now.Month() {
		return false
	}

	targetDay := startDate.Day()
	lastDayOfMonth := time.Date(now.Year(), now.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
	if targetDay > lastDayOfMonth {
		targetDay = lastDayOfMonth
	}

	return now.Day() >= targetDay
}

type YearlyChecker struct{}

// IsDue returns true in a new year once the template's month and day have
// been reached.
func (YearlyChecker) IsDue(lastExecution, now time.Time, startDate core.Date) bool {
	if lastExecution.IsZero() {
		return true
	}

	if lastExecution.Year() == now.Year() {
		return false
	}

	targetMonth := int(startDate.Month())
	targetDay := startDate.Day()

	if int(now.Month()) < targetMonth {
		return false
	}
	if int(now.Month()) == targetMonth {
		lastDayOfMonth := time.Date(now.Year(), now.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
		if targetDay > lastDayOfMonth {
			targetDay = lastDayOfMonth
		}
		return now.Day() >= targetDay
	}
	return true
}

var duenessStrategies = map[core.Period]DuenessChecker{
	core.PeriodDaily:   DailyChecker{},
	core.PeriodWeekly:  WeeklyChecker{},
	core.PeriodMonthly: MonthlyChecker{},
	core.PeriodYearly:  YearlyChecker{},
}

// GetDuenessChecker returns the checker for a recurrence frequency.
func GetDuenessChecker(frequency core.Period) (DuenessChecker, error) {
	checker, ok := duenessStrategies[frequency]
	if !ok {
		return nil, fmt.Errorf("unsupported recurrence frequency: %s", frequency)
	}
	return checker, nil
}
