// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"fmt"
	"time"

	"marketplace/internal/pkg/errs"
)

// nowFunc is a seam for pinning the analytics window end.
var nowFunc = time.Now

// Period is the analytics time window. Aggregates cover orders created
// between the window start and now.
type Period int

const (
	// PeriodDay covers the last 24 hours.
	PeriodDay Period = iota + 1

	// PeriodWeek covers the last 7 days.
	PeriodWeek

	// PeriodMonth covers the last calendar month. This is the default.
	PeriodMonth

	// PeriodYear covers the last calendar year.
	PeriodYear
)

// String returns the wire representation of the period.
func (p Period) String() string {
	switch p {
	case PeriodDay:
		return "day"
	case PeriodWeek:
		return "week"
	case PeriodMonth:
		return "month"
	case PeriodYear:
		return "year"
	default:
		return "unknown"
	}
}

// Validate checks the period is one of the defined windows.
func (p Period) Validate() error {
	if p < PeriodDay || p > PeriodYear {
		return errs.NewValueIsInvalidErrorWithCause("period",
			fmt.Errorf("%d is not a valid period", p))
	}
	return nil
}

// PeriodFromString parses a period from its wire representation.
// An empty string defaults to PeriodMonth.
func PeriodFromString(s string) (Period, error) {
	switch s {
	case "":
		return PeriodMonth, nil
	case "day":
		return PeriodDay, nil
	case "week":
		return PeriodWeek, nil
	case "month":
		return PeriodMonth, nil
	case "year":
		return PeriodYear, nil
	default:
		return 0, errs.NewValueIsInvalidErrorWithCause("period",
			fmt.Errorf("%q is not one of day, week, month, year", s))
	}
}

// WindowStart returns the beginning of the window ending at now.
func (p Period) WindowStart(now time.Time) time.Time {
	switch p {
	case PeriodDay:
		return now.AddDate(0, 0, -1)
	case PeriodWeek:
		return now.AddDate(0, 0, -7)
	case PeriodYear:
		return now.AddDate(-1, 0, 0)
	default:
		return now.AddDate(0, -1, 0)
	}
}
