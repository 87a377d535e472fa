// Package calendar computes month grid geometry and per-cell render state for
// the operation-record calendar. Everything here is pure: no clock reads, no
// network, no shared state.
package calendar

import (
	"fmt"
	"time"
)

// Month is a calendar month reference point. It is a value: navigation
// produces new Month values, nothing is mutated in place.
type Month struct {
	Year  int
	Month time.Month
}

// MonthOf returns the month containing t.
func MonthOf(t time.Time) Month {
	year, month, _ := t.Date()
	return Month{Year: year, Month: month}
}

// Add moves n months forward (negative n moves back), normalizing across
// year boundaries.
func (m Month) Add(n int) Month {
	t := time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, n, 0)
	return MonthOf(t)
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// DateString renders a day of the month in the canonical zero-padded
// YYYY-MM-DD form used as the key everywhere in this system. The string is
// built from calendar-local components, never from a UTC conversion.
func (m Month) DateString(day int) string {
	return fmt.Sprintf("%04d-%02d-%02d", m.Year, int(m.Month), day)
}

// Layout is the shape of a month grid rendered with weeks starting Sunday.
type Layout struct {
	DaysInMonth        int
	StartWeekdayOffset int // weekday index of day 1, 0=Sunday..6=Saturday
	TotalCells         int // always a multiple of 7
}

// ComputeLayout derives the grid geometry for the month containing ref.
func ComputeLayout(ref time.Time) Layout {
	return MonthOf(ref).Layout()
}

// Layout derives the grid geometry for the month. Day zero of the next month
// gives the month length, which handles leap years.
func (m Month) Layout() Layout {
	first := time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := time.Date(m.Year, m.Month+1, 0, 0, 0, 0, 0, time.UTC).Day()
	offset := int(first.Weekday())

	cells := offset + daysInMonth
	if rem := cells % 7; rem != 0 {
		cells += 7 - rem
	}

	return Layout{
		DaysInMonth:        daysInMonth,
		StartWeekdayOffset: offset,
		TotalCells:         cells,
	}
}

// DayAt maps a grid cell index to its day number, or 0 for a leading or
// trailing blank cell.
func (l Layout) DayAt(cell int) int {
	day := cell - l.StartWeekdayOffset + 1
	if day < 1 || day > l.DaysInMonth {
		return 0
	}
	return day
}
