package schedule

import "time"

// Direction moves the calendar one month back or forward.
type Direction int

const (
	Prev Direction = -1
	Next Direction = 1
)

// Month identifies a single calendar month being displayed.
type Month struct {
	Year  int
	Month time.Month
}

func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

// Navigate shifts by one calendar month, wrapping year boundaries.
func (m Month) Navigate(dir Direction) Month {
	shifted := time.Date(m.Year, m.Month+time.Month(dir), 1, 0, 0, 0, 0, time.UTC)
	return Month{Year: shifted.Year(), Month: shifted.Month()}
}

// First returns midnight on the first day of the month.
func (m Month) First() time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
}

// Days returns the number of days in the month.
func (m Month) Days() int {
	return m.First().AddDate(0, 1, -1).Day()
}

// Day is a single cell in the rendered calendar grid.
type Day struct {
	Date       time.Time
	Today      bool
	Available  bool
	OtherMonth bool
}

// DateOnly strips the time-of-day so dates compare calendar-wise.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// DayAvailable reports whether a day can be booked: not strictly in the past
// (date-only comparison) and not a Sunday, the shop's closed day.
func DayAvailable(date, today time.Time) bool {
	if DateOnly(date).Before(DateOnly(today)) {
		return false
	}
	if date.Weekday() == time.Sunday {
		return false
	}
	return true
}

// RenderMonth produces the grid for one month: leading cells from the
// previous month to align day 1 to its weekday column (Sunday-first grid),
// then one Day per day of the month. Padding cells are never available.
func RenderMonth(m Month, today time.Time) []Day {
	first := m.First()
	lead := int(first.Weekday())

	grid := make([]Day, 0, lead+m.Days())

	for i := lead; i > 0; i-- {
		grid = append(grid, Day{
			Date:       first.AddDate(0, 0, -i),
			OtherMonth: true,
		})
	}

	for d := 0; d < m.Days(); d++ {
		date := first.AddDate(0, 0, d)
		grid = append(grid, Day{
			Date:      date,
			Today:     sameDay(date, today),
			Available: DayAvailable(date, today),
		})
	}

	return grid
}
