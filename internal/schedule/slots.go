package schedule

import "time"

// Opening times are half-hour labels with a lunch break between 11:30 and
// 14:00. Saturdays open earlier and close earlier than weekdays.
var (
	weekdayTimes = []string{
		"09:00", "09:30", "10:00", "10:30", "11:00", "11:30",
		"14:00", "14:30", "15:00", "15:30", "16:00", "16:30",
		"17:00", "17:30", "18:00", "18:30",
	}
	saturdayTimes = []string{
		"08:00", "08:30", "09:00", "09:30", "10:00", "10:30",
		"11:00", "11:30", "14:00", "14:30", "15:00", "15:30",
		"16:00", "16:30",
	}
)

// Slot is one bookable time label on a given day.
type Slot struct {
	Time      string
	Available bool
}

// Checker decides whether a single time label can still be booked on a date.
// Production code backs this with the booked-appointments query; tests and
// the demo widget use a static DenyList.
type Checker interface {
	Available(date time.Time, label string) bool
}

// CheckerFunc adapts a plain function to the Checker interface.
type CheckerFunc func(date time.Time, label string) bool

func (f CheckerFunc) Available(date time.Time, label string) bool {
	return f(date, label)
}

// DenyList marks a fixed set of labels unavailable on every date.
type DenyList map[string]struct{}

func NewDenyList(labels ...string) DenyList {
	d := make(DenyList, len(labels))
	for _, l := range labels {
		d[l] = struct{}{}
	}
	return d
}

func (d DenyList) Available(_ time.Time, label string) bool {
	_, denied := d[label]
	return !denied
}

// AllOpen treats every label as bookable.
var AllOpen = CheckerFunc(func(time.Time, string) bool { return true })

// LabelsFor returns the candidate time labels for a weekday, in
// chronological order. Sundays have none.
func LabelsFor(weekday time.Weekday) []string {
	switch weekday {
	case time.Sunday:
		return nil
	case time.Saturday:
		return saturdayTimes
	default:
		return weekdayTimes
	}
}

// ResolveSlots computes the ordered slot list for a date. The candidate set
// depends only on the weekday; each label's availability comes from the
// checker. Sunday yields nil since it is never selectable upstream.
func ResolveSlots(date time.Time, checker Checker) []Slot {
	labels := LabelsFor(date.Weekday())
	if labels == nil {
		return nil
	}
	if checker == nil {
		checker = AllOpen
	}

	slots := make([]Slot, len(labels))
	for i, label := range labels {
		slots[i] = Slot{Time: label, Available: checker.Available(date, label)}
	}
	return slots
}

// ValidLabel reports whether label is one of the candidate labels for the
// date's weekday.
func ValidLabel(date time.Time, label string) bool {
	for _, l := range LabelsFor(date.Weekday()) {
		if l == label {
			return true
		}
	}
	return false
}
