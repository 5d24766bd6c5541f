// Package wizard implements the three-step booking flow as a plain state
// machine: contact info, date/time selection, confirmation. Rendering is a
// separate concern; the machine only owns the draft being built.
package wizard

import (
	"time"

	"github.com/brejolabs/barbershop-booking/internal/schedule"
)

type Step int

const (
	StepContact  Step = 1
	StepDateTime Step = 2
	StepConfirm  Step = 3
)

// Draft is the in-progress booking accumulated across steps.
type Draft struct {
	Name      string
	Email     string
	Phone     string
	Date      time.Time // zero value means no date selected yet
	Time      string
	DateLabel string
}

func (d Draft) HasDateTime() bool {
	return !d.Date.IsZero() && d.Time != ""
}

func (d Draft) Complete() bool {
	return d.Name != "" && d.Email != "" && d.Phone != "" &&
		d.HasDateTime() && d.DateLabel != ""
}

// Confirmation is the read-only snapshot shown on step 3, frozen at the
// moment the 2→3 transition succeeds.
type Confirmation struct {
	Name      string
	Email     string
	Phone     string
	DateLabel string
	Time      string
}

// Machine coordinates the wizard. It is driven by a single UI event loop and
// is not safe for concurrent use.
type Machine struct {
	step     Step
	draft    Draft
	snapshot *Confirmation
	checker  schedule.Checker
	now      func() time.Time
}

func NewMachine(checker schedule.Checker) *Machine {
	return &Machine{
		step:    StepContact,
		checker: checker,
		now:     time.Now,
	}
}

// WithClock replaces the machine's time source. Tests use it to pin "today".
func (m *Machine) WithClock(now func() time.Time) *Machine {
	m.now = now
	return m
}

func (m *Machine) Step() Step   { return m.step }
func (m *Machine) Draft() Draft { return m.draft }

// Confirmation returns the frozen step-3 snapshot, if one has been taken.
func (m *Machine) Confirmation() (Confirmation, bool) {
	if m.snapshot == nil {
		return Confirmation{}, false
	}
	return *m.snapshot, true
}

// SetContact stores the step-1 fields without validating them; validation
// happens at the step boundary so the user can type freely.
func (m *Machine) SetContact(name, email, phone string) {
	if m.step != StepContact {
		return
	}
	m.draft.Name = name
	m.draft.Email = email
	m.draft.Phone = phone
}

// SelectDate picks a calendar day. Unavailable days are a no-op, never an
// error. Picking a new day clears any previously selected time.
func (m *Machine) SelectDate(date time.Time) bool {
	if m.step != StepDateTime {
		return false
	}
	if !schedule.DayAvailable(date, m.now()) {
		return false
	}

	m.draft.Date = schedule.DateOnly(date)
	m.draft.DateLabel = schedule.FormatLongDate(m.draft.Date)
	m.draft.Time = ""
	return true
}

// SelectTime picks a slot on the selected date. Requires a selected date and
// an available slot; anything else is a no-op.
func (m *Machine) SelectTime(label string) bool {
	if m.step != StepDateTime || m.draft.Date.IsZero() {
		return false
	}
	if !schedule.ValidLabel(m.draft.Date, label) {
		return false
	}
	if m.checker != nil && !m.checker.Available(m.draft.Date, label) {
		return false
	}

	m.draft.Time = label
	return true
}

// Slots lists the slots for the currently selected date, for rendering.
func (m *Machine) Slots() []schedule.Slot {
	if m.draft.Date.IsZero() {
		return nil
	}
	return schedule.ResolveSlots(m.draft.Date, m.checker)
}

// Advance moves to the next step if the current step's gate passes. The 1→2
// gate returns FieldErrors with every failing field; the 2→3 gate returns
// ErrNoDateTime. Advancing from the confirmation step is a no-op: submission
// is the submitter's job.
func (m *Machine) Advance() error {
	switch m.step {
	case StepContact:
		if errs := ValidateContact(m.draft.Name, m.draft.Email, m.draft.Phone); errs != nil {
			return errs
		}
		m.step = StepDateTime
	case StepDateTime:
		if !m.draft.HasDateTime() {
			return ErrNoDateTime
		}
		m.snapshot = &Confirmation{
			Name:      m.draft.Name,
			Email:     m.draft.Email,
			Phone:     m.draft.Phone,
			DateLabel: m.draft.DateLabel,
			Time:      m.draft.Time,
		}
		m.step = StepConfirm
	}
	return nil
}

// Retreat steps back without validation and keeps entered data.
func (m *Machine) Retreat() {
	if m.step > StepContact {
		m.step--
	}
}

// Reset returns to step 1 with an empty draft and no snapshot.
func (m *Machine) Reset() {
	m.step = StepContact
	m.draft = Draft{}
	m.snapshot = nil
}
