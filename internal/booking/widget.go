package booking

import (
	"context"
	"errors"
	"time"

	"github.com/brejolabs/barbershop-booking/internal/wizard"
)

// State is the transient submission presentation state. The widget never
// touches UI primitives itself; the presenter subscribes through OnState.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateSuccess
	StateError
)

var ErrSubmitInFlight = errors.New("a submission is already in flight")
var ErrNotAtConfirmation = errors.New("draft has not reached the confirmation step")

// DraftSubmitter performs the create-appointment call for a completed draft.
// *Submitter is the HTTP implementation.
type DraftSubmitter interface {
	Submit(ctx context.Context, draft wizard.Draft) (*Receipt, error)
}

// Widget ties the wizard to the submitter: it emits loading/success/error
// states around the network call, blocks other interactions while a
// submission is in flight, and schedules the automatic reset after success.
// Like the wizard it expects a single event loop and is not goroutine-safe.
type Widget struct {
	Machine *wizard.Machine

	submitter  DraftSubmitter
	resetDelay time.Duration
	onState    func(State, string)
	after      func(time.Duration, func()) *time.Timer

	inFlight bool
	lastErr  string
}

func NewWidget(m *wizard.Machine, s DraftSubmitter, resetDelay time.Duration, onState func(State, string)) *Widget {
	if onState == nil {
		onState = func(State, string) {}
	}
	return &Widget{
		Machine:    m,
		submitter:  s,
		resetDelay: resetDelay,
		onState:    onState,
		after:      time.AfterFunc,
	}
}

// WithScheduler replaces the delayed-reset scheduler. Tests use it to fire
// the reset synchronously.
func (w *Widget) WithScheduler(after func(time.Duration, func()) *time.Timer) *Widget {
	w.after = after
	return w
}

func (w *Widget) InFlight() bool    { return w.inFlight }
func (w *Widget) LastError() string { return w.lastErr }

// Retreat mirrors the wizard's retreat but is disabled while a submission is
// in flight, so a reset cannot race an unresolved request.
func (w *Widget) Retreat() {
	if w.inFlight {
		return
	}
	w.Machine.Retreat()
}

// Cancel abandons the flow and clears everything, unless a submission is in
// flight.
func (w *Widget) Cancel() {
	if w.inFlight {
		return
	}
	w.reset()
}

// Submit sends the confirmed draft. On success it emits StateSuccess and
// schedules the wizard reset after the configured delay; on failure it emits
// StateError with the user-facing message and keeps the draft and step
// intact so the user can retry.
func (w *Widget) Submit(ctx context.Context) (*Receipt, error) {
	if w.inFlight {
		return nil, ErrSubmitInFlight
	}
	if w.Machine.Step() != wizard.StepConfirm {
		return nil, ErrNotAtConfirmation
	}

	w.inFlight = true
	w.lastErr = ""
	w.onState(StateLoading, "")

	receipt, err := w.submitter.Submit(ctx, w.Machine.Draft())
	w.inFlight = false

	if err != nil {
		var se *SubmitError
		msg := FallbackMessage
		if errors.As(err, &se) {
			msg = se.Message
		}
		w.lastErr = msg
		w.onState(StateError, msg)
		return nil, err
	}

	w.onState(StateSuccess, receipt.Message)
	w.after(w.resetDelay, w.reset)
	return receipt, nil
}

func (w *Widget) reset() {
	w.Machine.Reset()
	w.lastErr = ""
	w.onState(StateIdle, "")
}
