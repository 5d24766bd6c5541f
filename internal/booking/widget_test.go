package booking

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brejolabs/barbershop-booking/internal/wizard"
)

// driveToConfirmation walks a fresh machine through the full happy path up
// to step 3.
func driveToConfirmation(t *testing.T, m *wizard.Machine) {
	t.Helper()

	today := time.Date(2026, time.September, 1, 9, 0, 0, 0, time.UTC)
	m.WithClock(func() time.Time { return today })

	m.SetContact("João Silva", "joao@mail.com", "(99) 98888-7777")
	require.NoError(t, m.Advance())

	saturday := time.Date(2026, time.September, 5, 0, 0, 0, 0, time.UTC)
	require.True(t, m.SelectDate(saturday))
	require.True(t, m.SelectTime("09:00"))
	require.NoError(t, m.Advance())
	require.Equal(t, wizard.StepConfirm, m.Step())
}

type stateRecorder struct {
	states   []State
	messages []string
}

func (r *stateRecorder) record(s State, msg string) {
	r.states = append(r.states, s)
	r.messages = append(r.messages, msg)
}

// immediate fires scheduled resets synchronously.
func immediate(_ time.Duration, f func()) *time.Timer {
	f()
	return nil
}

func TestWidgetHappyPathResetsAfterSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"appointment_id":"` + uuid.NewString() + `","message":"Agendamento criado com sucesso"}`))
	}))
	defer srv.Close()

	m := wizard.NewMachine(nil)
	driveToConfirmation(t, m)

	rec := &stateRecorder{}
	w := NewWidget(m, NewSubmitter(srv.URL, srv.Client()), 3*time.Second, rec.record).
		WithScheduler(immediate)

	receipt, err := w.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Agendamento criado com sucesso", receipt.Message)

	assert.Equal(t, []State{StateLoading, StateSuccess, StateIdle}, rec.states)
	assert.Equal(t, wizard.StepContact, m.Step())
	assert.Equal(t, wizard.Draft{}, m.Draft())

	// The whole flow works again after the reset.
	driveToConfirmation(t, m)
	_, err = w.Submit(context.Background())
	assert.NoError(t, err)
}

func TestWidgetErrorKeepsDraftForRetry(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusConflict)
			_, _ = w.Write([]byte(`{"message":"Slot taken"}`))
			return
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"appointment_id":"` + uuid.NewString() + `","message":"ok"}`))
	}))
	defer srv.Close()

	m := wizard.NewMachine(nil)
	driveToConfirmation(t, m)
	draft := m.Draft()

	rec := &stateRecorder{}
	w := NewWidget(m, NewSubmitter(srv.URL, srv.Client()), time.Second, rec.record).
		WithScheduler(immediate)

	_, err := w.Submit(context.Background())
	require.Error(t, err)

	assert.Equal(t, []State{StateLoading, StateError}, rec.states)
	assert.Equal(t, "Slot taken", rec.messages[1])
	assert.Equal(t, "Slot taken", w.LastError())
	assert.Equal(t, wizard.StepConfirm, m.Step(), "error keeps the user on the confirmation step")
	assert.Equal(t, draft, m.Draft(), "error preserves the draft")

	// Manual retry succeeds without re-entering anything.
	_, err = w.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, wizard.StepContact, m.Step())
}

func TestWidgetRefusesSubmitOffConfirmation(t *testing.T) {
	m := wizard.NewMachine(nil)
	w := NewWidget(m, NewSubmitter("http://127.0.0.1:0", nil), time.Second, nil)

	_, err := w.Submit(context.Background())
	assert.ErrorIs(t, err, ErrNotAtConfirmation)
}

// blockingProbe pokes the widget from inside the submission, standing in for
// UI events arriving while the request is unresolved.
type blockingProbe struct {
	checks func()
}

func (p *blockingProbe) Submit(context.Context, wizard.Draft) (*Receipt, error) {
	p.checks()
	return &Receipt{AppointmentID: uuid.New(), Message: "ok"}, nil
}

func TestWidgetBlocksInteractionInFlight(t *testing.T) {
	m := wizard.NewMachine(nil)
	driveToConfirmation(t, m)

	probe := &blockingProbe{}
	w := NewWidget(m, probe, time.Second, nil).WithScheduler(immediate)
	probe.checks = func() {
		assert.True(t, w.InFlight())
		w.Retreat()
		assert.Equal(t, wizard.StepConfirm, m.Step(), "retreat is disabled while submitting")
		w.Cancel()
		assert.Equal(t, wizard.StepConfirm, m.Step(), "cancel is disabled while submitting")
		_, err := w.Submit(context.Background())
		assert.ErrorIs(t, err, ErrSubmitInFlight)
	}

	_, err := w.Submit(context.Background())
	require.NoError(t, err)
	assert.False(t, w.InFlight())
	assert.Equal(t, wizard.StepContact, m.Step(), "reset ran after success")
}
