package booking

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/brejolabs/barbershop-booking/internal/wizard"
)

// FallbackMessage is shown when the server gives no usable error message.
const FallbackMessage = "Erro ao processar agendamento"

// SubmitError is a failed submission: network trouble or a non-2xx response.
// Message is safe to show to the user.
type SubmitError struct {
	Status  int // 0 when the request never completed
	Message string
	cause   error
}

func (e *SubmitError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("submit failed (%d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("submit failed: %s", e.Message)
}

func (e *SubmitError) Unwrap() error { return e.cause }

// Receipt is a successful booking confirmation from the server.
type Receipt struct {
	AppointmentID uuid.UUID `json:"appointment_id"`
	Message       string    `json:"message"`
}

type submitPayload struct {
	Nome     string `json:"nome"`
	Email    string `json:"email"`
	Telefone string `json:"telefone"`
	Data     string `json:"data"`
	Horario  string `json:"horario"`
}

// Submitter posts a completed booking draft to the backend. It trusts the
// wizard to have validated the fields and only checks presence.
type Submitter struct {
	baseURL string
	httpc   *http.Client
}

func NewSubmitter(baseURL string, httpc *http.Client) *Submitter {
	if httpc == nil {
		httpc = &http.Client{Timeout: 15 * time.Second}
	}
	return &Submitter{baseURL: baseURL, httpc: httpc}
}

// Submit serializes the draft (date as YYYY-MM-DD, time as the raw label)
// and performs the create-appointment call. Failures come back as
// *SubmitError with the server message verbatim when present.
func (s *Submitter) Submit(ctx context.Context, draft wizard.Draft) (*Receipt, error) {
	if !draft.Complete() {
		return nil, &SubmitError{Message: FallbackMessage, cause: ErrMissingFields}
	}

	body, err := json.Marshal(submitPayload{
		Nome:     draft.Name,
		Email:    draft.Email,
		Telefone: draft.Phone,
		Data:     draft.Date.Format("2006-01-02"),
		Horario:  draft.Time,
	})
	if err != nil {
		return nil, &SubmitError{Message: FallbackMessage, cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/api/agendamento", bytes.NewReader(body))
	if err != nil {
		return nil, &SubmitError{Message: FallbackMessage, cause: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpc.Do(req)
	if err != nil {
		return nil, &SubmitError{Message: FallbackMessage, cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var failure struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&failure)
		if failure.Message == "" {
			failure.Message = FallbackMessage
		}
		return nil, &SubmitError{Status: resp.StatusCode, Message: failure.Message}
	}

	var receipt Receipt
	if err := json.NewDecoder(resp.Body).Decode(&receipt); err != nil {
		return nil, &SubmitError{Status: resp.StatusCode, Message: FallbackMessage, cause: err}
	}
	return &receipt, nil
}
