package booking

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrClientNotFound      = errors.New("client not found")
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrDuplicateEmail      = errors.New("email already registered")
)

// ListFilter narrows the admin appointment listing.
type ListFilter struct {
	Status   Status
	DateFrom *time.Time
	DateTo   *time.Time
	Limit    int
	Offset   int
}

// Repository contains all DB interactions needed by the service.
type Repository interface {
	GetClientByEmail(ctx context.Context, tenantID uuid.UUID, email string) (*Client, error)
	CreateClient(ctx context.Context, c Client) (*Client, error)
	UpdateClientContact(ctx context.Context, id uuid.UUID, name, phone string) error

	CreateAppointment(ctx context.Context, a Appointment) (*Appointment, error)
	GetAppointmentDetail(ctx context.Context, tenantID, id uuid.UUID) (*AppointmentDetail, error)
	UpdateAppointmentStatus(ctx context.Context, tenantID, id uuid.UUID, to Status) (*Appointment, error)

	// Availability checks
	BookedTimes(ctx context.Context, tenantID uuid.UUID, date time.Time) ([]string, error)
	HasScheduledAt(ctx context.Context, tenantID uuid.UUID, date time.Time, label string) (bool, error)

	// Admin listing
	ListAppointments(ctx context.Context, tenantID uuid.UUID, f ListFilter) ([]AppointmentDetail, error)
}
