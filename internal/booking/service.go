package booking

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/brejolabs/barbershop-booking/internal/schedule"
)

var (
	ErrMissingFields           = errors.New("campos obrigatórios: nome, email, telefone, data, horario")
	ErrInvalidEmail            = errors.New("email inválido")
	ErrInvalidPhone            = errors.New("telefone inválido")
	ErrInvalidDate             = errors.New("formato de data inválido (use YYYY-MM-DD)")
	ErrPastDate                = errors.New("data não pode ser no passado")
	ErrClosedSunday            = errors.New("não atendemos aos domingos")
	ErrInvalidTime             = errors.New("horário fora do expediente")
	ErrSlotTaken               = errors.New("horário já ocupado")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
)

// The server re-checks email shape; phone is looser than the widget mask and
// only requires 10 or 11 digits, matching what the registration endpoint has
// always accepted.
var (
	serverEmailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	nonDigitRe    = regexp.MustCompile(`\D`)
)

func validPhoneDigits(phone string) bool {
	n := len(nonDigitRe.ReplaceAllString(phone, ""))
	return n == 10 || n == 11
}

// BookingRequest is the wire-shaped booking payload.
type BookingRequest struct {
	Name  string
	Email string
	Phone string
	Date  string // YYYY-MM-DD
	Time  string // HH:MM
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// WithClock pins the service's notion of today. Tests use it.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Book validates a booking request, upserts the client by email and creates
// the appointment. A slot already holding a scheduled appointment is refused
// with ErrSlotTaken.
func (s *Service) Book(ctx context.Context, tenantID uuid.UUID, req BookingRequest) (*Appointment, error) {
	if strings.TrimSpace(req.Name) == "" || req.Email == "" || req.Phone == "" ||
		req.Date == "" || req.Time == "" {
		return nil, ErrMissingFields
	}
	if !serverEmailRe.MatchString(req.Email) {
		return nil, ErrInvalidEmail
	}
	if !validPhoneDigits(req.Phone) {
		return nil, ErrInvalidPhone
	}

	date, err := time.ParseInLocation("2006-01-02", req.Date, time.UTC)
	if err != nil {
		return nil, ErrInvalidDate
	}
	if date.Before(schedule.DateOnly(s.now())) {
		return nil, ErrPastDate
	}
	if date.Weekday() == time.Sunday {
		return nil, ErrClosedSunday
	}
	if !schedule.ValidLabel(date, req.Time) {
		return nil, ErrInvalidTime
	}

	taken, err := s.repo.HasScheduledAt(ctx, tenantID, date, req.Time)
	if err != nil {
		return nil, fmt.Errorf("check slot: %w", err)
	}
	if taken {
		return nil, ErrSlotTaken
	}

	client, err := s.upsertClient(ctx, tenantID, req)
	if err != nil {
		return nil, err
	}

	appt, err := s.repo.CreateAppointment(ctx, Appointment{
		TenantID: tenantID,
		ClientID: client.ID,
		Date:     date,
		Time:     req.Time,
		Status:   StatusScheduled,
	})
	if err != nil {
		return nil, fmt.Errorf("create appointment: %w", err)
	}

	return appt, nil
}

// upsertClient finds the client by email and refreshes name/phone, or
// registers a new one.
func (s *Service) upsertClient(ctx context.Context, tenantID uuid.UUID, req BookingRequest) (*Client, error) {
	client, err := s.repo.GetClientByEmail(ctx, tenantID, req.Email)
	switch {
	case err == nil:
		if client.Name != req.Name || client.Phone != req.Phone {
			if err := s.repo.UpdateClientContact(ctx, client.ID, req.Name, req.Phone); err != nil {
				return nil, fmt.Errorf("update client: %w", err)
			}
			client.Name = req.Name
			client.Phone = req.Phone
		}
		return client, nil
	case errors.Is(err, ErrClientNotFound):
		created, err := s.repo.CreateClient(ctx, Client{
			TenantID: tenantID,
			Name:     req.Name,
			Email:    req.Email,
			Phone:    req.Phone,
		})
		if err != nil {
			return nil, fmt.Errorf("create client: %w", err)
		}
		return created, nil
	default:
		return nil, fmt.Errorf("load client: %w", err)
	}
}

// Register creates a standalone client record (the /api/cadastro flow).
// Duplicate emails are refused.
func (s *Service) Register(ctx context.Context, tenantID uuid.UUID, name, email, phone string) (*Client, error) {
	if strings.TrimSpace(name) == "" || email == "" || phone == "" {
		return nil, ErrMissingFields
	}
	if !serverEmailRe.MatchString(email) {
		return nil, ErrInvalidEmail
	}
	if !validPhoneDigits(phone) {
		return nil, ErrInvalidPhone
	}

	if _, err := s.repo.GetClientByEmail(ctx, tenantID, email); err == nil {
		return nil, ErrDuplicateEmail
	} else if !errors.Is(err, ErrClientNotFound) {
		return nil, fmt.Errorf("load client: %w", err)
	}

	created, err := s.repo.CreateClient(ctx, Client{
		TenantID: tenantID,
		Name:     name,
		Email:    email,
		Phone:    phone,
	})
	if err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}
	return created, nil
}

// AvailableTimes returns the bookable labels for a date: the weekday's full
// set minus already scheduled times. Past dates and Sundays have none.
func (s *Service) AvailableTimes(ctx context.Context, tenantID uuid.UUID, date time.Time) ([]string, error) {
	if date.Before(schedule.DateOnly(s.now())) || date.Weekday() == time.Sunday {
		return []string{}, nil
	}

	booked, err := s.repo.BookedTimes(ctx, tenantID, date)
	if err != nil {
		return nil, fmt.Errorf("load booked times: %w", err)
	}

	taken := make(map[string]struct{}, len(booked))
	for _, b := range booked {
		taken[b] = struct{}{}
	}

	available := []string{}
	for _, label := range schedule.LabelsFor(date.Weekday()) {
		if _, ok := taken[label]; !ok {
			available = append(available, label)
		}
	}
	return available, nil
}

// CheckerFor builds the live availability checker for one date, backed by
// the scheduled appointments. It loads the booked set once so the calendar
// can probe every label without hitting the database per slot.
func (s *Service) CheckerFor(ctx context.Context, tenantID uuid.UUID, date time.Time) (schedule.Checker, error) {
	booked, err := s.repo.BookedTimes(ctx, tenantID, date)
	if err != nil {
		return nil, fmt.Errorf("load booked times: %w", err)
	}

	taken := make(map[string]struct{}, len(booked))
	for _, b := range booked {
		taken[b] = struct{}{}
	}

	day := schedule.DateOnly(date)
	return schedule.CheckerFunc(func(d time.Time, label string) bool {
		if !schedule.DateOnly(d).Equal(day) {
			return false
		}
		_, ok := taken[label]
		return !ok
	}), nil
}

// List retrieves appointments for the admin dashboard.
func (s *Service) List(ctx context.Context, tenantID uuid.UUID, f ListFilter) ([]AppointmentDetail, error) {
	if f.Limit <= 0 {
		f.Limit = 20 // default
	}
	if f.Limit > 100 {
		f.Limit = 100 // max
	}
	if f.Offset < 0 {
		f.Offset = 0
	}

	detail, err := s.repo.ListAppointments(ctx, tenantID, f)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	return detail, nil
}

// GetDetail retrieves a fully hydrated appointment.
func (s *Service) GetDetail(ctx context.Context, tenantID, id uuid.UUID) (*AppointmentDetail, error) {
	detail, err := s.repo.GetAppointmentDetail(ctx, tenantID, id)
	if err != nil {
		return nil, fmt.Errorf("get appointment: %w", err)
	}
	return detail, nil
}

// UpdateStatus moves an appointment to a new status. Cancelled appointments
// stay cancelled.
func (s *Service) UpdateStatus(ctx context.Context, tenantID, id uuid.UUID, to Status) (*Appointment, error) {
	if !ValidStatus(to) {
		return nil, ErrInvalidStatusTransition
	}

	current, err := s.repo.GetAppointmentDetail(ctx, tenantID, id)
	if err != nil {
		return nil, fmt.Errorf("load appointment: %w", err)
	}
	if current.Status == StatusCancelled && to != StatusCancelled {
		return nil, ErrInvalidStatusTransition
	}

	updated, err := s.repo.UpdateAppointmentStatus(ctx, tenantID, id, to)
	if err != nil {
		return nil, fmt.Errorf("update status: %w", err)
	}
	return updated, nil
}

// Cancel marks an appointment cancelled, freeing its slot.
func (s *Service) Cancel(ctx context.Context, tenantID, id uuid.UUID) (*Appointment, error) {
	return s.UpdateStatus(ctx, tenantID, id, StatusCancelled)
}
