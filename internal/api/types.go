package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/brejolabs/barbershop-booking/internal/booking"
	"github.com/brejolabs/barbershop-booking/internal/tenant"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Booking widget wire format, field names fixed by the legacy form.

type CreateBookingRequest struct {
	Nome     string `json:"nome"`
	Email    string `json:"email"`
	Telefone string `json:"telefone"`
	Data     string `json:"data"`    // YYYY-MM-DD
	Horario  string `json:"horario"` // HH:MM
}

type CreateBookingResponse struct {
	Message       string    `json:"message"`
	AppointmentID uuid.UUID `json:"appointment_id"`
}

type AvailableTimesResponse struct {
	Date           string   `json:"date"`
	AvailableTimes []string `json:"available_times"`
}

type RegisterClientRequest struct {
	Nome     string `json:"nome"`
	Email    string `json:"email"`
	Telefone string `json:"telefone"`
}

type RegisterClientResponse struct {
	Message  string    `json:"message"`
	ClientID uuid.UUID `json:"client_id"`
}

// Auth

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type UserResponse struct {
	ID       uuid.UUID `json:"id"`
	TenantID uuid.UUID `json:"tenant_id"`
	Email    string    `json:"email"`
	Name     string    `json:"name"`
	Role     string    `json:"role"`
}

// Admin appointments

type AppointmentResponse struct {
	ID        uuid.UUID      `json:"id"`
	Date      string         `json:"data"`
	Time      string         `json:"horario"`
	Status    string         `json:"status"`
	CreatedAt time.Time      `json:"data_criacao"`
	Client    ClientResponse `json:"cliente"`
}

type ClientResponse struct {
	ID    uuid.UUID `json:"id"`
	Nome  string    `json:"nome"`
	Email string    `json:"email"`
	Phone string    `json:"telefone"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"agendamentos"`
	Page         int                   `json:"page"`
	PerPage      int                   `json:"per_page"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// Public directory

type BarbershopResponse struct {
	ID             uuid.UUID           `json:"id"`
	Name           string              `json:"name"`
	Slug           string              `json:"slug"`
	BusinessName   string              `json:"business_name"`
	Description    string              `json:"description,omitempty"`
	Address        string              `json:"address,omitempty"`
	City           string              `json:"city,omitempty"`
	State          string              `json:"state,omitempty"`
	Phone          string              `json:"phone,omitempty"`
	Email          string              `json:"email,omitempty"`
	LogoURL        string              `json:"logo_url,omitempty"`
	PrimaryColor   string              `json:"primary_color"`
	SecondaryColor string              `json:"secondary_color"`
	AccentColor    string              `json:"accent_color"`
	OpeningHours   tenant.OpeningHours `json:"opening_hours"`
	Policies       string              `json:"policies,omitempty"`
}

func toAppointmentResponse(d booking.AppointmentDetail) AppointmentResponse {
	resp := AppointmentResponse{
		ID:        d.ID,
		Date:      d.Date.Format("2006-01-02"),
		Time:      d.Time,
		Status:    string(d.Status),
		CreatedAt: d.CreatedAt,
	}
	if d.Client != nil {
		resp.Client = ClientResponse{
			ID:    d.Client.ID,
			Nome:  d.Client.Name,
			Email: d.Client.Email,
			Phone: d.Client.Phone,
		}
	}
	return resp
}

func toBarbershopResponse(t tenant.Tenant, cfg *tenant.Config) BarbershopResponse {
	return BarbershopResponse{
		ID:             t.ID,
		Name:           t.Name,
		Slug:           t.Slug,
		BusinessName:   cfg.BusinessName,
		Description:    cfg.Description,
		Address:        cfg.Address,
		City:           cfg.City,
		State:          cfg.State,
		Phone:          cfg.Phone,
		Email:          cfg.Email,
		LogoURL:        cfg.LogoURL,
		PrimaryColor:   cfg.PrimaryColor,
		SecondaryColor: cfg.SecondaryColor,
		AccentColor:    cfg.AccentColor,
		OpeningHours:   cfg.OpeningHours,
		Policies:       cfg.Policies,
	}
}
