package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/brejolabs/barbershop-booking/internal/auth"
	"github.com/brejolabs/barbershop-booking/internal/booking"
	"github.com/brejolabs/barbershop-booking/internal/tenant"
)

type handlers struct {
	bookings          *booking.Service
	tenants           *tenant.Service
	auth              *auth.Service
	defaultTenantSlug string
}

// resolveTenant picks the tenant for public widget requests: explicit
// ?tenant= query, then X-Tenant-Slug header, then the platform default. The
// legacy single-tenant widget sends neither.
func (h *handlers) resolveTenant(ctx context.Context, r *http.Request) (*tenant.Tenant, error) {
	slug := r.URL.Query().Get("tenant")
	if slug == "" {
		slug = r.Header.Get("X-Tenant-Slug")
	}
	if slug == "" {
		slug = h.defaultTenantSlug
	}
	return h.tenants.BySlug(ctx, slug)
}

func (h *handlers) createBooking(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
		return
	}

	tn, err := h.resolveTenant(r.Context(), r)
	if err != nil {
		writeError(w, http.StatusNotFound, "tenant_not_found", "barbearia não encontrada")
		return
	}

	appt, err := h.bookings.Book(r.Context(), tn.ID, booking.BookingRequest{
		Name:  req.Nome,
		Email: req.Email,
		Phone: req.Telefone,
		Date:  req.Data,
		Time:  req.Horario,
	})
	if err != nil {
		handleBookingError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, CreateBookingResponse{
		Message:       "Agendamento criado com sucesso",
		AppointmentID: appt.ID,
	})
}

func handleBookingError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, booking.ErrSlotTaken):
		writeError(w, http.StatusConflict, "slot_taken", err.Error())
	case errors.Is(err, booking.ErrMissingFields),
		errors.Is(err, booking.ErrInvalidEmail),
		errors.Is(err, booking.ErrInvalidPhone),
		errors.Is(err, booking.ErrInvalidDate),
		errors.Is(err, booking.ErrPastDate),
		errors.Is(err, booking.ErrClosedSunday),
		errors.Is(err, booking.ErrInvalidTime):
		writeError(w, http.StatusBadRequest, "invalid_booking", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", "erro interno do servidor")
	}
}

func (h *handlers) availableTimes(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "date")
	date, err := time.ParseInLocation("2006-01-02", raw, time.UTC)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_date", "formato de data inválido (use YYYY-MM-DD)")
		return
	}

	tn, err := h.resolveTenant(r.Context(), r)
	if err != nil {
		writeError(w, http.StatusNotFound, "tenant_not_found", "barbearia não encontrada")
		return
	}

	times, err := h.bookings.AvailableTimes(r.Context(), tn.ID, date)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", "erro interno do servidor")
		return
	}

	writeJSON(w, http.StatusOK, AvailableTimesResponse{Date: raw, AvailableTimes: times})
}

func (h *handlers) registerClient(w http.ResponseWriter, r *http.Request) {
	var req RegisterClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
		return
	}

	tn, err := h.resolveTenant(r.Context(), r)
	if err != nil {
		writeError(w, http.StatusNotFound, "tenant_not_found", "barbearia não encontrada")
		return
	}

	client, err := h.bookings.Register(r.Context(), tn.ID, req.Nome, req.Email, req.Telefone)
	if err != nil {
		switch {
		case errors.Is(err, booking.ErrDuplicateEmail):
			writeError(w, http.StatusBadRequest, "duplicate_email", "email já cadastrado")
		case errors.Is(err, booking.ErrMissingFields),
			errors.Is(err, booking.ErrInvalidEmail),
			errors.Is(err, booking.ErrInvalidPhone):
			writeError(w, http.StatusBadRequest, "invalid_client", err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "internal_error", "erro interno do servidor")
		}
		return
	}

	writeJSON(w, http.StatusCreated, RegisterClientResponse{
		Message:  "Cliente cadastrado com sucesso",
		ClientID: client.ID,
	})
}

func (h *handlers) listBarbershops(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	perPage, _ := strconv.Atoi(q.Get("per_page"))
	page, _ := strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}

	tenants, err := h.tenants.Directory(r.Context(), tenant.DirectoryFilter{
		Search: q.Get("search"),
		City:   q.Get("city"),
		Limit:  perPage,
		Offset: (page - 1) * perPage,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", "erro interno do servidor")
		return
	}

	out := make([]BarbershopResponse, 0, len(tenants))
	for _, t := range tenants {
		cfg, err := h.tenants.ConfigBySlug(r.Context(), t.Slug)
		if err != nil {
			continue
		}
		out = append(out, toBarbershopResponse(t, cfg))
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"barbershops": out,
		"page":        page,
		"per_page":    perPage,
	})
}

func (h *handlers) getBarbershop(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	tn, err := h.tenants.BySlug(r.Context(), slug)
	if err != nil {
		writeError(w, http.StatusNotFound, "tenant_not_found", "barbearia não encontrada")
		return
	}

	cfg, err := h.tenants.ConfigBySlug(r.Context(), slug)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", "erro interno do servidor")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"barbershop": toBarbershopResponse(*tn, cfg)})
}
