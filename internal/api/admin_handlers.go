package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/brejolabs/barbershop-booking/internal/auth"
	"github.com/brejolabs/barbershop-booking/internal/booking"
	"github.com/brejolabs/barbershop-booking/internal/tenant"
)

func (h *handlers) login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "missing_credentials", "email e senha são obrigatórios")
		return
	}

	token, user, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "invalid_credentials", "email ou senha inválidos")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "erro interno do servidor")
		return
	}

	writeJSON(w, http.StatusOK, LoginResponse{Token: token, User: toUserResponse(user)})
}

func (h *handlers) currentUser(w http.ResponseWriter, r *http.Request) {
	session := GetSession(r.Context())
	if session == nil {
		writeError(w, http.StatusUnauthorized, "missing_token", "authorization required")
		return
	}

	user, err := h.auth.CurrentUser(r.Context(), session)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", "erro interno do servidor")
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(user))
}

func toUserResponse(u *auth.User) UserResponse {
	return UserResponse{
		ID:       u.ID,
		TenantID: u.TenantID,
		Email:    u.Email,
		Name:     u.Name,
		Role:     string(u.Role),
	}
}

func (h *handlers) listAppointments(w http.ResponseWriter, r *http.Request) {
	session := GetSession(r.Context())
	q := r.URL.Query()

	page, _ := strconv.Atoi(q.Get("page"))
	perPage, _ := strconv.Atoi(q.Get("per_page"))
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 20
	}

	filter := booking.ListFilter{
		Limit:  perPage,
		Offset: (page - 1) * perPage,
	}
	if raw := q.Get("status"); raw != "" {
		status := booking.Status(raw)
		if !booking.ValidStatus(status) {
			writeError(w, http.StatusBadRequest, "invalid_status", "status inválido")
			return
		}
		filter.Status = status
	}
	if raw := q.Get("date_from"); raw != "" {
		from, err := time.ParseInLocation("2006-01-02", raw, time.UTC)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_date", "formato de data inválido (use YYYY-MM-DD)")
			return
		}
		filter.DateFrom = &from
	}
	if raw := q.Get("date_to"); raw != "" {
		to, err := time.ParseInLocation("2006-01-02", raw, time.UTC)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_date", "formato de data inválido (use YYYY-MM-DD)")
			return
		}
		filter.DateTo = &to
	}

	details, err := h.bookings.List(r.Context(), session.TenantID, filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", "erro interno do servidor")
		return
	}

	out := make([]AppointmentResponse, 0, len(details))
	for _, d := range details {
		out = append(out, toAppointmentResponse(d))
	}

	writeJSON(w, http.StatusOK, AppointmentListResponse{
		Appointments: out,
		Page:         page,
		PerPage:      perPage,
	})
}

func (h *handlers) updateAppointmentStatus(w http.ResponseWriter, r *http.Request) {
	session := GetSession(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id", "id inválido")
		return
	}

	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
		return
	}

	status := booking.Status(req.Status)
	if !booking.ValidStatus(status) {
		writeError(w, http.StatusBadRequest, "invalid_status", "status inválido")
		return
	}

	appt, err := h.bookings.UpdateStatus(r.Context(), session.TenantID, id, status)
	if err != nil {
		switch {
		case errors.Is(err, booking.ErrAppointmentNotFound):
			writeError(w, http.StatusNotFound, "appointment_not_found", "agendamento não encontrado")
		case errors.Is(err, booking.ErrInvalidStatusTransition):
			writeError(w, http.StatusConflict, "invalid_transition", "agendamento cancelado não pode ser alterado")
		default:
			writeError(w, http.StatusInternalServerError, "internal_error", "erro interno do servidor")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Status atualizado com sucesso",
		"id":      appt.ID,
		"status":  string(appt.Status),
	})
}

func (h *handlers) cancelAppointment(w http.ResponseWriter, r *http.Request) {
	session := GetSession(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id", "id inválido")
		return
	}

	if _, err := h.bookings.Cancel(r.Context(), session.TenantID, id); err != nil {
		if errors.Is(err, booking.ErrAppointmentNotFound) {
			writeError(w, http.StatusNotFound, "appointment_not_found", "agendamento não encontrado")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "erro interno do servidor")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"message": "Agendamento cancelado com sucesso"})
}

// tenantSlug resolves the slug for the session's own tenant. Config endpoints
// are always scoped to the caller, never to a slug from the request.
func (h *handlers) tenantSlug(r *http.Request) (string, bool) {
	session := GetSession(r.Context())
	if session == nil {
		return "", false
	}
	t, err := h.tenants.ByID(r.Context(), session.TenantID)
	if err != nil {
		return "", false
	}
	return t.Slug, true
}

func (h *handlers) getTenantConfig(w http.ResponseWriter, r *http.Request) {
	slug, ok := h.tenantSlug(r)
	if !ok {
		writeError(w, http.StatusNotFound, "tenant_not_found", "barbearia não encontrada")
		return
	}

	cfg, err := h.tenants.ConfigBySlug(r.Context(), slug)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", "erro interno do servidor")
		return
	}

	writeJSON(w, http.StatusOK, cfg)
}

func (h *handlers) updateTenantConfig(w http.ResponseWriter, r *http.Request) {
	slug, ok := h.tenantSlug(r)
	if !ok {
		writeError(w, http.StatusNotFound, "tenant_not_found", "barbearia não encontrada")
		return
	}

	var cfg tenant.Config
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
		return
	}

	updated, err := h.tenants.UpdateConfig(r.Context(), slug, cfg)
	if err != nil {
		if errors.Is(err, tenant.ErrTenantNotFound) {
			writeError(w, http.StatusNotFound, "tenant_not_found", "barbearia não encontrada")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "erro interno do servidor")
		return
	}

	writeJSON(w, http.StatusOK, updated)
}
