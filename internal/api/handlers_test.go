package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brejolabs/barbershop-booking/internal/auth"
	"github.com/brejolabs/barbershop-booking/internal/booking"
	"github.com/brejolabs/barbershop-booking/internal/tenant"
)

var apiToday = time.Date(2026, time.September, 1, 10, 0, 0, 0, time.UTC)

// In-memory repositories backing the full router.

type memBookingRepo struct {
	clients      map[uuid.UUID]*booking.Client
	appointments map[uuid.UUID]*booking.Appointment
}

func newMemBookingRepo() *memBookingRepo {
	return &memBookingRepo{
		clients:      make(map[uuid.UUID]*booking.Client),
		appointments: make(map[uuid.UUID]*booking.Appointment),
	}
}

func (r *memBookingRepo) GetClientByEmail(_ context.Context, tenantID uuid.UUID, email string) (*booking.Client, error) {
	for _, c := range r.clients {
		if c.TenantID == tenantID && c.Email == email {
			cp := *c
			return &cp, nil
		}
	}
	return nil, booking.ErrClientNotFound
}

func (r *memBookingRepo) CreateClient(_ context.Context, c booking.Client) (*booking.Client, error) {
	c.ID = uuid.New()
	c.CreatedAt = apiToday
	c.UpdatedAt = apiToday
	r.clients[c.ID] = &c
	cp := c
	return &cp, nil
}

func (r *memBookingRepo) UpdateClientContact(_ context.Context, id uuid.UUID, name, phone string) error {
	c, ok := r.clients[id]
	if !ok {
		return booking.ErrClientNotFound
	}
	c.Name = name
	c.Phone = phone
	return nil
}

func (r *memBookingRepo) CreateAppointment(_ context.Context, a booking.Appointment) (*booking.Appointment, error) {
	a.ID = uuid.New()
	a.CreatedAt = apiToday
	a.UpdatedAt = apiToday
	r.appointments[a.ID] = &a
	ap := a
	return &ap, nil
}

func (r *memBookingRepo) GetAppointmentDetail(_ context.Context, tenantID, id uuid.UUID) (*booking.AppointmentDetail, error) {
	a, ok := r.appointments[id]
	if !ok || a.TenantID != tenantID {
		return nil, booking.ErrAppointmentNotFound
	}
	return r.detail(a), nil
}

func (r *memBookingRepo) detail(a *booking.Appointment) *booking.AppointmentDetail {
	d := &booking.AppointmentDetail{Appointment: *a}
	if c, ok := r.clients[a.ClientID]; ok {
		cp := *c
		d.Client = &cp
	}
	return d
}

func (r *memBookingRepo) UpdateAppointmentStatus(_ context.Context, tenantID, id uuid.UUID, to booking.Status) (*booking.Appointment, error) {
	a, ok := r.appointments[id]
	if !ok || a.TenantID != tenantID {
		return nil, booking.ErrAppointmentNotFound
	}
	a.Status = to
	ap := *a
	return &ap, nil
}

func (r *memBookingRepo) BookedTimes(_ context.Context, tenantID uuid.UUID, date time.Time) ([]string, error) {
	var out []string
	for _, a := range r.appointments {
		if a.TenantID == tenantID && a.Status == booking.StatusScheduled && a.Date.Equal(date) {
			out = append(out, a.Time)
		}
	}
	return out, nil
}

func (r *memBookingRepo) HasScheduledAt(_ context.Context, tenantID uuid.UUID, date time.Time, label string) (bool, error) {
	for _, a := range r.appointments {
		if a.TenantID == tenantID && a.Status == booking.StatusScheduled && a.Date.Equal(date) && a.Time == label {
			return true, nil
		}
	}
	return false, nil
}

func (r *memBookingRepo) ListAppointments(_ context.Context, tenantID uuid.UUID, f booking.ListFilter) ([]booking.AppointmentDetail, error) {
	var out []booking.AppointmentDetail
	for _, a := range r.appointments {
		if a.TenantID != tenantID {
			continue
		}
		if f.Status != "" && a.Status != f.Status {
			continue
		}
		if f.DateFrom != nil && a.Date.Before(*f.DateFrom) {
			continue
		}
		if f.DateTo != nil && a.Date.After(*f.DateTo) {
			continue
		}
		out = append(out, *r.detail(a))
	}
	return out, nil
}

type memTenantRepo struct {
	tenants map[uuid.UUID]*tenant.Tenant
	configs map[uuid.UUID]*tenant.Config
}

func newMemTenantRepo() *memTenantRepo {
	return &memTenantRepo{
		tenants: make(map[uuid.UUID]*tenant.Tenant),
		configs: make(map[uuid.UUID]*tenant.Config),
	}
}

func (r *memTenantRepo) GetBySlug(_ context.Context, slug string) (*tenant.Tenant, error) {
	for _, t := range r.tenants {
		if t.Slug == slug {
			tp := *t
			return &tp, nil
		}
	}
	return nil, tenant.ErrTenantNotFound
}

func (r *memTenantRepo) GetByID(_ context.Context, id uuid.UUID) (*tenant.Tenant, error) {
	t, ok := r.tenants[id]
	if !ok {
		return nil, tenant.ErrTenantNotFound
	}
	tp := *t
	return &tp, nil
}

func (r *memTenantRepo) ListActive(_ context.Context, f tenant.DirectoryFilter) ([]tenant.Tenant, error) {
	var out []tenant.Tenant
	for _, t := range r.tenants {
		if t.Status != tenant.StatusActive {
			continue
		}
		if f.Search != "" && !strings.Contains(strings.ToLower(t.Name), strings.ToLower(f.Search)) {
			continue
		}
		out = append(out, *t)
	}
	return out, nil
}

func (r *memTenantRepo) GetConfig(_ context.Context, tenantID uuid.UUID) (*tenant.Config, error) {
	cfg, ok := r.configs[tenantID]
	if !ok {
		return nil, tenant.ErrConfigNotFound
	}
	cp := *cfg
	return &cp, nil
}

func (r *memTenantRepo) UpsertConfig(_ context.Context, cfg tenant.Config) (*tenant.Config, error) {
	cfg.UpdatedAt = apiToday
	r.configs[cfg.TenantID] = &cfg
	cp := cfg
	return &cp, nil
}

type memAuthRepo struct {
	users map[uuid.UUID]*auth.User
}

func (r *memAuthRepo) GetUserByEmail(_ context.Context, email string) (*auth.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			up := *u
			return &up, nil
		}
	}
	return nil, auth.ErrUserNotFound
}

func (r *memAuthRepo) GetUserByID(_ context.Context, id uuid.UUID) (*auth.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, auth.ErrUserNotFound
	}
	up := *u
	return &up, nil
}

type testEnv struct {
	server   *httptest.Server
	bookings *memBookingRepo
	tenants  *memTenantRepo
	users    *memAuthRepo
	tenantID uuid.UUID
	authSvc  *auth.Service
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	tenantRepo := newMemTenantRepo()
	tenantID := uuid.New()
	tenantRepo.tenants[tenantID] = &tenant.Tenant{
		ID:     tenantID,
		Name:   "Barbearia Clássica",
		Slug:   "barbearia-classica",
		Status: tenant.StatusActive,
	}

	bookingRepo := newMemBookingRepo()
	userRepo := &memAuthRepo{users: make(map[uuid.UUID]*auth.User)}
	authSvc := auth.NewService(userRepo, "test-secret", time.Hour)

	router := NewRouter(RouterConfig{
		Bookings:          booking.NewService(bookingRepo).WithClock(func() time.Time { return apiToday }),
		Tenants:           tenant.NewService(tenantRepo, nil, time.Minute),
		Auth:              authSvc,
		DefaultTenantSlug: "barbearia-classica",
		Env:               "test",
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return &testEnv{
		server:   srv,
		bookings: bookingRepo,
		tenants:  tenantRepo,
		users:    userRepo,
		tenantID: tenantID,
		authSvc:  authSvc,
	}
}

func (e *testEnv) addUser(t *testing.T, email, password string, role auth.Role) *auth.User {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	u := &auth.User{
		ID:           uuid.New(),
		TenantID:     e.tenantID,
		Email:        email,
		Name:         "Equipe",
		Role:         role,
		PasswordHash: hash,
		Status:       "active",
	}
	e.users.users[u.ID] = u
	return u
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, e.server.URL+path, &buf)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestCreateBooking(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodPost, "/api/agendamento", "", map[string]string{
		"nome":     "João Silva",
		"email":    "joao@mail.com",
		"telefone": "(99) 98888-7777",
		"data":     "2026-09-05",
		"horario":  "09:00",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	body := decode[CreateBookingResponse](t, resp)
	assert.Equal(t, "Agendamento criado com sucesso", body.Message)
	assert.NotEqual(t, uuid.Nil, body.AppointmentID)

	appt, ok := env.bookings.appointments[body.AppointmentID]
	require.True(t, ok)
	assert.Equal(t, env.tenantID, appt.TenantID)
	assert.Equal(t, booking.StatusScheduled, appt.Status)
}

func TestCreateBookingConflictSurfacesMessage(t *testing.T) {
	env := newTestEnv(t)

	payload := map[string]string{
		"nome":     "João Silva",
		"email":    "joao@mail.com",
		"telefone": "(99) 98888-7777",
		"data":     "2026-09-05",
		"horario":  "09:00",
	}
	resp := env.do(t, http.MethodPost, "/api/agendamento", "", payload)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	payload["nome"] = "Maria Souza"
	payload["email"] = "maria@mail.com"
	resp = env.do(t, http.MethodPost, "/api/agendamento", "", payload)
	require.Equal(t, http.StatusConflict, resp.StatusCode)

	body := decode[ErrorResponse](t, resp)
	assert.Equal(t, "slot_taken", body.Error)
	assert.Equal(t, "horário já ocupado", body.Message)
}

func TestCreateBookingValidation(t *testing.T) {
	env := newTestEnv(t)

	cases := []struct {
		name    string
		payload map[string]string
		wantMsg string
	}{
		{
			name:    "missing fields",
			payload: map[string]string{"nome": "João"},
			wantMsg: "campos obrigatórios: nome, email, telefone, data, horario",
		},
		{
			name: "past date",
			payload: map[string]string{
				"nome": "João", "email": "joao@mail.com", "telefone": "(99) 98888-7777",
				"data": "2026-08-31", "horario": "09:00",
			},
			wantMsg: "data não pode ser no passado",
		},
		{
			name: "sunday",
			payload: map[string]string{
				"nome": "João", "email": "joao@mail.com", "telefone": "(99) 98888-7777",
				"data": "2026-09-06", "horario": "09:00",
			},
			wantMsg: "não atendemos aos domingos",
		},
		{
			name: "off-grid time",
			payload: map[string]string{
				"nome": "João", "email": "joao@mail.com", "telefone": "(99) 98888-7777",
				"data": "2026-09-04", "horario": "12:00",
			},
			wantMsg: "horário fora do expediente",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := env.do(t, http.MethodPost, "/api/agendamento", "", tc.payload)
			require.Equal(t, http.StatusBadRequest, resp.StatusCode)
			body := decode[ErrorResponse](t, resp)
			assert.Equal(t, tc.wantMsg, body.Message)
		})
	}
}

func TestAvailableTimes(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodPost, "/api/agendamento", "", map[string]string{
		"nome":     "João Silva",
		"email":    "joao@mail.com",
		"telefone": "(99) 98888-7777",
		"data":     "2026-09-05",
		"horario":  "08:00",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/api/horarios-disponiveis/2026-09-05", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decode[AvailableTimesResponse](t, resp)
	assert.Equal(t, "2026-09-05", body.Date)
	assert.Len(t, body.AvailableTimes, 13) // saturday grid minus the taken slot
	assert.NotContains(t, body.AvailableTimes, "08:00")
	assert.Contains(t, body.AvailableTimes, "08:30")

	// Sundays come back empty, not as an error.
	resp = env.do(t, http.MethodGet, "/api/horarios-disponiveis/2026-09-06", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body = decode[AvailableTimesResponse](t, resp)
	assert.Empty(t, body.AvailableTimes)

	resp = env.do(t, http.MethodGet, "/api/horarios-disponiveis/not-a-date", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRegisterClient(t *testing.T) {
	env := newTestEnv(t)

	payload := map[string]string{
		"nome":     "Maria Souza",
		"email":    "maria@mail.com",
		"telefone": "(98) 98765-4321",
	}
	resp := env.do(t, http.MethodPost, "/api/cadastro", "", payload)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	body := decode[RegisterClientResponse](t, resp)
	assert.Equal(t, "Cliente cadastrado com sucesso", body.Message)

	resp = env.do(t, http.MethodPost, "/api/cadastro", "", payload)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	errBody := decode[ErrorResponse](t, resp)
	assert.Equal(t, "duplicate_email", errBody.Error)
}

func TestLoginAndCurrentUser(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, "dono@barbearia.com", "segredo123", auth.RoleTenantAdmin)

	resp := env.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "dono@barbearia.com",
		"password": "segredo123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	login := decode[LoginResponse](t, resp)
	require.NotEmpty(t, login.Token)
	assert.Equal(t, "tenant_admin", login.User.Role)

	resp = env.do(t, http.MethodGet, "/api/auth/me", login.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	me := decode[UserResponse](t, resp)
	assert.Equal(t, "dono@barbearia.com", me.Email)
	assert.Equal(t, env.tenantID, me.TenantID)

	resp = env.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "dono@barbearia.com",
		"password": "errada",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/api/auth/me", "nonsense-token", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestDashboardRequiresAuth(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodGet, "/api/agendamentos", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestTenantConfigRequiresAdminRole(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, "recep@barbearia.com", "segredo123", auth.RoleTenantUser)
	env.addUser(t, "dono@barbearia.com", "segredo123", auth.RoleTenantAdmin)

	login := func(email string) string {
		resp := env.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
			"email": email, "password": "segredo123",
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		return decode[LoginResponse](t, resp).Token
	}

	userToken := login("recep@barbearia.com")
	adminToken := login("dono@barbearia.com")

	// A tenant_user can work the appointment list but not the config panel.
	resp := env.do(t, http.MethodGet, "/api/agendamentos", userToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/api/tenant/config", userToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/api/tenant/config", adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	cfg := decode[tenant.Config](t, resp)
	assert.Equal(t, "#1A1A1A", cfg.PrimaryColor)
	assert.Equal(t, "Barbearia Clássica", cfg.BusinessName)
}

func TestAppointmentLifecycle(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, "dono@barbearia.com", "segredo123", auth.RoleTenantAdmin)

	resp := env.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "dono@barbearia.com", "password": "segredo123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	token := decode[LoginResponse](t, resp).Token

	resp = env.do(t, http.MethodPost, "/api/agendamento", "", map[string]string{
		"nome":     "João Silva",
		"email":    "joao@mail.com",
		"telefone": "(99) 98888-7777",
		"data":     "2026-09-04",
		"horario":  "10:00",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[CreateBookingResponse](t, resp)

	resp = env.do(t, http.MethodGet, "/api/agendamentos?status=agendado", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[AppointmentListResponse](t, resp)
	require.Len(t, list.Appointments, 1)
	assert.Equal(t, "João Silva", list.Appointments[0].Client.Nome)
	assert.Equal(t, "2026-09-04", list.Appointments[0].Date)

	resp = env.do(t, http.MethodPut, "/api/agendamentos/"+created.AppointmentID.String()+"/status",
		token, UpdateStatusRequest{Status: "concluido"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = env.do(t, http.MethodDelete, "/api/agendamentos/"+created.AppointmentID.String(), token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Cancelled appointments cannot move back to a live status.
	resp = env.do(t, http.MethodPut, "/api/agendamentos/"+created.AppointmentID.String()+"/status",
		token, UpdateStatusRequest{Status: "agendado"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = env.do(t, http.MethodDelete, "/api/agendamentos/"+uuid.NewString(), token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPublicDirectory(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodGet, "/api/public/barbershops/barbearia-classica", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body struct {
		Barbershop BarbershopResponse `json:"barbershop"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "barbearia-classica", body.Barbershop.Slug)
	assert.Equal(t, "#B8860B", body.Barbershop.SecondaryColor)
	assert.True(t, body.Barbershop.OpeningHours["sunday"].Closed)

	resp = env.do(t, http.MethodGet, "/api/public/barbershops/nao-existe", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/api/public/barbershops", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var listing struct {
		Barbershops []BarbershopResponse `json:"barbershops"`
		Page        int                  `json:"page"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&listing))
	assert.Len(t, listing.Barbershops, 1)
	assert.Equal(t, 1, listing.Page)
}
