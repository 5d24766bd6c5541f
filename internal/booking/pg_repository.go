package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

// Helpers

func scanClient(row pgx.Row) (*Client, error) {
	var c Client

	err := row.Scan(
		&c.ID,
		&c.TenantID,
		&c.Name,
		&c.Email,
		&c.Phone,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}

	return &c, nil
}

func scanAppointment(row pgx.Row) (*Appointment, error) {
	var a Appointment

	err := row.Scan(
		&a.ID,
		&a.TenantID,
		&a.ClientID,
		&a.Date,
		&a.Time,
		&a.Status,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAppointmentNotFound
		}
		return nil, err
	}

	a.Date = a.Date.UTC()
	return &a, nil
}

// Interface methods

func (r *PgRepository) GetClientByEmail(ctx context.Context, tenantID uuid.UUID, email string) (*Client, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, tenant_id, name, email, phone, created_at, updated_at
		FROM clients
		WHERE tenant_id = $1 AND email = $2`,
		tenantID, email,
	)
	return scanClient(row)
}

func (r *PgRepository) CreateClient(ctx context.Context, c Client) (*Client, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO clients (id, tenant_id, name, email, phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, now(), now())
		RETURNING id, tenant_id, name, email, phone, created_at, updated_at`,
		uuid.New(), c.TenantID, c.Name, c.Email, c.Phone,
	)
	return scanClient(row)
}

func (r *PgRepository) UpdateClientContact(ctx context.Context, id uuid.UUID, name, phone string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE clients
		SET name = $2, phone = $3, updated_at = now()
		WHERE id = $1`,
		id, name, phone,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrClientNotFound
	}
	return nil
}

func (r *PgRepository) CreateAppointment(ctx context.Context, a Appointment) (*Appointment, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO appointments (id, tenant_id, client_id, date, time, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, now(), now())
		RETURNING id, tenant_id, client_id, date, time, status, created_at, updated_at`,
		uuid.New(), a.TenantID, a.ClientID, a.Date, a.Time, a.Status,
	)
	return scanAppointment(row)
}

func (r *PgRepository) GetAppointmentDetail(ctx context.Context, tenantID, id uuid.UUID) (*AppointmentDetail, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT a.id, a.tenant_id, a.client_id, a.date, a.time, a.status, a.created_at, a.updated_at,
		       c.id, c.tenant_id, c.name, c.email, c.phone, c.created_at, c.updated_at
		FROM appointments a
		JOIN clients c ON c.id = a.client_id
		WHERE a.tenant_id = $1 AND a.id = $2`,
		tenantID, id,
	)
	return scanDetail(row)
}

func scanDetail(row pgx.Row) (*AppointmentDetail, error) {
	var d AppointmentDetail
	var c Client

	err := row.Scan(
		&d.ID,
		&d.TenantID,
		&d.ClientID,
		&d.Date,
		&d.Time,
		&d.Status,
		&d.CreatedAt,
		&d.UpdatedAt,
		&c.ID,
		&c.TenantID,
		&c.Name,
		&c.Email,
		&c.Phone,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAppointmentNotFound
		}
		return nil, err
	}

	d.Date = d.Date.UTC()
	d.Client = &c
	return &d, nil
}

func (r *PgRepository) UpdateAppointmentStatus(ctx context.Context, tenantID, id uuid.UUID, to Status) (*Appointment, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE appointments
		SET status = $3, updated_at = now()
		WHERE tenant_id = $1 AND id = $2
		RETURNING id, tenant_id, client_id, date, time, status, created_at, updated_at`,
		tenantID, id, to,
	)
	return scanAppointment(row)
}

func (r *PgRepository) BookedTimes(ctx context.Context, tenantID uuid.UUID, date time.Time) ([]string, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT time
		FROM appointments
		WHERE tenant_id = $1 AND date = $2 AND status = $3
		ORDER BY time`,
		tenantID, date, StatusScheduled,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var times []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		times = append(times, t)
	}
	return times, rows.Err()
}

func (r *PgRepository) HasScheduledAt(ctx context.Context, tenantID uuid.UUID, date time.Time, label string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM appointments
			WHERE tenant_id = $1 AND date = $2 AND time = $3 AND status = $4
		)`,
		tenantID, date, label, StatusScheduled,
	).Scan(&exists)
	return exists, err
}

func (r *PgRepository) ListAppointments(ctx context.Context, tenantID uuid.UUID, f ListFilter) ([]AppointmentDetail, error) {
	query := `
		SELECT a.id, a.tenant_id, a.client_id, a.date, a.time, a.status, a.created_at, a.updated_at,
		       c.id, c.tenant_id, c.name, c.email, c.phone, c.created_at, c.updated_at
		FROM appointments a
		JOIN clients c ON c.id = a.client_id
		WHERE a.tenant_id = $1`
	args := []any{tenantID}

	if f.Status != "" {
		args = append(args, f.Status)
		query += fmt.Sprintf(" AND a.status = $%d", len(args))
	}
	if f.DateFrom != nil {
		args = append(args, *f.DateFrom)
		query += fmt.Sprintf(" AND a.date >= $%d", len(args))
	}
	if f.DateTo != nil {
		args = append(args, *f.DateTo)
		query += fmt.Sprintf(" AND a.date <= $%d", len(args))
	}

	args = append(args, f.Limit)
	query += fmt.Sprintf(" ORDER BY a.date DESC, a.time DESC LIMIT $%d", len(args))
	args = append(args, f.Offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []AppointmentDetail
	for rows.Next() {
		d, err := scanDetail(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *d)
	}
	return out, rows.Err()
}
