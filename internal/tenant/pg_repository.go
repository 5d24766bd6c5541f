package tenant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

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

func scanTenant(row pgx.Row) (*Tenant, error) {
	var t Tenant

	err := row.Scan(
		&t.ID,
		&t.Name,
		&t.Slug,
		&t.Status,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTenantNotFound
		}
		return nil, err
	}

	return &t, nil
}

func scanConfig(row pgx.Row) (*Config, error) {
	var c Config
	var hoursJSON []byte

	err := row.Scan(
		&c.TenantID,
		&c.BusinessName,
		&c.Description,
		&c.Address,
		&c.City,
		&c.State,
		&c.ZipCode,
		&c.Phone,
		&c.Email,
		&c.Website,
		&c.Instagram,
		&c.Facebook,
		&c.WhatsApp,
		&c.LogoURL,
		&c.PrimaryColor,
		&c.SecondaryColor,
		&c.AccentColor,
		&hoursJSON,
		&c.Policies,
		&c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	if len(hoursJSON) > 0 {
		if err := json.Unmarshal(hoursJSON, &c.OpeningHours); err != nil {
			return nil, fmt.Errorf("decode opening hours: %w", err)
		}
	}
	return &c, nil
}

const configColumns = `
	tenant_id, business_name, description, address, city, state, zip_code,
	phone, email, website, instagram, facebook, whatsapp, logo_url,
	primary_color, secondary_color, accent_color, opening_hours, policies,
	updated_at`

// Interface methods

func (r *PgRepository) GetBySlug(ctx context.Context, slug string) (*Tenant, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, slug, status, created_at, updated_at
		FROM tenants
		WHERE slug = $1`,
		slug,
	)
	return scanTenant(row)
}

func (r *PgRepository) GetByID(ctx context.Context, id uuid.UUID) (*Tenant, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, slug, status, created_at, updated_at
		FROM tenants
		WHERE id = $1`,
		id,
	)
	return scanTenant(row)
}

func (r *PgRepository) ListActive(ctx context.Context, f DirectoryFilter) ([]Tenant, error) {
	query := `
		SELECT id, name, slug, status, created_at, updated_at
		FROM tenants
		WHERE status = $1`
	args := []any{StatusActive}

	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		query += fmt.Sprintf(" AND name ILIKE $%d", len(args))
	}

	args = append(args, f.Limit)
	query += fmt.Sprintf(" ORDER BY name LIMIT $%d", len(args))
	args = append(args, f.Offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Tenant
	for rows.Next() {
		t, err := scanTenant(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}

func (r *PgRepository) GetConfig(ctx context.Context, tenantID uuid.UUID) (*Config, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+configColumns+`
		FROM tenant_configs
		WHERE tenant_id = $1`,
		tenantID,
	)
	return scanConfig(row)
}

func (r *PgRepository) UpsertConfig(ctx context.Context, cfg Config) (*Config, error) {
	hoursJSON, err := json.Marshal(cfg.OpeningHours)
	if err != nil {
		return nil, fmt.Errorf("encode opening hours: %w", err)
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO tenant_configs (`+configColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, now())
		ON CONFLICT (tenant_id) DO UPDATE SET
			business_name = EXCLUDED.business_name,
			description = EXCLUDED.description,
			address = EXCLUDED.address,
			city = EXCLUDED.city,
			state = EXCLUDED.state,
			zip_code = EXCLUDED.zip_code,
			phone = EXCLUDED.phone,
			email = EXCLUDED.email,
			website = EXCLUDED.website,
			instagram = EXCLUDED.instagram,
			facebook = EXCLUDED.facebook,
			whatsapp = EXCLUDED.whatsapp,
			logo_url = EXCLUDED.logo_url,
			primary_color = EXCLUDED.primary_color,
			secondary_color = EXCLUDED.secondary_color,
			accent_color = EXCLUDED.accent_color,
			opening_hours = EXCLUDED.opening_hours,
			policies = EXCLUDED.policies,
			updated_at = now()
		RETURNING `+configColumns,
		cfg.TenantID, cfg.BusinessName, cfg.Description, cfg.Address, cfg.City,
		cfg.State, cfg.ZipCode, cfg.Phone, cfg.Email, cfg.Website, cfg.Instagram,
		cfg.Facebook, cfg.WhatsApp, cfg.LogoURL, cfg.PrimaryColor,
		cfg.SecondaryColor, cfg.AccentColor, hoursJSON, cfg.Policies,
	)
	return scanConfig(row)
}
