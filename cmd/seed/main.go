package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/brejolabs/barbershop-booking/internal/auth"
	"github.com/brejolabs/barbershop-booking/internal/booking"
	"github.com/brejolabs/barbershop-booking/internal/db"
	"github.com/brejolabs/barbershop-booking/internal/schedule"
	"github.com/brejolabs/barbershop-booking/internal/tenant"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("seed starting")

	dsn := os.Getenv("POSTGRES_DSN")
	if dsn == "" {
		log.Fatal("POSTGRES_DSN is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := db.ConnectPostgres(ctx, dsn)
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	gofakeit.Seed(time.Now().UnixNano())

	tenantIDs, err := seedTenants(context.Background(), pool)
	if err != nil {
		log.Fatalf("seed tenants: %v", err)
	}
	if err := seedUsers(context.Background(), pool, tenantIDs); err != nil {
		log.Fatalf("seed users: %v", err)
	}
	for _, id := range tenantIDs {
		if err := seedAppointments(context.Background(), pool, id, 40); err != nil {
			log.Fatalf("seed appointments: %v", err)
		}
	}

	log.Println("seed complete")
}

func seedTenants(ctx context.Context, pool *pgxpool.Pool) ([]uuid.UUID, error) {
	shops := []struct {
		name string
		slug string
	}{
		{"Barbearia Clássica", "barbearia-classica"},
		{"Navalha de Ouro", "navalha-de-ouro"},
		{"Corte & Estilo", "corte-e-estilo"},
	}

	log.Printf("seeding %d tenants", len(shops))

	tx, err := pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var ids []uuid.UUID
	for _, shop := range shops {
		id := uuid.New()

		_, err := tx.Exec(ctx, `
			INSERT INTO tenants (id, name, slug, status, created_at, updated_at)
			VALUES ($1, $2, $3, $4, now(), now())
			ON CONFLICT (slug) DO NOTHING
		`, id, shop.name, shop.slug, tenant.StatusActive)
		if err != nil {
			return nil, err
		}

		cfg := tenant.DefaultConfig(tenant.Tenant{ID: id, Name: shop.name})
		cfg.Description = gofakeit.Sentence(10)
		cfg.Address = gofakeit.Street()
		cfg.Phone = fmt.Sprintf("(98) 9%04d-%04d", gofakeit.Number(0, 9999), gofakeit.Number(0, 9999))
		cfg.Email = fmt.Sprintf("contato@%s.com.br", shop.slug)

		hoursJSON, err := json.Marshal(cfg.OpeningHours)
		if err != nil {
			return nil, err
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO tenant_configs (
				tenant_id, business_name, description, address, city, state, zip_code,
				phone, email, website, instagram, facebook, whatsapp, logo_url,
				primary_color, secondary_color, accent_color, opening_hours, policies,
				updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, '', $7, $8, '', '', '', '', '',
				$9, $10, $11, $12, '', now())
			ON CONFLICT (tenant_id) DO NOTHING
		`, id, cfg.BusinessName, cfg.Description, cfg.Address, cfg.City, cfg.State,
			cfg.Phone, cfg.Email, cfg.PrimaryColor, cfg.SecondaryColor,
			cfg.AccentColor, hoursJSON)
		if err != nil {
			return nil, err
		}

		ids = append(ids, id)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	log.Println("tenants seeded")
	return ids, nil
}

func seedUsers(ctx context.Context, pool *pgxpool.Pool, tenantIDs []uuid.UUID) error {
	log.Printf("seeding users for %d tenants", len(tenantIDs))

	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if password == "" {
		password = "trocar-esta-senha"
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for i, tenantID := range tenantIDs {
		admin := fmt.Sprintf("admin%d@barbearia.com.br", i+1)
		staff := fmt.Sprintf("equipe%d@barbearia.com.br", i+1)

		_, err := tx.Exec(ctx, `
			INSERT INTO platform_users (id, tenant_id, email, name, role, password_hash, status, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, 'active', now(), now())
			ON CONFLICT (email) DO NOTHING
		`, uuid.New(), tenantID, admin, gofakeit.Name(), auth.RoleTenantAdmin, hash)
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO platform_users (id, tenant_id, email, name, role, password_hash, status, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, 'active', now(), now())
			ON CONFLICT (email) DO NOTHING
		`, uuid.New(), tenantID, staff, gofakeit.Name(), auth.RoleTenantUser, hash)
		if err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	log.Println("users seeded")
	return nil
}

func seedAppointments(ctx context.Context, pool *pgxpool.Pool, tenantID uuid.UUID, count int) error {
	log.Printf("seeding %d appointments for tenant %s", count, tenantID)

	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	today := schedule.DateOnly(time.Now().UTC())
	seen := make(map[string]bool)

	for i := 0; i < count; i++ {
		clientID := uuid.New()
		phone := fmt.Sprintf("(98) 9%04d-%04d", gofakeit.Number(0, 9999), gofakeit.Number(0, 9999))

		_, err := tx.Exec(ctx, `
			INSERT INTO clients (id, tenant_id, name, email, phone, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, now(), now())
		`, clientID, tenantID, gofakeit.Name(), gofakeit.Email(), phone)
		if err != nil {
			return err
		}

		// Pick an open slot within the next two weeks, skipping Sundays and
		// already seeded slots.
		var date time.Time
		var label string
		for {
			date = today.AddDate(0, 0, gofakeit.Number(1, 14))
			labels := schedule.LabelsFor(date.Weekday())
			if len(labels) == 0 {
				continue
			}
			label = labels[gofakeit.Number(0, len(labels)-1)]
			key := date.Format("2006-01-02") + " " + label
			if !seen[key] {
				seen[key] = true
				break
			}
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO appointments (id, tenant_id, client_id, date, time, status, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, now(), now())
		`, uuid.New(), tenantID, clientID, date, label, booking.StatusScheduled)
		if err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	log.Println("appointments seeded")
	return nil
}
