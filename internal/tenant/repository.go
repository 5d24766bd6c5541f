package tenant

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrTenantNotFound = errors.New("tenant not found")
	ErrConfigNotFound = errors.New("tenant config not found")
)

// DirectoryFilter narrows the public barbershop listing.
type DirectoryFilter struct {
	Search string
	City   string
	Limit  int
	Offset int
}

type Repository interface {
	GetBySlug(ctx context.Context, slug string) (*Tenant, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Tenant, error)
	ListActive(ctx context.Context, f DirectoryFilter) ([]Tenant, error)

	GetConfig(ctx context.Context, tenantID uuid.UUID) (*Config, error)
	UpsertConfig(ctx context.Context, cfg Config) (*Config, error)
}
