package tenant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Service serves tenant lookups and customization, caching configs in Redis
// so every public page render does not hit Postgres.
type Service struct {
	repo     Repository
	rdb      *redis.Client
	cacheTTL time.Duration
}

func NewService(repo Repository, rdb *redis.Client, cacheTTL time.Duration) *Service {
	return &Service{repo: repo, rdb: rdb, cacheTTL: cacheTTL}
}

func configKey(slug string) string {
	return fmt.Sprintf("tenant:config:%s", slug)
}

// BySlug resolves an active tenant by its URL slug.
func (s *Service) BySlug(ctx context.Context, slug string) (*Tenant, error) {
	t, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if t.Status != StatusActive {
		return nil, ErrTenantNotFound
	}
	return t, nil
}

// ByID resolves a tenant by primary key, for session-scoped admin calls.
func (s *Service) ByID(ctx context.Context, id uuid.UUID) (*Tenant, error) {
	return s.repo.GetByID(ctx, id)
}

// ConfigBySlug returns a tenant's customization, from cache when possible.
// A tenant without a stored config gets the platform defaults.
func (s *Service) ConfigBySlug(ctx context.Context, slug string) (*Config, error) {
	if s.rdb != nil {
		raw, err := s.rdb.Get(ctx, configKey(slug)).Bytes()
		if err == nil {
			var cached Config
			if err := json.Unmarshal(raw, &cached); err == nil {
				return &cached, nil
			}
			// Corrupt cache entry, fall through to the database.
		} else if !errors.Is(err, redis.Nil) {
			log.Printf("tenant config cache read failed for %s: %v", slug, err)
		}
	}

	t, err := s.BySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	cfg, err := s.repo.GetConfig(ctx, t.ID)
	if errors.Is(err, ErrConfigNotFound) {
		def := DefaultConfig(*t)
		cfg = &def
	} else if err != nil {
		return nil, fmt.Errorf("load tenant config: %w", err)
	}

	s.cache(ctx, slug, cfg)
	return cfg, nil
}

// UpdateConfig persists a customization change and invalidates the cache.
func (s *Service) UpdateConfig(ctx context.Context, slug string, cfg Config) (*Config, error) {
	t, err := s.BySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	cfg.TenantID = t.ID
	if cfg.OpeningHours == nil {
		cfg.OpeningHours = DefaultOpeningHours()
	}

	updated, err := s.repo.UpsertConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("save tenant config: %w", err)
	}

	if s.rdb != nil {
		if err := s.rdb.Del(ctx, configKey(slug)).Err(); err != nil {
			log.Printf("tenant config cache invalidation failed for %s: %v", slug, err)
		}
	}
	return updated, nil
}

// Directory lists active tenants for the public barbershop listing.
func (s *Service) Directory(ctx context.Context, f DirectoryFilter) ([]Tenant, error) {
	if f.Limit <= 0 {
		f.Limit = 10 // default page size
	}
	if f.Limit > 50 {
		f.Limit = 50 // max per page
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return s.repo.ListActive(ctx, f)
}

func (s *Service) cache(ctx context.Context, slug string, cfg *Config) {
	if s.rdb == nil {
		return
	}
	raw, err := json.Marshal(cfg)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, configKey(slug), raw, s.cacheTTL).Err(); err != nil {
		log.Printf("tenant config cache write failed for %s: %v", slug, err)
	}
}
