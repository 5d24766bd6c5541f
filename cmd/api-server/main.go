package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/brejolabs/barbershop-booking/internal/api"
	"github.com/brejolabs/barbershop-booking/internal/auth"
	"github.com/brejolabs/barbershop-booking/internal/booking"
	"github.com/brejolabs/barbershop-booking/internal/config"
	"github.com/brejolabs/barbershop-booking/internal/db"
	redisclient "github.com/brejolabs/barbershop-booking/internal/redis"
	"github.com/brejolabs/barbershop-booking/internal/tenant"
)

var version = "dev" // set via -ldflags at build time

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("api-server starting up")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	log.Printf("running in env=%s http_port=%s", cfg.Env, cfg.HTTPPort)

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Connect Postgres
	pgCtx, cancelPg := context.WithTimeout(rootCtx, 10*time.Second)
	pgPool, err := db.ConnectPostgres(pgCtx, cfg.PostgresDSN)
	cancelPg()
	if err != nil {
		log.Fatalf("postgres connection error: %v", err)
	}
	defer pgPool.Close()
	log.Println("connected to Postgres")

	// Connect Redis
	rdb, err := redisclient.NewRedisClient(cfg.RedisAddr, cfg.RedisUsername, cfg.RedisPassword)
	if err != nil {
		log.Fatalf("redis connection error: %v", err)
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Printf("error closing redis: %v", err)
		}
	}()
	log.Println("connected to Redis")

	router := api.NewRouter(api.RouterConfig{
		Bookings:          booking.NewService(booking.NewPgRepository(pgPool)),
		Tenants:           tenant.NewService(tenant.NewPgRepository(pgPool), rdb, cfg.TenantCacheTTL),
		Auth:              auth.NewService(auth.NewPgRepository(pgPool), cfg.JWTSecret, cfg.SessionTTL),
		PgPool:            pgPool,
		Redis:             rdb,
		DefaultTenantSlug: cfg.DefaultTenantSlug,
		Env:               cfg.Env,
		Version:           version,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Printf("listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server error: %v", err)
		}
	}()

	<-rootCtx.Done()

	log.Println("shutting down api-server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
}
