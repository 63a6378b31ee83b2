package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/smartward/hospital-backend/internal/api"
	"github.com/smartward/hospital-backend/internal/appointment"
	"github.com/smartward/hospital-backend/internal/config"
	"github.com/smartward/hospital-backend/internal/db"
	"github.com/smartward/hospital-backend/internal/identity"
	"github.com/smartward/hospital-backend/internal/patient"
	redisclient "github.com/smartward/hospital-backend/internal/redis"
	"github.com/smartward/hospital-backend/internal/visit"
)

const version = "1.0.0"

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("api-server starting up")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	log.Printf("running in env=%s http_port=%s timezone=%s", cfg.Env, cfg.HTTPPort, cfg.Location)

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pgCtx, cancelPg := context.WithTimeout(rootCtx, 10*time.Second)
	pgPool, err := db.ConnectPostgres(pgCtx, cfg.PostgresDSN)
	cancelPg()
	if err != nil {
		log.Fatalf("postgres connection error: %v", err)
	}
	defer pgPool.Close()
	log.Println("connected to Postgres")

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

	locker := redisclient.NewRedisSlotLocker(rdb, cfg.LockTTL)

	identitySvc := identity.NewService(identity.NewPgRepository(pgPool), cfg.JWTSecret, cfg.TokenTTL)
	patientSvc := patient.NewService(patient.NewPgRepository(pgPool), cfg.Location)
	appointmentSvc := appointment.NewService(appointment.NewPgRepository(pgPool), locker, cfg.Location, cfg.SlotMaxDuration, cfg.GracePeriod)
	visitSvc := visit.NewService(visit.NewPgRepository(pgPool), patientSvc)

	router := api.NewRouter(api.RouterConfig{
		Identity:     identitySvc,
		Patients:     patientSvc,
		Appointments: appointmentSvc,
		Visits:       visitSvc,
		PgPool:       pgPool,
		Redis:        rdb,
		Env:          cfg.Env,
		Version:      version,
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
		log.Printf("graceful shutdown error: %v", err)
	}
}
