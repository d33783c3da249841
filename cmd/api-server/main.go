package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/medlyfe/scheduling-service/internal/api"
	"github.com/medlyfe/scheduling-service/internal/appointment"
	"github.com/medlyfe/scheduling-service/internal/config"
	"github.com/medlyfe/scheduling-service/internal/db"
	"github.com/medlyfe/scheduling-service/internal/diagnosis"
	"github.com/medlyfe/scheduling-service/internal/healthlog"
	"github.com/medlyfe/scheduling-service/internal/medicine"
	"github.com/medlyfe/scheduling-service/internal/notify"
	redisclient "github.com/medlyfe/scheduling-service/internal/redis"
)

const version = "1.2.0"

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

	var events appointment.EventPublisher = notify.NopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		publisher := notify.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer func() {
			if err := publisher.Close(); err != nil {
				log.Printf("error closing kafka writer: %v", err)
			}
		}()
		events = publisher
		log.Printf("publishing appointment events to topic=%s", cfg.KafkaTopic)
	}

	apptRepo := appointment.NewPgRepository(pgPool)
	locker := redisclient.NewRedisCalendarLocker(rdb, cfg.LockTTL)
	apptSvc := appointment.NewService(apptRepo, locker, events)

	medSvc := medicine.NewService(
		medicine.NewPgRepository(pgPool),
		medicine.NewRedisCache(rdb, cfg.CacheTTL),
	)
	diagSvc := diagnosis.NewService(diagnosis.NewPgRepository(pgPool))
	healthSvc := healthlog.NewService(healthlog.NewPgRepository(pgPool))

	router := api.NewRouter(api.RouterConfig{
		Appointments: apptSvc,
		Medicines:    medSvc,
		Diagnosis:    diagSvc,
		HealthLog:    healthSvc,
		PgPool:       pgPool,
		Redis:        rdb,
		Env:          cfg.Env,
		Version:      version,
	})

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Printf("listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server error: %v", err)
		}
	}()

	<-rootCtx.Done()

	log.Println("shutting down api-server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("http shutdown error: %v", err)
	}
}
