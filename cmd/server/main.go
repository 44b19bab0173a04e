package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"jobcard-backend/internal/auth"
	"jobcard-backend/internal/cache"
	"jobcard-backend/internal/config"
	"jobcard-backend/internal/database"
	"jobcard-backend/internal/db"
	h "jobcard-backend/internal/http"
	"jobcard-backend/internal/handlers"
	"jobcard-backend/internal/health"
	"jobcard-backend/internal/logger"
	"jobcard-backend/internal/middleware"
	"jobcard-backend/internal/realtime"
	"jobcard-backend/internal/repositories"
	"jobcard-backend/internal/repositories/memory"
	"jobcard-backend/internal/services"
	"jobcard-backend/internal/timeutil"
	"jobcard-backend/migrations"

	"github.com/jackc/pgx/v5/pgxpool"
)

// stores groups the persistence backends selected by storage.driver
type stores struct {
	counters      services.SequenceStore
	jobcards      services.JobcardStore
	vehicleModels services.VehicleModelStore
	users         services.UserStore
}

func main() {
	// Parse command-line flags
	port := flag.Int("port", 0, "Server port (overrides config)")
	configPath := flag.String("config", "configs/config.yaml", "Path to the YAML config file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}

	log, err := logger.New(cfg.Log.Mode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := timeutil.SetLocation(cfg.Shop.Timezone); err != nil {
		log.Warn("unknown shop timezone, keeping default", "timezone", cfg.Shop.Timezone, "error", err)
	}

	if cfg.JWT.Secret == "" {
		cfg.JWT.Secret = randomSecret()
		log.Warn("jwt.secret is not set, using a random secret; tokens will not survive a restart")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Storage
	var pool *pgxpool.Pool
	var st stores
	switch cfg.Storage.Driver {
	case "postgres":
		pool, err = db.Connect(ctx, cfg)
		if err != nil {
			log.Fatal("failed to connect to database", "error", err)
		}
		defer pool.Close()
		log.Info("connected to database", "host", cfg.Database.Host, "name", cfg.Database.Name)

		// Embedded migrations create the schema on startup
		migrateCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		err = database.NewMigratorWithFS(pool, migrations.FS, ".", log).RunMigrations(migrateCtx)
		cancel()
		if err != nil {
			log.Fatal("failed to run migrations", "error", err)
		}

		st = stores{
			counters:      repositories.NewCounterRepository(pool),
			jobcards:      repositories.NewJobcardRepository(pool),
			vehicleModels: repositories.NewVehicleModelRepository(pool),
			users:         repositories.NewUserRepository(pool),
		}
	default:
		log.Warn("using in-memory storage, data is lost on restart")
		st = stores{
			counters:      memory.NewCounterStore(),
			jobcards:      memory.NewJobcardStore(),
			vehicleModels: memory.NewVehicleModelStore(),
			users:         memory.NewUserStore(),
		}
	}

	// Redis cache is optional
	if cfg.Redis.Enabled {
		if err := cache.Init(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB); err != nil {
			log.Warn("redis cache unavailable, continuing without it", "addr", cfg.Redis.Addr, "error", err)
		} else {
			log.Info("redis cache connected", "addr", cfg.Redis.Addr)
			defer cache.Close()
		}
	}

	hub := realtime.NewHub(log)
	go hub.Run(ctx)

	jwtManager := auth.NewJWTManager(cfg)

	// Services
	jobcardService := services.NewJobcardService(st.jobcards, st.counters, hub, log)
	vehicleModelService := services.NewVehicleModelService(st.vehicleModels, hub, log)
	userService := services.NewUserService(st.users, jwtManager, log)
	statsService := services.NewStatsService(st.jobcards)
	printService := services.NewPrintService(services.ShopInfo{
		Name:    cfg.Shop.Name,
		Address: cfg.Shop.Address,
		Phone:   cfg.Shop.Phone,
	})

	if created, err := userService.Seed(ctx); err != nil {
		log.Error("failed to seed default users", "error", err)
	} else if len(created) > 0 {
		log.Info("seeded default users", "users", created)
	}

	var backupService *services.BackupService
	if cfg.Backup.Enabled {
		client, err := services.NewS3Client(ctx, cfg)
		if err != nil {
			log.Error("backup storage unavailable", "error", err)
		} else {
			backupService = services.NewBackupService(st.jobcards, st.vehicleModels, client, cfg.Backup.Bucket, cfg.Backup.Prefix, log)
			backupService.StartScheduler(ctx, time.Duration(cfg.Backup.IntervalMinutes)*time.Minute)
			log.Info("backups enabled", "bucket", cfg.Backup.Bucket, "interval_minutes", cfg.Backup.IntervalMinutes)
		}
	}

	// Handlers
	router := h.NewRouter(
		handlers.NewJobcardHandler(jobcardService, printService),
		handlers.NewVehicleModelHandler(vehicleModelService),
		handlers.NewAuthHandler(userService),
		handlers.NewStatsHandler(statsService),
		handlers.NewBackupHandler(backupService),
		handlers.NewHealthHandler(health.NewHealthChecker(pool, cfg.Storage.Driver)),
		hub,
		middleware.NewAuthMiddleware(jwtManager),
		log,
	)

	// Wrap with panic recovery and CORS
	handler := middleware.PanicRecovery(log)(middleware.NewCORS(cfg)(router))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("server running", "addr", srv.Addr, "storage", cfg.Storage.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
}

func randomSecret() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return hex.EncodeToString(b)
}
