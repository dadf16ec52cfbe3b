package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MSc1-Epitech2025/Time-manager-TD-Epitech-sub001/internal/config"
	appHTTP "github.com/MSc1-Epitech2025/Time-manager-TD-Epitech-sub001/internal/handler/http"
	"github.com/MSc1-Epitech2025/Time-manager-TD-Epitech-sub001/internal/pkg/cron"
	"github.com/MSc1-Epitech2025/Time-manager-TD-Epitech-sub001/internal/pkg/database"
	"github.com/MSc1-Epitech2025/Time-manager-TD-Epitech-sub001/internal/pkg/jwt"
	"github.com/MSc1-Epitech2025/Time-manager-TD-Epitech-sub001/internal/repository/postgresql"
	clockService "github.com/MSc1-Epitech2025/Time-manager-TD-Epitech-sub001/internal/service/clock"
	dashboardService "github.com/MSc1-Epitech2025/Time-manager-TD-Epitech-sub001/internal/service/dashboard"
	planningService "github.com/MSc1-Epitech2025/Time-manager-TD-Epitech-sub001/internal/service/planning"
)

var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		slog.Error("Error connecting to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := postgresql.Migrate(ctx, db); err != nil {
			slog.Error("Error applying schema", "error", err)
			os.Exit(1)
		}
		slog.Info("Database schema applied")
	}

	loc := cfg.Location()

	userRepo := postgresql.NewUserRepository(db)
	clockRepo := postgresql.NewClockRepository(db)
	planningRepo := postgresql.NewPlanningRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	clockSvc := clockService.NewClockService(db, clockRepo, userRepo, loc, cfg.Clock.AutoCloseAfter)
	planningSvc := planningService.NewPlanningService(db, planningRepo, userRepo)
	dashboardSvc := dashboardService.NewDashboardService(clockRepo, planningRepo, userRepo, loc)

	router := appHTTP.NewRouter(
		JWTService,
		appHTTP.NewClockHandler(clockSvc),
		appHTTP.NewPlanningHandler(planningSvc),
		appHTTP.NewDashboardHandler(dashboardSvc),
		appHTTP.RouterOptions{
			Env:         cfg.App.Env,
			Version:     version,
			FrontendURL: cfg.App.FrontendURL,
			LogLevel:    cfg.SlogLevel(),
			LogOutput:   os.Stdout,
		},
	)

	scheduler := cron.NewScheduler(ctx)
	if cfg.Clock.AutoCloseAfter > 0 {
		cron.NewClockJobs(clockSvc, cfg.Clock.AutoCloseInterval).RegisterJobs(scheduler)
	}
	scheduler.Start()

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Server running", "addr", "http://localhost"+srv.Addr, "timezone", loc.String())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown error", "error", err)
	}
	scheduler.Stop()
}
