package http

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/MSc1-Epitech2025/Time-manager-TD-Epitech-sub001/internal/handler/http/middleware"
	"github.com/MSc1-Epitech2025/Time-manager-TD-Epitech-sub001/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

// RouterOptions carries the deployment settings the router needs.
type RouterOptions struct {
	Env         string
	Version     string
	FrontendURL string
	LogLevel    slog.Level
	// LogOutput receives request logs; nil discards them.
	LogOutput io.Writer
}

func NewRouter(
	JWTService jwt.Service,
	clockHandler ClockHandler,
	planningHandler PlanningHandler,
	dashboardHandler DashboardHandler,
	opts RouterOptions,
) *chi.Mux {
	r := chi.NewRouter()

	logOutput := opts.LogOutput
	if logOutput == nil {
		logOutput = io.Discard
	}
	logFormat := httplog.SchemaECS.Concise(opts.Env != "production")
	logger := slog.New(slog.NewJSONHandler(logOutput, &slog.HandlerOptions{
		Level:       opts.LogLevel,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "time-manager"),
		slog.String("version", opts.Version),
		slog.String("env", opts.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{opts.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  opts.LogLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired)

			r.Route("/clocks", func(r chi.Router) {
				r.Post("/", clockHandler.Toggle)
				r.Post("/in", clockHandler.ClockIn)
				r.Post("/out", clockHandler.ClockOut)
				r.Get("/status", clockHandler.GetStatus)
				r.Get("/me", clockHandler.ListMine)
				r.Get("/me/sessions", clockHandler.GetMySessions)
				r.Get("/me/export", clockHandler.ExportMine)

				// Manager only
				r.With(middleware.RequireManager).Delete("/{id}", clockHandler.Delete)
			})

			r.Route("/plannings", func(r chi.Router) {
				r.Post("/", planningHandler.Create)
				r.Get("/me", planningHandler.ListMine)
				r.Delete("/{id}", planningHandler.Cancel)

				// Manager only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Post("/{id}/approve", planningHandler.Approve)
					r.Post("/{id}/reject", planningHandler.Reject)
				})
			})

			r.Route("/dashboard", func(r chi.Router) {
				r.Get("/me", dashboardHandler.GetMyMetrics)
				r.Get("/me/work-hours", dashboardHandler.GetMyWorkHours)

				// Manager only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Get("/users/{userID}", dashboardHandler.GetUserMetrics)
					r.Get("/users/{userID}/work-hours", dashboardHandler.GetUserWorkHours)
				})
			})

			// Manager only
			r.Route("/users/{userID}", func(r chi.Router) {
				r.Use(middleware.RequireManager)
				r.Get("/clocks", clockHandler.ListForUser)
				r.Get("/clocks/sessions", clockHandler.GetUserSessions)
				r.Get("/clocks/export", clockHandler.ExportForUser)
				r.Get("/plannings", planningHandler.ListForUser)
			})
		})
	})
	return r
}
