package http

import (
	"log/slog"
	"os"

	"github.com/geoattendance/geoattendance-backend-go/internal/config"
	"github.com/geoattendance/geoattendance-backend-go/internal/handler/http/middleware"
	"github.com/geoattendance/geoattendance-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	cfg *config.Config,
	JWTService jwt.Service,
	workerHandler WorkerHandler,
	siteHandler SiteHandler,
	attendanceHandler AttendanceHandler,
	reportHandler ReportHandler,
	liveHandler LiveHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "geoattendance-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.App.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		// The SSE stream authenticates with a short-lived token in the
		// query string instead of the Authorization header.
		r.Get("/live/stream", liveHandler.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/workers", func(r chi.Router) {
				r.Get("/", workerHandler.List)
				r.Post("/", workerHandler.Create)
				r.Get("/export", workerHandler.ExportCSV)
				r.Post("/import", workerHandler.ImportCSV)
				r.Route("/{email}", func(r chi.Router) {
					r.Get("/", workerHandler.Get)
					r.Put("/", workerHandler.Update)
					r.Post("/deactivate", workerHandler.Deactivate)
					r.Delete("/", workerHandler.Delete)
				})
			})

			r.Route("/sites", func(r chi.Router) {
				r.Get("/", siteHandler.List)
				r.Post("/", siteHandler.Create)
				r.Get("/export", siteHandler.ExportCSV)
				r.Post("/import", siteHandler.ImportCSV)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", siteHandler.Get)
					r.Put("/", siteHandler.Update)
					r.Delete("/", siteHandler.Delete)
				})
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Get("/", attendanceHandler.List)
				r.Post("/", attendanceHandler.CreateManual)
				r.Get("/today", attendanceHandler.ListToday)
				r.Get("/stats", attendanceHandler.Stats)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", attendanceHandler.Get)
					r.Put("/", attendanceHandler.Update)
					r.Post("/clock-out", attendanceHandler.ClockOut)
				})
			})

			r.Route("/reports", func(r chi.Router) {
				r.Get("/payroll", reportHandler.Payroll)
				r.Get("/attendance-summary", reportHandler.AttendanceSummary)
				r.Get("/site-analysis", reportHandler.SiteAnalysis)
				r.Get("/worker-performance", reportHandler.WorkerPerformance)
			})

			r.Route("/live", func(r chi.Router) {
				r.Get("/", liveHandler.Snapshot)
				r.Get("/token", liveHandler.GetSSEToken)
			})
		})
	})
	return r
}
