package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/sabigold/presence-backend-go/internal/config"
	"github.com/sabigold/presence-backend-go/internal/handler/http/middleware"
	"github.com/sabigold/presence-backend-go/internal/pkg/jwt"
)

type Handlers struct {
	Auth         AuthHandler
	Kiosk        KioskHandler
	Attendance   AttendanceHandler
	Employee     EmployeeHandler
	Leave        LeaveHandler
	Notification NotificationHandler
	Settings     SettingsHandler
	Report       ReportHandler
	SSE          SSEHandler
}

func NewRouter(cfg *config.Config, jwtService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "presence-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Post("/auth/login", h.Auth.Login)

		// Kiosk endpoints. The terminal has no session; identity comes
		// from the verification evidence in each request.
		r.Route("/kiosk", func(r chi.Router) {
			r.Get("/methods", h.Kiosk.Methods)
			r.Post("/verify", h.Kiosk.Verify)
			r.Post("/verify/credential/begin", h.Kiosk.BeginAssertion)
			r.Post("/leave-requests", h.Leave.SubmitRequest)
		})

		// Store-change stream, shared by kiosk and dashboard.
		r.Get("/events", h.SSE.Stream)

		// Admin dashboard, requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/employees", func(r chi.Router) {
				r.Get("/", h.Employee.List)
				r.Post("/", h.Employee.Create)

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", h.Employee.Get)
					r.Put("/", h.Employee.Update)
					r.Delete("/", h.Employee.Delete)

					r.Post("/face", h.Employee.EnrollFace)
					r.Put("/pin", h.Employee.SetPin)
					r.Post("/pin/change", h.Employee.ChangePin)
					r.Post("/credential/begin", h.Employee.BeginCredentialEnrollment)
					r.Post("/credential/complete", h.Employee.CompleteCredentialEnrollment)

					r.Get("/attendance", h.Attendance.History)
					r.Get("/shift-status", h.Attendance.ShiftStatus)
					r.Get("/leaves", h.Leave.ListByEmployee)
					r.Get("/leave-allowance", h.Leave.Allowance)
				})
			})

			r.Get("/attendance/recent", h.Attendance.Recent)

			r.Route("/leaves", func(r chi.Router) {
				r.Get("/", h.Leave.List)
				r.Post("/", h.Leave.Create)
				r.Post("/delete", h.Leave.SoftDelete)

				r.Route("/recycle-bin", func(r chi.Router) {
					r.Get("/", h.Leave.RecycleBin)
					r.Post("/restore", h.Leave.Restore)
					r.Post("/purge", h.Leave.Purge)
					r.Delete("/", h.Leave.PurgeAll)
				})
			})

			r.Route("/leave-requests", func(r chi.Router) {
				r.Get("/", h.Leave.ListPendingRequests)
				r.Post("/{id}/approve", h.Leave.ApproveRequest)
				r.Post("/{id}/deny", h.Leave.DenyRequest)
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", h.Notification.ListUnread)
				r.Post("/{id}/read", h.Notification.MarkRead)
				r.Post("/read-all", h.Notification.MarkAllRead)
			})

			r.Route("/settings", func(r chi.Router) {
				r.Get("/", h.Settings.Get)
				r.Put("/", h.Settings.Update)
			})

			r.Route("/reports", func(r chi.Router) {
				r.Get("/payroll", h.Report.Payroll)
				r.Get("/late-arrivals", h.Report.LateArrivals)
				r.Get("/on-leave", h.Report.OnLeave)
				r.Get("/absences", h.Report.Absences)
			})
		})
	})

	return r
}
