package handlers

import (
	"net/http"
	"time"

	"github.com/campusrfid/ledger/internal/config"
	mW "github.com/campusrfid/ledger/internal/middleware"
	"github.com/campusrfid/ledger/internal/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Routes groups the handlers mounted by NewRouter.
type Routes struct {
	Sessions  *mW.Authenticator
	Auth      *AuthHandler
	Dashboard *DashboardHandler
	Admin     *AdminHandler
	Scans     *ScanHandler
	Receipts  *ReceiptHandler
}

func NewRouter(h Routes, cfg config.ServerConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(mW.SecurityHeaders)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	r.Get("/health", HealthCheck)
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	r.Handle("/static/*", http.StripPrefix("/static/", mW.StaticFileServer(cfg.StaticDir)))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, loginView, http.StatusSeeOther)
	})
	r.Get("/login", h.Auth.LoginForm)
	r.Post("/login", h.Auth.Login)
	r.Get("/register", h.Auth.RegisterForm)
	r.Post("/register", h.Auth.Register)

	// Reader hook, called by the serial forwarder without a session.
	r.Get("/scan/{tag_id}", h.Scans.RecordScan)

	r.Group(func(r chi.Router) {
		r.Use(h.Sessions.RequireSession)

		r.Get("/logout", h.Auth.Logout)
		r.Get("/dashboard", h.Dashboard.Dashboard)
		r.With(mW.RequireRole(models.RoleUser)).Post("/dashboard", h.Dashboard.SubmitTrip)
		r.Get("/trips/{id}/receipt", h.Receipts.Receipt)

		r.Get("/api/scans", h.Scans.ListScans)
		r.Get("/auto_simulate", h.Scans.Simulate)

		r.Group(func(r chi.Router) {
			r.Use(mW.RequireRole(models.RoleAdmin))

			r.Get("/edit/{id}", h.Admin.GetTrip)
			r.Post("/edit/{id}", h.Admin.EditTrip)
			r.Post("/approve/{id}", h.Admin.Approve)
			r.Post("/reject/{id}", h.Admin.Reject)
			r.Post("/reload/{id}", h.Admin.Reload)
			r.Get("/delete/{id}", h.Admin.DeleteTrip)
		})
	})

	return r
}
