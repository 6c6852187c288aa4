package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"forma-backend/internal/handlers"
	"forma-backend/internal/middleware"
	"forma-backend/internal/models"
	"forma-backend/internal/websocket"
)

func New(
	jwtAuth *middleware.JWTAuth,
	authHandler *handlers.AuthHandler,
	childHandler *handlers.ChildHandler,
	userHandler *handlers.UserHandler,
	sessionHandler *handlers.SessionHandler,
	foodHandler *handlers.FoodHandler,
	diaperHandler *handlers.DiaperHandler,
	timelineHandler *handlers.TimelineHandler,
	wsHub *websocket.Hub,
	frontendURL string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS(frontendURL))

	// Auth rate limiter (10 req/min per IP)
	authLimiter := middleware.NewRateLimiter(10, time.Minute)

	// Roles that may write care logs
	logWriters := middleware.RequireRole(models.RoleCaretaker, models.RoleAdmin)
	adminOnly := middleware.RequireRole(models.RoleAdmin)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {

		// ──── Auth Routes (public) ────
		r.Route("/auth", func(r chi.Router) {
			r.Use(authLimiter.Middleware)
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)

			r.Group(func(r chi.Router) {
				r.Use(jwtAuth.Middleware)
				r.Post("/logout", authHandler.Logout)
				r.Get("/me", authHandler.Me)
			})
		})

		// ──── Child Routes ────
		r.Route("/children", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Get("/", childHandler.List)
			r.Get("/{id}", childHandler.Get)
			r.Get("/{id}/device-events", childHandler.ListDeviceEvents)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(models.RoleMother, models.RoleAdmin))
				r.Post("/", childHandler.Create)
				r.Put("/{id}", childHandler.Update)
			})
			r.Group(func(r chi.Router) {
				r.Use(adminOnly)
				r.Delete("/{id}", childHandler.Delete)
			})
			r.Group(func(r chi.Router) {
				r.Use(logWriters)
				r.Post("/{id}/device-events", childHandler.AddDeviceEvent)
			})
		})

		// ──── Activity Routes ────
		r.Route("/activities", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)

			mountSessions := func(prefix string, kind models.SessionKind) {
				r.Route(prefix, func(r chi.Router) {
					r.Get("/child/{childId}", sessionHandler.List(kind))
					r.Get("/summary/{childId}", sessionHandler.Summary(kind))

					r.Group(func(r chi.Router) {
						r.Use(logWriters)
						r.Post("/start", sessionHandler.Start(kind))
						r.Put("/end/{id}", sessionHandler.End(kind))
						r.Delete("/{id}", sessionHandler.Delete(kind))
					})
				})
			}
			mountSessions("/sleep", models.KindSleep)
			mountSessions("/play", models.KindPlay)
			mountSessions("/cry", models.KindCry)

			r.Route("/food", func(r chi.Router) {
				r.Get("/child/{childId}", foodHandler.ListByChild)
				r.Get("/summary/{childId}", foodHandler.Summary)

				r.Group(func(r chi.Router) {
					r.Use(logWriters)
					r.Post("/", foodHandler.Add)
					r.Delete("/{id}", foodHandler.Delete)
				})
				r.Group(func(r chi.Router) {
					r.Use(adminOnly)
					r.Get("/all", foodHandler.ListAll)
				})
			})

			r.Route("/diaper", func(r chi.Router) {
				r.Get("/child/{childId}", diaperHandler.ListByChild)
				r.Get("/summary/{childId}", diaperHandler.Summary)

				r.Group(func(r chi.Router) {
					r.Use(logWriters)
					r.Post("/", diaperHandler.Add)
					r.Delete("/{id}", diaperHandler.Delete)
				})
				r.Group(func(r chi.Router) {
					r.Use(adminOnly)
					r.Get("/all", diaperHandler.ListAll)
					r.Get("/check-overdue", diaperHandler.CheckOverdue)
					r.Get("/audit", diaperHandler.Audit)
				})
			})

			r.Get("/timeline/{childId}", timelineHandler.Get)
		})

		// ──── User Routes (admin) ────
		r.Route("/users", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Use(adminOnly)
			r.Get("/", userHandler.List)
			r.Get("/caretakers", userHandler.ListByRole(models.RoleCaretaker))
			r.Get("/mothers", userHandler.ListByRole(models.RoleMother))
			r.Get("/{id}", userHandler.Get)
			r.Put("/{id}", userHandler.Update)
			r.Delete("/{id}", userHandler.Delete)
		})

		// ──── WebSocket ────
		r.Get("/ws", wsHub.HandleWebSocket)
	})

	return r
}
