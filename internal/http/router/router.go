package router

import (
	"net/http"
	"time"

	"github.com/formlytic/formlytic-api/internal/auth"
	"github.com/formlytic/formlytic-api/internal/config"
	"github.com/formlytic/formlytic-api/internal/http/handler"
	"github.com/formlytic/formlytic-api/internal/http/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"

	_ "github.com/formlytic/formlytic-api/docs" // Import generated swagger docs
)

// Handlers groups every HTTP handler mounted by the router
type Handlers struct {
	Health    *handler.HealthHandler
	Auth      *handler.AuthHandler
	Forms     *handler.FormHandler
	Questions *handler.QuestionHandler
	Responses *handler.ResponseHandler
	Files     *handler.FileHandler
	Analytics *handler.AnalyticsHandler
	Quizzes   *handler.QuizHandler
	Billing   *handler.BillingHandler
	Audit     *handler.AuditHandler
}

type Router struct {
	cfg             *config.Config
	logger          *zap.Logger
	authMiddleware  *auth.Middleware
	rateLimiter     *middleware.RateLimiter
	auditMiddleware *middleware.AuditMiddleware
	handlers        Handlers
}

func NewRouter(
	cfg *config.Config,
	logger *zap.Logger,
	authMiddleware *auth.Middleware,
	rateLimiter *middleware.RateLimiter,
	auditMiddleware *middleware.AuditMiddleware,
	handlers Handlers,
) *Router {
	return &Router{
		cfg:             cfg,
		logger:          logger,
		authMiddleware:  authMiddleware,
		rateLimiter:     rateLimiter,
		auditMiddleware: auditMiddleware,
		handlers:        handlers,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()
	h := rt.handlers

	// Global middleware
	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.Logging(rt.logger))
	r.Use(middleware.SecurityHeaders(&rt.cfg.Security))
	r.Use(middleware.CORS(&rt.cfg.CORS, rt.cfg.App.Environment, rt.logger))
	r.Use(rt.rateLimiter.LimitByIP) // Apply IP-based rate limiting globally

	// Health checks
	r.Get("/health", h.Health.Live)
	r.Get("/health/db", h.Health.Database)
	r.Get("/health/ready", h.Health.Ready)

	// Swagger documentation
	if rt.cfg.Server.EnableSwagger {
		r.Get("/swagger/*", httpSwagger.Handler(
			httpSwagger.URL("/swagger/doc.json"),
		))
	}

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		if rt.cfg.Server.RequestTimeout > 0 {
			r.Use(chimiddleware.Timeout(time.Duration(rt.cfg.Server.RequestTimeout) * time.Second))
		}

		// Public routes (no auth required)
		r.Post("/auth/register", h.Auth.Register)
		r.Post("/auth/login", h.Auth.Login)

		r.Route("/public", func(r chi.Router) {
			r.Use(rt.authMiddleware.OptionalAuthenticate)

			r.Get("/forms/{publicId}", h.Responses.GetPublicForm)
			r.Get("/quizzes", h.Quizzes.GetByAccessCode)
			r.Get("/quizzes/{id}", h.Quizzes.GetPublic)

			r.Group(func(r chi.Router) {
				r.Use(rt.rateLimiter.LimitSubmissions)
				r.Post("/forms/{publicId}/responses", h.Responses.Submit)
				r.Post("/forms/{publicId}/files", h.Responses.UploadFile)
			})
		})

		r.With(rt.rateLimiter.LimitSubmissions).Post("/quiz/submit", h.Quizzes.Submit)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(rt.authMiddleware.Authenticate)
			r.Use(rt.rateLimiter.Limit)
			r.Use(rt.auditMiddleware.Audit) // Audit all modifications

			r.Get("/auth/me", h.Auth.Me)

			// Forms
			r.Route("/forms", func(r chi.Router) {
				r.Get("/", h.Forms.List)
				r.Post("/", h.Forms.Create)
				r.Get("/{id}", h.Forms.GetByID)
				r.Patch("/{id}", h.Forms.Update)
				r.Put("/{id}", h.Forms.Update)
				r.Delete("/{id}", h.Forms.Delete)

				// Sub-resources
				r.Get("/{id}/questions", h.Questions.List)
				r.Post("/{id}/questions", h.Questions.Create)
				r.Put("/{id}/questions", h.Questions.Replace)
				r.Get("/{id}/responses", h.Responses.List)
				r.Get("/{id}/analytics", h.Analytics.GetAnalytics)
				r.Get("/{id}/export", h.Analytics.ExportCSV)
				r.Get("/{id}/files", h.Files.ListByForm)
			})

			// Files
			r.Route("/files", func(r chi.Router) {
				r.Get("/{id}/download", h.Files.Download)
				r.Delete("/{id}", h.Files.Delete)
			})

			// Quizzes
			r.Route("/quizzes", func(r chi.Router) {
				r.Post("/", h.Quizzes.Create)
				r.Get("/mine", h.Quizzes.ListMine)
				r.Post("/{id}/questions", h.Quizzes.AddQuestion)
			})

			// Billing is tied to a creator account
			r.Group(func(r chi.Router) {
				r.Use(rt.authMiddleware.RequireUser)
				r.Get("/purchases", h.Billing.ListPurchases)
				r.Post("/purchases", h.Billing.CreatePurchase)
				r.Get("/subscriptions", h.Billing.GetSubscription)
				r.Post("/subscriptions", h.Billing.CreateSubscription)
			})

			// Audit logs
			r.Get("/audit", h.Audit.List)

			// Operator endpoints for API key callers
			r.Route("/system", func(r chi.Router) {
				r.Use(rt.authMiddleware.RequireSystem)
				r.Post("/subscriptions/expire", h.Billing.ExpireSubscriptions)
			})
		})
	})

	return r
}
