package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/revibe-delhi/revibe/docs"
	authhandlers "github.com/revibe-delhi/revibe/internal/handlers/auth"
	notificationhandlers "github.com/revibe-delhi/revibe/internal/handlers/notifications"
	reporthandlers "github.com/revibe-delhi/revibe/internal/handlers/reports"
	rewardshandlers "github.com/revibe-delhi/revibe/internal/handlers/rewards"
	"github.com/revibe-delhi/revibe/internal/service"
	"github.com/revibe-delhi/revibe/pkg/auth"
)

type AuthHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
}

type ReportHandler interface {
	AddReport(w http.ResponseWriter, r *http.Request)
	GetReports(w http.ResponseWriter, r *http.Request)
	GetReport(w http.ResponseWriter, r *http.Request)
	GetSummary(w http.ResponseWriter, r *http.Request)
	UpdateStatus(w http.ResponseWriter, r *http.Request)
}

type RewardsHandler interface {
	GetRewards(w http.ResponseWriter, r *http.Request)
	GetHistory(w http.ResponseWriter, r *http.Request)
	Redeem(w http.ResponseWriter, r *http.Request)
	GetRedemptions(w http.ResponseWriter, r *http.Request)
}

type NotificationHandler interface {
	GetNotifications(w http.ResponseWriter, r *http.Request)
	MarkRead(w http.ResponseWriter, r *http.Request)
	MarkAllRead(w http.ResponseWriter, r *http.Request)
}

type Handlers struct {
	AuthHandler         AuthHandler
	ReportHandler       ReportHandler
	RewardsHandler      RewardsHandler
	NotificationHandler NotificationHandler
}

func New(s *service.Services) *Handlers {
	return &Handlers{
		AuthHandler:         authhandlers.New(s.AuthService),
		ReportHandler:       reporthandlers.New(s.ReportService),
		RewardsHandler:      rewardshandlers.New(s.LedgerService),
		NotificationHandler: notificationhandlers.New(s.NotificationService),
	}
}

func (h *Handlers) InitRoutes(r chi.Router) chi.Router {
	r.Use(
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
	)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("doc.json"),
	))
	r.Route("/api", func(r chi.Router) {
		r.Route("/user", func(r chi.Router) {
			r.Post("/register", h.AuthHandler.Register)
			r.Post("/login", h.AuthHandler.Login)

			r.Group(func(r chi.Router) {
				r.Use(auth.AuthMiddleware)
				r.Route("/rewards", func(r chi.Router) {
					r.Get("/", h.RewardsHandler.GetRewards)
					r.Get("/history", h.RewardsHandler.GetHistory)
					r.Post("/redeem", h.RewardsHandler.Redeem)
				})
				r.Get("/redemptions", h.RewardsHandler.GetRedemptions)
				r.Route("/notifications", func(r chi.Router) {
					r.Get("/", h.NotificationHandler.GetNotifications)
					r.Post("/{id}/read", h.NotificationHandler.MarkRead)
					r.Post("/read-all", h.NotificationHandler.MarkAllRead)
				})
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(auth.AuthMiddleware)
			r.Route("/reports", func(r chi.Router) {
				r.Post("/", h.ReportHandler.AddReport)
				r.Get("/", h.ReportHandler.GetReports)
				r.Get("/summary", h.ReportHandler.GetSummary)
				r.Get("/{id}", h.ReportHandler.GetReport)
				r.Patch("/{id}/status", h.ReportHandler.UpdateStatus)
			})
		})
	})

	return r
}
