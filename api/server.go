/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for frontend

ROUTE GROUPS:
  /api/accounts/*        Accounts, transactions, per-account projections
  /api/projection        Bulk projection across every account
  /api/expenses/*        Recurring obligations (also incomes, loans,
  /api/transfers/*       transfers)
  /api/jobs/* /api/payroll/*  Payroll schedule
  /api/commute/*         Transit systems and rides
  /api/wishlists/*       Desired purchases

SECURITY NOTE:
  No authentication middleware currently. All endpoints are public.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Route("/api", func(r chi.Router) {
		// Account routes
		r.Route("/accounts", func(r chi.Router) {
			r.Get("/", h.ListAccounts)
			r.Post("/", h.CreateAccount)
			r.Get("/{id}", h.GetAccount)
			r.Get("/{id}/transactions", h.GetTransactions)
			r.Post("/{id}/transactions", h.CreateTransaction)
			r.Get("/{id}/projection", h.GetProjection)
		})

		// Bulk projection
		r.Get("/projection", h.GetAllProjections)

		// Obligation routes
		r.Route("/expenses", func(r chi.Router) {
			r.Get("/", h.ListExpenses)
			r.Post("/", h.CreateExpense)
		})
		r.Route("/incomes", func(r chi.Router) {
			r.Get("/", h.ListIncomes)
			r.Post("/", h.CreateIncome)
		})
		r.Route("/loans", func(r chi.Router) {
			r.Get("/", h.ListLoans)
			r.Post("/", h.CreateLoan)
		})
		r.Route("/transfers", func(r chi.Router) {
			r.Get("/", h.ListTransfers)
			r.Post("/", h.CreateTransfer)
		})

		// Payroll routes
		r.Route("/jobs", func(r chi.Router) {
			r.Get("/", h.ListJobs)
			r.Post("/", h.CreateJob)
		})
		r.Route("/payroll", func(r chi.Router) {
			r.Get("/", h.ListPayroll)
			r.Post("/", h.CreatePayrollEntry)
		})

		// Commute routes
		r.Route("/commute", func(r chi.Router) {
			r.Route("/systems", func(r chi.Router) {
				r.Get("/", h.ListCommuteSystems)
				r.Post("/", h.CreateCommuteSystem)
			})
			r.Route("/rides", func(r chi.Router) {
				r.Get("/", h.ListCommuteRides)
				r.Post("/", h.CreateCommuteRide)
			})
		})

		// Wishlist routes
		r.Route("/wishlists", func(r chi.Router) {
			r.Get("/", h.ListWishlists)
			r.Post("/", h.CreateWishlist)
		})
	})

	return r
}
