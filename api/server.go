/*
server.go - HTTP router and middleware configuration

Wires URLs to handlers with chi. Middleware: request logging, panic
recovery, request IDs, CORS for browser frontends. No authentication
middleware here: actor identity arrives from the external auth layer
as created_by and is passed through untouched.
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Route("/transactions", func(r chi.Router) {
			r.Post("/", h.RecordTransaction)
			r.Get("/", h.ListTransactions)
			r.Get("/search", h.SearchTransactions)
			r.Get("/ref/{ref}", h.GetTransactionByReference)
			r.Get("/{id}", h.GetTransaction)
		})

		r.Route("/accounts", func(r chi.Router) {
			r.Get("/", h.ListAccounts)
			r.Post("/", h.CreateAccount)
			r.Post("/seed", h.SeedChart)
			r.Get("/{id}", h.GetAccount)
			r.Put("/{id}", h.UpdateAccount)
			r.Delete("/{id}", h.DeactivateAccount)
			r.Get("/{id}/transactions", h.GetAccountTransactions)
			r.Get("/{id}/balance", h.GetAccountBalance)
		})
	})

	return r
}
