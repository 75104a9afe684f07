/**
 * @description
 * This file sets up the HTTP router for the admin-service. It defines the API
 * endpoints, associates them with their corresponding handlers, and applies
 * middleware for logging, panic recovery, CORS, and admin authentication.
 *
 * @dependencies
 * - net/http: Standard Go library for HTTP functionality.
 * - github.com/go-chi/chi/v5: A lightweight and idiomatic router for Go.
 * - github.com/go-chi/cors: CORS middleware for the admin dashboard origin.
 */

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// AdminRoutes creates and returns the router for the admin control plane.
func AdminRoutes(h *AdminHandlers, jwtSecret string, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()

	// Add standard middleware for logging, panic recovery, and timeouts.
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	if len(allowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   allowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("healthy"))
	})

	// Group routes that require admin authentication.
	r.Group(func(r chi.Router) {
		r.Use(AdminAuthMiddleware(jwtSecret))

		// Vendor verification
		r.Get("/vendors", h.ListVendorsHandler)
		r.Get("/vendors/{id}", h.GetVendorHandler)
		r.Post("/vendors/{id}/approve", h.ApproveVendorHandler)
		r.Post("/vendors/{id}/request-changes", h.RequestVendorChangesHandler)
		r.Post("/vendors/{id}/disable-payout", h.DisableVendorPayoutHandler)

		// Read ledgers
		r.Get("/bookings", h.ListBookingsHandler)
		r.Get("/payments", h.ListPaymentsHandler)
		r.Get("/audit-logs", h.ListAuditLogsHandler)

		// Payout approval
		r.Get("/payouts", h.ListPayoutsHandler)
		r.Post("/payouts/{id}/approve", h.ApprovePayoutHandler)
		r.Post("/payouts/{id}/hold", h.HoldPayoutHandler)

		// Dispute resolution
		r.Get("/disputes", h.ListDisputesHandler)
		r.Post("/disputes/{id}/resolve", h.ResolveDisputeHandler)

		// Finance overview
		r.Get("/finance/overview", h.FinanceOverviewHandler)

		// Privileged ops tools (feature flagged)
		r.Post("/ops/reset-dummy-data", h.OpsResetDummyDataHandler)
		r.Post("/ops/reconcile-dummy-payments", h.OpsReconcileDummyPaymentsHandler)
	})

	return r
}
