package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/innobi/opsboard/internal/http/approval"
	"github.com/innobi/opsboard/internal/http/customer"
	"github.com/innobi/opsboard/internal/http/dashboard"
	"github.com/innobi/opsboard/internal/http/employee"
	"github.com/innobi/opsboard/internal/http/importcsv"
	"github.com/innobi/opsboard/internal/http/invoice"
	"github.com/innobi/opsboard/internal/http/project"
	"github.com/innobi/opsboard/internal/http/purchaseorder"
	"github.com/innobi/opsboard/internal/http/vendor"
)

type Handlers struct {
	Customers      *customer.Handler
	Employees      *employee.Handler
	Projects       *project.Handler
	Vendors        *vendor.Handler
	PurchaseOrders *purchaseorder.Handler
	Invoices       *invoice.Handler
	Dashboard      *dashboard.Handler
	Approvals      *approval.Handler
	Import         *importcsv.Handler
}

func New(h Handlers, allowedOrigins []string) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/customers", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Customers.Routes(r)
		})

		r.Route("/employees", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Employees.Routes(r)
		})

		r.Route("/projects", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Projects.Routes(r)
		})

		r.Route("/vendors", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Vendors.Routes(r)
		})

		r.Route("/purchase-orders", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.PurchaseOrders.Routes(r)
		})

		r.Route("/invoices", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Invoices.Routes(r)
		})

		r.Route("/dashboard", h.Dashboard.Routes)

		r.Route("/approvals", h.Approvals.Routes)

		r.Route("/import", h.Import.Routes)
	})

	return router
}
