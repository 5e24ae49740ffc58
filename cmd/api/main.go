package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/innobi/opsboard/internal/approval"
	approvalStore "github.com/innobi/opsboard/internal/approval/store"
	"github.com/innobi/opsboard/internal/config"
	"github.com/innobi/opsboard/internal/customer"
	customerStore "github.com/innobi/opsboard/internal/customer/store"
	"github.com/innobi/opsboard/internal/dashboard"
	"github.com/innobi/opsboard/internal/database"
	"github.com/innobi/opsboard/internal/employee"
	employeeStore "github.com/innobi/opsboard/internal/employee/store"
	opsHttp "github.com/innobi/opsboard/internal/http"
	approvalHandler "github.com/innobi/opsboard/internal/http/approval"
	customerHandler "github.com/innobi/opsboard/internal/http/customer"
	dashboardHandler "github.com/innobi/opsboard/internal/http/dashboard"
	employeeHandler "github.com/innobi/opsboard/internal/http/employee"
	importHandler "github.com/innobi/opsboard/internal/http/importcsv"
	invoiceHandler "github.com/innobi/opsboard/internal/http/invoice"
	projectHandler "github.com/innobi/opsboard/internal/http/project"
	poHandler "github.com/innobi/opsboard/internal/http/purchaseorder"
	vendorHandler "github.com/innobi/opsboard/internal/http/vendor"
	"github.com/innobi/opsboard/internal/importer"
	"github.com/innobi/opsboard/internal/invoice"
	invoiceStore "github.com/innobi/opsboard/internal/invoice/store"
	"github.com/innobi/opsboard/internal/project"
	projectStore "github.com/innobi/opsboard/internal/project/store"
	"github.com/innobi/opsboard/internal/purchaseorder"
	poStore "github.com/innobi/opsboard/internal/purchaseorder/store"
	"github.com/innobi/opsboard/internal/vendors"
	vendorStore "github.com/innobi/opsboard/internal/vendors/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	approvalLog, err := approvalStore.Open(cfg.Approvals.Path)
	if err != nil {
		slog.Error("failed to open approval store", "error", err)
		os.Exit(1)
	}
	defer approvalLog.Close()

	var (
		customerService = customer.NewService(customerStore.New(db))
		employeeService = employee.NewService(employeeStore.New(db))
		projectService  = project.NewService(projectStore.New(db))
		vendorService   = vendor.NewService(vendorStore.New(db))
		poService       = purchaseorder.NewService(poStore.New(db))
		invoiceService  = invoice.NewService(invoiceStore.New(db))
		approvalService = approval.NewService(approvalLog)
		importService   = importer.NewService(invoiceService, projectService)

		dashboardService = dashboard.NewService(dashboard.Sources{
			Customers:      customerService,
			Employees:      employeeService,
			Projects:       projectService,
			Vendors:        vendorService,
			PurchaseOrders: poService,
			Invoices:       invoiceService,
		})
	)

	router := opsHttp.New(opsHttp.Handlers{
		Customers:      customerHandler.NewHandler(customerService),
		Employees:      employeeHandler.NewHandler(employeeService),
		Projects:       projectHandler.NewHandler(projectService),
		Vendors:        vendorHandler.NewHandler(vendorService),
		PurchaseOrders: poHandler.NewHandler(poService, approvalService),
		Invoices:       invoiceHandler.NewHandler(invoiceService, approvalService),
		Dashboard:      dashboardHandler.NewHandler(dashboardService),
		Approvals:      approvalHandler.NewHandler(approvalService),
		Import:         importHandler.NewHandler(importService),
	}, cfg.CORS.AllowedOrigins)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "addr", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	if err := server.ListenAndServe(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
