package main

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/innobi/opsboard/cmd/tui/internal/view"
	"github.com/innobi/opsboard/internal/approval"
	approvalStore "github.com/innobi/opsboard/internal/approval/store"
	"github.com/innobi/opsboard/internal/config"
	"github.com/innobi/opsboard/internal/customer"
	customerStore "github.com/innobi/opsboard/internal/customer/store"
	"github.com/innobi/opsboard/internal/dashboard"
	"github.com/innobi/opsboard/internal/database"
	"github.com/innobi/opsboard/internal/employee"
	employeeStore "github.com/innobi/opsboard/internal/employee/store"
	"github.com/innobi/opsboard/internal/invoice"
	invoiceStore "github.com/innobi/opsboard/internal/invoice/store"
	"github.com/innobi/opsboard/internal/project"
	projectStore "github.com/innobi/opsboard/internal/project/store"
	"github.com/innobi/opsboard/internal/purchaseorder"
	poStore "github.com/innobi/opsboard/internal/purchaseorder/store"
	"github.com/innobi/opsboard/internal/vendors"
	vendorStore "github.com/innobi/opsboard/internal/vendors/store"
)

type model struct {
	invoiceService  *invoice.Service
	poService       *purchaseorder.Service
	approvalService *approval.Service
	dashService     *dashboard.Service

	currentView View

	dashboardView view.DashboardModel
	invoicesView  view.InvoicesModel
	poView        view.PurchaseOrdersModel
}

type View int

const (
	ViewMenu           View = 0
	ViewDashboard      View = 1
	ViewInvoices       View = 2
	ViewPurchaseOrders View = 3
)

func initialModel() model {
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

	approvalLog, err := approvalStore.Open(cfg.Approvals.Path)
	if err != nil {
		slog.Error("failed to open approval store", "error", err)
		os.Exit(1)
	}

	invoiceSvc := invoice.NewService(invoiceStore.New(db))
	poSvc := purchaseorder.NewService(poStore.New(db))
	approvalSvc := approval.NewService(approvalLog)

	dashSvc := dashboard.NewService(dashboard.Sources{
		Customers:      customer.NewService(customerStore.New(db)),
		Employees:      employee.NewService(employeeStore.New(db)),
		Projects:       project.NewService(projectStore.New(db)),
		Vendors:        vendor.NewService(vendorStore.New(db)),
		PurchaseOrders: poSvc,
		Invoices:       invoiceSvc,
	})

	return model{
		invoiceService:  invoiceSvc,
		poService:       poSvc,
		approvalService: approvalSvc,
		dashService:     dashSvc,
		currentView:     ViewMenu,
		dashboardView:   view.NewDashboardModel(dashSvc),
		invoicesView:    view.NewInvoicesModel(invoiceSvc, approvalSvc),
		poView:          view.NewPurchaseOrdersModel(poSvc, approvalSvc),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewDashboard
				m.dashboardView = view.NewDashboardModel(m.dashService)

				return m, m.dashboardView.Init()
			case "2":
				m.currentView = ViewInvoices
				m.invoicesView = view.NewInvoicesModel(m.invoiceService, m.approvalService)

				return m, m.invoicesView.Init()
			case "3":
				m.currentView = ViewPurchaseOrders
				m.poView = view.NewPurchaseOrdersModel(m.poService, m.approvalService)

				return m, m.poView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewDashboard:
		var newModel tea.Model
		newModel, cmd = m.dashboardView.Update(msg)
		m.dashboardView = newModel.(view.DashboardModel)
	case ViewInvoices:
		var newModel tea.Model
		newModel, cmd = m.invoicesView.Update(msg)
		m.invoicesView = newModel.(view.InvoicesModel)
	case ViewPurchaseOrders:
		var newModel tea.Model
		newModel, cmd = m.poView.Update(msg)
		m.poView = newModel.(view.PurchaseOrdersModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Opsboard TUI\n\n" +
				"1. Dashboard\n" +
				"2. Invoices\n" +
				"3. Purchase Orders\n\n" +
				"q. Quit",
		)
	case ViewDashboard:
		return m.dashboardView.View()
	case ViewInvoices:
		return m.invoicesView.View()
	case ViewPurchaseOrders:
		return m.poView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
