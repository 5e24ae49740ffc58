package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/innobi/opsboard/internal/dashboard"
)

type DashboardModel struct {
	CommonModel
	svc *dashboard.Service

	snap    *dashboard.Snapshot
	loading bool
	err     error
}

func NewDashboardModel(svc *dashboard.Service) DashboardModel {
	return DashboardModel{svc: svc, loading: true}
}

func (m DashboardModel) Title() string     { return "Dashboard" }
func (m DashboardModel) ShortHelp() string { return "Esc: back | r: refresh" }

func (m DashboardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadDashboardMsg:
		m.loading = false
		m.snap = msg.snap
		m.err = msg.err

		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		}
	}

	return m, nil
}

func (m DashboardModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading dashboard...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	snap := m.snap

	kpis := strings.Join([]string{
		kpiBox("Customers", fmt.Sprintf("%d", snap.TotalCustomers)),
		kpiBox("Employees", fmt.Sprintf("%d", snap.TotalEmployees)),
		kpiBox("Projects", fmt.Sprintf("%d / %d active", snap.TotalProjects, snap.ActiveProjects)),
		kpiBox("Vendors", fmt.Sprintf("%d", snap.TotalVendors)),
		kpiBox("Open POs", fmt.Sprintf("%d / %d", snap.ActivePurchaseOrders, snap.TotalPurchaseOrders)),
		kpiBox("Invoices", fmt.Sprintf("%d (%d pending, %d overdue)",
			snap.TotalInvoices, snap.PendingInvoices, snap.OverdueInvoices)),
		kpiBox("Revenue", fmt.Sprintf("%.2f", snap.TotalRevenue)),
	}, " ")

	var revenue strings.Builder

	revenue.WriteString("Revenue by month\n")

	maxTotal := 0.0
	for _, p := range snap.RevenueByMonth {
		if p.Total > maxTotal {
			maxTotal = p.Total
		}
	}

	for _, p := range snap.RevenueByMonth {
		width := 0
		if maxTotal > 0 {
			width = int(p.Total / maxTotal * 30)
		}

		revenue.WriteString(fmt.Sprintf("%-9s %s %.2f\n", p.Label, strings.Repeat("█", width), p.Total))
	}

	var due strings.Builder

	due.WriteString("Pending invoices due\n")
	due.WriteString(fmt.Sprintf("  soon (3d):  %d\n", snap.PendingDue.DueSoon))
	due.WriteString(fmt.Sprintf("  within 7d:  %d\n", snap.PendingDue.Within7Days))
	due.WriteString(fmt.Sprintf("  within 14d: %d\n", snap.PendingDue.Within14Days))
	due.WriteString(fmt.Sprintf("  within 30d: %d\n", snap.PendingDue.Within30Days))

	bottom := lipgloss.JoinHorizontal(lipgloss.Top,
		panel(revenue.String()),
		panel(due.String()),
		panel(rankPanel("Top vendors by spend", snap.TopVendorsBySpend)),
		panel(rankPanel("Top projects by revenue", snap.TopProjectsByRevenue)),
	)

	content := lipgloss.JoinVertical(lipgloss.Left, kpis, "", bottom)

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func kpiBox(title, value string) string {
	return lipgloss.NewStyle().
		Padding(0, 1).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")).
		Render(lipgloss.NewStyle().Faint(true).Render(title) + "\n" + value)
}

func panel(content string) string {
	return lipgloss.NewStyle().
		Padding(0, 1).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(content)
}

func rankPanel(title string, points []dashboard.ChartPoint) string {
	var b strings.Builder

	b.WriteString(title + "\n")

	if len(points) == 0 {
		b.WriteString("  (none)\n")
	}

	for i, p := range points {
		b.WriteString(fmt.Sprintf("  %d. %-20s %.2f\n", i+1, p.Label, p.Value))
	}

	return b.String()
}

type loadDashboardMsg struct {
	snap *dashboard.Snapshot
	err  error
}

func (m DashboardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		snap, err := m.svc.Snapshot(ctx)

		return loadDashboardMsg{snap: snap, err: err}
	}
}
