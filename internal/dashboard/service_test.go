package dashboard_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/innobi/opsboard/internal/customer"
	"github.com/innobi/opsboard/internal/dashboard"
	"github.com/innobi/opsboard/internal/employee"
	"github.com/innobi/opsboard/internal/invoice"
	"github.com/innobi/opsboard/internal/project"
	"github.com/innobi/opsboard/internal/purchaseorder"
	"github.com/innobi/opsboard/internal/vendors"
)

var now = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func TestComputeEmpty(t *testing.T) {
	snap := dashboard.Compute(now, nil, nil, nil, nil, nil, nil)

	assert.Zero(t, snap.TotalCustomers)
	assert.Zero(t, snap.TotalInvoices)
	assert.Zero(t, snap.TotalRevenue)
	assert.Zero(t, snap.AvgInvoiceSize)
	assert.Empty(t, snap.ProjectsByStatus)
	assert.Empty(t, snap.TopVendorsBySpend)

	// The revenue series always spans six months, current month last.
	require.Len(t, snap.RevenueByMonth, 6)
	assert.Equal(t, "Jan 2025", snap.RevenueByMonth[0].Label)
	assert.Equal(t, "Jun 2025", snap.RevenueByMonth[5].Label)

	for _, p := range snap.RevenueByMonth {
		assert.Zero(t, p.Total)
	}
}

func TestComputeCountsAndRevenue(t *testing.T) {
	projects := []*project.Project{
		{ID: 1, ProjectNumber: "P-1", Status: project.StatusActive},
		{ID: 2, ProjectNumber: "P-2", Status: "Completed"},
		{ID: 3, ProjectNumber: "P-3", Status: project.StatusActive},
		{ID: 4, ProjectNumber: "P-4", Status: "active"}, // wrong case does not count
	}

	pos := []*purchaseorder.PurchaseOrder{
		{ID: 1, VendorName: "Acme", Amount: 100, Status: purchaseorder.StatusOrdered},
		{ID: 2, VendorName: "Acme", Amount: 50, Status: purchaseorder.StatusCancelled},
		{ID: 3, VendorName: "Bolt", Amount: 75, Status: purchaseorder.StatusUnderReview},
	}

	invoices := []*invoice.Invoice{
		{ID: 1, ProjectNo: "P-1", Amount: 1000, Status: invoice.StatusPaid, InvoiceDate: now.AddDate(0, 0, -1), DueDate: now.AddDate(0, 0, 10)},
		{ID: 2, ProjectNo: "P-1", Amount: 500, Status: invoice.StatusPending, InvoiceDate: now.AddDate(0, -1, 0), DueDate: now.AddDate(0, 0, 2)},
		{ID: 3, ProjectNo: "P-2", Amount: 250, Status: invoice.StatusOverdue, InvoiceDate: now.AddDate(0, -7, 0), DueDate: now.AddDate(0, 0, -20)},
	}

	snap := dashboard.Compute(now,
		[]*customer.Customer{{ID: 1}},
		[]*employee.Employee{{ID: 1}, {ID: 2}},
		projects,
		[]*vendor.Vendor{{ID: 1}, {ID: 2}},
		pos,
		invoices,
	)

	assert.Equal(t, 1, snap.TotalCustomers)
	assert.Equal(t, 2, snap.TotalEmployees)
	assert.Equal(t, 4, snap.TotalProjects)
	assert.Equal(t, 2, snap.ActiveProjects)
	assert.Equal(t, 3, snap.TotalPurchaseOrders)
	assert.Equal(t, 2, snap.ActivePurchaseOrders)
	assert.Equal(t, 3, snap.TotalInvoices)
	assert.Equal(t, 1, snap.PendingInvoices)
	assert.Equal(t, 1, snap.OverdueInvoices)

	assert.InDelta(t, 1750.0, snap.TotalRevenue, 0.001)
	assert.InDelta(t, 1750.0/3, snap.AvgInvoiceSize, 0.001)
	assert.InDelta(t, 1750.0/4, snap.AvgProjectRevenue, 0.001)

	// Invoice 3 is seven months old and falls outside the revenue window.
	require.Len(t, snap.RevenueByMonth, 6)
	assert.InDelta(t, 1000.0, snap.RevenueByMonth[5].Total, 0.001) // Jun
	assert.InDelta(t, 500.0, snap.RevenueByMonth[4].Total, 0.001)  // May

	// Vendor ranking skips the cancelled order.
	require.Len(t, snap.TopVendorsBySpend, 2)
	assert.Equal(t, dashboard.ChartPoint{Label: "Acme", Value: 100}, snap.TopVendorsBySpend[0])
	assert.Equal(t, dashboard.ChartPoint{Label: "Bolt", Value: 75}, snap.TopVendorsBySpend[1])

	// Project revenue ranking sums all invoices.
	require.Len(t, snap.TopProjectsByRevenue, 2)
	assert.Equal(t, dashboard.ChartPoint{Label: "P-1", Value: 1500}, snap.TopProjectsByRevenue[0])

	// The pending invoice is due in 2 days.
	assert.Equal(t, 1, snap.PendingDue.DueSoon)
	assert.Equal(t, 1, snap.PendingDue.Within7Days)
	assert.Equal(t, 1, snap.PendingDue.Within14Days)
	assert.Equal(t, 1, snap.PendingDue.Within30Days)
}

func TestComputeRevenueMonthsAtMonthEnd(t *testing.T) {
	// The 31st is past the last day of several preceding months; bucket
	// labels must still cover each trailing month exactly once.
	monthEnd := time.Date(2026, 3, 31, 23, 0, 0, 0, time.UTC)

	invoices := []*invoice.Invoice{
		{ID: 1, Amount: 100, Status: invoice.StatusPaid, InvoiceDate: time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC), DueDate: monthEnd},
		{ID: 2, Amount: 50, Status: invoice.StatusPaid, InvoiceDate: time.Date(2025, 11, 5, 0, 0, 0, 0, time.UTC), DueDate: monthEnd},
	}

	snap := dashboard.Compute(monthEnd, nil, nil, nil, nil, nil, invoices)

	require.Len(t, snap.RevenueByMonth, 6)

	labels := make([]string, 6)
	totals := map[string]float64{}
	for i, p := range snap.RevenueByMonth {
		labels[i] = p.Label
		totals[p.Label] = p.Total
	}

	assert.Equal(t, []string{"Oct 2025", "Nov 2025", "Dec 2025", "Jan 2026", "Feb 2026", "Mar 2026"}, labels)
	assert.InDelta(t, 50.0, totals["Nov 2025"], 0.001)
	assert.InDelta(t, 100.0, totals["Feb 2026"], 0.001)
}

func TestComputeStatusDistributions(t *testing.T) {
	projects := []*project.Project{
		{ID: 1, Status: "Active"},
		{ID: 2, Status: "Active"},
		{ID: 3, Status: "On Hold"},
	}

	pos := []*purchaseorder.PurchaseOrder{
		{ID: 1, Status: purchaseorder.StatusOrdered},
		{ID: 2, Status: purchaseorder.StatusOrdered},
		{ID: 3, Status: purchaseorder.StatusReceived},
	}

	snap := dashboard.Compute(now, nil, nil, projects, nil, pos, nil)

	assert.Equal(t, []dashboard.ChartPoint{
		{Label: "Active", Value: 2},
		{Label: "On Hold", Value: 1},
	}, snap.ProjectsByStatus)

	assert.Equal(t, []dashboard.ChartPoint{
		{Label: "Ordered", Value: 2},
		{Label: "Received", Value: 1},
	}, snap.PurchaseOrdersByStatus)
}

func TestComputeTopRankingCapped(t *testing.T) {
	var invoices []*invoice.Invoice
	for i := 0; i < 8; i++ {
		invoices = append(invoices, &invoice.Invoice{
			ID:          int64(i + 1),
			ProjectNo:   string(rune('A' + i)),
			Amount:      float64(100 * (i + 1)),
			Status:      invoice.StatusPaid,
			InvoiceDate: now,
			DueDate:     now,
		})
	}

	snap := dashboard.Compute(now, nil, nil, nil, nil, nil, invoices)

	require.Len(t, snap.TopProjectsByRevenue, 5)
	assert.Equal(t, "H", snap.TopProjectsByRevenue[0].Label)
	assert.InDelta(t, 800.0, snap.TopProjectsByRevenue[0].Value, 0.001)
}

type stubLister struct {
	invoices []*invoice.Invoice
	err      error
}

func (s stubLister) ListCustomers(context.Context) ([]*customer.Customer, error) { return nil, s.err }
func (s stubLister) ListEmployees(context.Context) ([]*employee.Employee, error) { return nil, nil }
func (s stubLister) ListProjects(context.Context) ([]*project.Project, error)   { return nil, nil }
func (s stubLister) ListVendors(context.Context) ([]*vendor.Vendor, error)      { return nil, nil }
func (s stubLister) ListPurchaseOrders(context.Context) ([]*purchaseorder.PurchaseOrder, error) {
	return nil, nil
}
func (s stubLister) ListInvoices(context.Context) ([]*invoice.Invoice, error) {
	return s.invoices, nil
}

func TestService_Snapshot(t *testing.T) {
	svc := dashboard.NewService(stubLister{
		invoices: []*invoice.Invoice{
			{ID: 1, Amount: 42, Status: invoice.StatusPaid, InvoiceDate: time.Now(), DueDate: time.Now()},
		},
	})

	snap, err := svc.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, snap.TotalInvoices)
	assert.InDelta(t, 42.0, snap.TotalRevenue, 0.001)
}

func TestService_SnapshotPropagatesErrors(t *testing.T) {
	svc := dashboard.NewService(stubLister{err: errors.New("db down")})

	_, err := svc.Snapshot(context.Background())
	assert.Error(t, err)
}
