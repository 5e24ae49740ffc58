package dashboard

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/innobi/opsboard/internal/customer"
	"github.com/innobi/opsboard/internal/employee"
	"github.com/innobi/opsboard/internal/invoice"
	"github.com/innobi/opsboard/internal/project"
	"github.com/innobi/opsboard/internal/purchaseorder"
	"github.com/innobi/opsboard/internal/vendors"
)

// revenueMonths is how many trailing calendar months the revenue series
// spans, the current month included.
const revenueMonths = 6

// topN caps the vendor-spend and project-revenue rankings.
const topN = 5

// Lister fans a snapshot request out to the entity services. Each method
// returns everything; aggregation happens in memory, like the dashboard it
// replaced did.
type Lister interface {
	ListCustomers(ctx context.Context) ([]*customer.Customer, error)
	ListEmployees(ctx context.Context) ([]*employee.Employee, error)
	ListProjects(ctx context.Context) ([]*project.Project, error)
	ListVendors(ctx context.Context) ([]*vendor.Vendor, error)
	ListPurchaseOrders(ctx context.Context) ([]*purchaseorder.PurchaseOrder, error)
	ListInvoices(ctx context.Context) ([]*invoice.Invoice, error)
}

type Service struct {
	lister Lister
	now    func() time.Time
}

func NewService(lister Lister) *Service {
	return &Service{lister: lister, now: time.Now}
}

// Snapshot loads all entities and computes the dashboard payload.
func (s *Service) Snapshot(ctx context.Context) (*Snapshot, error) {
	customers, err := s.lister.ListCustomers(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing customers: %w", err)
	}

	employees, err := s.lister.ListEmployees(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing employees: %w", err)
	}

	projects, err := s.lister.ListProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}

	vendors, err := s.lister.ListVendors(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing vendors: %w", err)
	}

	pos, err := s.lister.ListPurchaseOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing purchase orders: %w", err)
	}

	invoices, err := s.lister.ListInvoices(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing invoices: %w", err)
	}

	snap := Compute(s.now(), customers, employees, projects, vendors, pos, invoices)

	return &snap, nil
}

// Compute builds a snapshot from already-loaded entities. It is pure: same
// inputs and instant, same snapshot.
func Compute(
	now time.Time,
	customers []*customer.Customer,
	employees []*employee.Employee,
	projects []*project.Project,
	vendors []*vendor.Vendor,
	pos []*purchaseorder.PurchaseOrder,
	invoices []*invoice.Invoice,
) Snapshot {
	snap := Snapshot{
		TotalCustomers:      len(customers),
		TotalEmployees:      len(employees),
		TotalProjects:       len(projects),
		TotalVendors:        len(vendors),
		TotalPurchaseOrders: len(pos),
		TotalInvoices:       len(invoices),
	}

	for _, p := range projects {
		if p.Status == project.StatusActive {
			snap.ActiveProjects++
		}
	}

	snap.ProjectsByStatus = groupProjectsByStatus(projects)

	for _, po := range pos {
		if po.Status.Active() {
			snap.ActivePurchaseOrders++
		}
	}

	snap.PurchaseOrdersByStatus = groupPurchaseOrdersByStatus(pos)
	snap.TopVendorsBySpend = topVendorsBySpend(pos)

	for _, inv := range invoices {
		snap.TotalRevenue += inv.Amount

		switch invoice.NormalizeStatus(string(inv.Status)) {
		case invoice.StatusPending:
			snap.PendingInvoices++
			countDue(&snap.PendingDue, inv.DueDate, now)
		case invoice.StatusOverdue:
			snap.OverdueInvoices++
		}
	}

	if len(invoices) > 0 {
		snap.AvgInvoiceSize = snap.TotalRevenue / float64(len(invoices))
	}
	if len(projects) > 0 {
		snap.AvgProjectRevenue = snap.TotalRevenue / float64(len(projects))
	}

	snap.RevenueByMonth = revenueByMonth(invoices, now)
	snap.TopProjectsByRevenue = topProjectsByRevenue(invoices)

	return snap
}

// revenueByMonth buckets invoice amounts into the trailing calendar months,
// oldest first, current month last. Invoices outside the window are dropped.
// Buckets are anchored to the first of the month; adding months to now
// directly would skip or double months when now falls on the 29th-31st.
func revenueByMonth(invoices []*invoice.Invoice, now time.Time) []MonthPoint {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	months := make([]time.Time, revenueMonths)
	points := make([]MonthPoint, revenueMonths)

	for i := range points {
		months[i] = first.AddDate(0, i-revenueMonths+1, 0)
		points[i].Label = months[i].Format("Jan 2006")
	}

	for _, inv := range invoices {
		for i, m := range months {
			if inv.InvoiceDate.Year() == m.Year() && inv.InvoiceDate.Month() == m.Month() {
				points[i].Total += inv.Amount
				break
			}
		}
	}

	return points
}

func groupProjectsByStatus(projects []*project.Project) []ChartPoint {
	counts := map[string]int{}
	for _, p := range projects {
		counts[p.Status]++
	}

	return sortedPoints(counts)
}

func groupPurchaseOrdersByStatus(pos []*purchaseorder.PurchaseOrder) []ChartPoint {
	counts := map[string]int{}
	for _, po := range pos {
		counts[po.Status.String()]++
	}

	return sortedPoints(counts)
}

// topVendorsBySpend ranks vendors by the sum of their non-cancelled purchase
// order amounts, highest first, at most topN entries.
func topVendorsBySpend(pos []*purchaseorder.PurchaseOrder) []ChartPoint {
	spend := map[string]float64{}
	for _, po := range pos {
		if po.Status.Active() {
			spend[po.VendorName] += po.Amount
		}
	}

	return topPoints(spend)
}

// topProjectsByRevenue ranks projects by total invoiced amount, highest
// first, at most topN entries.
func topProjectsByRevenue(invoices []*invoice.Invoice) []ChartPoint {
	revenue := map[string]float64{}
	for _, inv := range invoices {
		revenue[inv.ProjectNo] += inv.Amount
	}

	return topPoints(revenue)
}

func countDue(buckets *DueBuckets, due time.Time, now time.Time) {
	days := int(math.Ceil(due.Sub(now).Hours() / 24))

	if days <= 7 {
		buckets.Within7Days++
	}
	if days <= 14 {
		buckets.Within14Days++
	}
	if days <= 30 {
		buckets.Within30Days++
	}
	if days <= 3 {
		buckets.DueSoon++
	}
}

// sortedPoints turns a count map into points ordered by count descending,
// label ascending on ties, so chart order is stable.
func sortedPoints(counts map[string]int) []ChartPoint {
	points := make([]ChartPoint, 0, len(counts))
	for label, n := range counts {
		points = append(points, ChartPoint{Label: label, Value: float64(n)})
	}

	sortPoints(points)

	return points
}

func topPoints(totals map[string]float64) []ChartPoint {
	points := make([]ChartPoint, 0, len(totals))
	for label, total := range totals {
		points = append(points, ChartPoint{Label: label, Value: total})
	}

	sortPoints(points)

	if len(points) > topN {
		points = points[:topN]
	}

	return points
}

func sortPoints(points []ChartPoint) {
	sort.Slice(points, func(i, j int) bool {
		if points[i].Value != points[j].Value {
			return points[i].Value > points[j].Value
		}

		return points[i].Label < points[j].Label
	})
}
