// Package dashboard aggregates the operational entities into the KPI
// snapshot and chart series the overview screen renders.
package dashboard

// Snapshot is a full dashboard payload computed at one instant. Every field
// is well-defined on an empty database: counts and totals are zero and the
// revenue series still spans six months.
type Snapshot struct {
	TotalCustomers       int     `json:"totalCustomers"`
	TotalEmployees       int     `json:"totalEmployees"`
	TotalProjects        int     `json:"totalProjects"`
	ActiveProjects       int     `json:"activeProjects"`
	TotalVendors         int     `json:"totalVendors"`
	TotalPurchaseOrders  int     `json:"totalPurchaseOrders"`
	ActivePurchaseOrders int     `json:"activePurchaseOrders"`
	TotalInvoices        int     `json:"totalInvoices"`
	PendingInvoices      int     `json:"pendingInvoices"`
	OverdueInvoices      int     `json:"overdueInvoices"`
	TotalRevenue         float64 `json:"totalRevenue"`
	AvgInvoiceSize       float64 `json:"avgInvoiceSize"`
	AvgProjectRevenue    float64 `json:"avgProjectRevenue"`

	RevenueByMonth         []MonthPoint `json:"revenueByMonth"`
	ProjectsByStatus       []ChartPoint `json:"projectsByStatus"`
	PurchaseOrdersByStatus []ChartPoint `json:"purchaseOrdersByStatus"`
	TopVendorsBySpend      []ChartPoint `json:"topVendorsBySpend"`
	TopProjectsByRevenue   []ChartPoint `json:"topProjectsByRevenue"`
	PendingDue             DueBuckets   `json:"pendingDue"`
}

// MonthPoint is one calendar-month bucket of the revenue series. Label is
// formatted like "Jan 2006".
type MonthPoint struct {
	Label string  `json:"label"`
	Total float64 `json:"total"`
}

// ChartPoint is one labeled value of a distribution or ranking chart.
type ChartPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// DueBuckets slices pending invoices by time until their due date. The
// buckets are cumulative: an invoice due in 5 days counts in all three.
// DueSoon counts invoices due within 3 days or already past due.
type DueBuckets struct {
	Within7Days  int `json:"within7Days"`
	Within14Days int `json:"within14Days"`
	Within30Days int `json:"within30Days"`
	DueSoon      int `json:"dueSoon"`
}
