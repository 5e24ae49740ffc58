package dashboard

import (
	"context"

	"github.com/innobi/opsboard/internal/customer"
	"github.com/innobi/opsboard/internal/employee"
	"github.com/innobi/opsboard/internal/invoice"
	"github.com/innobi/opsboard/internal/project"
	"github.com/innobi/opsboard/internal/purchaseorder"
	"github.com/innobi/opsboard/internal/vendors"
)

// Sources adapts the entity services to the Lister interface.
type Sources struct {
	Customers      *customer.Service
	Employees      *employee.Service
	Projects       *project.Service
	Vendors        *vendor.Service
	PurchaseOrders *purchaseorder.Service
	Invoices       *invoice.Service
}

func (s Sources) ListCustomers(ctx context.Context) ([]*customer.Customer, error) {
	return s.Customers.List(ctx)
}

func (s Sources) ListEmployees(ctx context.Context) ([]*employee.Employee, error) {
	return s.Employees.List(ctx)
}

func (s Sources) ListProjects(ctx context.Context) ([]*project.Project, error) {
	return s.Projects.List(ctx)
}

func (s Sources) ListVendors(ctx context.Context) ([]*vendor.Vendor, error) {
	return s.Vendors.List(ctx)
}

func (s Sources) ListPurchaseOrders(ctx context.Context) ([]*purchaseorder.PurchaseOrder, error) {
	return s.PurchaseOrders.List(ctx, purchaseorder.ListFilter{})
}

func (s Sources) ListInvoices(ctx context.Context) ([]*invoice.Invoice, error) {
	return s.Invoices.List(ctx, invoice.ListFilter{})
}
