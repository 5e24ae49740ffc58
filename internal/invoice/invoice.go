package invoice

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("invoice not found")

// Status is the lifecycle state of an invoice. The five values below are the
// closed vocabulary shared with the web dashboard; anything else is treated
// as Pending.
type Status string

const (
	StatusPending   Status = "Pending"
	StatusApproved  Status = "Approved"
	StatusPaid      Status = "Paid"
	StatusOverdue   Status = "Overdue"
	StatusCancelled Status = "Cancelled"
)

// AllStatuses returns the full vocabulary in selection order. New invoices
// may be created in any status.
func AllStatuses() []Status {
	return []Status{StatusPending, StatusApproved, StatusPaid, StatusOverdue, StatusCancelled}
}

// NormalizeStatus coerces an arbitrary string to a recognized status.
// Unknown values never fail; they fall back to Pending.
func NormalizeStatus(raw string) Status {
	switch Status(raw) {
	case StatusPending, StatusApproved, StatusPaid, StatusOverdue, StatusCancelled:
		return Status(raw)
	}

	return StatusPending
}

// Invoice represents a customer invoice row.
type Invoice struct {
	ID          int64
	InvoiceNo   string
	ProjectID   int64
	ProjectNo   string
	Amount      float64
	Currency    string
	InvoiceDate time.Time
	DueDate     time.Time
	Status      Status
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}
