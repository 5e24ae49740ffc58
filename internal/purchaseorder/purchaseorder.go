package purchaseorder

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("purchase order not found")

// Status is the lifecycle state of a purchase order. It is persisted and
// transmitted as a small integer; the constants below are the only values
// with meaning.
type Status int

const (
	StatusCancelled   Status = 0
	StatusReceived    Status = 1
	StatusOrdered     Status = 2
	StatusUnderReview Status = 3
)

// AllStatuses returns the full vocabulary in selection order (newest phase
// first, matching the order forms present them in).
func AllStatuses() []Status {
	return []Status{StatusUnderReview, StatusOrdered, StatusReceived, StatusCancelled}
}

// NormalizeStatus coerces an arbitrary integer to a recognized status.
// Unknown values default to UnderReview so a corrupt row re-enters the
// review queue instead of silently counting as active.
func NormalizeStatus(raw int) Status {
	switch Status(raw) {
	case StatusCancelled, StatusReceived, StatusOrdered, StatusUnderReview:
		return Status(raw)
	}

	return StatusUnderReview
}

func (s Status) String() string {
	switch s {
	case StatusCancelled:
		return "Cancelled"
	case StatusReceived:
		return "Received"
	case StatusOrdered:
		return "Ordered"
	case StatusUnderReview:
		return "Under Review"
	}

	return "Unknown"
}

// Active reports whether the order still counts toward open-PO metrics.
// Everything except Cancelled is active.
func (s Status) Active() bool {
	return s != StatusCancelled
}

// PurchaseOrder represents a vendor purchase order row. ProjectNo and
// VendorName are denormalized display fields maintained alongside the ids.
type PurchaseOrder struct {
	ID         int64
	ProjectID  int64
	VendorID   int64
	ProjectNo  string
	VendorName string
	CostType   string
	Amount     float64
	Currency   string
	Status     Status
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}
