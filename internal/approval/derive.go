package approval

import (
	"fmt"
	"math"
	"time"

	"github.com/innobi/opsboard/internal/invoice"
	"github.com/innobi/opsboard/internal/purchaseorder"
)

// Badge is the reconciled approval state shown next to an entity's status.
// Unlike State it includes "na" for records where approval does not apply.
type Badge string

const (
	BadgePending  Badge = "pending"
	BadgeApproved Badge = "approved"
	BadgeRejected Badge = "rejected"
	BadgeNA       Badge = "na"
)

// Audit is the last-action summary rendered under the status badges. Actor
// is a fixed label derived from the action, not a real identity.
type Audit struct {
	Action string
	Actor  string
	At     time.Time
	Note   string
}

// Line renders the audit text shown in tables.
func (a Audit) Line() string {
	return fmt.Sprintf("Last action: %s on %s", a.Action, a.At.Format("2006-01-02 15:04"))
}

// Derived is the per-row display state: reconciled badge, whether
// approve/reject actions should be offered, and the audit summary.
type Derived struct {
	Badge     Badge
	CanDecide bool
	Audit     Audit
}

// DeriveInvoice reconciles an invoice's status with its decision history.
// Status wins for every invoice state: the log only matters for entities
// still awaiting a decision, and every invoice status implies one.
func DeriveInvoice(inv *invoice.Invoice, history []Entry, now time.Time) Derived {
	var (
		badge  Badge
		action string
		note   string
	)

	switch inv.Status {
	case invoice.StatusCancelled:
		badge, action = BadgeNA, "Cancelled"
	case invoice.StatusApproved:
		badge, action = BadgeApproved, "Approved"
	case invoice.StatusPaid:
		badge, action = BadgeApproved, "Paid"
	case invoice.StatusOverdue:
		badge, action = BadgeApproved, "Overdue"
		note = fmt.Sprintf("Overdue by %d days", overdueDays(inv.DueDate, now))
	default: // Pending, and anything normalization lets through
		badge, action = BadgePending, "Pending"
	}

	return Derived{
		Badge:     badge,
		CanDecide: badge == BadgePending,
		Audit: Audit{
			Action: action,
			Actor:  invoiceActor(action),
			At:     auditTime(history, inv.UpdatedAt, inv.CreatedAt),
			Note:   note,
		},
	}
}

// DerivePurchaseOrder reconciles a purchase order's status with its
// decision history. Cancelled and Ordered are authoritative; Received and
// UnderReview defer to the log for the badge.
func DerivePurchaseOrder(po *purchaseorder.PurchaseOrder, history []Entry) Derived {
	var (
		badge  Badge
		action string
	)

	switch po.Status {
	case purchaseorder.StatusCancelled:
		badge, action = BadgeNA, "Cancelled"
	case purchaseorder.StatusOrdered:
		badge, action = BadgeApproved, "Approved"
	case purchaseorder.StatusReceived:
		badge, action = rawBadge(history), "Received"
	default: // UnderReview, and anything normalization lets through
		badge = rawBadge(history)

		switch badge {
		case BadgeApproved:
			action = "Approved"
		case BadgeRejected:
			action = "Rejected"
		default:
			action = "Pending"
		}
	}

	return Derived{
		Badge:     badge,
		CanDecide: badge == BadgePending,
		Audit: Audit{
			Action: action,
			Actor:  purchaseOrderActor(action),
			At:     auditTime(history, po.UpdatedAt, po.CreatedAt),
		},
	}
}

func rawBadge(history []Entry) Badge {
	switch stateOf(history) {
	case StateApproved:
		return BadgeApproved
	case StateRejected:
		return BadgeRejected
	default:
		return BadgePending
	}
}

// auditTime prefers the last decision timestamp, then the entity's
// updated_at, then created_at.
func auditTime(history []Entry, updatedAt *time.Time, createdAt time.Time) time.Time {
	if len(history) > 0 {
		return history[len(history)-1].Timestamp
	}

	if updatedAt != nil {
		return *updatedAt
	}

	return createdAt
}

func overdueDays(due time.Time, now time.Time) int {
	days := int(math.Ceil(now.Sub(due).Hours() / 24))
	if days < 1 {
		return 1
	}

	return days
}

func invoiceActor(action string) string {
	switch action {
	case "Approved", "Rejected", "Cancelled", "Pending":
		return "Controller"
	default: // Paid, Overdue
		return "System"
	}
}

func purchaseOrderActor(action string) string {
	switch action {
	case "Approved", "Rejected", "Cancelled":
		return "Controller"
	case "Received":
		return "Warehouse"
	case "Pending":
		return "Buyer"
	default:
		return "System"
	}
}
