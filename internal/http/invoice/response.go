package invoice

import (
	"net/http"
	"time"

	"github.com/innobi/opsboard/internal/approval"
	"github.com/innobi/opsboard/internal/invoice"
)

type invoiceResponse struct {
	ID          int64          `json:"id"`
	InvoiceNo   string         `json:"invoice_no"`
	ProjectID   int64          `json:"project_id"`
	ProjectNo   string         `json:"project_no"`
	Amount      float64        `json:"amount"`
	Currency    string         `json:"currency"`
	InvoiceDate time.Time      `json:"invoice_date"`
	DueDate     time.Time      `json:"due_date"`
	Status      invoice.Status `json:"status"`
	Approval    approvalState  `json:"approval"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   *time.Time     `json:"updated_at,omitempty"`
}

type approvalState struct {
	Badge     approval.Badge `json:"badge"`
	CanDecide bool           `json:"can_decide"`
	Action    string         `json:"action"`
	Actor     string         `json:"actor"`
	At        time.Time      `json:"at"`
	Note      string         `json:"note,omitempty"`
	Line      string         `json:"line"`
}

func (h *Handler) toResponse(r *http.Request, inv *invoice.Invoice) invoiceResponse {
	history := h.approvals.History(r.Context(), approval.EntityInvoice, inv.ID)
	derived := approval.DeriveInvoice(inv, history, time.Now())

	return invoiceResponse{
		ID:          inv.ID,
		InvoiceNo:   inv.InvoiceNo,
		ProjectID:   inv.ProjectID,
		ProjectNo:   inv.ProjectNo,
		Amount:      inv.Amount,
		Currency:    inv.Currency,
		InvoiceDate: inv.InvoiceDate,
		DueDate:     inv.DueDate,
		Status:      inv.Status,
		Approval:    toApprovalState(derived),
		CreatedAt:   inv.CreatedAt,
		UpdatedAt:   inv.UpdatedAt,
	}
}

func toApprovalState(d approval.Derived) approvalState {
	return approvalState{
		Badge:     d.Badge,
		CanDecide: d.CanDecide,
		Action:    d.Audit.Action,
		Actor:     d.Audit.Actor,
		At:        d.Audit.At,
		Note:      d.Audit.Note,
		Line:      d.Audit.Line(),
	}
}
