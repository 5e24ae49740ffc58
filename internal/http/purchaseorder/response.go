package purchaseorder

import (
	"net/http"
	"time"

	"github.com/innobi/opsboard/internal/approval"
	"github.com/innobi/opsboard/internal/purchaseorder"
)

type purchaseOrderResponse struct {
	ID          int64         `json:"id"`
	ProjectID   int64         `json:"project_id"`
	VendorID    int64         `json:"vendor_id"`
	ProjectNo   string        `json:"project_no"`
	VendorName  string        `json:"vendor_name"`
	CostType    string        `json:"cost_type"`
	Amount      float64       `json:"amount"`
	Currency    string        `json:"currency"`
	Status      int           `json:"status"`
	StatusLabel string        `json:"status_label"`
	Approval    approvalState `json:"approval"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   *time.Time    `json:"updated_at,omitempty"`
}

type approvalState struct {
	Badge     approval.Badge `json:"badge"`
	CanDecide bool           `json:"can_decide"`
	Action    string         `json:"action"`
	Actor     string         `json:"actor"`
	At        time.Time      `json:"at"`
	Line      string         `json:"line"`
}

func (h *Handler) toResponse(r *http.Request, po *purchaseorder.PurchaseOrder) purchaseOrderResponse {
	history := h.approvals.History(r.Context(), approval.EntityPurchaseOrder, po.ID)
	derived := approval.DerivePurchaseOrder(po, history)

	return purchaseOrderResponse{
		ID:          po.ID,
		ProjectID:   po.ProjectID,
		VendorID:    po.VendorID,
		ProjectNo:   po.ProjectNo,
		VendorName:  po.VendorName,
		CostType:    po.CostType,
		Amount:      po.Amount,
		Currency:    po.Currency,
		Status:      int(po.Status),
		StatusLabel: po.Status.String(),
		Approval: approvalState{
			Badge:     derived.Badge,
			CanDecide: derived.CanDecide,
			Action:    derived.Audit.Action,
			Actor:     derived.Audit.Actor,
			At:        derived.Audit.At,
			Line:      derived.Audit.Line(),
		},
		CreatedAt: po.CreatedAt,
		UpdatedAt: po.UpdatedAt,
	}
}
