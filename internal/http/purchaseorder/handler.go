package purchaseorder

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/innobi/opsboard/internal/approval"
	"github.com/innobi/opsboard/internal/purchaseorder"
)

type Handler struct {
	svc       *purchaseorder.Service
	approvals *approval.Service
}

func NewHandler(svc *purchaseorder.Service, approvals *approval.Service) *Handler {
	return &Handler{svc: svc, approvals: approvals}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
	r.Patch("/{id}/status", h.updateStatus)
	r.Get("/{id}/transitions", h.transitions)
	r.Post("/{id}/approve", h.approve)
	r.Post("/{id}/reject", h.reject)
	r.Get("/{id}/approvals", h.history)
}

type createPurchaseOrderRequest struct {
	ProjectID  int64   `json:"project_id"`
	VendorID   int64   `json:"vendor_id"`
	ProjectNo  string  `json:"project_no"`
	VendorName string  `json:"vendor_name"`
	CostType   string  `json:"cost_type"`
	Amount     float64 `json:"amount"`
	Currency   string  `json:"currency"`
	Status     *int    `json:"status,omitempty"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createPurchaseOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	status := purchaseorder.StatusUnderReview
	if req.Status != nil {
		status = purchaseorder.NormalizeStatus(*req.Status)
	}

	po, err := h.svc.Create(r.Context(), purchaseorder.CreateParams{
		ProjectID:  req.ProjectID,
		VendorID:   req.VendorID,
		ProjectNo:  req.ProjectNo,
		VendorName: req.VendorName,
		CostType:   req.CostType,
		Amount:     req.Amount,
		Currency:   req.Currency,
		Status:     status,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(h.toResponse(r, po)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := purchaseorder.ListFilter{}

	if s := r.URL.Query().Get("status"); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			status := purchaseorder.NormalizeStatus(n)
			filter.Status = &status
		}
	}

	filter.ActiveOnly = r.URL.Query().Get("active") == "true"

	pos, err := h.svc.List(r.Context(), filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := make([]purchaseOrderResponse, len(pos))
	for i, po := range pos {
		resp[i] = h.toResponse(r, po)
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	po, ok := h.lookup(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(h.toResponse(r, po)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type updatePurchaseOrderRequest struct {
	ProjectID  *int64   `json:"project_id,omitempty"`
	VendorID   *int64   `json:"vendor_id,omitempty"`
	ProjectNo  *string  `json:"project_no,omitempty"`
	VendorName *string  `json:"vendor_name,omitempty"`
	CostType   *string  `json:"cost_type,omitempty"`
	Amount     *float64 `json:"amount,omitempty"`
	Currency   *string  `json:"currency,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	po, ok := h.lookup(w, r)
	if !ok {
		return
	}

	var req updatePurchaseOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.ProjectID != nil {
		po.ProjectID = *req.ProjectID
	}

	if req.VendorID != nil {
		po.VendorID = *req.VendorID
	}

	if req.ProjectNo != nil {
		po.ProjectNo = *req.ProjectNo
	}

	if req.VendorName != nil {
		po.VendorName = *req.VendorName
	}

	if req.CostType != nil {
		po.CostType = *req.CostType
	}

	if req.Amount != nil {
		po.Amount = *req.Amount
	}

	if req.Currency != nil {
		po.Currency = *req.Currency
	}

	if err := h.svc.Update(r.Context(), po); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(h.toResponse(r, po)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type updateStatusRequest struct {
	Status int `json:"status"`
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	po, ok := h.lookup(w, r)
	if !ok {
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	target := purchaseorder.NormalizeStatus(req.Status)

	if !allowed(purchaseorder.NextStatuses(po.Status), target) {
		http.Error(w, "invalid status transition", http.StatusUnprocessableEntity)
		return
	}

	if err := h.svc.UpdateStatus(r.Context(), po.ID, target); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type transitionsResponse struct {
	Status int   `json:"status"`
	Next   []int `json:"next"`
}

func (h *Handler) transitions(w http.ResponseWriter, r *http.Request) {
	po, ok := h.lookup(w, r)
	if !ok {
		return
	}

	next := purchaseorder.NextStatuses(po.Status)

	resp := transitionsResponse{
		Status: int(po.Status),
		Next:   make([]int, len(next)),
	}
	for i, s := range next {
		resp.Next[i] = int(s)
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type decisionResponse struct {
	State     approval.State       `json:"state"`
	Status    purchaseorder.Status `json:"status"`
	Persisted bool                 `json:"persisted"`
}

// approve moves the order to Ordered and records the decision.
func (h *Handler) approve(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, approval.ActionApproved, purchaseorder.StatusOrdered)
}

// reject cancels the order and records the decision.
func (h *Handler) reject(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, approval.ActionRejected, purchaseorder.StatusCancelled)
}

func (h *Handler) decide(w http.ResponseWriter, r *http.Request, action approval.Action, target purchaseorder.Status) {
	po, ok := h.lookup(w, r)
	if !ok {
		return
	}

	if err := h.svc.UpdateStatus(r.Context(), po.ID, target); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	persisted := h.approvals.Record(r.Context(), approval.EntityPurchaseOrder, po.ID, action)

	resp := decisionResponse{
		State:     h.approvals.State(r.Context(), approval.EntityPurchaseOrder, po.ID),
		Status:    target,
		Persisted: persisted,
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) history(w http.ResponseWriter, r *http.Request) {
	po, ok := h.lookup(w, r)
	if !ok {
		return
	}

	history := h.approvals.History(r.Context(), approval.EntityPurchaseOrder, po.ID)
	if history == nil {
		history = []approval.Entry{}
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(history); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) lookup(w http.ResponseWriter, r *http.Request) (*purchaseorder.PurchaseOrder, bool) {
	id, err := parseID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return nil, false
	}

	po, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, purchaseorder.ErrNotFound) {
			http.Error(w, "purchase order not found", http.StatusNotFound)
			return nil, false
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return nil, false
	}

	return po, true
}

func parseID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func allowed(next []purchaseorder.Status, target purchaseorder.Status) bool {
	for _, s := range next {
		if s == target {
			return true
		}
	}

	return false
}
