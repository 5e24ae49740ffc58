package invoice

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/innobi/opsboard/internal/approval"
	"github.com/innobi/opsboard/internal/invoice"
)

type Handler struct {
	svc       *invoice.Service
	approvals *approval.Service
}

func NewHandler(svc *invoice.Service, approvals *approval.Service) *Handler {
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

type createInvoiceRequest struct {
	InvoiceNo   string    `json:"invoice_no"`
	ProjectID   int64     `json:"project_id"`
	ProjectNo   string    `json:"project_no"`
	Amount      float64   `json:"amount"`
	Currency    string    `json:"currency"`
	InvoiceDate time.Time `json:"invoice_date"`
	DueDate     time.Time `json:"due_date"`
	Status      string    `json:"status"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	inv, err := h.svc.Create(r.Context(), invoice.CreateParams{
		InvoiceNo:   req.InvoiceNo,
		ProjectID:   req.ProjectID,
		ProjectNo:   req.ProjectNo,
		Amount:      req.Amount,
		Currency:    req.Currency,
		InvoiceDate: req.InvoiceDate,
		DueDate:     req.DueDate,
		Status:      invoice.Status(req.Status),
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(h.toResponse(r, inv)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := invoice.ListFilter{}

	if s := r.URL.Query().Get("status"); s != "" {
		status := invoice.NormalizeStatus(s)
		filter.Status = &status
	}

	if s := r.URL.Query().Get("project_no"); s != "" {
		filter.ProjectNo = &s
	}

	invs, err := h.svc.List(r.Context(), filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := make([]invoiceResponse, len(invs))
	for i, inv := range invs {
		resp[i] = h.toResponse(r, inv)
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	inv, ok := h.lookup(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(h.toResponse(r, inv)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type updateInvoiceRequest struct {
	InvoiceNo   *string    `json:"invoice_no,omitempty"`
	ProjectID   *int64     `json:"project_id,omitempty"`
	ProjectNo   *string    `json:"project_no,omitempty"`
	Amount      *float64   `json:"amount,omitempty"`
	Currency    *string    `json:"currency,omitempty"`
	InvoiceDate *time.Time `json:"invoice_date,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	inv, ok := h.lookup(w, r)
	if !ok {
		return
	}

	var req updateInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.InvoiceNo != nil {
		inv.InvoiceNo = *req.InvoiceNo
	}

	if req.ProjectID != nil {
		inv.ProjectID = *req.ProjectID
	}

	if req.ProjectNo != nil {
		inv.ProjectNo = *req.ProjectNo
	}

	if req.Amount != nil {
		inv.Amount = *req.Amount
	}

	if req.Currency != nil {
		inv.Currency = *req.Currency
	}

	if req.InvoiceDate != nil {
		inv.InvoiceDate = *req.InvoiceDate
	}

	if req.DueDate != nil {
		inv.DueDate = *req.DueDate
	}

	if err := h.svc.Update(r.Context(), inv); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(h.toResponse(r, inv)); err != nil {
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
	Status string `json:"status"`
}

// updateStatus moves an invoice along its lifecycle. The target must be
// reachable from the current status; anything else is rejected.
func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	inv, ok := h.lookup(w, r)
	if !ok {
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	target := invoice.NormalizeStatus(req.Status)

	if !allowed(invoice.NextStatuses(inv.Status), target) {
		http.Error(w, "invalid status transition", http.StatusUnprocessableEntity)
		return
	}

	if err := h.svc.UpdateStatus(r.Context(), inv.ID, target); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type transitionsResponse struct {
	Status string   `json:"status"`
	Next   []string `json:"next"`
}

func (h *Handler) transitions(w http.ResponseWriter, r *http.Request) {
	inv, ok := h.lookup(w, r)
	if !ok {
		return
	}

	next := invoice.NextStatuses(inv.Status)

	resp := transitionsResponse{
		Status: string(inv.Status),
		Next:   make([]string, len(next)),
	}
	for i, s := range next {
		resp.Next[i] = string(s)
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type decisionResponse struct {
	State     approval.State `json:"state"`
	Persisted bool           `json:"persisted"`
}

func (h *Handler) approve(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, approval.ActionApproved)
}

func (h *Handler) reject(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, approval.ActionRejected)
}

// decide records an approval decision. Invoice decisions never change the
// status; the lifecycle is driven through the status endpoint.
func (h *Handler) decide(w http.ResponseWriter, r *http.Request, action approval.Action) {
	inv, ok := h.lookup(w, r)
	if !ok {
		return
	}

	persisted := h.approvals.Record(r.Context(), approval.EntityInvoice, inv.ID, action)

	resp := decisionResponse{
		State:     h.approvals.State(r.Context(), approval.EntityInvoice, inv.ID),
		Persisted: persisted,
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) history(w http.ResponseWriter, r *http.Request) {
	inv, ok := h.lookup(w, r)
	if !ok {
		return
	}

	history := h.approvals.History(r.Context(), approval.EntityInvoice, inv.ID)
	if history == nil {
		history = []approval.Entry{}
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(history); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// lookup fetches the invoice named by the id path parameter, writing the
// error response itself when it fails.
func (h *Handler) lookup(w http.ResponseWriter, r *http.Request) (*invoice.Invoice, bool) {
	id, err := parseID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return nil, false
	}

	inv, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, invoice.ErrNotFound) {
			http.Error(w, "invoice not found", http.StatusNotFound)
			return nil, false
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return nil, false
	}

	return inv, true
}

func parseID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func allowed(next []invoice.Status, target invoice.Status) bool {
	for _, s := range next {
		if s == target {
			return true
		}
	}

	return false
}
