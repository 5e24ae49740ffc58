// Package approval exposes export and import of the decision log, so
// history recorded in one deployment can be moved to another.
package approval

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/innobi/opsboard/internal/approval"
)

// maxImportSize bounds the accepted upload; the mapping is small in
// practice.
const maxImportSize = 10 << 20

type Handler struct {
	svc *approval.Service
}

func NewHandler(svc *approval.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/export", h.export)
	r.Post("/import", h.importLog)
}

func (h *Handler) export(w http.ResponseWriter, r *http.Request) {
	blob, err := h.svc.Export(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="approvals.json"`)

	if _, err := w.Write(blob); err != nil {
		slog.Error("failed to write export", "error", err)
	}
}

func (h *Handler) importLog(w http.ResponseWriter, r *http.Request) {
	blob, err := io.ReadAll(io.LimitReader(r.Body, maxImportSize))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.svc.Import(r.Context(), blob); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
