package purchaseorder_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/innobi/opsboard/internal/approval"
	poHttp "github.com/innobi/opsboard/internal/http/purchaseorder"
	"github.com/innobi/opsboard/internal/purchaseorder"
)

func newServer(t *testing.T) (*purchaseorder.MockRepository, *approval.MockLog, http.Handler) {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := purchaseorder.NewMockRepository(ctrl)
	log := approval.NewMockLog(ctrl)

	handler := poHttp.NewHandler(purchaseorder.NewService(repo), approval.NewService(log))

	r := chi.NewRouter()
	r.Route("/purchase-orders", handler.Routes)

	return repo, log, r
}

func TestHandler_ApproveMovesOrderAndRecords(t *testing.T) {
	repo, log, srv := newServer(t)

	po := &purchaseorder.PurchaseOrder{ID: 7, Status: purchaseorder.StatusUnderReview}

	repo.EXPECT().GetPurchaseOrder(gomock.Any(), int64(7)).Return(po, nil)
	repo.EXPECT().UpdateStatus(gomock.Any(), int64(7), purchaseorder.StatusOrdered).Return(nil)

	var recorded approval.Entry
	log.EXPECT().
		Append(gomock.Any(), "purchase_order:7", gomock.Any()).
		DoAndReturn(func(_ any, _ string, e approval.Entry) error {
			recorded = e
			return nil
		})
	log.EXPECT().Get(gomock.Any(), "purchase_order:7").Return([]approval.Entry{{Action: approval.ActionApproved}}, nil)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/purchase-orders/7/approve", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, approval.ActionApproved, recorded.Action)
	assert.False(t, recorded.Timestamp.IsZero())

	var resp struct {
		State     string `json:"state"`
		Status    int    `json:"status"`
		Persisted bool   `json:"persisted"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, "approved", resp.State)
	assert.Equal(t, int(purchaseorder.StatusOrdered), resp.Status)
	assert.True(t, resp.Persisted)
}

func TestHandler_RejectCancelsOrder(t *testing.T) {
	repo, log, srv := newServer(t)

	po := &purchaseorder.PurchaseOrder{ID: 7, Status: purchaseorder.StatusUnderReview}

	repo.EXPECT().GetPurchaseOrder(gomock.Any(), int64(7)).Return(po, nil)
	repo.EXPECT().UpdateStatus(gomock.Any(), int64(7), purchaseorder.StatusCancelled).Return(nil)
	log.EXPECT().Append(gomock.Any(), "purchase_order:7", gomock.Any()).Return(nil)
	log.EXPECT().Get(gomock.Any(), "purchase_order:7").Return([]approval.Entry{{Action: approval.ActionRejected}}, nil)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/purchase-orders/7/reject", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		State  string `json:"state"`
		Status int    `json:"status"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, "rejected", resp.State)
	assert.Equal(t, int(purchaseorder.StatusCancelled), resp.Status)
}

func TestHandler_UpdateStatusRejectsInvalidTransition(t *testing.T) {
	repo, _, srv := newServer(t)

	// A received order cannot go back under review.
	po := &purchaseorder.PurchaseOrder{ID: 3, Status: purchaseorder.StatusReceived}
	repo.EXPECT().GetPurchaseOrder(gomock.Any(), int64(3)).Return(po, nil)

	body := strings.NewReader(`{"status": 3}`)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/purchase-orders/3/status", body))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestHandler_UpdateStatusAllowsValidTransition(t *testing.T) {
	repo, _, srv := newServer(t)

	po := &purchaseorder.PurchaseOrder{ID: 3, Status: purchaseorder.StatusOrdered}
	repo.EXPECT().GetPurchaseOrder(gomock.Any(), int64(3)).Return(po, nil)
	repo.EXPECT().UpdateStatus(gomock.Any(), int64(3), purchaseorder.StatusReceived).Return(nil)

	body := strings.NewReader(`{"status": 1}`)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/purchase-orders/3/status", body))

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestHandler_GetNotFound(t *testing.T) {
	repo, _, srv := newServer(t)

	repo.EXPECT().GetPurchaseOrder(gomock.Any(), int64(99)).Return(nil, purchaseorder.ErrNotFound)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/purchase-orders/99", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
