package invoice_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/innobi/opsboard/internal/invoice"
)

func TestService_Create(t *testing.T) {
	type testCase struct {
		name       string
		params     invoice.CreateParams
		setupMock  func(m *invoice.MockRepository)
		wantStatus invoice.Status
		wantErr    bool
	}

	tests := []testCase{
		{
			name: "Success",
			params: invoice.CreateParams{
				InvoiceNo:   "INV-1001",
				ProjectID:   1,
				ProjectNo:   "P-100",
				Amount:      1250.50,
				Currency:    "TRY",
				InvoiceDate: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
				DueDate:     time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
				Status:      invoice.StatusApproved,
			},
			setupMock: func(m *invoice.MockRepository) {
				m.EXPECT().
					CreateInvoice(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, inv *invoice.Invoice) error {
						inv.ID = 1
						inv.CreatedAt = time.Now()
						return nil
					})
			},
			wantStatus: invoice.StatusApproved,
		},
		{
			name: "UnknownStatusNormalizedToPending",
			params: invoice.CreateParams{
				InvoiceNo: "INV-1002",
				Status:    invoice.Status("Draft"),
			},
			setupMock: func(m *invoice.MockRepository) {
				m.EXPECT().
					CreateInvoice(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, inv *invoice.Invoice) error {
						inv.ID = 2
						return nil
					})
			},
			wantStatus: invoice.StatusPending,
		},
		{
			name:   "RepoError",
			params: invoice.CreateParams{InvoiceNo: "INV-1003"},
			setupMock: func(m *invoice.MockRepository) {
				m.EXPECT().
					CreateInvoice(gomock.Any(), gomock.Any()).
					Return(errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := invoice.NewMockRepository(ctrl)
			tt.setupMock(repo)

			svc := invoice.NewService(repo)

			got, err := svc.Create(context.Background(), tt.params)
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, got.Status)
			assert.NotZero(t, got.ID)
		})
	}
}

func TestService_CreateBatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := invoice.NewMockRepository(ctrl)
	repo.EXPECT().
		CreateInvoices(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, invs []*invoice.Invoice) error {
			for i, inv := range invs {
				inv.ID = int64(i + 1)
			}
			return nil
		})

	svc := invoice.NewService(repo)

	got, err := svc.CreateBatch(context.Background(), []invoice.CreateParams{
		{InvoiceNo: "INV-1", Status: invoice.StatusPaid},
		{InvoiceNo: "INV-2", Status: invoice.Status("bogus")},
	})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, invoice.StatusPaid, got[0].Status)
	assert.Equal(t, invoice.StatusPending, got[1].Status)
}

func TestService_CreateBatchEmpty(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := invoice.NewMockRepository(ctrl)

	svc := invoice.NewService(repo)

	got, err := svc.CreateBatch(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestService_UpdateStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := invoice.NewMockRepository(ctrl)
	repo.EXPECT().
		UpdateStatus(gomock.Any(), int64(7), invoice.StatusPending).
		Return(nil)

	svc := invoice.NewService(repo)

	// Unknown target statuses normalize before hitting the store.
	err := svc.UpdateStatus(context.Background(), 7, invoice.Status("nonsense"))
	require.NoError(t, err)
}

func TestService_GetNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := invoice.NewMockRepository(ctrl)
	repo.EXPECT().
		GetInvoice(gomock.Any(), int64(99)).
		Return(nil, invoice.ErrNotFound)

	svc := invoice.NewService(repo)

	_, err := svc.Get(context.Background(), 99)
	assert.ErrorIs(t, err, invoice.ErrNotFound)
}
