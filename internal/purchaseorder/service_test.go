package purchaseorder_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/innobi/opsboard/internal/purchaseorder"
)

func TestService_Create(t *testing.T) {
	type testCase struct {
		name       string
		params     purchaseorder.CreateParams
		setupMock  func(m *purchaseorder.MockRepository)
		wantStatus purchaseorder.Status
		wantErr    bool
	}

	tests := []testCase{
		{
			name: "Success",
			params: purchaseorder.CreateParams{
				ProjectID:  1,
				VendorID:   2,
				ProjectNo:  "P-100",
				VendorName: "Acme Supplies",
				Amount:     900,
				Currency:   "TRY",
				Status:     purchaseorder.StatusUnderReview,
			},
			setupMock: func(m *purchaseorder.MockRepository) {
				m.EXPECT().
					CreatePurchaseOrder(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, po *purchaseorder.PurchaseOrder) error {
						po.ID = 1
						return nil
					})
			},
			wantStatus: purchaseorder.StatusUnderReview,
		},
		{
			name: "BogusStatusLandsInReview",
			params: purchaseorder.CreateParams{
				ProjectID: 1,
				VendorID:  2,
				Status:    purchaseorder.Status(9),
			},
			setupMock: func(m *purchaseorder.MockRepository) {
				m.EXPECT().
					CreatePurchaseOrder(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, po *purchaseorder.PurchaseOrder) error {
						po.ID = 2
						return nil
					})
			},
			wantStatus: purchaseorder.StatusUnderReview,
		},
		{
			name:   "RepoError",
			params: purchaseorder.CreateParams{ProjectID: 1},
			setupMock: func(m *purchaseorder.MockRepository) {
				m.EXPECT().
					CreatePurchaseOrder(gomock.Any(), gomock.Any()).
					Return(errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := purchaseorder.NewMockRepository(ctrl)
			tt.setupMock(repo)

			svc := purchaseorder.NewService(repo)

			got, err := svc.Create(context.Background(), tt.params)
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, got.Status)
		})
	}
}

func TestService_UpdateStatusNormalizes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := purchaseorder.NewMockRepository(ctrl)
	repo.EXPECT().
		UpdateStatus(gomock.Any(), int64(4), purchaseorder.StatusUnderReview).
		Return(nil)

	svc := purchaseorder.NewService(repo)

	require.NoError(t, svc.UpdateStatus(context.Background(), 4, purchaseorder.Status(17)))
}

func TestService_GetNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := purchaseorder.NewMockRepository(ctrl)
	repo.EXPECT().
		GetPurchaseOrder(gomock.Any(), int64(5)).
		Return(nil, purchaseorder.ErrNotFound)

	svc := purchaseorder.NewService(repo)

	_, err := svc.Get(context.Background(), 5)
	assert.ErrorIs(t, err, purchaseorder.ErrNotFound)
}
