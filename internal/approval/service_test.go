package approval_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/innobi/opsboard/internal/approval"
)

func TestKey(t *testing.T) {
	assert.Equal(t, "invoice:42", approval.Key(approval.EntityInvoice, 42))
	assert.Equal(t, "purchase_order:7", approval.Key(approval.EntityPurchaseOrder, 7))
}

func TestService_RecordAt(t *testing.T) {
	ts := time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC)

	t.Run("Persisted", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		log := approval.NewMockLog(ctrl)
		log.EXPECT().
			Append(gomock.Any(), "invoice:1", approval.Entry{
				Action:    approval.ActionApproved,
				Timestamp: ts,
			}).
			Return(nil)

		svc := approval.NewService(log)

		ok := svc.RecordAt(context.Background(), approval.EntityInvoice, 1, approval.ActionApproved, ts)
		assert.True(t, ok)
	})

	t.Run("StorageFailureIsNotFatal", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		log := approval.NewMockLog(ctrl)
		log.EXPECT().
			Append(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("disk full"))

		svc := approval.NewService(log)

		ok := svc.RecordAt(context.Background(), approval.EntityInvoice, 1, approval.ActionRejected, ts)
		assert.False(t, ok)
	})
}

func TestService_State(t *testing.T) {
	ts := time.Now()

	tests := []struct {
		name    string
		history []approval.Entry
		want    approval.State
	}{
		{name: "EmptyIsPending", history: nil, want: approval.StatePending},
		{
			name:    "LastEntryWins",
			history: []approval.Entry{{Action: approval.ActionApproved, Timestamp: ts}, {Action: approval.ActionRejected, Timestamp: ts}},
			want:    approval.StateRejected,
		},
		{
			name:    "ApprovedAfterRejected",
			history: []approval.Entry{{Action: approval.ActionRejected, Timestamp: ts}, {Action: approval.ActionApproved, Timestamp: ts}},
			want:    approval.StateApproved,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			log := approval.NewMockLog(ctrl)
			log.EXPECT().
				Get(gomock.Any(), "invoice:9").
				Return(tt.history, nil)

			svc := approval.NewService(log)

			assert.Equal(t, tt.want, svc.State(context.Background(), approval.EntityInvoice, 9))
		})
	}
}

func TestService_HistoryReadsEmptyOnFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	log := approval.NewMockLog(ctrl)
	log.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("locked"))

	svc := approval.NewService(log)

	assert.Empty(t, svc.History(context.Background(), approval.EntityPurchaseOrder, 3))
}

func TestService_ExportImport(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ts := time.Date(2025, 2, 14, 9, 0, 0, 0, time.UTC)
	data := map[string][]approval.Entry{
		"invoice:1": {{Action: approval.ActionApproved, Timestamp: ts}},
	}

	log := approval.NewMockLog(ctrl)
	log.EXPECT().Snapshot(gomock.Any()).Return(data, nil)
	log.EXPECT().Restore(gomock.Any(), data).Return(nil)

	svc := approval.NewService(log)

	blob, err := svc.Export(context.Background())
	require.NoError(t, err)

	// The blob is the persisted wire format.
	var decoded map[string][]approval.Entry
	require.NoError(t, json.Unmarshal(blob, &decoded))
	assert.Equal(t, data, decoded)

	require.NoError(t, svc.Import(context.Background(), blob))
}

func TestService_ImportRejectsGarbage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	log := approval.NewMockLog(ctrl)

	svc := approval.NewService(log)

	assert.Error(t, svc.Import(context.Background(), []byte("not json")))
}

func TestService_ExportEmptyStore(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	log := approval.NewMockLog(ctrl)
	log.EXPECT().Snapshot(gomock.Any()).Return(nil, nil)

	svc := approval.NewService(log)

	blob, err := svc.Export(context.Background())
	require.NoError(t, err)
	assert.JSONEq(t, "{}", string(blob))
}
