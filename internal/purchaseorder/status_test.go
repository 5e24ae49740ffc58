package purchaseorder_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/innobi/opsboard/internal/purchaseorder"
)

func TestNormalizeStatus(t *testing.T) {
	tests := []struct {
		name string
		raw  int
		want purchaseorder.Status
	}{
		{name: "Cancelled", raw: 0, want: purchaseorder.StatusCancelled},
		{name: "Received", raw: 1, want: purchaseorder.StatusReceived},
		{name: "Ordered", raw: 2, want: purchaseorder.StatusOrdered},
		{name: "UnderReview", raw: 3, want: purchaseorder.StatusUnderReview},
		{name: "NegativeFallsBackToUnderReview", raw: -1, want: purchaseorder.StatusUnderReview},
		{name: "OutOfRangeFallsBackToUnderReview", raw: 7, want: purchaseorder.StatusUnderReview},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, purchaseorder.NormalizeStatus(tt.raw))
		})
	}
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "Cancelled", purchaseorder.StatusCancelled.String())
	assert.Equal(t, "Received", purchaseorder.StatusReceived.String())
	assert.Equal(t, "Ordered", purchaseorder.StatusOrdered.String())
	assert.Equal(t, "Under Review", purchaseorder.StatusUnderReview.String())
	assert.Equal(t, "Unknown", purchaseorder.Status(42).String())
}

func TestStatus_Active(t *testing.T) {
	assert.False(t, purchaseorder.StatusCancelled.Active())
	assert.True(t, purchaseorder.StatusReceived.Active())
	assert.True(t, purchaseorder.StatusOrdered.Active())
	assert.True(t, purchaseorder.StatusUnderReview.Active())
}
