package purchaseorder_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/innobi/opsboard/internal/purchaseorder"
)

func TestNextStatuses(t *testing.T) {
	tests := []struct {
		name string
		from purchaseorder.Status
		want []purchaseorder.Status
	}{
		{
			name: "FromUnderReview",
			from: purchaseorder.StatusUnderReview,
			want: []purchaseorder.Status{
				purchaseorder.StatusUnderReview,
				purchaseorder.StatusOrdered,
				purchaseorder.StatusCancelled,
			},
		},
		{
			name: "FromOrdered",
			from: purchaseorder.StatusOrdered,
			want: []purchaseorder.Status{
				purchaseorder.StatusOrdered,
				purchaseorder.StatusReceived,
				purchaseorder.StatusCancelled,
			},
		},
		{
			name: "FromReceived",
			from: purchaseorder.StatusReceived,
			want: []purchaseorder.Status{
				purchaseorder.StatusReceived,
				purchaseorder.StatusCancelled,
			},
		},
		{
			name: "FromCancelledIsTerminal",
			from: purchaseorder.StatusCancelled,
			want: []purchaseorder.Status{purchaseorder.StatusCancelled},
		},
		{
			name: "FromUnknownAllowsEverything",
			from: purchaseorder.Status(9),
			want: purchaseorder.AllStatuses(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, purchaseorder.NextStatuses(tt.from))
		})
	}
}
