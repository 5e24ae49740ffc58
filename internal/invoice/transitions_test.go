package invoice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/innobi/opsboard/internal/invoice"
)

func TestNextStatuses(t *testing.T) {
	tests := []struct {
		name string
		from invoice.Status
		want []invoice.Status
	}{
		{
			name: "FromPending",
			from: invoice.StatusPending,
			want: []invoice.Status{
				invoice.StatusPending, invoice.StatusApproved, invoice.StatusPaid,
				invoice.StatusOverdue, invoice.StatusCancelled,
			},
		},
		{
			name: "FromApproved",
			from: invoice.StatusApproved,
			want: []invoice.Status{
				invoice.StatusApproved, invoice.StatusPaid,
				invoice.StatusOverdue, invoice.StatusCancelled,
			},
		},
		{
			name: "FromPaid",
			from: invoice.StatusPaid,
			want: []invoice.Status{invoice.StatusPaid, invoice.StatusCancelled},
		},
		{
			name: "FromOverdue",
			from: invoice.StatusOverdue,
			want: []invoice.Status{
				invoice.StatusOverdue, invoice.StatusPaid, invoice.StatusCancelled,
			},
		},
		{
			name: "FromCancelled",
			from: invoice.StatusCancelled,
			want: []invoice.Status{invoice.StatusCancelled},
		},
		{
			name: "FromUnknownAllowsEverything",
			from: invoice.Status("Draft"),
			want: invoice.AllStatuses(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, invoice.NextStatuses(tt.from))
		})
	}
}

func TestNextStatusesReturnsCopy(t *testing.T) {
	first := invoice.NextStatuses(invoice.StatusPending)
	first[0] = invoice.StatusCancelled

	second := invoice.NextStatuses(invoice.StatusPending)
	assert.Equal(t, invoice.StatusPending, second[0])
}
