package invoice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/innobi/opsboard/internal/invoice"
)

func TestNormalizeStatus(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want invoice.Status
	}{
		{name: "Pending", raw: "Pending", want: invoice.StatusPending},
		{name: "Approved", raw: "Approved", want: invoice.StatusApproved},
		{name: "Paid", raw: "Paid", want: invoice.StatusPaid},
		{name: "Overdue", raw: "Overdue", want: invoice.StatusOverdue},
		{name: "Cancelled", raw: "Cancelled", want: invoice.StatusCancelled},
		{name: "EmptyFallsBackToPending", raw: "", want: invoice.StatusPending},
		{name: "UnknownFallsBackToPending", raw: "Draft", want: invoice.StatusPending},
		{name: "CaseSensitive", raw: "paid", want: invoice.StatusPending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, invoice.NormalizeStatus(tt.raw))
		})
	}
}

func TestAllStatuses(t *testing.T) {
	want := []invoice.Status{
		invoice.StatusPending,
		invoice.StatusApproved,
		invoice.StatusPaid,
		invoice.StatusOverdue,
		invoice.StatusCancelled,
	}

	assert.Equal(t, want, invoice.AllStatuses())
}
