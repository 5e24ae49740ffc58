package importer_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/innobi/opsboard/internal/importer"
	"github.com/innobi/opsboard/internal/invoice"
)

func TestParser_Parse(t *testing.T) {
	csv := strings.Join([]string{
		"invoice_no,project_no,amount,currency,invoice_date,due_date,status",
		"INV-1,P-100,1000.50,TRY,2025-03-01,2025-03-31,Approved",
		"INV-2,P-100,250,,02.04.2025,30.04.2025,",
		"INV-3,P-200,\"1,234.56\",EUR,2025-04-10,2025-05-10,Bogus",
	}, "\n")

	p := importer.NewParser()

	rows, rowErrs, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Empty(t, rowErrs)
	require.Len(t, rows, 3)

	first := rows[0].Params
	assert.Equal(t, "INV-1", first.InvoiceNo)
	assert.Equal(t, "P-100", first.ProjectNo)
	assert.InDelta(t, 1000.50, first.Amount, 0.001)
	assert.Equal(t, "TRY", first.Currency)
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), first.InvoiceDate)
	assert.Equal(t, invoice.StatusApproved, first.Status)

	// Dotted date layout and defaulted currency.
	second := rows[1].Params
	assert.Equal(t, time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC), second.InvoiceDate)
	assert.Equal(t, "TRY", second.Currency)
	assert.Equal(t, invoice.StatusPending, second.Status)

	// Thousands separator and unknown status.
	third := rows[2].Params
	assert.InDelta(t, 1234.56, third.Amount, 0.001)
	assert.Equal(t, invoice.StatusPending, third.Status)
}

func TestParser_ParseSemicolonsAndDecimalComma(t *testing.T) {
	csv := strings.Join([]string{
		"invoice_no;project_no;amount;invoice_date;due_date",
		"INV-9;P-300;1.234,56;01.02.2025;28.02.2025",
	}, "\n")

	p := importer.NewParser()

	rows, rowErrs, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Empty(t, rowErrs)
	require.Len(t, rows, 1)

	assert.InDelta(t, 1234.56, rows[0].Params.Amount, 0.001)
	assert.Equal(t, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), rows[0].Params.InvoiceDate)
}

func TestParser_ParseRowErrors(t *testing.T) {
	csv := strings.Join([]string{
		"invoice_no,project_no,amount,invoice_date,due_date",
		",P-100,100,2025-01-01,2025-01-31",
		"INV-2,P-100,abc,2025-01-01,2025-01-31",
		"INV-3,P-100,100,13.13.2025,2025-01-31",
		",,,,",
		"INV-4,P-100,100,2025-01-01,2025-01-31",
	}, "\n")

	p := importer.NewParser()

	rows, rowErrs, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "INV-4", rows[0].Params.InvoiceNo)
	assert.Equal(t, 6, rows[0].Line)

	require.Len(t, rowErrs, 3)
	assert.Equal(t, 2, rowErrs[0].Row)
	assert.Contains(t, rowErrs[0].Message, "invoice_no")
	assert.Contains(t, rowErrs[1].Message, "amount")
	assert.Contains(t, rowErrs[2].Message, "invoice_date")
}

func TestParser_ParseMissingColumns(t *testing.T) {
	p := importer.NewParser()

	_, _, err := p.Parse(strings.NewReader("invoice_no,amount\nINV-1,100"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "project_no")
}

func TestParser_ParseEmptyFile(t *testing.T) {
	p := importer.NewParser()

	_, _, err := p.Parse(strings.NewReader(""))
	assert.Error(t, err)
}
