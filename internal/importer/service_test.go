package importer_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/innobi/opsboard/internal/importer"
	"github.com/innobi/opsboard/internal/invoice"
	"github.com/innobi/opsboard/internal/project"
)

type fakeInvoices struct {
	created []invoice.CreateParams
	err     error
}

func (f *fakeInvoices) CreateBatch(_ context.Context, params []invoice.CreateParams) ([]*invoice.Invoice, error) {
	if f.err != nil {
		return nil, f.err
	}

	f.created = params

	out := make([]*invoice.Invoice, len(params))
	for i, p := range params {
		out[i] = &invoice.Invoice{ID: int64(i + 1), InvoiceNo: p.InvoiceNo}
	}

	return out, nil
}

type fakeProjects struct {
	projects []*project.Project
}

func (f *fakeProjects) List(context.Context) ([]*project.Project, error) {
	return f.projects, nil
}

func TestService_ImportInvoices(t *testing.T) {
	csv := strings.Join([]string{
		"invoice_no,project_no,amount,invoice_date,due_date",
		"INV-1,P-100,100,2025-01-01,2025-01-31",
		"INV-2,P-999,200,2025-01-02,2025-02-01",
		"INV-3,P-100,300,2025-01-03,2025-02-02",
	}, "\n")

	invoices := &fakeInvoices{}
	projects := &fakeProjects{projects: []*project.Project{
		{ID: 42, ProjectNumber: "P-100"},
	}}

	svc := importer.NewService(invoices, projects)

	result, err := svc.ImportInvoices(context.Background(), strings.NewReader(csv))
	require.NoError(t, err)

	assert.NotEmpty(t, result.BatchID)
	assert.Equal(t, 2, result.Imported)

	// The unknown project is rejected row by row, not fatally.
	require.Len(t, result.Errors, 1)
	assert.Equal(t, 3, result.Errors[0].Row)
	assert.Contains(t, result.Errors[0].Message, "P-999")

	require.Len(t, invoices.created, 2)
	assert.Equal(t, int64(42), invoices.created[0].ProjectID)
	assert.Equal(t, int64(42), invoices.created[1].ProjectID)
}

func TestService_ImportInvoicesInsertFailure(t *testing.T) {
	csv := "invoice_no,project_no,amount,invoice_date,due_date\nINV-1,P-100,100,2025-01-01,2025-01-31"

	invoices := &fakeInvoices{err: errors.New("insert failed")}
	projects := &fakeProjects{projects: []*project.Project{{ID: 1, ProjectNumber: "P-100"}}}

	svc := importer.NewService(invoices, projects)

	_, err := svc.ImportInvoices(context.Background(), strings.NewReader(csv))
	assert.Error(t, err)
}
