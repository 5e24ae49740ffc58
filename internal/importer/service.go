package importer

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/innobi/opsboard/internal/invoice"
	"github.com/innobi/opsboard/internal/project"
)

type invoiceCreator interface {
	CreateBatch(ctx context.Context, params []invoice.CreateParams) ([]*invoice.Invoice, error)
}

type projectLister interface {
	List(ctx context.Context) ([]*project.Project, error)
}

// Result summarizes one import run. BatchID ties the run to log lines;
// Errors lists rejected rows, which do not block the accepted ones.
type Result struct {
	BatchID  string     `json:"batchId"`
	Imported int        `json:"imported"`
	Errors   []RowError `json:"errors,omitempty"`
}

type Service struct {
	parser   *Parser
	invoices invoiceCreator
	projects projectLister
}

func NewService(invoices invoiceCreator, projects projectLister) *Service {
	return &Service{
		parser:   NewParser(),
		invoices: invoices,
		projects: projects,
	}
}

// ImportInvoices parses the upload and inserts every resolvable row in one
// batch. Rows referencing unknown project numbers are rejected individually.
func (s *Service) ImportInvoices(ctx context.Context, r io.Reader) (*Result, error) {
	rows, rowErrs, err := s.parser.Parse(r)
	if err != nil {
		return nil, err
	}

	projects, err := s.projects.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}

	byNumber := make(map[string]int64, len(projects))
	for _, p := range projects {
		byNumber[p.ProjectNumber] = p.ID
	}

	var accepted []invoice.CreateParams
	for _, row := range rows {
		id, ok := byNumber[row.Params.ProjectNo]
		if !ok {
			rowErrs = append(rowErrs, RowError{
				Row:     row.Line,
				Message: fmt.Sprintf("unknown project %q for invoice %s", row.Params.ProjectNo, row.Params.InvoiceNo),
			})

			continue
		}

		row.Params.ProjectID = id
		accepted = append(accepted, row.Params)
	}

	created, err := s.invoices.CreateBatch(ctx, accepted)
	if err != nil {
		return nil, fmt.Errorf("inserting invoices: %w", err)
	}

	return &Result{
		BatchID:  uuid.NewString(),
		Imported: len(created),
		Errors:   rowErrs,
	}, nil
}
