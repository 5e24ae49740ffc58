package invoice

import (
	"context"
	"time"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=invoice
type Repository interface {
	CreateInvoice(ctx context.Context, inv *Invoice) error
	GetInvoice(ctx context.Context, id int64) (*Invoice, error)
	ListInvoices(ctx context.Context, filter ListFilter) ([]*Invoice, error)
	UpdateInvoice(ctx context.Context, inv *Invoice) error
	UpdateStatus(ctx context.Context, id int64, status Status) error
	DeleteInvoice(ctx context.Context, id int64) error
	CreateInvoices(ctx context.Context, invs []*Invoice) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	InvoiceNo   string
	ProjectID   int64
	ProjectNo   string
	Amount      float64
	Currency    string
	InvoiceDate time.Time
	DueDate     time.Time
	Status      Status
}

type ListFilter struct {
	Status    *Status
	ProjectNo *string
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Invoice, error) {
	inv := &Invoice{
		InvoiceNo:   params.InvoiceNo,
		ProjectID:   params.ProjectID,
		ProjectNo:   params.ProjectNo,
		Amount:      params.Amount,
		Currency:    params.Currency,
		InvoiceDate: params.InvoiceDate,
		DueDate:     params.DueDate,
		Status:      NormalizeStatus(string(params.Status)),
	}
	if err := s.repo.CreateInvoice(ctx, inv); err != nil {
		return nil, err
	}

	return inv, nil
}

// CreateBatch inserts pre-validated rows, typically from a CSV import.
func (s *Service) CreateBatch(ctx context.Context, params []CreateParams) ([]*Invoice, error) {
	if len(params) == 0 {
		return nil, nil
	}

	invs := make([]*Invoice, len(params))
	for i, p := range params {
		invs[i] = &Invoice{
			InvoiceNo:   p.InvoiceNo,
			ProjectID:   p.ProjectID,
			ProjectNo:   p.ProjectNo,
			Amount:      p.Amount,
			Currency:    p.Currency,
			InvoiceDate: p.InvoiceDate,
			DueDate:     p.DueDate,
			Status:      NormalizeStatus(string(p.Status)),
		}
	}

	if err := s.repo.CreateInvoices(ctx, invs); err != nil {
		return nil, err
	}

	return invs, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Invoice, error) {
	return s.repo.GetInvoice(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Invoice, error) {
	return s.repo.ListInvoices(ctx, filter)
}

func (s *Service) Update(ctx context.Context, inv *Invoice) error {
	inv.Status = NormalizeStatus(string(inv.Status))
	return s.repo.UpdateInvoice(ctx, inv)
}

func (s *Service) UpdateStatus(ctx context.Context, id int64, status Status) error {
	return s.repo.UpdateStatus(ctx, id, NormalizeStatus(string(status)))
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.DeleteInvoice(ctx, id)
}
