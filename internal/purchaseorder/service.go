package purchaseorder

import (
	"context"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=purchaseorder
type Repository interface {
	CreatePurchaseOrder(ctx context.Context, po *PurchaseOrder) error
	GetPurchaseOrder(ctx context.Context, id int64) (*PurchaseOrder, error)
	ListPurchaseOrders(ctx context.Context, filter ListFilter) ([]*PurchaseOrder, error)
	UpdatePurchaseOrder(ctx context.Context, po *PurchaseOrder) error
	UpdateStatus(ctx context.Context, id int64, status Status) error
	DeletePurchaseOrder(ctx context.Context, id int64) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	ProjectID  int64
	VendorID   int64
	ProjectNo  string
	VendorName string
	CostType   string
	Amount     float64
	Currency   string
	Status     Status
}

type ListFilter struct {
	Status     *Status
	ActiveOnly bool
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*PurchaseOrder, error) {
	po := &PurchaseOrder{
		ProjectID:  params.ProjectID,
		VendorID:   params.VendorID,
		ProjectNo:  params.ProjectNo,
		VendorName: params.VendorName,
		CostType:   params.CostType,
		Amount:     params.Amount,
		Currency:   params.Currency,
		Status:     NormalizeStatus(int(params.Status)),
	}
	if err := s.repo.CreatePurchaseOrder(ctx, po); err != nil {
		return nil, err
	}

	return po, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*PurchaseOrder, error) {
	return s.repo.GetPurchaseOrder(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*PurchaseOrder, error) {
	return s.repo.ListPurchaseOrders(ctx, filter)
}

func (s *Service) Update(ctx context.Context, po *PurchaseOrder) error {
	po.Status = NormalizeStatus(int(po.Status))
	return s.repo.UpdatePurchaseOrder(ctx, po)
}

func (s *Service) UpdateStatus(ctx context.Context, id int64, status Status) error {
	return s.repo.UpdateStatus(ctx, id, NormalizeStatus(int(status)))
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.DeletePurchaseOrder(ctx, id)
}
