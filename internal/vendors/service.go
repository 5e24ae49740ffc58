package vendor

import (
	"context"
)

type Repository interface {
	CreateVendor(ctx context.Context, v *Vendor) error
	GetVendor(ctx context.Context, id int64) (*Vendor, error)
	ListVendors(ctx context.Context) ([]*Vendor, error)
	UpdateVendor(ctx context.Context, v *Vendor) error
	DeleteVendor(ctx context.Context, id int64) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, v *Vendor) error {
	return s.repo.CreateVendor(ctx, v)
}

func (s *Service) Get(ctx context.Context, id int64) (*Vendor, error) {
	return s.repo.GetVendor(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Vendor, error) {
	return s.repo.ListVendors(ctx)
}

func (s *Service) Update(ctx context.Context, v *Vendor) error {
	return s.repo.UpdateVendor(ctx, v)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.DeleteVendor(ctx, id)
}
