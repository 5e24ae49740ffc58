package employee

import (
	"context"
)

type Repository interface {
	CreateEmployee(ctx context.Context, e *Employee) error
	GetEmployee(ctx context.Context, id int64) (*Employee, error)
	ListEmployees(ctx context.Context) ([]*Employee, error)
	UpdateEmployee(ctx context.Context, e *Employee) error
	DeleteEmployee(ctx context.Context, id int64) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, e *Employee) error {
	return s.repo.CreateEmployee(ctx, e)
}

func (s *Service) Get(ctx context.Context, id int64) (*Employee, error) {
	return s.repo.GetEmployee(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Employee, error) {
	return s.repo.ListEmployees(ctx)
}

func (s *Service) Update(ctx context.Context, e *Employee) error {
	return s.repo.UpdateEmployee(ctx, e)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.DeleteEmployee(ctx, id)
}
