package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/innobi/opsboard/internal/employee"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

const selectEmployeeColumns = `
	id, first_name, last_name, email, department, phone, created_at, updated_at
`

func scanEmployee(s scanner) (*employee.Employee, error) {
	var e employee.Employee

	if err := s.Scan(
		&e.ID, &e.FirstName, &e.LastName, &e.Email,
		&e.Department, &e.Phone, &e.CreatedAt, &e.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return &e, nil
}

func (s *Store) CreateEmployee(ctx context.Context, e *employee.Employee) error {
	query := `
		INSERT INTO employees (first_name, last_name, email, department, phone, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		e.FirstName, e.LastName, e.Email, e.Department, e.Phone,
	).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating employee: %w", err)
	}

	return nil
}

func (s *Store) GetEmployee(ctx context.Context, id int64) (*employee.Employee, error) {
	query := `SELECT ` + selectEmployeeColumns + ` FROM employees WHERE id = $1`

	e, err := scanEmployee(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, employee.ErrNotFound
		}

		return nil, fmt.Errorf("getting employee: %w", err)
	}

	return e, nil
}

func (s *Store) ListEmployees(ctx context.Context) ([]*employee.Employee, error) {
	query := `SELECT ` + selectEmployeeColumns + ` FROM employees ORDER BY last_name ASC, first_name ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing employees: %w", err)
	}
	defer rows.Close()

	var es []*employee.Employee

	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning employee: %w", err)
		}

		es = append(es, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating employee rows: %w", err)
	}

	return es, nil
}

func (s *Store) UpdateEmployee(ctx context.Context, e *employee.Employee) error {
	query := `
		UPDATE employees
		SET first_name = $1, last_name = $2, email = $3, department = $4, phone = $5, updated_at = NOW()
		WHERE id = $6
	`

	_, err := s.db.ExecContext(ctx, query,
		e.FirstName, e.LastName, e.Email, e.Department, e.Phone, e.ID,
	)
	if err != nil {
		return fmt.Errorf("updating employee: %w", err)
	}

	return nil
}

func (s *Store) DeleteEmployee(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting employee: %w", err)
	}

	return nil
}
