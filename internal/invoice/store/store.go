package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/innobi/opsboard/internal/invoice"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectInvoiceColumns = `
	id, invoice_no, project_id, project_no, amount, currency,
	invoice_date, due_date, status, created_at, updated_at
`

func scanInvoice(s scanner) (*invoice.Invoice, error) {
	var inv invoice.Invoice

	var statusStr string

	if err := s.Scan(
		&inv.ID, &inv.InvoiceNo, &inv.ProjectID, &inv.ProjectNo,
		&inv.Amount, &inv.Currency, &inv.InvoiceDate, &inv.DueDate,
		&statusStr, &inv.CreatedAt, &inv.UpdatedAt,
	); err != nil {
		return nil, err
	}

	inv.Status = invoice.NormalizeStatus(statusStr)

	return &inv, nil
}

func (s *Store) CreateInvoice(ctx context.Context, inv *invoice.Invoice) error {
	query := `
		INSERT INTO invoices (invoice_no, project_id, project_no, amount, currency, invoice_date, due_date, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		inv.InvoiceNo,
		inv.ProjectID,
		inv.ProjectNo,
		inv.Amount,
		inv.Currency,
		inv.InvoiceDate,
		inv.DueDate,
		inv.Status,
	).Scan(&inv.ID, &inv.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating invoice: %w", err)
	}

	return nil
}

func (s *Store) CreateInvoices(ctx context.Context, invs []*invoice.Invoice) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning batch insert: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO invoices (invoice_no, project_id, project_no, amount, currency, invoice_date, due_date, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING id, created_at
	`

	for _, inv := range invs {
		err := tx.QueryRowContext(ctx, query,
			inv.InvoiceNo,
			inv.ProjectID,
			inv.ProjectNo,
			inv.Amount,
			inv.Currency,
			inv.InvoiceDate,
			inv.DueDate,
			inv.Status,
		).Scan(&inv.ID, &inv.CreatedAt)
		if err != nil {
			return fmt.Errorf("creating invoice %s: %w", inv.InvoiceNo, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing batch insert: %w", err)
	}

	return nil
}

func (s *Store) GetInvoice(ctx context.Context, id int64) (*invoice.Invoice, error) {
	query := `SELECT ` + selectInvoiceColumns + ` FROM invoices WHERE id = $1`

	inv, err := scanInvoice(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, invoice.ErrNotFound
		}

		return nil, fmt.Errorf("getting invoice: %w", err)
	}

	return inv, nil
}

func (s *Store) ListInvoices(ctx context.Context, filter invoice.ListFilter) ([]*invoice.Invoice, error) {
	query := `SELECT ` + selectInvoiceColumns + ` FROM invoices WHERE TRUE`

	var args []any

	argIdx := 1

	if filter.Status != nil {
		query += fmt.Sprintf(" AND status = $%d", argIdx)

		args = append(args, *filter.Status)
		argIdx++
	}

	if filter.ProjectNo != nil {
		query += fmt.Sprintf(" AND project_no = $%d", argIdx)

		args = append(args, *filter.ProjectNo)
		argIdx++
	}

	query += " ORDER BY invoice_date DESC, id DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing invoices: %w", err)
	}
	defer rows.Close()

	var invs []*invoice.Invoice

	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning invoice: %w", err)
		}

		invs = append(invs, inv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating invoice rows: %w", err)
	}

	return invs, nil
}

func (s *Store) UpdateInvoice(ctx context.Context, inv *invoice.Invoice) error {
	query := `
		UPDATE invoices
		SET invoice_no = $1, project_id = $2, project_no = $3, amount = $4,
		    currency = $5, invoice_date = $6, due_date = $7, status = $8, updated_at = NOW()
		WHERE id = $9
	`

	_, err := s.db.ExecContext(ctx, query,
		inv.InvoiceNo,
		inv.ProjectID,
		inv.ProjectNo,
		inv.Amount,
		inv.Currency,
		inv.InvoiceDate,
		inv.DueDate,
		inv.Status,
		inv.ID,
	)
	if err != nil {
		return fmt.Errorf("updating invoice: %w", err)
	}

	return nil
}

func (s *Store) UpdateStatus(ctx context.Context, id int64, status invoice.Status) error {
	query := `
		UPDATE invoices
		SET status = $1, updated_at = NOW()
		WHERE id = $2
	`

	_, err := s.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("updating invoice status: %w", err)
	}

	return nil
}

func (s *Store) DeleteInvoice(ctx context.Context, id int64) error {
	query := `DELETE FROM invoices WHERE id = $1`

	_, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting invoice: %w", err)
	}

	return nil
}
