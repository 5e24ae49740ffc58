package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/innobi/opsboard/internal/purchaseorder"
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

const selectPurchaseOrderColumns = `
	id, project_id, vendor_id, project_no, vendor_name, cost_type,
	amount, currency, status, created_at, updated_at
`

func scanPurchaseOrder(s scanner) (*purchaseorder.PurchaseOrder, error) {
	var po purchaseorder.PurchaseOrder

	var statusInt int

	if err := s.Scan(
		&po.ID, &po.ProjectID, &po.VendorID, &po.ProjectNo, &po.VendorName,
		&po.CostType, &po.Amount, &po.Currency, &statusInt,
		&po.CreatedAt, &po.UpdatedAt,
	); err != nil {
		return nil, err
	}

	po.Status = purchaseorder.NormalizeStatus(statusInt)

	return &po, nil
}

func (s *Store) CreatePurchaseOrder(ctx context.Context, po *purchaseorder.PurchaseOrder) error {
	query := `
		INSERT INTO purchase_orders (project_id, vendor_id, project_no, vendor_name, cost_type, amount, currency, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		po.ProjectID,
		po.VendorID,
		po.ProjectNo,
		po.VendorName,
		po.CostType,
		po.Amount,
		po.Currency,
		int(po.Status),
	).Scan(&po.ID, &po.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating purchase order: %w", err)
	}

	return nil
}

func (s *Store) GetPurchaseOrder(ctx context.Context, id int64) (*purchaseorder.PurchaseOrder, error) {
	query := `SELECT ` + selectPurchaseOrderColumns + ` FROM purchase_orders WHERE id = $1`

	po, err := scanPurchaseOrder(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, purchaseorder.ErrNotFound
		}

		return nil, fmt.Errorf("getting purchase order: %w", err)
	}

	return po, nil
}

func (s *Store) ListPurchaseOrders(ctx context.Context, filter purchaseorder.ListFilter) ([]*purchaseorder.PurchaseOrder, error) {
	query := `SELECT ` + selectPurchaseOrderColumns + ` FROM purchase_orders WHERE TRUE`

	var args []any

	argIdx := 1

	if filter.Status != nil {
		query += fmt.Sprintf(" AND status = $%d", argIdx)

		args = append(args, int(*filter.Status))
		argIdx++
	}

	if filter.ActiveOnly {
		query += " AND status != 0"
	}

	query += " ORDER BY created_at DESC, id DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing purchase orders: %w", err)
	}
	defer rows.Close()

	var pos []*purchaseorder.PurchaseOrder

	for rows.Next() {
		po, err := scanPurchaseOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning purchase order: %w", err)
		}

		pos = append(pos, po)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating purchase order rows: %w", err)
	}

	return pos, nil
}

func (s *Store) UpdatePurchaseOrder(ctx context.Context, po *purchaseorder.PurchaseOrder) error {
	query := `
		UPDATE purchase_orders
		SET project_id = $1, vendor_id = $2, project_no = $3, vendor_name = $4,
		    cost_type = $5, amount = $6, currency = $7, status = $8, updated_at = NOW()
		WHERE id = $9
	`

	_, err := s.db.ExecContext(ctx, query,
		po.ProjectID,
		po.VendorID,
		po.ProjectNo,
		po.VendorName,
		po.CostType,
		po.Amount,
		po.Currency,
		int(po.Status),
		po.ID,
	)
	if err != nil {
		return fmt.Errorf("updating purchase order: %w", err)
	}

	return nil
}

func (s *Store) UpdateStatus(ctx context.Context, id int64, status purchaseorder.Status) error {
	query := `
		UPDATE purchase_orders
		SET status = $1, updated_at = NOW()
		WHERE id = $2
	`

	_, err := s.db.ExecContext(ctx, query, int(status), id)
	if err != nil {
		return fmt.Errorf("updating purchase order status: %w", err)
	}

	return nil
}

func (s *Store) DeletePurchaseOrder(ctx context.Context, id int64) error {
	query := `DELETE FROM purchase_orders WHERE id = $1`

	_, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting purchase order: %w", err)
	}

	return nil
}
