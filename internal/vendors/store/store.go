package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/innobi/opsboard/internal/vendors"
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

const selectVendorColumns = `
	id, vendor_no, vendor_name, vendor_type, contact_person, contact_phone,
	contact_email, payment, status, created_at, updated_at
`

func scanVendor(s scanner) (*vendor.Vendor, error) {
	var v vendor.Vendor

	if err := s.Scan(
		&v.ID, &v.VendorNo, &v.VendorName, &v.VendorType, &v.ContactPerson,
		&v.ContactPhone, &v.ContactEmail, &v.Payment, &v.Status,
		&v.CreatedAt, &v.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return &v, nil
}

func (s *Store) CreateVendor(ctx context.Context, v *vendor.Vendor) error {
	query := `
		INSERT INTO vendors (vendor_no, vendor_name, vendor_type, contact_person, contact_phone, contact_email, payment, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		v.VendorNo, v.VendorName, v.VendorType, v.ContactPerson,
		v.ContactPhone, v.ContactEmail, v.Payment, v.Status,
	).Scan(&v.ID, &v.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating vendor: %w", err)
	}

	return nil
}

func (s *Store) GetVendor(ctx context.Context, id int64) (*vendor.Vendor, error) {
	query := `SELECT ` + selectVendorColumns + ` FROM vendors WHERE id = $1`

	v, err := scanVendor(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, vendor.ErrNotFound
		}

		return nil, fmt.Errorf("getting vendor: %w", err)
	}

	return v, nil
}

func (s *Store) ListVendors(ctx context.Context) ([]*vendor.Vendor, error) {
	query := `SELECT ` + selectVendorColumns + ` FROM vendors ORDER BY vendor_name ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing vendors: %w", err)
	}
	defer rows.Close()

	var vs []*vendor.Vendor

	for rows.Next() {
		v, err := scanVendor(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning vendor: %w", err)
		}

		vs = append(vs, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating vendor rows: %w", err)
	}

	return vs, nil
}

func (s *Store) UpdateVendor(ctx context.Context, v *vendor.Vendor) error {
	query := `
		UPDATE vendors
		SET vendor_no = $1, vendor_name = $2, vendor_type = $3, contact_person = $4,
		    contact_phone = $5, contact_email = $6, payment = $7, status = $8, updated_at = NOW()
		WHERE id = $9
	`

	_, err := s.db.ExecContext(ctx, query,
		v.VendorNo, v.VendorName, v.VendorType, v.ContactPerson,
		v.ContactPhone, v.ContactEmail, v.Payment, v.Status, v.ID,
	)
	if err != nil {
		return fmt.Errorf("updating vendor: %w", err)
	}

	return nil
}

func (s *Store) DeleteVendor(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM vendors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting vendor: %w", err)
	}

	return nil
}
