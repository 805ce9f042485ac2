package bill

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
)

// Repository handles bill data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new bill repository with database dependency injected
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const billColumns = `
	id, restaurant_name, section_name, payee_id,
	tax, service_charge, misc_fees, booking_fees,
	discount_type, discount_amount, discount_percentage,
	dinecash_deduction, cashback_applied,
	participating_person_ids, deleted_at, created_at
`

// Create inserts a bill and its items in one transaction
func (r *Repository) Create(ctx context.Context, bill *Bill) (*Bill, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO bills (
			id, restaurant_name, section_name, payee_id,
			tax, service_charge, misc_fees, booking_fees,
			discount_type, discount_amount, discount_percentage,
			dinecash_deduction, cashback_applied, participating_person_ids
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING created_at
	`

	err = tx.QueryRowContext(ctx, query,
		bill.ID, bill.RestaurantName, bill.SectionName, bill.PayeeID,
		bill.Tax, bill.ServiceCharge, bill.MiscFees, bill.BookingFees,
		bill.Discount.Type, bill.Discount.Amount, bill.Discount.Percentage,
		bill.DinecashDeduction, bill.CashbackApplied,
		pq.Array(bill.ParticipatingPersonIDs),
	).Scan(&bill.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create bill: %w", err)
	}

	if err := insertItems(ctx, tx, bill.ID, bill.Items); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit bill: %w", err)
	}

	return bill, nil
}

// insertItems writes the bill's items preserving their order
func insertItems(ctx context.Context, tx *sql.Tx, billID string, items []Item) error {
	query := `
		INSERT INTO bill_items (id, bill_id, name, unit_price, quantity, assigned_person_ids, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	for position, item := range items {
		_, err := tx.ExecContext(ctx, query,
			item.ID, billID, item.Name, item.UnitPrice, item.Quantity,
			pq.Array(item.AssignedPersonIDs), position,
		)
		if err != nil {
			return fmt.Errorf("failed to create bill item: %w", err)
		}
	}
	return nil
}

// GetByID retrieves a bill with its items. Soft-deleted bills are returned
// too; callers that only want live bills check DeletedAt.
func (r *Repository) GetByID(ctx context.Context, id string) (*Bill, error) {
	query := `SELECT ` + billColumns + ` FROM bills WHERE id = $1`

	bill, err := scanBill(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get bill: %w", err)
	}

	if err := r.loadItems(ctx, []*Bill{bill}); err != nil {
		return nil, err
	}

	return bill, nil
}

// List retrieves live bills, optionally filtered by section, newest first
func (r *Repository) List(ctx context.Context, section string, limit, offset int) ([]*Bill, int, error) {
	var total int
	countQuery := `
		SELECT COUNT(*) FROM bills
		WHERE deleted_at IS NULL AND ($1 = '' OR section_name = $1)
	`
	if err := r.db.QueryRowContext(ctx, countQuery, section).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count bills: %w", err)
	}

	query := `
		SELECT ` + billColumns + `
		FROM bills
		WHERE deleted_at IS NULL AND ($1 = '' OR section_name = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	bills, err := r.queryBills(ctx, query, section, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	return bills, total, nil
}

// ListActive retrieves every live bill, for ledger building
func (r *Repository) ListActive(ctx context.Context) ([]*Bill, error) {
	query := `
		SELECT ` + billColumns + `
		FROM bills
		WHERE deleted_at IS NULL
		ORDER BY created_at ASC
	`

	return r.queryBills(ctx, query)
}

// ListDeleted retrieves the recycle bin, most recently deleted first
func (r *Repository) ListDeleted(ctx context.Context) ([]*Bill, error) {
	query := `
		SELECT ` + billColumns + `
		FROM bills
		WHERE deleted_at IS NOT NULL
		ORDER BY deleted_at DESC
	`

	return r.queryBills(ctx, query)
}

// Update replaces a bill's fields and, when items is non-nil, its item list
func (r *Repository) Update(ctx context.Context, bill *Bill, replaceItems bool) (*Bill, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		UPDATE bills
		SET restaurant_name = $2,
		    section_name = $3,
		    payee_id = $4,
		    tax = $5,
		    service_charge = $6,
		    misc_fees = $7,
		    booking_fees = $8,
		    discount_type = $9,
		    discount_amount = $10,
		    discount_percentage = $11,
		    dinecash_deduction = $12,
		    cashback_applied = $13,
		    participating_person_ids = $14
		WHERE id = $1
	`

	result, err := tx.ExecContext(ctx, query,
		bill.ID, bill.RestaurantName, bill.SectionName, bill.PayeeID,
		bill.Tax, bill.ServiceCharge, bill.MiscFees, bill.BookingFees,
		bill.Discount.Type, bill.Discount.Amount, bill.Discount.Percentage,
		bill.DinecashDeduction, bill.CashbackApplied,
		pq.Array(bill.ParticipatingPersonIDs),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update bill: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, nil
	}

	if replaceItems {
		if _, err := tx.ExecContext(ctx, `DELETE FROM bill_items WHERE bill_id = $1`, bill.ID); err != nil {
			return nil, fmt.Errorf("failed to clear bill items: %w", err)
		}
		if err := insertItems(ctx, tx, bill.ID, bill.Items); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit bill update: %w", err)
	}

	return bill, nil
}

// SoftDelete moves a bill to the recycle bin
func (r *Repository) SoftDelete(ctx context.Context, id string) (bool, error) {
	query := `
		UPDATE bills
		SET deleted_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`
	return r.execAffected(ctx, query, id, "failed to delete bill")
}

// Restore brings a bill back from the recycle bin
func (r *Repository) Restore(ctx context.Context, id string) (bool, error) {
	query := `
		UPDATE bills
		SET deleted_at = NULL
		WHERE id = $1 AND deleted_at IS NOT NULL
	`
	return r.execAffected(ctx, query, id, "failed to restore bill")
}

// Purge permanently removes a soft-deleted bill and its items
func (r *Repository) Purge(ctx context.Context, id string) (bool, error) {
	query := `DELETE FROM bills WHERE id = $1 AND deleted_at IS NOT NULL`
	return r.execAffected(ctx, query, id, "failed to purge bill")
}

func (r *Repository) execAffected(ctx context.Context, query, id, errMsg string) (bool, error) {
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("%s: %w", errMsg, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rowsAffected > 0, nil
}

func (r *Repository) queryBills(ctx context.Context, query string, args ...interface{}) ([]*Bill, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}
	defer rows.Close()

	var bills []*Bill
	for rows.Next() {
		bill, err := scanBill(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bill: %w", err)
		}
		bills = append(bills, bill)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bills: %w", err)
	}

	if err := r.loadItems(ctx, bills); err != nil {
		return nil, err
	}

	return bills, nil
}

// loadItems attaches items to the given bills in stored order
func (r *Repository) loadItems(ctx context.Context, bills []*Bill) error {
	if len(bills) == 0 {
		return nil
	}

	byID := make(map[string]*Bill, len(bills))
	ids := make([]string, len(bills))
	for i, bill := range bills {
		byID[bill.ID] = bill
		ids[i] = bill.ID
	}

	query := `
		SELECT id, bill_id, name, unit_price, quantity, assigned_person_ids
		FROM bill_items
		WHERE bill_id = ANY($1)
		ORDER BY bill_id, position ASC
	`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("failed to load bill items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		item := Item{}
		var assigned pq.StringArray
		if err := rows.Scan(&item.ID, &item.BillID, &item.Name, &item.UnitPrice, &item.Quantity, &assigned); err != nil {
			return fmt.Errorf("failed to scan bill item: %w", err)
		}
		item.AssignedPersonIDs = assigned
		if bill, ok := byID[item.BillID]; ok {
			bill.Items = append(bill.Items, item)
		}
	}
	return rows.Err()
}

// rowScanner lets scanBill work for both QueryRow and Query results
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBill(row rowScanner) (*Bill, error) {
	bill := &Bill{}
	var participating pq.StringArray
	err := row.Scan(
		&bill.ID, &bill.RestaurantName, &bill.SectionName, &bill.PayeeID,
		&bill.Tax, &bill.ServiceCharge, &bill.MiscFees, &bill.BookingFees,
		&bill.Discount.Type, &bill.Discount.Amount, &bill.Discount.Percentage,
		&bill.DinecashDeduction, &bill.CashbackApplied,
		&participating, &bill.DeletedAt, &bill.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	bill.ParticipatingPersonIDs = participating
	return bill, nil
}
