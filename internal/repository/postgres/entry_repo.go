package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"taxmitra/internal/domain"
	"taxmitra/internal/port"
)

type entryRepo struct {
	db *sqlx.DB
}

// NewEntryRepo creates a new PostgreSQL-backed EntryRepository.
func NewEntryRepo(db *sqlx.DB) port.EntryRepository {
	return &entryRepo{db: db}
}

func (r *entryRepo) Create(ctx context.Context, entry *domain.TaxEntry) error {
	entry.ID = uuid.New()
	now := time.Now().UTC()
	entry.CreatedAt = now
	entry.UpdatedAt = now

	query := `INSERT INTO tax_entries
		(id, invoice_no, date, customer, gstin, items, is_inter_state,
		 taxable_value, total_tax, total_amount, gst_return, status, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	_, err := r.db.ExecContext(ctx, query,
		entry.ID, entry.InvoiceNo, entry.Date, entry.Customer, entry.GSTIN, entry.Items,
		entry.IsInterState, entry.TaxableValue, entry.TotalTax, entry.TotalAmount,
		entry.GSTReturn, entry.Status, entry.Notes, entry.CreatedAt, entry.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return domain.ErrDuplicateInvoiceNo
		}
		return fmt.Errorf("entryRepo.Create: %w", err)
	}
	return nil
}

func (r *entryRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.TaxEntry, error) {
	var entry domain.TaxEntry
	err := r.db.GetContext(ctx, &entry, "SELECT * FROM tax_entries WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("entryRepo.GetByID: %w", err)
	}
	return &entry, nil
}

func (r *entryRepo) List(ctx context.Context, filter port.EntryFilter) ([]domain.TaxEntry, int, error) {
	var conds []string
	var args []interface{}

	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf("(invoice_no ILIKE $%d OR customer ILIKE $%d OR gstin ILIKE $%d)", n, n, n))
	}
	if filter.GSTReturn != nil {
		args = append(args, *filter.GSTReturn)
		conds = append(conds, fmt.Sprintf("gst_return = $%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.IsInterState != nil {
		args = append(args, *filter.IsInterState)
		conds = append(conds, fmt.Sprintf("is_inter_state = $%d", len(args)))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		conds = append(conds, fmt.Sprintf("date >= $%d", len(args)))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		conds = append(conds, fmt.Sprintf("date <= $%d", len(args)))
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM tax_entries"+where, args...); err != nil {
		return nil, 0, fmt.Errorf("entryRepo.List count: %w", err)
	}

	query := "SELECT * FROM tax_entries" + where + " ORDER BY date DESC, created_at DESC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	var entries []domain.TaxEntry
	if err := r.db.SelectContext(ctx, &entries, query, args...); err != nil {
		return nil, 0, fmt.Errorf("entryRepo.List: %w", err)
	}
	return entries, total, nil
}

func (r *entryRepo) Update(ctx context.Context, entry *domain.TaxEntry) error {
	entry.UpdatedAt = time.Now().UTC()

	query := `UPDATE tax_entries SET date = $1, customer = $2, gstin = $3, items = $4,
		is_inter_state = $5, taxable_value = $6, total_tax = $7, total_amount = $8,
		gst_return = $9, status = $10, notes = $11, updated_at = $12
		WHERE id = $13`

	result, err := r.db.ExecContext(ctx, query,
		entry.Date, entry.Customer, entry.GSTIN, entry.Items, entry.IsInterState,
		entry.TaxableValue, entry.TotalTax, entry.TotalAmount, entry.GSTReturn,
		entry.Status, entry.Notes, entry.UpdatedAt, entry.ID)
	if err != nil {
		return fmt.Errorf("entryRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *entryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM tax_entries WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("entryRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
