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

type slabRepo struct {
	db *sqlx.DB
}

// NewSlabRepo creates a new PostgreSQL-backed SlabRepository.
func NewSlabRepo(db *sqlx.DB) port.SlabRepository {
	return &slabRepo{db: db}
}

const insertSlabQuery = `INSERT INTO tax_slabs
	(id, name, rate, category, hsn_code, type, description, status, is_default, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

func (r *slabRepo) Create(ctx context.Context, slab *domain.TaxSlab) error {
	slab.ID = uuid.New()
	now := time.Now().UTC()
	slab.CreatedAt = now
	slab.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, insertSlabQuery,
		slab.ID, slab.Name, slab.Rate, slab.Category, slab.HSNCode, slab.Type,
		slab.Description, slab.Status, slab.IsDefault, slab.CreatedAt, slab.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return domain.ErrDuplicateSlabName
		}
		return fmt.Errorf("slabRepo.Create: %w", err)
	}
	return nil
}

func (r *slabRepo) CreateMany(ctx context.Context, slabs []domain.TaxSlab) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("slabRepo.CreateMany begin: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	for i := range slabs {
		slabs[i].ID = uuid.New()
		slabs[i].CreatedAt = now
		slabs[i].UpdatedAt = now

		_, err := tx.ExecContext(ctx, insertSlabQuery,
			slabs[i].ID, slabs[i].Name, slabs[i].Rate, slabs[i].Category, slabs[i].HSNCode,
			slabs[i].Type, slabs[i].Description, slabs[i].Status, slabs[i].IsDefault,
			slabs[i].CreatedAt, slabs[i].UpdatedAt)
		if err != nil {
			if strings.Contains(err.Error(), "duplicate key") {
				return domain.ErrDuplicateSlabName
			}
			return fmt.Errorf("slabRepo.CreateMany: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("slabRepo.CreateMany commit: %w", err)
	}
	return nil
}

func (r *slabRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.TaxSlab, error) {
	var slab domain.TaxSlab
	err := r.db.GetContext(ctx, &slab, "SELECT * FROM tax_slabs WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("slabRepo.GetByID: %w", err)
	}
	return &slab, nil
}

func (r *slabRepo) List(ctx context.Context, filter port.SlabFilter) ([]domain.TaxSlab, error) {
	query := "SELECT * FROM tax_slabs"
	var conds []string
	var args []interface{}

	if filter.Status != nil {
		args = append(args, *filter.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.IsDefault != nil {
		args = append(args, *filter.IsDefault)
		conds = append(conds, fmt.Sprintf("is_default = $%d", len(args)))
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY rate ASC, name ASC"

	var slabs []domain.TaxSlab
	if err := r.db.SelectContext(ctx, &slabs, query, args...); err != nil {
		return nil, fmt.Errorf("slabRepo.List: %w", err)
	}
	return slabs, nil
}

func (r *slabRepo) Update(ctx context.Context, slab *domain.TaxSlab) error {
	slab.UpdatedAt = time.Now().UTC()

	query := `UPDATE tax_slabs SET name = $1, rate = $2, category = $3, hsn_code = $4,
		type = $5, description = $6, status = $7, is_default = $8, updated_at = $9
		WHERE id = $10`

	result, err := r.db.ExecContext(ctx, query,
		slab.Name, slab.Rate, slab.Category, slab.HSNCode, slab.Type,
		slab.Description, slab.Status, slab.IsDefault, slab.UpdatedAt, slab.ID)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return domain.ErrDuplicateSlabName
		}
		return fmt.Errorf("slabRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *slabRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM tax_slabs WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("slabRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *slabRepo) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM tax_slabs"); err != nil {
		return 0, fmt.Errorf("slabRepo.Count: %w", err)
	}
	return count, nil
}

// ClearDefault is the multi-record conditional update backing the
// clear-then-set default sequence.
func (r *slabRepo) ClearDefault(ctx context.Context, exclude uuid.UUID) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE tax_slabs SET is_default = FALSE, updated_at = $1 WHERE is_default = TRUE AND id <> $2",
		time.Now().UTC(), exclude)
	if err != nil {
		return fmt.Errorf("slabRepo.ClearDefault: %w", err)
	}
	return nil
}
