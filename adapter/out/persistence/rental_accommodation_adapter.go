package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"rental_server/core/domain"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// AccommodationAdapter implements out.AccommodationRepository using PostgreSQL.
type AccommodationAdapter struct {
	db *sqlx.DB
}

func NewAccommodationAdapter(db *sqlx.DB) *AccommodationAdapter {
	return &AccommodationAdapter{db: db}
}

type accommodationRow struct {
	ID          uuid.UUID      `db:"id"`
	Name        string         `db:"name"`
	Area        sql.NullString `db:"area"`
	Type        string         `db:"type"`
	ReservedAt  sql.NullTime   `db:"reserved_at"`
	Price       int            `db:"price"`
	Personnel   int            `db:"personnel"`
	Information sql.NullString `db:"information"`
	Imgs        pq.StringArray `db:"imgs"`
	CreatedAt   sql.NullTime   `db:"created_at"`
	UpdatedAt   sql.NullTime   `db:"updated_at"`
	DeletedAt   sql.NullTime   `db:"deleted_at"`
}

func (r *accommodationRow) toDomain() *domain.Accommodation {
	a := &domain.Accommodation{
		Base: domain.Base{
			ID:        r.ID,
			CreatedAt: r.CreatedAt.Time,
			UpdatedAt: r.UpdatedAt.Time,
		},
		Name:      r.Name,
		Type:      domain.AccommodationType(r.Type),
		Price:     r.Price,
		Personnel: r.Personnel,
		Imgs:      r.Imgs,
	}
	if r.Area.Valid {
		a.Area = r.Area.String
	}
	if r.ReservedAt.Valid {
		a.ReservedAt = &r.ReservedAt.Time
	}
	if r.Information.Valid {
		a.Information = r.Information.String
	}
	if r.DeletedAt.Valid {
		a.DeletedAt = &r.DeletedAt.Time
	}
	return a
}

const accommodationColumns = `id, name, area, type, reserved_at, price, personnel, information, imgs, created_at, updated_at, deleted_at`

func (a *AccommodationAdapter) Create(ctx context.Context, acc *domain.Accommodation) error {
	query := `
		INSERT INTO accommodations (id, name, area, type, reserved_at, price, personnel, information, imgs, created_at, updated_at)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7, NULLIF($8, ''), $9, $10, $11)
	`
	_, err := a.db.ExecContext(ctx, query,
		acc.ID, acc.Name, acc.Area, acc.Type, acc.ReservedAt, acc.Price,
		acc.Personnel, acc.Information, pq.Array(acc.Imgs), acc.CreatedAt, acc.UpdatedAt,
	)
	return err
}

func (a *AccommodationAdapter) FindByID(ctx context.Context, id uuid.UUID) (*domain.Accommodation, error) {
	var row accommodationRow
	query := `SELECT ` + accommodationColumns + ` FROM accommodations WHERE id = $1 AND deleted_at IS NULL`
	if err := a.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return row.toDomain(), nil
}

func (a *AccommodationAdapter) List(ctx context.Context, opts *domain.PageOptions) ([]*domain.Accommodation, int, error) {
	where := []string{"deleted_at IS NULL"}
	args := []interface{}{}

	if opts.Keyword != "" {
		args = append(args, "%"+opts.Keyword+"%")
		p := fmt.Sprintf("$%d", len(args))
		where = append(where, fmt.Sprintf("(name ILIKE %s OR area ILIKE %s)", p, p))
	}
	whereClause := strings.Join(where, " AND ")

	var count int
	if err := a.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM accommodations WHERE `+whereClause, args...); err != nil {
		return nil, 0, err
	}

	sort, ok := domain.SortValue[opts.Sort]
	if !ok {
		sort = domain.SortValue[domain.SortLastCreated]
	}

	args = append(args, opts.Take, opts.Skip())
	query := fmt.Sprintf(`SELECT %s FROM accommodations WHERE %s ORDER BY %s %s LIMIT $%d OFFSET $%d`,
		accommodationColumns, whereClause, sort.Column, sort.Order, len(args)-1, len(args))

	var rows []accommodationRow
	if err := a.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, 0, err
	}

	accommodations := make([]*domain.Accommodation, 0, len(rows))
	for i := range rows {
		accommodations = append(accommodations, rows[i].toDomain())
	}
	return accommodations, count, nil
}

func (a *AccommodationAdapter) Update(ctx context.Context, acc *domain.Accommodation) error {
	query := `
		UPDATE accommodations SET
			name = $1, area = NULLIF($2, ''), type = $3, reserved_at = $4,
			price = $5, personnel = $6, information = NULLIF($7, ''), imgs = $8,
			updated_at = NOW()
		WHERE id = $9 AND deleted_at IS NULL
	`
	_, err := a.db.ExecContext(ctx, query,
		acc.Name, acc.Area, acc.Type, acc.ReservedAt, acc.Price,
		acc.Personnel, acc.Information, pq.Array(acc.Imgs), acc.ID,
	)
	return err
}

func (a *AccommodationAdapter) UpdateImgs(ctx context.Context, id uuid.UUID, imgs []string) error {
	query := `UPDATE accommodations SET imgs = $1, updated_at = NOW() WHERE id = $2 AND deleted_at IS NULL`
	_, err := a.db.ExecContext(ctx, query, pq.Array(imgs), id)
	return err
}

func (a *AccommodationAdapter) Delete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE accommodations SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`
	_, err := a.db.ExecContext(ctx, query, id)
	return err
}
