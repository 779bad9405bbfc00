package persistence

import (
	"context"
	"database/sql"
	"errors"

	"rental_server/core/domain"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// ProfileAdapter implements out.ProfileRepository using PostgreSQL.
// The profile's primary key is the owning user's id.
type ProfileAdapter struct {
	db *sqlx.DB
}

func NewProfileAdapter(db *sqlx.DB) *ProfileAdapter {
	return &ProfileAdapter{db: db}
}

type profileRow struct {
	ID        uuid.UUID      `db:"id"`
	Phone     sql.NullString `db:"phone"`
	Address   sql.NullString `db:"address"`
	Birth     sql.NullTime   `db:"birth"`
	Gender    string         `db:"gender"`
	Grade     string         `db:"grade"`
	CreatedAt sql.NullTime   `db:"created_at"`
	UpdatedAt sql.NullTime   `db:"updated_at"`
}

func (r *profileRow) toDomain() *domain.Profile {
	p := &domain.Profile{
		ID:        r.ID,
		Gender:    domain.Gender(r.Gender),
		Grade:     domain.Grade(r.Grade),
		CreatedAt: r.CreatedAt.Time,
		UpdatedAt: r.UpdatedAt.Time,
	}
	if r.Phone.Valid {
		p.Phone = r.Phone.String
	}
	if r.Address.Valid {
		p.Address = r.Address.String
	}
	if r.Birth.Valid {
		p.Birth = &r.Birth.Time
	}
	return p
}

func (a *ProfileAdapter) Create(ctx context.Context, p *domain.Profile) error {
	query := `
		INSERT INTO profiles (id, phone, address, birth, gender, grade, created_at, updated_at)
		VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), $4, $5, $6, $7, $8)
	`
	_, err := a.db.ExecContext(ctx, query,
		p.ID, p.Phone, p.Address, p.Birth, p.Gender, p.Grade, p.CreatedAt, p.UpdatedAt,
	)
	return err
}

func (a *ProfileAdapter) FindByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	var row profileRow
	query := `SELECT id, phone, address, birth, gender, grade, created_at, updated_at FROM profiles WHERE id = $1`
	if err := a.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return row.toDomain(), nil
}

func (a *ProfileAdapter) Update(ctx context.Context, p *domain.Profile) error {
	query := `
		UPDATE profiles SET
			phone = NULLIF($1, ''), address = NULLIF($2, ''), birth = $3,
			gender = $4, grade = $5, updated_at = NOW()
		WHERE id = $6
	`
	_, err := a.db.ExecContext(ctx, query, p.Phone, p.Address, p.Birth, p.Gender, p.Grade, p.ID)
	return err
}

func (a *ProfileAdapter) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := a.db.ExecContext(ctx, `DELETE FROM profiles WHERE id = $1`, id)
	return err
}
