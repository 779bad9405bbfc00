// Package persistence provides database adapters implementing outbound ports.
package persistence

import (
	"context"
	"database/sql"
	"errors"

	"rental_server/core/domain"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// UserAdapter implements out.UserRepository using PostgreSQL.
type UserAdapter struct {
	db *sqlx.DB
}

func NewUserAdapter(db *sqlx.DB) *UserAdapter {
	return &UserAdapter{db: db}
}

type userRow struct {
	ID          uuid.UUID      `db:"id"`
	Email       string         `db:"email"`
	Password    sql.NullString `db:"password"`
	Username    string         `db:"username"`
	ProfileImgs pq.StringArray `db:"profile_imgs"`
	Provider    string         `db:"provider"`
	Role        string         `db:"role"`
	CreatedAt   sql.NullTime   `db:"created_at"`
	UpdatedAt   sql.NullTime   `db:"updated_at"`
	DeletedAt   sql.NullTime   `db:"deleted_at"`
}

func (r *userRow) toDomain() *domain.User {
	user := &domain.User{
		Base: domain.Base{
			ID:        r.ID,
			CreatedAt: r.CreatedAt.Time,
			UpdatedAt: r.UpdatedAt.Time,
		},
		Email:       r.Email,
		Username:    r.Username,
		ProfileImgs: r.ProfileImgs,
		Provider:    domain.Provider(r.Provider),
		Role:        domain.Role(r.Role),
	}
	if r.Password.Valid {
		user.Password = r.Password.String
	}
	if r.DeletedAt.Valid {
		user.DeletedAt = &r.DeletedAt.Time
	}
	return user
}

const userColumns = `id, email, password, username, profile_imgs, provider, role, created_at, updated_at, deleted_at`

func (a *UserAdapter) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (id, email, password, username, profile_imgs, provider, role, created_at, updated_at)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7, $8, $9)
	`
	_, err := a.db.ExecContext(ctx, query,
		user.ID,
		user.Email,
		user.Password,
		user.Username,
		pq.Array(user.ProfileImgs),
		user.Provider,
		user.Role,
		user.CreatedAt,
		user.UpdatedAt,
	)
	return err
}

func (a *UserAdapter) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var row userRow
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1 AND deleted_at IS NULL`
	if err := a.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return row.toDomain(), nil
}

func (a *UserAdapter) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var row userRow
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1 AND deleted_at IS NULL`
	if err := a.db.GetContext(ctx, &row, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return row.toDomain(), nil
}

func (a *UserAdapter) UpdatePassword(ctx context.Context, id uuid.UUID, hashed string) error {
	query := `UPDATE users SET password = $1, updated_at = NOW() WHERE id = $2 AND deleted_at IS NULL`
	_, err := a.db.ExecContext(ctx, query, hashed, id)
	return err
}

func (a *UserAdapter) UpdateProfileImgs(ctx context.Context, id uuid.UUID, imgs []string) error {
	query := `UPDATE users SET profile_imgs = $1, updated_at = NOW() WHERE id = $2 AND deleted_at IS NULL`
	_, err := a.db.ExecContext(ctx, query, pq.Array(imgs), id)
	return err
}

// Delete soft-deletes the user; the row survives for referential integrity.
func (a *UserAdapter) Delete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE users SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`
	_, err := a.db.ExecContext(ctx, query, id)
	return err
}
