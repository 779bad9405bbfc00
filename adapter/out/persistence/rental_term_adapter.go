package persistence

import (
	"context"
	"database/sql"
	"errors"

	"rental_server/core/domain"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// TermAdapter implements out.TermRepository using PostgreSQL.
// The consent record's primary key is the owning user's id.
type TermAdapter struct {
	db *sqlx.DB
}

func NewTermAdapter(db *sqlx.DB) *TermAdapter {
	return &TermAdapter{db: db}
}

func (a *TermAdapter) Create(ctx context.Context, t *domain.Term) error {
	query := `
		INSERT INTO terms (id, agree_of_term, agree_fourteen, agree_of_service, agree_of_event, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := a.db.ExecContext(ctx, query,
		t.ID, t.AgreeOfTerm, t.AgreeFourteen, t.AgreeOfService, t.AgreeOfEvent, t.CreatedAt, t.UpdatedAt,
	)
	return err
}

func (a *TermAdapter) FindByID(ctx context.Context, id uuid.UUID) (*domain.Term, error) {
	var t domain.Term
	query := `SELECT id, agree_of_term, agree_fourteen, agree_of_service, agree_of_event, created_at, updated_at FROM terms WHERE id = $1`
	if err := a.db.GetContext(ctx, &t, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (a *TermAdapter) Update(ctx context.Context, t *domain.Term) error {
	query := `
		UPDATE terms SET
			agree_of_term = $1, agree_fourteen = $2, agree_of_service = $3,
			agree_of_event = $4, updated_at = NOW()
		WHERE id = $5
	`
	_, err := a.db.ExecContext(ctx, query,
		t.AgreeOfTerm, t.AgreeFourteen, t.AgreeOfService, t.AgreeOfEvent, t.ID,
	)
	return err
}
