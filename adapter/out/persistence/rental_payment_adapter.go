package persistence

import (
	"context"
	"database/sql"
	"errors"

	"rental_server/core/domain"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// PaymentAdapter implements out.PaymentRepository using PostgreSQL.
// Card number and CVC columns hold ciphertext; this adapter never sees
// plaintext card data.
type PaymentAdapter struct {
	db *sqlx.DB
}

func NewPaymentAdapter(db *sqlx.DB) *PaymentAdapter {
	return &PaymentAdapter{db: db}
}

type paymentRow struct {
	ID          uuid.UUID      `db:"id"`
	ProfileID   uuid.UUID      `db:"profile_id"`
	CardCompany sql.NullString `db:"card_company"`
	CardNumber  string         `db:"card_number"`
	CardCvc     string         `db:"card_cvc"`
	CardExpire  string         `db:"card_expire"`
	CardAlias   sql.NullString `db:"card_alias"`
	IsMain      bool           `db:"is_main"`
	CreatedAt   sql.NullTime   `db:"created_at"`
}

func (r *paymentRow) toDomain() *domain.Payment {
	p := &domain.Payment{
		ID:         r.ID,
		ProfileID:  r.ProfileID,
		CardNumber: r.CardNumber,
		CardCvc:    r.CardCvc,
		CardExpire: r.CardExpire,
		IsMain:     r.IsMain,
		CreatedAt:  r.CreatedAt.Time,
	}
	if r.CardCompany.Valid {
		p.CardCompany = r.CardCompany.String
	}
	if r.CardAlias.Valid {
		p.CardAlias = r.CardAlias.String
	}
	return p
}

const paymentColumns = `id, profile_id, card_company, card_number, card_cvc, card_expire, card_alias, is_main, created_at`

func (a *PaymentAdapter) Create(ctx context.Context, p *domain.Payment) error {
	query := `
		INSERT INTO payments (id, profile_id, card_company, card_number, card_cvc, card_expire, card_alias, is_main, created_at)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, NULLIF($7, ''), $8, $9)
	`
	_, err := a.db.ExecContext(ctx, query,
		p.ID, p.ProfileID, p.CardCompany, p.CardNumber, p.CardCvc,
		p.CardExpire, p.CardAlias, p.IsMain, p.CreatedAt,
	)
	return err
}

func (a *PaymentAdapter) FindByID(ctx context.Context, id uuid.UUID) (*domain.Payment, error) {
	var row paymentRow
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`
	if err := a.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return row.toDomain(), nil
}

func (a *PaymentAdapter) ListByProfile(ctx context.Context, profileID uuid.UUID) ([]*domain.Payment, error) {
	var rows []paymentRow
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE profile_id = $1 ORDER BY is_main DESC, created_at DESC`
	if err := a.db.SelectContext(ctx, &rows, query, profileID); err != nil {
		return nil, err
	}
	payments := make([]*domain.Payment, 0, len(rows))
	for i := range rows {
		payments = append(payments, rows[i].toDomain())
	}
	return payments, nil
}

// SetMain promotes one card and demotes the rest in a single transaction
func (a *PaymentAdapter) SetMain(ctx context.Context, profileID, paymentID uuid.UUID) error {
	tx, err := a.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`UPDATE payments SET is_main = FALSE WHERE profile_id = $1`, profileID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE payments SET is_main = TRUE WHERE id = $1 AND profile_id = $2`, paymentID, profileID); err != nil {
		return err
	}

	return tx.Commit()
}

func (a *PaymentAdapter) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := a.db.ExecContext(ctx, `DELETE FROM payments WHERE id = $1`, id)
	return err
}
