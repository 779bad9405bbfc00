package persistence

import (
	"context"
	"database/sql"
	"errors"

	"rental_server/core/domain"
	"rental_server/core/port/out"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// ReservationAdapter implements out.ReservationRepository using PostgreSQL.
// Overlap-checked writes lock the car row first so concurrent bookings of
// the same car serialize on the lock instead of racing the check.
type ReservationAdapter struct {
	db *sqlx.DB
}

func NewReservationAdapter(db *sqlx.DB) *ReservationAdapter {
	return &ReservationAdapter{db: db}
}

type reservationRow struct {
	ID        uuid.UUID    `db:"id"`
	UserID    uuid.UUID    `db:"user_id"`
	CarID     uuid.UUID    `db:"car_id"`
	Status    string       `db:"status"`
	StartTime sql.NullTime `db:"start_time"`
	EndTime   sql.NullTime `db:"end_time"`
	CreatedAt sql.NullTime `db:"created_at"`
	UpdatedAt sql.NullTime `db:"updated_at"`
	DeletedAt sql.NullTime `db:"deleted_at"`
}

func (r *reservationRow) toDomain() *domain.Reservation {
	res := &domain.Reservation{
		Base: domain.Base{
			ID:        r.ID,
			CreatedAt: r.CreatedAt.Time,
			UpdatedAt: r.UpdatedAt.Time,
		},
		UserID:    r.UserID,
		CarID:     r.CarID,
		Status:    domain.ReservationStatus(r.Status),
		StartTime: r.StartTime.Time,
		EndTime:   r.EndTime.Time,
	}
	if r.DeletedAt.Valid {
		res.DeletedAt = &r.DeletedAt.Time
	}
	return res
}

const reservationColumns = `id, user_id, car_id, status, start_time, end_time, created_at, updated_at, deleted_at`

// overlapExists runs the half-open interval check inside the caller's
// transaction: existing.start < new.end AND existing.end > new.start.
func overlapExists(ctx context.Context, tx *sqlx.Tx, r *domain.Reservation) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM reservations
			WHERE car_id = $1
			  AND id != $2
			  AND status IN ('pending', 'confirmed')
			  AND deleted_at IS NULL
			  AND start_time < $3
			  AND end_time > $4
		)
	`
	var exists bool
	err := tx.GetContext(ctx, &exists, query, r.CarID, r.ID, r.EndTime, r.StartTime)
	return exists, err
}

// lockCar takes the row lock that serializes bookings of one car
func lockCar(ctx context.Context, tx *sqlx.Tx, carID uuid.UUID) error {
	var id uuid.UUID
	err := tx.GetContext(ctx, &id, `SELECT id FROM cars WHERE id = $1 FOR UPDATE`, carID)
	if errors.Is(err, sql.ErrNoRows) {
		return sql.ErrNoRows
	}
	return err
}

func (a *ReservationAdapter) CreateChecked(ctx context.Context, r *domain.Reservation) error {
	tx, err := a.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := lockCar(ctx, tx, r.CarID); err != nil {
		return err
	}
	taken, err := overlapExists(ctx, tx, r)
	if err != nil {
		return err
	}
	if taken {
		return out.ErrSlotTaken
	}

	query := `
		INSERT INTO reservations (id, user_id, car_id, status, start_time, end_time, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	if _, err := tx.ExecContext(ctx, query,
		r.ID, r.UserID, r.CarID, r.Status, r.StartTime, r.EndTime, r.CreatedAt, r.UpdatedAt,
	); err != nil {
		return err
	}

	return tx.Commit()
}

func (a *ReservationAdapter) UpdateChecked(ctx context.Context, r *domain.Reservation, checkOverlap bool) error {
	tx, err := a.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if checkOverlap {
		if err := lockCar(ctx, tx, r.CarID); err != nil {
			return err
		}
		taken, err := overlapExists(ctx, tx, r)
		if err != nil {
			return err
		}
		if taken {
			return out.ErrSlotTaken
		}
	}

	query := `
		UPDATE reservations
		SET car_id = $1, status = $2, start_time = $3, end_time = $4, updated_at = NOW()
		WHERE id = $5 AND deleted_at IS NULL
	`
	if _, err := tx.ExecContext(ctx, query, r.CarID, r.Status, r.StartTime, r.EndTime, r.ID); err != nil {
		return err
	}

	return tx.Commit()
}

func (a *ReservationAdapter) Save(ctx context.Context, r *domain.Reservation) error {
	query := `
		UPDATE reservations
		SET status = $1, start_time = $2, end_time = $3, updated_at = NOW()
		WHERE id = $4 AND deleted_at IS NULL
	`
	_, err := a.db.ExecContext(ctx, query, r.Status, r.StartTime, r.EndTime, r.ID)
	return err
}

func (a *ReservationAdapter) FindByID(ctx context.Context, id uuid.UUID) (*domain.Reservation, error) {
	var row reservationRow
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1 AND deleted_at IS NULL`
	if err := a.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return row.toDomain(), nil
}

func (a *ReservationAdapter) FindByUserAndID(ctx context.Context, userID, id uuid.UUID) (*domain.Reservation, error) {
	var row reservationRow
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL`
	if err := a.db.GetContext(ctx, &row, query, id, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return row.toDomain(), nil
}

func (a *ReservationAdapter) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Reservation, error) {
	var rows []reservationRow
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE user_id = $1 AND deleted_at IS NULL ORDER BY start_time DESC`
	if err := a.db.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, err
	}
	reservations := make([]*domain.Reservation, 0, len(rows))
	for i := range rows {
		reservations = append(reservations, rows[i].toDomain())
	}
	return reservations, nil
}
