package out

import (
	"context"
	"errors"

	"rental_server/core/domain"

	"github.com/google/uuid"
)

// ErrSlotTaken is returned when a confirmed reservation already covers part
// of the requested time range.
var ErrSlotTaken = errors.New("time slot already reserved")

// ReservationRepository persists reservations. The overlap-checked writes
// run inside a transaction that locks the car row first, so two concurrent
// requests for the same car cannot both pass the check.
type ReservationRepository interface {
	// CreateChecked inserts r after verifying no confirmed reservation on
	// r.CarID overlaps [r.StartTime, r.EndTime). Returns ErrSlotTaken on
	// conflict.
	CreateChecked(ctx context.Context, r *domain.Reservation) error

	// UpdateChecked saves r; when checkOverlap is set it first re-runs the
	// overlap check on r.CarID excluding r itself, under the same car lock.
	UpdateChecked(ctx context.Context, r *domain.Reservation, checkOverlap bool) error

	// Save writes r without availability checks (cancellations, completions).
	Save(ctx context.Context, r *domain.Reservation) error

	FindByID(ctx context.Context, id uuid.UUID) (*domain.Reservation, error)
	FindByUserAndID(ctx context.Context, userID, id uuid.UUID) (*domain.Reservation, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Reservation, error)
}
