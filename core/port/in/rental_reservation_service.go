package in

import (
	"context"
	"time"

	"rental_server/core/domain"

	"github.com/google/uuid"
)

// CreateReservationRequest books a car for the half-open interval
// [start_time, end_time).
type CreateReservationRequest struct {
	CarID     uuid.UUID `json:"car_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

// PatchReservationRequest reschedules a reservation, moves it to another
// car, or transitions its status; nil fields keep their current values.
// A car change resets the status to pending until re-confirmed.
type PatchReservationRequest struct {
	CarID     *uuid.UUID                `json:"car_id"`
	StartTime *time.Time                `json:"start_time"`
	EndTime   *time.Time                `json:"end_time"`
	Status    *domain.ReservationStatus `json:"status"`
}

// ReservationService implements booking with overlap protection
type ReservationService interface {
	// Create books the car if no confirmed or pending reservation for the
	// same car overlaps the requested interval.
	Create(ctx context.Context, userID uuid.UUID, req *CreateReservationRequest) (*domain.Reservation, error)

	Get(ctx context.Context, userID, reservationID uuid.UUID) (*domain.Reservation, error)
	ListMine(ctx context.Context, userID uuid.UUID) ([]*domain.Reservation, error)

	// Patch re-runs the overlap check whenever the resulting reservation
	// would be active (pending or confirmed) with a changed interval or a
	// changed car.
	Patch(ctx context.Context, userID, reservationID uuid.UUID, req *PatchReservationRequest) (*domain.Reservation, error)

	// Cancel transitions the reservation to canceled. Canceling a
	// reservation that is already terminal returns a conflict.
	Cancel(ctx context.Context, userID, reservationID uuid.UUID) (*domain.Reservation, error)
}
