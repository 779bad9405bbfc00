package domain

import (
	"time"

	"github.com/google/uuid"
)

// ReservationStatus is the reservation lifecycle state.
// Completed and canceled are terminal.
type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pending"
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationCompleted ReservationStatus = "completed"
	ReservationCanceled  ReservationStatus = "canceled"
)

// ValidReservationStatus reports whether s is a known lifecycle state
func ValidReservationStatus(s ReservationStatus) bool {
	switch s {
	case ReservationPending, ReservationConfirmed, ReservationCompleted, ReservationCanceled:
		return true
	}
	return false
}

// Terminal reports whether no further mutation is allowed
func (s ReservationStatus) Terminal() bool {
	return s == ReservationCompleted || s == ReservationCanceled
}

// Reservation books a car for a half-open [StartTime, EndTime) range.
// Invariant: confirmed reservations on the same car never overlap.
type Reservation struct {
	Base
	UserID    uuid.UUID         `json:"user_id" db:"user_id"`
	CarID     uuid.UUID         `json:"car_id" db:"car_id"`
	Status    ReservationStatus `json:"status" db:"status"`
	StartTime time.Time         `json:"start_time" db:"start_time"`
	EndTime   time.Time         `json:"end_time" db:"end_time"`

	Car *Car `json:"car,omitempty" db:"-"`
}

// Overlaps reports whether two half-open time ranges intersect.
// Ranges that merely touch (a ends exactly when b starts) do not overlap,
// so back-to-back bookings are allowed.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}
