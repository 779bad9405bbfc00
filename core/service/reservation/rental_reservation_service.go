package reservation

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"rental_server/core/domain"
	"rental_server/core/port/in"
	"rental_server/core/port/out"
	"rental_server/pkg/apperr"
	"rental_server/pkg/logger"
)

type Service struct {
	reservationRepo out.ReservationRepository
	carRepo         out.CarRepository
	now             func() time.Time
}

func NewService(reservationRepo out.ReservationRepository, carRepo out.CarRepository) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		carRepo:         carRepo,
		now:             time.Now,
	}
}

func validateInterval(start, end time.Time) error {
	if start.IsZero() {
		return apperr.MissingField("start_time")
	}
	if end.IsZero() {
		return apperr.MissingField("end_time")
	}
	if !start.Before(end) {
		return apperr.InvalidInput("end_time", "must be after start_time")
	}
	return nil
}

// Create books the car for [start_time, end_time). Intervals are half-open:
// a booking starting exactly when another ends does not conflict.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, req *in.CreateReservationRequest) (*domain.Reservation, error) {
	if req.CarID == uuid.Nil {
		return nil, apperr.MissingField("car_id")
	}
	if err := validateInterval(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}
	if req.StartTime.Before(s.now()) {
		return nil, apperr.InvalidInput("start_time", "must not be in the past")
	}

	car, err := s.carRepo.FindByID(ctx, req.CarID)
	if err != nil {
		return nil, apperr.DatabaseError("find car", err)
	}
	if car == nil {
		return nil, apperr.NotFound("car")
	}

	r := &domain.Reservation{
		Base:      domain.NewBase(),
		UserID:    userID,
		CarID:     req.CarID,
		Status:    domain.ReservationConfirmed,
		StartTime: req.StartTime.UTC(),
		EndTime:   req.EndTime.UTC(),
	}

	if err := s.reservationRepo.CreateChecked(ctx, r); err != nil {
		if errors.Is(err, out.ErrSlotTaken) {
			return nil, apperr.Conflict("car is already reserved for the requested time range")
		}
		return nil, apperr.DatabaseError("create reservation", err)
	}

	logger.Info("[ReservationService.Create] user %s reserved car %s %s~%s",
		userID, req.CarID, r.StartTime.Format(time.RFC3339), r.EndTime.Format(time.RFC3339))
	r.Car = car
	return r, nil
}

func (s *Service) Get(ctx context.Context, userID, reservationID uuid.UUID) (*domain.Reservation, error) {
	r, err := s.reservationRepo.FindByUserAndID(ctx, userID, reservationID)
	if err != nil {
		return nil, apperr.DatabaseError("find reservation", err)
	}
	if r == nil {
		return nil, apperr.NotFound("reservation")
	}
	return r, nil
}

func (s *Service) ListMine(ctx context.Context, userID uuid.UUID) ([]*domain.Reservation, error) {
	rs, err := s.reservationRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperr.DatabaseError("list reservations", err)
	}
	return rs, nil
}

// Patch applies the requested field changes. The overlap check re-runs when
// the patched reservation stays active (pending or confirmed) and the car or
// either endpoint moved; a pure status transition to completed skips it.
// Moving to another car drops the status back to pending: the new slot has
// not been confirmed yet.
func (s *Service) Patch(ctx context.Context, userID, reservationID uuid.UUID, req *in.PatchReservationRequest) (*domain.Reservation, error) {
	r, err := s.Get(ctx, userID, reservationID)
	if err != nil {
		return nil, err
	}
	if r.Status.Terminal() {
		return nil, apperr.Conflict("reservation is already " + string(r.Status))
	}

	carChanged := false
	if req.CarID != nil && *req.CarID != r.CarID {
		car, err := s.carRepo.FindByID(ctx, *req.CarID)
		if err != nil {
			return nil, apperr.DatabaseError("find car", err)
		}
		if car == nil {
			return nil, apperr.NotFound("car")
		}
		r.CarID = *req.CarID
		r.Car = car
		r.Status = domain.ReservationPending
		carChanged = true
	}

	intervalChanged := false
	if req.StartTime != nil {
		r.StartTime = req.StartTime.UTC()
		intervalChanged = true
	}
	if req.EndTime != nil {
		r.EndTime = req.EndTime.UTC()
		intervalChanged = true
	}
	if req.Status != nil {
		if !domain.ValidReservationStatus(*req.Status) {
			return nil, apperr.InvalidInput("status", string(*req.Status))
		}
		if *req.Status == domain.ReservationCanceled {
			return nil, apperr.BadRequest("use the cancel endpoint to cancel a reservation")
		}
		r.Status = *req.Status
	}

	if err := validateInterval(r.StartTime, r.EndTime); err != nil {
		return nil, err
	}

	active := r.Status == domain.ReservationPending || r.Status == domain.ReservationConfirmed
	checkOverlap := active && (intervalChanged || carChanged)

	if err := s.reservationRepo.UpdateChecked(ctx, r, checkOverlap); err != nil {
		if errors.Is(err, out.ErrSlotTaken) {
			return nil, apperr.Conflict("car is already reserved for the requested time range")
		}
		return nil, apperr.DatabaseError("update reservation", err)
	}
	return r, nil
}

// Cancel moves the reservation to canceled. A reservation that already
// reached a terminal status cannot be canceled again.
func (s *Service) Cancel(ctx context.Context, userID, reservationID uuid.UUID) (*domain.Reservation, error) {
	r, err := s.Get(ctx, userID, reservationID)
	if err != nil {
		return nil, err
	}
	if r.Status.Terminal() {
		return nil, apperr.Conflict("reservation is already " + string(r.Status))
	}

	r.Status = domain.ReservationCanceled
	if err := s.reservationRepo.Save(ctx, r); err != nil {
		return nil, apperr.DatabaseError("cancel reservation", err)
	}

	logger.Info("[ReservationService.Cancel] user %s canceled reservation %s", userID, reservationID)
	return r, nil
}
