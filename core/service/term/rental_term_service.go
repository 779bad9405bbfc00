package term

import (
	"context"
	"time"

	"github.com/google/uuid"

	"rental_server/core/domain"
	"rental_server/core/port/in"
	"rental_server/core/port/out"
	"rental_server/pkg/apperr"
)

type Service struct {
	termRepo out.TermRepository
	userRepo out.UserRepository
}

func NewService(termRepo out.TermRepository, userRepo out.UserRepository) *Service {
	return &Service{
		termRepo: termRepo,
		userRepo: userRepo,
	}
}

// validate enforces the consents that are required for service use;
// only the event consent is optional.
func validate(req *in.SaveTermRequest) error {
	if !req.AgreeOfTerm {
		return apperr.BadRequest("terms of use consent is required")
	}
	if !req.AgreeFourteen {
		return apperr.BadRequest("age over fourteen consent is required")
	}
	if !req.AgreeOfService {
		return apperr.BadRequest("service terms consent is required")
	}
	return nil
}

func (s *Service) Save(ctx context.Context, userID uuid.UUID, req *in.SaveTermRequest) (*domain.Term, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, apperr.DatabaseError("find user", err)
	}
	if user == nil {
		return nil, apperr.NotFound("user")
	}

	existing, err := s.termRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, apperr.DatabaseError("find term", err)
	}
	if existing != nil {
		return nil, apperr.AlreadyExists("term")
	}

	now := time.Now().UTC()
	t := &domain.Term{
		ID:             userID,
		AgreeOfTerm:    req.AgreeOfTerm,
		AgreeFourteen:  req.AgreeFourteen,
		AgreeOfService: req.AgreeOfService,
		AgreeOfEvent:   req.AgreeOfEvent,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.termRepo.Create(ctx, t); err != nil {
		return nil, apperr.DatabaseError("create term", err)
	}
	return t, nil
}

func (s *Service) Get(ctx context.Context, userID uuid.UUID) (*domain.Term, error) {
	t, err := s.termRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, apperr.DatabaseError("find term", err)
	}
	if t == nil {
		return nil, apperr.NotFound("term")
	}
	return t, nil
}

func (s *Service) Update(ctx context.Context, userID uuid.UUID, req *in.SaveTermRequest) (*domain.Term, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	t, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	t.AgreeOfTerm = req.AgreeOfTerm
	t.AgreeFourteen = req.AgreeFourteen
	t.AgreeOfService = req.AgreeOfService
	t.AgreeOfEvent = req.AgreeOfEvent
	t.UpdatedAt = time.Now().UTC()

	if err := s.termRepo.Update(ctx, t); err != nil {
		return nil, apperr.DatabaseError("update term", err)
	}
	return t, nil
}
