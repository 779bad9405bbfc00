package profile

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
	profileRepo out.ProfileRepository
	userRepo    out.UserRepository
}

func NewService(profileRepo out.ProfileRepository, userRepo out.UserRepository) *Service {
	return &Service{
		profileRepo: profileRepo,
		userRepo:    userRepo,
	}
}

// Create fills in the extended profile for the user. The profile shares
// the user's id, so each user can hold at most one.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, req *in.CreateProfileRequest) (*domain.Profile, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, apperr.DatabaseError("find user", err)
	}
	if user == nil {
		return nil, apperr.NotFound("user")
	}

	existing, err := s.profileRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, apperr.DatabaseError("find profile", err)
	}
	if existing != nil {
		return nil, apperr.AlreadyExists("profile")
	}

	gender := req.Gender
	if gender == "" {
		gender = domain.GenderDefault
	}

	now := time.Now().UTC()
	p := &domain.Profile{
		ID:        userID,
		Phone:     req.Phone,
		Address:   req.Address,
		Birth:     req.Birth,
		Gender:    gender,
		Grade:     domain.GradeBronze,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.profileRepo.Create(ctx, p); err != nil {
		return nil, apperr.DatabaseError("create profile", err)
	}
	return p, nil
}

func (s *Service) Get(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	p, err := s.profileRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, apperr.DatabaseError("find profile", err)
	}
	if p == nil {
		return nil, apperr.NotFound("profile")
	}
	return p, nil
}

func (s *Service) Update(ctx context.Context, userID uuid.UUID, req *in.UpdateProfileRequest) (*domain.Profile, error) {
	p, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Phone != nil {
		p.Phone = *req.Phone
	}
	if req.Address != nil {
		p.Address = *req.Address
	}
	if req.Birth != nil {
		p.Birth = req.Birth
	}
	if req.Gender != nil {
		p.Gender = *req.Gender
	}
	p.UpdatedAt = time.Now().UTC()

	if err := s.profileRepo.Update(ctx, p); err != nil {
		return nil, apperr.DatabaseError("update profile", err)
	}
	return p, nil
}

func (s *Service) Delete(ctx context.Context, userID uuid.UUID) error {
	if _, err := s.Get(ctx, userID); err != nil {
		return err
	}
	if err := s.profileRepo.Delete(ctx, userID); err != nil {
		return apperr.DatabaseError("delete profile", err)
	}
	return nil
}
