package user

import (
	"context"

	"github.com/google/uuid"

	"rental_server/core/domain"
	"rental_server/core/port/in"
	"rental_server/core/port/out"
	"rental_server/pkg/apperr"
	"rental_server/pkg/logger"
)

type Service struct {
	userRepo out.UserRepository
	uploader in.UploadService
}

func NewService(userRepo out.UserRepository, uploader in.UploadService) *Service {
	return &Service{
		userRepo: userRepo,
		uploader: uploader,
	}
}

func (s *Service) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.DatabaseError("find user", err)
	}
	if user == nil {
		return nil, apperr.NotFound("user")
	}
	return user, nil
}

func (s *Service) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if email == "" {
		return nil, apperr.MissingField("email")
	}
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, apperr.DatabaseError("find user", err)
	}
	if user == nil {
		return nil, apperr.NotFound("user")
	}
	return user, nil
}

// UpdateProfileImgs replaces the user's profile image set with the
// uploaded files.
func (s *Service) UpdateProfileImgs(ctx context.Context, userID uuid.UUID, files []*domain.UploadFile) ([]string, error) {
	if _, err := s.FindByID(ctx, userID); err != nil {
		return nil, err
	}

	urls, err := s.uploader.Upload(ctx, domain.UploadCategoryProfile, userID, files)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdateProfileImgs(ctx, userID, urls); err != nil {
		return nil, apperr.DatabaseError("update profile images", err)
	}

	logger.Info("[UserService.UpdateProfileImgs] user %s now has %d profile images", userID, len(urls))
	return urls, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.userRepo.Delete(ctx, id); err != nil {
		return apperr.DatabaseError("delete user", err)
	}
	return nil
}
