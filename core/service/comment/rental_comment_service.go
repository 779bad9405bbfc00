package comment

import (
	"context"

	"github.com/google/uuid"

	"rental_server/core/domain"
	"rental_server/core/port/in"
	"rental_server/core/port/out"
	"rental_server/pkg/apperr"
)

type Service struct {
	commentRepo       out.CommentRepository
	carRepo           out.CarRepository
	accommodationRepo out.AccommodationRepository
}

func NewService(commentRepo out.CommentRepository, carRepo out.CarRepository, accommodationRepo out.AccommodationRepository) *Service {
	return &Service{
		commentRepo:       commentRepo,
		carRepo:           carRepo,
		accommodationRepo: accommodationRepo,
	}
}

func validate(req *in.CreateCommentRequest) error {
	if req.Contents == "" {
		return apperr.MissingField("contents")
	}
	if req.Rating < 1 || req.Rating > 5 {
		return apperr.InvalidInput("rating", "must be between 1 and 5")
	}
	return nil
}

func (s *Service) CreateForCar(ctx context.Context, userID, carID uuid.UUID, req *in.CreateCommentRequest) (*domain.Comment, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	car, err := s.carRepo.FindByID(ctx, carID)
	if err != nil {
		return nil, apperr.DatabaseError("find car", err)
	}
	if car == nil {
		return nil, apperr.NotFound("car")
	}

	c := &domain.Comment{
		Base:     domain.NewBase(),
		Contents: req.Contents,
		Rating:   req.Rating,
		UserID:   userID,
		CarID:    &carID,
	}
	if err := s.commentRepo.Create(ctx, c); err != nil {
		return nil, apperr.DatabaseError("create comment", err)
	}
	return c, nil
}

func (s *Service) CreateForAccommodation(ctx context.Context, userID, accommodationID uuid.UUID, req *in.CreateCommentRequest) (*domain.Comment, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	a, err := s.accommodationRepo.FindByID(ctx, accommodationID)
	if err != nil {
		return nil, apperr.DatabaseError("find accommodation", err)
	}
	if a == nil {
		return nil, apperr.NotFound("accommodation")
	}

	c := &domain.Comment{
		Base:            domain.NewBase(),
		Contents:        req.Contents,
		Rating:          req.Rating,
		UserID:          userID,
		AccommodationID: &accommodationID,
	}
	if err := s.commentRepo.Create(ctx, c); err != nil {
		return nil, apperr.DatabaseError("create comment", err)
	}
	return c, nil
}

func (s *Service) ListByCar(ctx context.Context, carID uuid.UUID) ([]*domain.Comment, error) {
	cs, err := s.commentRepo.FindByCarID(ctx, carID)
	if err != nil {
		return nil, apperr.DatabaseError("list comments", err)
	}
	return cs, nil
}

func (s *Service) ListByAccommodation(ctx context.Context, accommodationID uuid.UUID) ([]*domain.Comment, error) {
	cs, err := s.commentRepo.FindByAccommodationID(ctx, accommodationID)
	if err != nil {
		return nil, apperr.DatabaseError("list comments", err)
	}
	return cs, nil
}

// owned loads the comment and rejects requests from anyone but its author
func (s *Service) owned(ctx context.Context, userID, commentID uuid.UUID) (*domain.Comment, error) {
	c, err := s.commentRepo.FindByID(ctx, commentID)
	if err != nil {
		return nil, apperr.DatabaseError("find comment", err)
	}
	if c == nil {
		return nil, apperr.NotFound("comment")
	}
	if c.UserID != userID {
		return nil, apperr.Forbidden("not the author of this comment")
	}
	return c, nil
}

func (s *Service) Update(ctx context.Context, userID, commentID uuid.UUID, req *in.UpdateCommentRequest) (*domain.Comment, error) {
	c, err := s.owned(ctx, userID, commentID)
	if err != nil {
		return nil, err
	}

	if req.Contents != nil {
		if *req.Contents == "" {
			return nil, apperr.MissingField("contents")
		}
		c.Contents = *req.Contents
	}
	if req.Rating != nil {
		if *req.Rating < 1 || *req.Rating > 5 {
			return nil, apperr.InvalidInput("rating", "must be between 1 and 5")
		}
		c.Rating = *req.Rating
	}

	if err := s.commentRepo.Update(ctx, c); err != nil {
		return nil, apperr.DatabaseError("update comment", err)
	}
	return c, nil
}

func (s *Service) Delete(ctx context.Context, userID, commentID uuid.UUID) error {
	if _, err := s.owned(ctx, userID, commentID); err != nil {
		return err
	}
	if err := s.commentRepo.Delete(ctx, commentID); err != nil {
		return apperr.DatabaseError("delete comment", err)
	}
	return nil
}
