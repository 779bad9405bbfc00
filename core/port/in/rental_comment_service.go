package in

import (
	"context"

	"rental_server/core/domain"

	"github.com/google/uuid"
)

// CreateCommentRequest posts a review against a car or an accommodation
type CreateCommentRequest struct {
	Contents string `json:"contents"`
	Rating   int    `json:"rating"`
}

// UpdateCommentRequest patches a review owned by the requester
type UpdateCommentRequest struct {
	Contents *string `json:"contents"`
	Rating   *int    `json:"rating"`
}

// CommentService implements reviews for cars and accommodations
type CommentService interface {
	CreateForCar(ctx context.Context, userID, carID uuid.UUID, req *CreateCommentRequest) (*domain.Comment, error)
	CreateForAccommodation(ctx context.Context, userID, accommodationID uuid.UUID, req *CreateCommentRequest) (*domain.Comment, error)
	ListByCar(ctx context.Context, carID uuid.UUID) ([]*domain.Comment, error)
	ListByAccommodation(ctx context.Context, accommodationID uuid.UUID) ([]*domain.Comment, error)

	// Update rejects edits of comments the requester does not own.
	Update(ctx context.Context, userID, commentID uuid.UUID, req *UpdateCommentRequest) (*domain.Comment, error)
	Delete(ctx context.Context, userID, commentID uuid.UUID) error
}
