package out

import (
	"context"

	"rental_server/core/domain"

	"github.com/google/uuid"
)

// CommentRepository persists reviews
type CommentRepository interface {
	Create(ctx context.Context, c *domain.Comment) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error)
	FindByCarID(ctx context.Context, carID uuid.UUID) ([]*domain.Comment, error)
	FindByAccommodationID(ctx context.Context, accommodationID uuid.UUID) ([]*domain.Comment, error)
	Update(ctx context.Context, c *domain.Comment) error
	Delete(ctx context.Context, id uuid.UUID) error
}
