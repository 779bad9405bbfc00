package out

import (
	"context"

	"rental_server/core/domain"

	"github.com/google/uuid"
)

// AccommodationRepository persists the accommodation catalog
type AccommodationRepository interface {
	Create(ctx context.Context, a *domain.Accommodation) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Accommodation, error)
	List(ctx context.Context, opts *domain.PageOptions) ([]*domain.Accommodation, int, error)
	Update(ctx context.Context, a *domain.Accommodation) error
	UpdateImgs(ctx context.Context, id uuid.UUID, imgs []string) error
	Delete(ctx context.Context, id uuid.UUID) error
}
