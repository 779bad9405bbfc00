package out

import (
	"context"

	"rental_server/core/domain"

	"github.com/google/uuid"
)

// ProfileRepository persists member profiles (profile id = user id)
type ProfileRepository interface {
	Create(ctx context.Context, p *domain.Profile) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error)
	Update(ctx context.Context, p *domain.Profile) error
	Delete(ctx context.Context, id uuid.UUID) error
}
