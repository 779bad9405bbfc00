package out

import (
	"context"

	"rental_server/core/domain"

	"github.com/google/uuid"
)

// UserRepository persists accounts. Lookups return nil (not an error) when
// no row matches, so services decide the failure class.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, hashed string) error
	UpdateProfileImgs(ctx context.Context, id uuid.UUID, imgs []string) error
	Delete(ctx context.Context, id uuid.UUID) error
}
