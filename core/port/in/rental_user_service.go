package in

import (
	"context"

	"rental_server/core/domain"

	"github.com/google/uuid"
)

// UserService exposes account lookups and profile image management
type UserService interface {
	FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)

	// UpdateProfileImgs replaces the user's profile images with the
	// uploaded files (replace-on-write, profile category limits apply).
	UpdateProfileImgs(ctx context.Context, userID uuid.UUID, files []*domain.UploadFile) ([]string, error)

	Delete(ctx context.Context, id uuid.UUID) error
}
