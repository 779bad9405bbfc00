package in

import (
	"context"
	"time"

	"rental_server/core/domain"

	"github.com/google/uuid"
)

// CreateProfileRequest fills in the user's extended profile
type CreateProfileRequest struct {
	Phone   string        `json:"phone"`
	Address string        `json:"address"`
	Birth   *time.Time    `json:"birth"`
	Gender  domain.Gender `json:"gender"`
}

// UpdateProfileRequest patches profile fields; nil means keep
type UpdateProfileRequest struct {
	Phone   *string        `json:"phone"`
	Address *string        `json:"address"`
	Birth   *time.Time     `json:"birth"`
	Gender  *domain.Gender `json:"gender"`
}

// ProfileService implements the one-per-user extended profile
type ProfileService interface {
	Create(ctx context.Context, userID uuid.UUID, req *CreateProfileRequest) (*domain.Profile, error)
	Get(ctx context.Context, userID uuid.UUID) (*domain.Profile, error)
	Update(ctx context.Context, userID uuid.UUID, req *UpdateProfileRequest) (*domain.Profile, error)
	Delete(ctx context.Context, userID uuid.UUID) error
}
