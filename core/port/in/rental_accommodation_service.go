package in

import (
	"context"
	"time"

	"rental_server/core/domain"

	"github.com/google/uuid"
)

// CreateAccommodationRequest registers a new accommodation
type CreateAccommodationRequest struct {
	Name        string                   `json:"name"`
	Area        string                   `json:"area"`
	Type        domain.AccommodationType `json:"type"`
	ReservedAt  *time.Time               `json:"reserved_at"`
	Price       int                      `json:"price"`
	Personnel   int                      `json:"personnel"`
	Information string                   `json:"information"`
}

// UpdateAccommodationRequest patches accommodation fields; nil means keep
type UpdateAccommodationRequest struct {
	Name        *string                   `json:"name"`
	Area        *string                   `json:"area"`
	Type        *domain.AccommodationType `json:"type"`
	ReservedAt  *time.Time                `json:"reserved_at"`
	Price       *int                      `json:"price"`
	Personnel   *int                      `json:"personnel"`
	Information *string                   `json:"information"`
}

// AccommodationPage is one page of the accommodation listing
type AccommodationPage struct {
	Accommodations []*domain.Accommodation `json:"accommodations"`
	ItemCount      int                     `json:"item_count"`
}

// AccommodationService implements the accommodation catalog operations
type AccommodationService interface {
	List(ctx context.Context, opts *domain.PageOptions) (*AccommodationPage, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Accommodation, error)
	Create(ctx context.Context, req *CreateAccommodationRequest, imgs []*domain.UploadFile) (*domain.Accommodation, error)
	Update(ctx context.Context, id uuid.UUID, req *UpdateAccommodationRequest, imgs []*domain.UploadFile) (*domain.Accommodation, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
