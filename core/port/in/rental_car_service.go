package in

import (
	"context"

	"rental_server/core/domain"

	"github.com/google/uuid"
)

// CreateCarRequest registers a new car
type CreateCarRequest struct {
	Name           string                `json:"name"`
	Grade          string                `json:"grade"`
	Classification domain.Classification `json:"classification"`
	Price          int                   `json:"price"`
	Year           int                   `json:"year"`
	CarNo          string                `json:"car_no"`
	Transmission   domain.Transmission   `json:"transmission"`
	Mileage        int                   `json:"mileage"`
	Displacement   int                   `json:"displacement"`
	Fuel           domain.Fuel           `json:"fuel"`
}

// UpdateCarRequest patches car fields; nil fields are left unchanged
type UpdateCarRequest struct {
	Name           *string                `json:"name"`
	Grade          *string                `json:"grade"`
	Classification *domain.Classification `json:"classification"`
	Price          *int                   `json:"price"`
	Year           *int                   `json:"year"`
	CarNo          *string                `json:"car_no"`
	Transmission   *domain.Transmission   `json:"transmission"`
	Mileage        *int                   `json:"mileage"`
	Displacement   *int                   `json:"displacement"`
	Fuel           *domain.Fuel           `json:"fuel"`
}

// CarPage is one page of the car listing
type CarPage struct {
	Cars      []*domain.Car `json:"cars"`
	ItemCount int           `json:"item_count"`
}

// CarService implements the car catalog operations
type CarService interface {
	List(ctx context.Context, filter *domain.CarFilter) (*CarPage, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Car, error)
	FindByClassification(ctx context.Context, c domain.Classification) ([]*domain.Car, error)
	FindByFuel(ctx context.Context, f domain.Fuel) ([]*domain.Car, error)
	Create(ctx context.Context, req *CreateCarRequest, imgs []*domain.UploadFile) (*domain.Car, error)
	Update(ctx context.Context, id uuid.UUID, req *UpdateCarRequest, imgs []*domain.UploadFile) (*domain.Car, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// Import bulk-upserts cars keyed by car number (spreadsheet ingest).
	Import(ctx context.Context, cars []*domain.Car) (int, error)
}
