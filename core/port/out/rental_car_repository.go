package out

import (
	"context"

	"rental_server/core/domain"

	"github.com/google/uuid"
)

// CarRepository persists the car catalog
type CarRepository interface {
	Create(ctx context.Context, car *domain.Car) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Car, error)
	List(ctx context.Context, filter *domain.CarFilter) ([]*domain.Car, int, error)
	FindByClassification(ctx context.Context, c domain.Classification) ([]*domain.Car, error)
	FindByFuel(ctx context.Context, f domain.Fuel) ([]*domain.Car, error)
	Update(ctx context.Context, car *domain.Car) error
	UpdateImgs(ctx context.Context, id uuid.UUID, imgs []string) error
	Delete(ctx context.Context, id uuid.UUID) error

	// BulkUpsert inserts new rows and updates existing ones matched by car
	// number, returning the number of rows written.
	BulkUpsert(ctx context.Context, cars []*domain.Car) (int, error)
}
