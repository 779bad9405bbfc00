package out

import (
	"context"

	"rental_server/core/domain"

	"github.com/google/uuid"
)

// PaymentRepository persists registered cards. Card number and CVC arrive
// already encrypted from the service layer.
type PaymentRepository interface {
	Create(ctx context.Context, p *domain.Payment) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Payment, error)
	ListByProfile(ctx context.Context, profileID uuid.UUID) ([]*domain.Payment, error)

	// SetMain marks one card as the main card and clears the flag on every
	// other card of the same profile, atomically.
	SetMain(ctx context.Context, profileID, paymentID uuid.UUID) error

	Delete(ctx context.Context, id uuid.UUID) error
}
