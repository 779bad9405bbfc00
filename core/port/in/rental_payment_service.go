package in

import (
	"context"

	"rental_server/core/domain"

	"github.com/google/uuid"
)

// RegisterPaymentRequest stores a payment card on the user's profile.
// Number and CVC are encrypted before they hit the database.
type RegisterPaymentRequest struct {
	CardCompany string `json:"card_company"`
	CardNumber  string `json:"card_number"`
	CardCvc     string `json:"card_cvc"`
	CardExpire  string `json:"card_expire"`
	CardAlias   string `json:"card_alias"`
	IsMain      bool   `json:"is_main"`
}

// PaymentService implements stored payment methods
type PaymentService interface {
	Register(ctx context.Context, userID uuid.UUID, req *RegisterPaymentRequest) (*domain.Payment, error)

	// List returns the user's cards with numbers masked.
	List(ctx context.Context, userID uuid.UUID) ([]*domain.Payment, error)

	// SetMain promotes one card and demotes the rest atomically.
	SetMain(ctx context.Context, userID, paymentID uuid.UUID) error

	Delete(ctx context.Context, userID, paymentID uuid.UUID) error
}
