package in

import (
	"context"

	"rental_server/core/domain"

	"github.com/google/uuid"
)

// SaveTermRequest records the user's consent checkboxes
type SaveTermRequest struct {
	AgreeOfTerm    bool `json:"agree_of_term"`
	AgreeFourteen  bool `json:"agree_fourteen"`
	AgreeOfService bool `json:"agree_of_service"`
	AgreeOfEvent   bool `json:"agree_of_event"`
}

// TermService implements terms-of-service consent records
type TermService interface {
	Save(ctx context.Context, userID uuid.UUID, req *SaveTermRequest) (*domain.Term, error)
	Get(ctx context.Context, userID uuid.UUID) (*domain.Term, error)
	Update(ctx context.Context, userID uuid.UUID, req *SaveTermRequest) (*domain.Term, error)
}
