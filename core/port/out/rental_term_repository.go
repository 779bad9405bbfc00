package out

import (
	"context"

	"rental_server/core/domain"

	"github.com/google/uuid"
)

// TermRepository persists consent records (term id = user id)
type TermRepository interface {
	Create(ctx context.Context, t *domain.Term) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Term, error)
	Update(ctx context.Context, t *domain.Term) error
}
