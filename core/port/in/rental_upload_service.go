package in

import (
	"context"

	"rental_server/core/domain"

	"github.com/google/uuid"
)

// UploadService validates and stores image sets in object storage.
// Validation is all-or-nothing: the whole batch is rejected before any
// byte is uploaded when the count or a MIME type is out of bounds.
type UploadService interface {
	Upload(ctx context.Context, category domain.UploadCategory, ownerID uuid.UUID, files []*domain.UploadFile) ([]string, error)
}
