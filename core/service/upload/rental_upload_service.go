package upload

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"path"
	"strconv"
	"time"

	"github.com/google/uuid"

	"rental_server/core/domain"
	"rental_server/core/port/out"
	"rental_server/pkg/apperr"
	"rental_server/pkg/logger"
)

// Limits caps how many images each category may hold
type Limits struct {
	Car           int
	Accommodation int
	Profile       int
}

var allowedMimeTypes = map[string]string{
	"image/png":  ".png",
	"image/jpg":  ".jpg",
	"image/jpeg": ".jpeg",
}

type Service struct {
	storage out.FileStorage
	limits  Limits
}

func NewService(storage out.FileStorage, limits Limits) *Service {
	return &Service{
		storage: storage,
		limits:  limits,
	}
}

func (s *Service) limitFor(category domain.UploadCategory) (int, error) {
	switch category {
	case domain.UploadCategoryCar:
		return s.limits.Car, nil
	case domain.UploadCategoryAccommodation:
		return s.limits.Accommodation, nil
	case domain.UploadCategoryProfile:
		return s.limits.Profile, nil
	default:
		return 0, apperr.BadRequest(fmt.Sprintf("unknown upload category: %s", category))
	}
}

// Upload validates the batch and stores it under category/ownerID/.
// Validation is all-or-nothing: a count or MIME violation rejects the
// whole batch before any object is written. Existing objects in the
// folder are removed first, so a write replaces the previous image set.
func (s *Service) Upload(ctx context.Context, category domain.UploadCategory, ownerID uuid.UUID, files []*domain.UploadFile) ([]string, error) {
	limit, err := s.limitFor(category)
	if err != nil {
		return nil, err
	}

	if len(files) == 0 {
		return nil, apperr.MissingField("files")
	}
	if len(files) > limit {
		return nil, apperr.BadRequest(fmt.Sprintf("at most %d images allowed for %s, got %d", limit, category, len(files)))
	}
	for _, f := range files {
		if _, ok := allowedMimeTypes[f.MimeType]; !ok {
			return nil, apperr.BadRequest(fmt.Sprintf("unsupported image type: %s (%s)", f.MimeType, f.Filename))
		}
	}

	folder := path.Join(string(category), ownerID.String())
	if err := s.storage.RemoveFolder(ctx, folder); err != nil {
		return nil, apperr.ExternalError("storage", err)
	}

	urls := make([]string, 0, len(files))
	for i, f := range files {
		sum := md5.Sum([]byte(strconv.FormatInt(time.Now().UnixNano(), 10) + f.Filename))
		name := hex.EncodeToString(sum[:]) + allowedMimeTypes[f.MimeType]

		url, err := s.storage.Put(ctx, path.Join(folder, name), f.MimeType, f.Data)
		if err != nil {
			logger.Error("[UploadService.Upload] put failed at %d/%d for %s: %v", i+1, len(files), folder, err)
			return nil, apperr.ExternalError("storage", err)
		}
		urls = append(urls, url)
	}

	logger.Info("[UploadService.Upload] stored %d images under %s", len(urls), folder)
	return urls, nil
}
