package accommodation

import (
	"context"

	"github.com/google/uuid"

	"rental_server/core/domain"
	"rental_server/core/port/in"
	"rental_server/core/port/out"
	"rental_server/core/service/common"
	"rental_server/pkg/apperr"
	"rental_server/pkg/logger"
)

const cachePrefix = "accommodations"

type Service struct {
	accommodationRepo out.AccommodationRepository
	uploader          in.UploadService
	listCache         *common.ListCache
}

func NewService(accommodationRepo out.AccommodationRepository, uploader in.UploadService, listCache *common.ListCache) *Service {
	return &Service{
		accommodationRepo: accommodationRepo,
		uploader:          uploader,
		listCache:         listCache,
	}
}

func (s *Service) List(ctx context.Context, opts *domain.PageOptions) (*in.AccommodationPage, error) {
	opts.Normalize()

	var page in.AccommodationPage
	key := s.listCache.Key(cachePrefix, opts)
	err := s.listCache.GetOrLoad(ctx, key, &page, func(ctx context.Context) (interface{}, error) {
		items, count, err := s.accommodationRepo.List(ctx, opts)
		if err != nil {
			return nil, apperr.DatabaseError("list accommodations", err)
		}
		return &in.AccommodationPage{Accommodations: items, ItemCount: count}, nil
	})
	if err != nil {
		return nil, err
	}

	if page.ItemCount == 0 {
		return nil, apperr.NotFound("accommodations")
	}
	return &page, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Accommodation, error) {
	a, err := s.accommodationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.DatabaseError("find accommodation", err)
	}
	if a == nil {
		return nil, apperr.NotFound("accommodation")
	}
	return a, nil
}

func (s *Service) Create(ctx context.Context, req *in.CreateAccommodationRequest, imgs []*domain.UploadFile) (*domain.Accommodation, error) {
	if req.Name == "" {
		return nil, apperr.MissingField("name")
	}
	if req.Price <= 0 {
		return nil, apperr.InvalidInput("price", "must be positive")
	}
	if req.Personnel <= 0 {
		return nil, apperr.InvalidInput("personnel", "must be positive")
	}

	a := &domain.Accommodation{
		Base:        domain.NewBase(),
		Name:        req.Name,
		Area:        req.Area,
		Type:        req.Type,
		ReservedAt:  req.ReservedAt,
		Price:       req.Price,
		Personnel:   req.Personnel,
		Information: req.Information,
	}

	if len(imgs) > 0 {
		urls, err := s.uploader.Upload(ctx, domain.UploadCategoryAccommodation, a.ID, imgs)
		if err != nil {
			return nil, err
		}
		a.Imgs = urls
	}

	if err := s.accommodationRepo.Create(ctx, a); err != nil {
		return nil, apperr.DatabaseError("create accommodation", err)
	}

	if err := s.listCache.Invalidate(ctx, cachePrefix); err != nil {
		logger.Warn("[AccommodationService.Create] cache invalidation failed: %v", err)
	}
	return a, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req *in.UpdateAccommodationRequest, imgs []*domain.UploadFile) (*domain.Accommodation, error) {
	a, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		a.Name = *req.Name
	}
	if req.Area != nil {
		a.Area = *req.Area
	}
	if req.Type != nil {
		a.Type = *req.Type
	}
	if req.ReservedAt != nil {
		a.ReservedAt = req.ReservedAt
	}
	if req.Price != nil {
		if *req.Price <= 0 {
			return nil, apperr.InvalidInput("price", "must be positive")
		}
		a.Price = *req.Price
	}
	if req.Personnel != nil {
		if *req.Personnel <= 0 {
			return nil, apperr.InvalidInput("personnel", "must be positive")
		}
		a.Personnel = *req.Personnel
	}
	if req.Information != nil {
		a.Information = *req.Information
	}

	if len(imgs) > 0 {
		urls, err := s.uploader.Upload(ctx, domain.UploadCategoryAccommodation, a.ID, imgs)
		if err != nil {
			return nil, err
		}
		a.Imgs = urls
	}

	if err := s.accommodationRepo.Update(ctx, a); err != nil {
		return nil, apperr.DatabaseError("update accommodation", err)
	}

	if err := s.listCache.Invalidate(ctx, cachePrefix); err != nil {
		logger.Warn("[AccommodationService.Update] cache invalidation failed: %v", err)
	}
	return a, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.accommodationRepo.Delete(ctx, id); err != nil {
		return apperr.DatabaseError("delete accommodation", err)
	}
	if err := s.listCache.Invalidate(ctx, cachePrefix); err != nil {
		logger.Warn("[AccommodationService.Delete] cache invalidation failed: %v", err)
	}
	return nil
}
