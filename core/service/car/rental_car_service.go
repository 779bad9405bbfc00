package car

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"rental_server/core/domain"
	"rental_server/core/port/in"
	"rental_server/core/port/out"
	"rental_server/core/service/common"
	"rental_server/pkg/apperr"
	"rental_server/pkg/logger"
)

const cachePrefix = "cars"

type Service struct {
	carRepo   out.CarRepository
	uploader  in.UploadService
	listCache *common.ListCache
}

func NewService(carRepo out.CarRepository, uploader in.UploadService, listCache *common.ListCache) *Service {
	return &Service{
		carRepo:   carRepo,
		uploader:  uploader,
		listCache: listCache,
	}
}

// List serves the catalog page cache-aside. An empty result is a miss for
// the caller, not an empty page.
func (s *Service) List(ctx context.Context, filter *domain.CarFilter) (*in.CarPage, error) {
	filter.Normalize()

	var page in.CarPage
	key := s.listCache.Key(cachePrefix, filter)
	err := s.listCache.GetOrLoad(ctx, key, &page, func(ctx context.Context) (interface{}, error) {
		cars, count, err := s.carRepo.List(ctx, filter)
		if err != nil {
			return nil, apperr.DatabaseError("list cars", err)
		}
		return &in.CarPage{Cars: cars, ItemCount: count}, nil
	})
	if err != nil {
		return nil, err
	}

	if page.ItemCount == 0 {
		return nil, apperr.NotFound("cars")
	}
	return &page, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Car, error) {
	car, err := s.carRepo.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.DatabaseError("find car", err)
	}
	if car == nil {
		return nil, apperr.NotFound("car")
	}
	return car, nil
}

func (s *Service) FindByClassification(ctx context.Context, c domain.Classification) ([]*domain.Car, error) {
	if !domain.ValidClassification(c) {
		return nil, apperr.InvalidInput("classification", string(c))
	}
	cars, err := s.carRepo.FindByClassification(ctx, c)
	if err != nil {
		return nil, apperr.DatabaseError("find cars by classification", err)
	}
	if len(cars) == 0 {
		return nil, apperr.NotFound("cars")
	}
	return cars, nil
}

func (s *Service) FindByFuel(ctx context.Context, f domain.Fuel) ([]*domain.Car, error) {
	if !domain.ValidFuel(f) {
		return nil, apperr.InvalidInput("fuel", string(f))
	}
	cars, err := s.carRepo.FindByFuel(ctx, f)
	if err != nil {
		return nil, apperr.DatabaseError("find cars by fuel", err)
	}
	if len(cars) == 0 {
		return nil, apperr.NotFound("cars")
	}
	return cars, nil
}

func (s *Service) Create(ctx context.Context, req *in.CreateCarRequest, imgs []*domain.UploadFile) (*domain.Car, error) {
	if req.Name == "" {
		return nil, apperr.MissingField("name")
	}
	if req.CarNo == "" {
		return nil, apperr.MissingField("car_no")
	}
	if req.Price <= 0 {
		return nil, apperr.InvalidInput("price", "must be positive")
	}

	car := &domain.Car{
		Base:           domain.NewBase(),
		Name:           req.Name,
		Grade:          req.Grade,
		Classification: req.Classification,
		Price:          req.Price,
		Year:           req.Year,
		CarNo:          req.CarNo,
		Transmission:   req.Transmission,
		Mileage:        req.Mileage,
		Displacement:   req.Displacement,
		Fuel:           req.Fuel,
	}

	if len(imgs) > 0 {
		urls, err := s.uploader.Upload(ctx, domain.UploadCategoryCar, car.ID, imgs)
		if err != nil {
			return nil, err
		}
		car.Imgs = urls
	}

	if err := s.carRepo.Create(ctx, car); err != nil {
		return nil, apperr.DatabaseError("create car", err)
	}

	if err := s.listCache.Invalidate(ctx, cachePrefix); err != nil {
		logger.Warn("[CarService.Create] cache invalidation failed: %v", err)
	}
	return car, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req *in.UpdateCarRequest, imgs []*domain.UploadFile) (*domain.Car, error) {
	car, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		car.Name = *req.Name
	}
	if req.Grade != nil {
		car.Grade = *req.Grade
	}
	if req.Classification != nil {
		car.Classification = *req.Classification
	}
	if req.Price != nil {
		if *req.Price <= 0 {
			return nil, apperr.InvalidInput("price", "must be positive")
		}
		car.Price = *req.Price
	}
	if req.Year != nil {
		car.Year = *req.Year
	}
	if req.CarNo != nil {
		car.CarNo = *req.CarNo
	}
	if req.Transmission != nil {
		car.Transmission = *req.Transmission
	}
	if req.Mileage != nil {
		car.Mileage = *req.Mileage
	}
	if req.Displacement != nil {
		car.Displacement = *req.Displacement
	}
	if req.Fuel != nil {
		car.Fuel = *req.Fuel
	}

	if len(imgs) > 0 {
		urls, err := s.uploader.Upload(ctx, domain.UploadCategoryCar, car.ID, imgs)
		if err != nil {
			return nil, err
		}
		car.Imgs = urls
	}

	if err := s.carRepo.Update(ctx, car); err != nil {
		return nil, apperr.DatabaseError("update car", err)
	}

	if err := s.listCache.Invalidate(ctx, cachePrefix); err != nil {
		logger.Warn("[CarService.Update] cache invalidation failed: %v", err)
	}
	return car, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.carRepo.Delete(ctx, id); err != nil {
		return apperr.DatabaseError("delete car", err)
	}
	if err := s.listCache.Invalidate(ctx, cachePrefix); err != nil {
		logger.Warn("[CarService.Delete] cache invalidation failed: %v", err)
	}
	return nil
}

// Import bulk-upserts cars keyed by car number. Rows missing a car number
// or a positive price are rejected before anything is written.
func (s *Service) Import(ctx context.Context, cars []*domain.Car) (int, error) {
	if len(cars) == 0 {
		return 0, apperr.MissingField("cars")
	}
	for i, c := range cars {
		if c.CarNo == "" {
			return 0, apperr.InvalidInput("car_no", fmt.Sprintf("empty at row %d", i))
		}
		if c.Price <= 0 {
			return 0, apperr.InvalidInput("price", fmt.Sprintf("must be positive at row %d", i))
		}
		if c.ID == uuid.Nil {
			c.Base = domain.NewBase()
		}
	}

	n, err := s.carRepo.BulkUpsert(ctx, cars)
	if err != nil {
		return 0, apperr.DatabaseError("import cars", err)
	}

	if err := s.listCache.Invalidate(ctx, cachePrefix); err != nil {
		logger.Warn("[CarService.Import] cache invalidation failed: %v", err)
	}
	logger.Info("[CarService.Import] upserted %d cars", n)
	return n, nil
}
