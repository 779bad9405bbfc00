package car

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"rental_server/core/domain"
	"rental_server/core/port/in"
	"rental_server/core/service/common"
	"rental_server/pkg/apperr"
)

type memCache struct {
	mu   sync.Mutex
	data map[string]string
}

func newMemCache() *memCache {
	return &memCache{data: make(map[string]string)}
}

func (m *memCache) Get(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data[key], nil
}

func (m *memCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *memCache) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *memCache) GetJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	m.mu.Lock()
	raw, ok := m.data[key]
	m.mu.Unlock()
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal([]byte(raw), dest)
}

func (m *memCache) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return m.Set(ctx, key, string(raw), ttl)
}

func (m *memCache) DeleteByPrefix(ctx context.Context, prefix string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k := range m.data {
		if strings.HasPrefix(k, prefix) {
			delete(m.data, k)
		}
	}
	return nil
}

type fakeCarRepo struct {
	cars      map[uuid.UUID]*domain.Car
	listCalls int
}

func newFakeCarRepo() *fakeCarRepo {
	return &fakeCarRepo{cars: make(map[uuid.UUID]*domain.Car)}
}

func (f *fakeCarRepo) Create(ctx context.Context, car *domain.Car) error {
	cp := *car
	f.cars[car.ID] = &cp
	return nil
}

func (f *fakeCarRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Car, error) {
	if c, ok := f.cars[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeCarRepo) List(ctx context.Context, filter *domain.CarFilter) ([]*domain.Car, int, error) {
	f.listCalls++
	var out []*domain.Car
	for _, c := range f.cars {
		cp := *c
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func (f *fakeCarRepo) FindByClassification(ctx context.Context, c domain.Classification) ([]*domain.Car, error) {
	var out []*domain.Car
	for _, car := range f.cars {
		if car.Classification == c {
			cp := *car
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeCarRepo) FindByFuel(ctx context.Context, fu domain.Fuel) ([]*domain.Car, error) {
	var out []*domain.Car
	for _, car := range f.cars {
		if car.Fuel == fu {
			cp := *car
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeCarRepo) Update(ctx context.Context, car *domain.Car) error {
	cp := *car
	f.cars[car.ID] = &cp
	return nil
}

func (f *fakeCarRepo) UpdateImgs(ctx context.Context, id uuid.UUID, imgs []string) error {
	if c, ok := f.cars[id]; ok {
		c.Imgs = imgs
	}
	return nil
}

func (f *fakeCarRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.cars, id)
	return nil
}

func (f *fakeCarRepo) BulkUpsert(ctx context.Context, cars []*domain.Car) (int, error) {
	byNo := make(map[string]uuid.UUID)
	for id, c := range f.cars {
		byNo[c.CarNo] = id
	}
	for _, c := range cars {
		if id, ok := byNo[c.CarNo]; ok {
			cp := *c
			cp.ID = id
			f.cars[id] = &cp
			continue
		}
		cp := *c
		f.cars[c.ID] = &cp
	}
	return len(cars), nil
}

type fakeUploader struct {
	batches int
}

func (f *fakeUploader) Upload(ctx context.Context, category domain.UploadCategory, ownerID uuid.UUID, files []*domain.UploadFile) ([]string, error) {
	f.batches++
	urls := make([]string, len(files))
	for i := range files {
		urls[i] = "https://cdn.example.com/" + string(category) + "/" + ownerID.String() + "/" + files[i].Filename
	}
	return urls, nil
}

func newTestService() (*Service, *fakeCarRepo, *fakeUploader) {
	repo := newFakeCarRepo()
	uploader := &fakeUploader{}
	svc := NewService(repo, uploader, common.NewListCache(newMemCache(), time.Minute))
	return svc, repo, uploader
}

func createReq(name, carNo string) *in.CreateCarRequest {
	return &in.CreateCarRequest{
		Name:           name,
		Classification: domain.ClassificationCompact,
		Price:          50000,
		Year:           2024,
		CarNo:          carNo,
		Transmission:   domain.TransmissionAuto,
		Fuel:           domain.FuelGasoline,
	}
}

func TestListServesFromCache(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newTestService()

	if _, err := svc.Create(ctx, createReq("Avante", "12가3456"), nil); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	filter := &domain.CarFilter{}
	if _, err := svc.List(ctx, filter); err != nil {
		t.Fatalf("first list failed: %v", err)
	}
	if _, err := svc.List(ctx, filter); err != nil {
		t.Fatalf("second list failed: %v", err)
	}

	if repo.listCalls != 1 {
		t.Errorf("repo hit %d times, want 1 (second read from cache)", repo.listCalls)
	}
}

func TestWriteInvalidatesListing(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newTestService()

	if _, err := svc.Create(ctx, createReq("Avante", "12가3456"), nil); err != nil {
		t.Fatal(err)
	}

	filter := &domain.CarFilter{}
	page, err := svc.List(ctx, filter)
	if err != nil {
		t.Fatal(err)
	}
	if page.ItemCount != 1 {
		t.Fatalf("item count = %d, want 1", page.ItemCount)
	}

	// The write must be visible on the next read, not after TTL expiry.
	if _, err := svc.Create(ctx, createReq("Sonata", "34나5678"), nil); err != nil {
		t.Fatal(err)
	}
	page, err = svc.List(ctx, filter)
	if err != nil {
		t.Fatal(err)
	}
	if page.ItemCount != 2 {
		t.Errorf("item count = %d after create, want 2", page.ItemCount)
	}
	if repo.listCalls != 2 {
		t.Errorf("repo hit %d times, want 2", repo.listCalls)
	}
}

func TestListEmptyIsNotFound(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()

	_, err := svc.List(ctx, &domain.CarFilter{})
	if apperr.GetHTTPStatus(err) != 404 {
		t.Errorf("status = %d, want 404", apperr.GetHTTPStatus(err))
	}
}

func TestCreateWithImages(t *testing.T) {
	ctx := context.Background()
	svc, _, uploader := newTestService()

	car, err := svc.Create(ctx, createReq("Avante", "12가3456"), []*domain.UploadFile{
		{Filename: "front.png", MimeType: "image/png", Data: []byte{1}},
		{Filename: "rear.png", MimeType: "image/png", Data: []byte{2}},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if len(car.Imgs) != 2 {
		t.Errorf("got %d image urls, want 2", len(car.Imgs))
	}
	if uploader.batches != 1 {
		t.Errorf("uploader ran %d times, want 1", uploader.batches)
	}
}

func TestCreateValidation(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()

	tests := []struct {
		name string
		req  *in.CreateCarRequest
	}{
		{"missing name", &in.CreateCarRequest{CarNo: "12가3456", Price: 1}},
		{"missing car number", &in.CreateCarRequest{Name: "Avante", Price: 1}},
		{"zero price", &in.CreateCarRequest{Name: "Avante", CarNo: "12가3456"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Create(ctx, tt.req, nil); apperr.GetHTTPStatus(err) != 400 {
				t.Errorf("status = %d, want 400", apperr.GetHTTPStatus(err))
			}
		})
	}
}

func TestImportUpsertsByCarNo(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newTestService()

	existing, err := svc.Create(ctx, createReq("Avante", "12가3456"), nil)
	if err != nil {
		t.Fatal(err)
	}

	n, err := svc.Import(ctx, []*domain.Car{
		{Name: "Avante Hybrid", CarNo: "12가3456", Price: 60000},
		{Name: "Sonata", CarNo: "34나5678", Price: 70000},
	})
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if n != 2 {
		t.Errorf("upserted %d rows, want 2", n)
	}
	if len(repo.cars) != 2 {
		t.Errorf("repo holds %d cars, want 2 (one updated, one inserted)", len(repo.cars))
	}

	updated, err := svc.Get(ctx, existing.ID)
	if err != nil {
		t.Fatal(err)
	}
	if updated.Name != "Avante Hybrid" {
		t.Errorf("name = %s, want Avante Hybrid", updated.Name)
	}

	t.Run("rejects rows without car number", func(t *testing.T) {
		if _, err := svc.Import(ctx, []*domain.Car{{Name: "Ghost", Price: 1}}); apperr.GetHTTPStatus(err) != 400 {
			t.Errorf("status = %d, want 400", apperr.GetHTTPStatus(err))
		}
	})
}
