package reservation

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"rental_server/core/domain"
	"rental_server/core/port/in"
	"rental_server/core/port/out"
	"rental_server/pkg/apperr"
)

type fakeReservationRepo struct {
	byID         map[uuid.UUID]*domain.Reservation
	lastCheck    bool
	checkedCalls int
}

func newFakeReservationRepo() *fakeReservationRepo {
	return &fakeReservationRepo{byID: make(map[uuid.UUID]*domain.Reservation)}
}

func (f *fakeReservationRepo) hasOverlap(r *domain.Reservation) bool {
	for _, other := range f.byID {
		if other.ID == r.ID || other.CarID != r.CarID {
			continue
		}
		if other.Status != domain.ReservationConfirmed && other.Status != domain.ReservationPending {
			continue
		}
		if domain.Overlaps(other.StartTime, other.EndTime, r.StartTime, r.EndTime) {
			return true
		}
	}
	return false
}

func (f *fakeReservationRepo) CreateChecked(ctx context.Context, r *domain.Reservation) error {
	f.checkedCalls++
	if f.hasOverlap(r) {
		return out.ErrSlotTaken
	}
	cp := *r
	f.byID[r.ID] = &cp
	return nil
}

func (f *fakeReservationRepo) UpdateChecked(ctx context.Context, r *domain.Reservation, checkOverlap bool) error {
	f.lastCheck = checkOverlap
	if checkOverlap && f.hasOverlap(r) {
		return out.ErrSlotTaken
	}
	cp := *r
	f.byID[r.ID] = &cp
	return nil
}

func (f *fakeReservationRepo) Save(ctx context.Context, r *domain.Reservation) error {
	cp := *r
	f.byID[r.ID] = &cp
	return nil
}

func (f *fakeReservationRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Reservation, error) {
	if r, ok := f.byID[id]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeReservationRepo) FindByUserAndID(ctx context.Context, userID, id uuid.UUID) (*domain.Reservation, error) {
	if r, ok := f.byID[id]; ok && r.UserID == userID {
		cp := *r
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeReservationRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Reservation, error) {
	var rs []*domain.Reservation
	for _, r := range f.byID {
		if r.UserID == userID {
			cp := *r
			rs = append(rs, &cp)
		}
	}
	return rs, nil
}

type fakeCarRepo struct {
	cars map[uuid.UUID]*domain.Car
}

func (f *fakeCarRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Car, error) {
	return f.cars[id], nil
}

func (f *fakeCarRepo) Create(ctx context.Context, car *domain.Car) error { return nil }
func (f *fakeCarRepo) List(ctx context.Context, filter *domain.CarFilter) ([]*domain.Car, int, error) {
	return nil, 0, nil
}
func (f *fakeCarRepo) FindByClassification(ctx context.Context, c domain.Classification) ([]*domain.Car, error) {
	return nil, nil
}
func (f *fakeCarRepo) FindByFuel(ctx context.Context, fu domain.Fuel) ([]*domain.Car, error) {
	return nil, nil
}
func (f *fakeCarRepo) Update(ctx context.Context, car *domain.Car) error { return nil }
func (f *fakeCarRepo) UpdateImgs(ctx context.Context, id uuid.UUID, imgs []string) error {
	return nil
}
func (f *fakeCarRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }
func (f *fakeCarRepo) BulkUpsert(ctx context.Context, cars []*domain.Car) (int, error) {
	return 0, nil
}

func newTestService(t *testing.T) (*Service, *fakeReservationRepo, uuid.UUID) {
	t.Helper()

	carID := uuid.New()
	carRepo := &fakeCarRepo{cars: map[uuid.UUID]*domain.Car{
		carID: {Base: domain.Base{ID: carID}, Name: "Avante", Price: 50000},
	}}
	repo := newFakeReservationRepo()

	svc := NewService(repo, carRepo)
	svc.now = func() time.Time {
		return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	}
	return svc, repo, carID
}

func at(hour int) time.Time {
	return time.Date(2026, 3, 2, hour, 0, 0, 0, time.UTC)
}

func TestCreateReservation(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		existing   []struct{ start, end int }
		start, end int
		wantStatus int
	}{
		{
			name:  "free slot books",
			start: 10, end: 12,
			wantStatus: 0,
		},
		{
			name:     "overlapping slot conflicts",
			existing: []struct{ start, end int }{{10, 12}},
			start:    11, end: 13,
			wantStatus: 409,
		},
		{
			name:     "contained slot conflicts",
			existing: []struct{ start, end int }{{9, 15}},
			start:    10, end: 12,
			wantStatus: 409,
		},
		{
			name:     "back-to-back after existing booking succeeds",
			existing: []struct{ start, end int }{{10, 12}},
			start:    12, end: 14,
			wantStatus: 0,
		},
		{
			name:     "back-to-back before existing booking succeeds",
			existing: []struct{ start, end int }{{10, 12}},
			start:    8, end: 10,
			wantStatus: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, carID := newTestService(t)
			userID := uuid.New()

			for _, e := range tt.existing {
				if _, err := svc.Create(ctx, uuid.New(), &in.CreateReservationRequest{
					CarID: carID, StartTime: at(e.start), EndTime: at(e.end),
				}); err != nil {
					t.Fatalf("seeding reservation failed: %v", err)
				}
			}

			r, err := svc.Create(ctx, userID, &in.CreateReservationRequest{
				CarID: carID, StartTime: at(tt.start), EndTime: at(tt.end),
			})

			if tt.wantStatus == 0 {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if r.Status != domain.ReservationConfirmed {
					t.Errorf("status = %s, want confirmed", r.Status)
				}
				if _, ok := repo.byID[r.ID]; !ok {
					t.Error("reservation not persisted")
				}
				return
			}

			if err == nil {
				t.Fatal("expected error, got none")
			}
			if got := apperr.GetHTTPStatus(err); got != tt.wantStatus {
				t.Errorf("status = %d, want %d", got, tt.wantStatus)
			}
		})
	}
}

func TestCreateReservationValidation(t *testing.T) {
	ctx := context.Background()
	svc, _, carID := newTestService(t)
	userID := uuid.New()

	tests := []struct {
		name string
		req  *in.CreateReservationRequest
	}{
		{"missing car", &in.CreateReservationRequest{StartTime: at(10), EndTime: at(12)}},
		{"end before start", &in.CreateReservationRequest{CarID: carID, StartTime: at(12), EndTime: at(10)}},
		{"zero-length interval", &in.CreateReservationRequest{CarID: carID, StartTime: at(10), EndTime: at(10)}},
		{
			"start in the past",
			&in.CreateReservationRequest{
				CarID:     carID,
				StartTime: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
				EndTime:   time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Create(ctx, userID, tt.req); err == nil {
				t.Fatal("expected error, got none")
			} else if apperr.GetHTTPStatus(err) != 400 {
				t.Errorf("status = %d, want 400", apperr.GetHTTPStatus(err))
			}
		})
	}

	t.Run("unknown car", func(t *testing.T) {
		_, err := svc.Create(ctx, userID, &in.CreateReservationRequest{
			CarID: uuid.New(), StartTime: at(10), EndTime: at(12),
		})
		if apperr.GetHTTPStatus(err) != 404 {
			t.Errorf("status = %d, want 404", apperr.GetHTTPStatus(err))
		}
	})
}

func TestCancelReservation(t *testing.T) {
	ctx := context.Background()
	svc, _, carID := newTestService(t)
	userID := uuid.New()

	r, err := svc.Create(ctx, userID, &in.CreateReservationRequest{
		CarID: carID, StartTime: at(10), EndTime: at(12),
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	canceled, err := svc.Cancel(ctx, userID, r.ID)
	if err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if canceled.Status != domain.ReservationCanceled {
		t.Errorf("status = %s, want canceled", canceled.Status)
	}

	// Second cancel hits a terminal reservation.
	if _, err := svc.Cancel(ctx, userID, r.ID); apperr.GetHTTPStatus(err) != 409 {
		t.Errorf("double cancel status = %d, want 409", apperr.GetHTTPStatus(err))
	}

	// A canceled reservation frees its slot.
	if _, err := svc.Create(ctx, uuid.New(), &in.CreateReservationRequest{
		CarID: carID, StartTime: at(10), EndTime: at(12),
	}); err != nil {
		t.Errorf("slot should be free after cancel: %v", err)
	}

	t.Run("other user's reservation is invisible", func(t *testing.T) {
		if _, err := svc.Cancel(ctx, uuid.New(), r.ID); apperr.GetHTTPStatus(err) != 404 {
			t.Errorf("status = %d, want 404", apperr.GetHTTPStatus(err))
		}
	})
}

func TestPatchReservation(t *testing.T) {
	ctx := context.Background()

	status := func(s domain.ReservationStatus) *domain.ReservationStatus { return &s }
	ts := func(h int) *time.Time { v := at(h); return &v }

	t.Run("moving the interval re-checks overlap", func(t *testing.T) {
		svc, repo, carID := newTestService(t)
		userID := uuid.New()

		r, _ := svc.Create(ctx, userID, &in.CreateReservationRequest{
			CarID: carID, StartTime: at(10), EndTime: at(12),
		})
		if _, err := svc.Create(ctx, uuid.New(), &in.CreateReservationRequest{
			CarID: carID, StartTime: at(14), EndTime: at(16),
		}); err != nil {
			t.Fatalf("seed failed: %v", err)
		}

		if _, err := svc.Patch(ctx, userID, r.ID, &in.PatchReservationRequest{
			StartTime: ts(15), EndTime: ts(17),
		}); apperr.GetHTTPStatus(err) != 409 {
			t.Errorf("status = %d, want 409", apperr.GetHTTPStatus(err))
		}
		if !repo.lastCheck {
			t.Error("overlap check was skipped")
		}
	})

	t.Run("pure status transition skips overlap check", func(t *testing.T) {
		svc, repo, carID := newTestService(t)
		userID := uuid.New()

		r, _ := svc.Create(ctx, userID, &in.CreateReservationRequest{
			CarID: carID, StartTime: at(10), EndTime: at(12),
		})
		if _, err := svc.Patch(ctx, userID, r.ID, &in.PatchReservationRequest{
			Status: status(domain.ReservationCompleted),
		}); err != nil {
			t.Fatalf("patch failed: %v", err)
		}
		if repo.lastCheck {
			t.Error("overlap check should be skipped for status-only patch")
		}
	})

	t.Run("patching a terminal reservation conflicts", func(t *testing.T) {
		svc, _, carID := newTestService(t)
		userID := uuid.New()

		r, _ := svc.Create(ctx, userID, &in.CreateReservationRequest{
			CarID: carID, StartTime: at(10), EndTime: at(12),
		})
		if _, err := svc.Cancel(ctx, userID, r.ID); err != nil {
			t.Fatalf("cancel failed: %v", err)
		}
		if _, err := svc.Patch(ctx, userID, r.ID, &in.PatchReservationRequest{
			EndTime: ts(13),
		}); apperr.GetHTTPStatus(err) != 409 {
			t.Errorf("status = %d, want 409", apperr.GetHTTPStatus(err))
		}
	})

	t.Run("canceling via patch is rejected", func(t *testing.T) {
		svc, _, carID := newTestService(t)
		userID := uuid.New()

		r, _ := svc.Create(ctx, userID, &in.CreateReservationRequest{
			CarID: carID, StartTime: at(10), EndTime: at(12),
		})
		if _, err := svc.Patch(ctx, userID, r.ID, &in.PatchReservationRequest{
			Status: status(domain.ReservationCanceled),
		}); apperr.GetHTTPStatus(err) != 400 {
			t.Errorf("status = %d, want 400", apperr.GetHTTPStatus(err))
		}
	})
}

func TestPatchReservationCarChange(t *testing.T) {
	ctx := context.Background()

	cid := func(id uuid.UUID) *uuid.UUID { return &id }

	setup := func(t *testing.T) (*Service, *fakeReservationRepo, uuid.UUID, uuid.UUID) {
		t.Helper()

		carA, carB := uuid.New(), uuid.New()
		carRepo := &fakeCarRepo{cars: map[uuid.UUID]*domain.Car{
			carA: {Base: domain.Base{ID: carA}, Name: "Avante", Price: 50000},
			carB: {Base: domain.Base{ID: carB}, Name: "Sonata", Price: 70000},
		}}
		repo := newFakeReservationRepo()
		svc := NewService(repo, carRepo)
		svc.now = func() time.Time {
			return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
		}
		return svc, repo, carA, carB
	}

	t.Run("moving to a free car resets status to pending", func(t *testing.T) {
		svc, repo, carA, carB := setup(t)
		userID := uuid.New()

		r, err := svc.Create(ctx, userID, &in.CreateReservationRequest{
			CarID: carA, StartTime: at(10), EndTime: at(12),
		})
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}

		moved, err := svc.Patch(ctx, userID, r.ID, &in.PatchReservationRequest{CarID: cid(carB)})
		if err != nil {
			t.Fatalf("patch failed: %v", err)
		}
		if moved.CarID != carB {
			t.Errorf("car = %s, want %s", moved.CarID, carB)
		}
		if moved.Status != domain.ReservationPending {
			t.Errorf("status = %s, want pending after car change", moved.Status)
		}
		if !repo.lastCheck {
			t.Error("overlap check was skipped on car change")
		}
		if stored := repo.byID[r.ID]; stored.CarID != carB {
			t.Errorf("persisted car = %s, want %s", stored.CarID, carB)
		}
	})

	t.Run("moving to a busy car conflicts", func(t *testing.T) {
		svc, repo, carA, carB := setup(t)
		userID := uuid.New()

		r, err := svc.Create(ctx, userID, &in.CreateReservationRequest{
			CarID: carA, StartTime: at(10), EndTime: at(12),
		})
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}
		if _, err := svc.Create(ctx, uuid.New(), &in.CreateReservationRequest{
			CarID: carB, StartTime: at(11), EndTime: at(13),
		}); err != nil {
			t.Fatalf("seed failed: %v", err)
		}

		if _, err := svc.Patch(ctx, userID, r.ID, &in.PatchReservationRequest{
			CarID: cid(carB),
		}); apperr.GetHTTPStatus(err) != 409 {
			t.Errorf("status = %d, want 409", apperr.GetHTTPStatus(err))
		}
		if !repo.lastCheck {
			t.Error("overlap check was skipped on car change")
		}
		if stored := repo.byID[r.ID]; stored.CarID != carA {
			t.Errorf("conflicting move must not persist, car = %s", stored.CarID)
		}
	})

	t.Run("moving to an unknown car is not found", func(t *testing.T) {
		svc, _, carA, _ := setup(t)
		userID := uuid.New()

		r, err := svc.Create(ctx, userID, &in.CreateReservationRequest{
			CarID: carA, StartTime: at(10), EndTime: at(12),
		})
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}

		if _, err := svc.Patch(ctx, userID, r.ID, &in.PatchReservationRequest{
			CarID: cid(uuid.New()),
		}); apperr.GetHTTPStatus(err) != 404 {
			t.Errorf("status = %d, want 404", apperr.GetHTTPStatus(err))
		}
	})

	t.Run("patching the current car keeps the status", func(t *testing.T) {
		svc, repo, carA, _ := setup(t)
		userID := uuid.New()

		r, err := svc.Create(ctx, userID, &in.CreateReservationRequest{
			CarID: carA, StartTime: at(10), EndTime: at(12),
		})
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}

		got, err := svc.Patch(ctx, userID, r.ID, &in.PatchReservationRequest{CarID: cid(carA)})
		if err != nil {
			t.Fatalf("patch failed: %v", err)
		}
		if got.Status != domain.ReservationConfirmed {
			t.Errorf("status = %s, want confirmed", got.Status)
		}
		if repo.lastCheck {
			t.Error("overlap check should be skipped when nothing moved")
		}
	})
}
