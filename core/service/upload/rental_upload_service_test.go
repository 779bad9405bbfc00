package upload

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"

	"rental_server/core/domain"
	"rental_server/pkg/apperr"
)

type fakeStorage struct {
	objects        map[string][]byte
	removedFolders []string
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: make(map[string][]byte)}
}

func (f *fakeStorage) Put(ctx context.Context, path, contentType string, data []byte) (string, error) {
	f.objects[path] = data
	return "https://cdn.example.com/" + path, nil
}

func (f *fakeStorage) RemoveFolder(ctx context.Context, folderPath string) error {
	f.removedFolders = append(f.removedFolders, folderPath)
	for path := range f.objects {
		if strings.HasPrefix(path, folderPath+"/") {
			delete(f.objects, path)
		}
	}
	return nil
}

func testLimits() Limits {
	return Limits{Car: 5, Accommodation: 10, Profile: 3}
}

func imgs(n int, mime string) []*domain.UploadFile {
	files := make([]*domain.UploadFile, n)
	for i := range files {
		files[i] = &domain.UploadFile{
			Filename: "photo.jpg",
			MimeType: mime,
			Data:     []byte{0xff, 0xd8},
		}
	}
	return files
}

func TestUploadValidation(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		category domain.UploadCategory
		files    []*domain.UploadFile
	}{
		{"empty batch", domain.UploadCategoryCar, nil},
		{"over car limit", domain.UploadCategoryCar, imgs(6, "image/jpeg")},
		{"over accommodation limit", domain.UploadCategoryAccommodation, imgs(11, "image/png")},
		{"over profile limit", domain.UploadCategoryProfile, imgs(4, "image/png")},
		{"gif rejected", domain.UploadCategoryCar, imgs(2, "image/gif")},
		{"pdf rejected", domain.UploadCategoryProfile, imgs(1, "application/pdf")},
		{"unknown category", domain.UploadCategory("video"), imgs(1, "image/png")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage := newFakeStorage()
			svc := NewService(storage, testLimits())

			_, err := svc.Upload(ctx, tt.category, uuid.New(), tt.files)
			if err == nil {
				t.Fatal("expected error, got none")
			}
			if got := apperr.GetHTTPStatus(err); got != 400 {
				t.Errorf("status = %d, want 400", got)
			}
			// All-or-nothing: a rejected batch writes nothing.
			if len(storage.objects) != 0 {
				t.Errorf("stored %d objects, want 0", len(storage.objects))
			}
			if len(storage.removedFolders) != 0 {
				t.Error("folder was cleared for a rejected batch")
			}
		})
	}
}

func TestUploadStoresBatch(t *testing.T) {
	ctx := context.Background()
	storage := newFakeStorage()
	svc := NewService(storage, testLimits())
	ownerID := uuid.New()

	urls, err := svc.Upload(ctx, domain.UploadCategoryCar, ownerID, imgs(3, "image/png"))
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}
	if len(urls) != 3 {
		t.Fatalf("got %d urls, want 3", len(urls))
	}

	prefix := "car/" + ownerID.String() + "/"
	for path := range storage.objects {
		if !strings.HasPrefix(path, prefix) {
			t.Errorf("object %s outside owner folder %s", path, prefix)
		}
		if !strings.HasSuffix(path, ".png") {
			t.Errorf("object %s missing extension for its mime type", path)
		}
	}
}

func TestUploadReplacesPreviousSet(t *testing.T) {
	ctx := context.Background()
	storage := newFakeStorage()
	svc := NewService(storage, testLimits())
	ownerID := uuid.New()

	if _, err := svc.Upload(ctx, domain.UploadCategoryProfile, ownerID, imgs(3, "image/jpeg")); err != nil {
		t.Fatalf("first upload failed: %v", err)
	}
	if _, err := svc.Upload(ctx, domain.UploadCategoryProfile, ownerID, imgs(1, "image/png")); err != nil {
		t.Fatalf("second upload failed: %v", err)
	}

	if len(storage.objects) != 1 {
		t.Errorf("stored %d objects after replace, want 1", len(storage.objects))
	}
	if len(storage.removedFolders) != 2 {
		t.Errorf("folder cleared %d times, want 2", len(storage.removedFolders))
	}
}
