package services

import (
	"context"
	"errors"
	"testing"

	"github.com/mhasan/dancecamp/internal/app/models"
	"github.com/mhasan/dancecamp/internal/pkg/apperrors"
)

// fakeCartStore keeps cart entries in memory with the same uniqueness the
// database enforces on (student email, class id)
type fakeCartStore struct {
	entries map[int64]*models.CartEntry
	nextID  int64
}

func newFakeCartStore() *fakeCartStore {
	return &fakeCartStore{entries: make(map[int64]*models.CartEntry), nextID: 1}
}

func (f *fakeCartStore) CreateIfAbsent(ctx context.Context, entry *models.CartEntry) (bool, error) {
	for _, e := range f.entries {
		if e.StudentEmail == entry.StudentEmail && e.ClassID == entry.ClassID {
			return false, nil
		}
	}
	entry.ID = f.nextID
	f.nextID++
	stored := *entry
	f.entries[entry.ID] = &stored
	return true, nil
}

func (f *fakeCartStore) GetByID(ctx context.Context, id int64) (*models.CartEntry, error) {
	entry, ok := f.entries[id]
	if !ok {
		return nil, apperrors.ErrCartEntryNotFound
	}
	return entry, nil
}

func (f *fakeCartStore) GetByStudentEmail(ctx context.Context, email string) ([]*models.CartEntry, error) {
	var out []*models.CartEntry
	for _, e := range f.entries {
		if e.StudentEmail == email {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeCartStore) Delete(ctx context.Context, id int64) error {
	if _, ok := f.entries[id]; !ok {
		return apperrors.ErrCartEntryNotFound
	}
	delete(f.entries, id)
	return nil
}

func TestSelectClassDeduplicates(t *testing.T) {
	cartStore := newFakeCartStore()
	classStore := newFakeClassStore()
	classStore.classes[3] = &models.Class{ID: 3, Status: models.StatusApproved}
	svc := NewCartService(cartStore, classStore)

	_, created, err := svc.SelectClass(context.Background(), "dancer@example.com", 3)
	if err != nil {
		t.Fatalf("SelectClass returned error: %v", err)
	}
	if !created {
		t.Error("first selection should create an entry")
	}

	_, created, err = svc.SelectClass(context.Background(), "dancer@example.com", 3)
	if err != nil {
		t.Fatalf("repeat SelectClass returned error: %v", err)
	}
	if created {
		t.Error("repeat selection must not create a second entry")
	}
	if len(cartStore.entries) != 1 {
		t.Errorf("expected one entry, got %d", len(cartStore.entries))
	}
}

func TestSelectClassUnknownClass(t *testing.T) {
	svc := NewCartService(newFakeCartStore(), newFakeClassStore())

	_, _, err := svc.SelectClass(context.Background(), "dancer@example.com", 99)
	if !errors.Is(err, apperrors.ErrClassNotFound) {
		t.Fatalf("expected class-not-found error, got %v", err)
	}
}

func TestRemoveEntryOwnerOnly(t *testing.T) {
	cartStore := newFakeCartStore()
	classStore := newFakeClassStore()
	classStore.classes[3] = &models.Class{ID: 3}
	svc := NewCartService(cartStore, classStore)

	entry, _, err := svc.SelectClass(context.Background(), "dancer@example.com", 3)
	if err != nil {
		t.Fatalf("SelectClass returned error: %v", err)
	}

	err = svc.RemoveEntry(context.Background(), entry.ID, "other@example.com")
	if !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Fatalf("expected permission error for non-owner, got %v", err)
	}
	if len(cartStore.entries) != 1 {
		t.Error("non-owner removal must not delete the entry")
	}

	if err := svc.RemoveEntry(context.Background(), entry.ID, "dancer@example.com"); err != nil {
		t.Fatalf("owner removal returned error: %v", err)
	}
	if len(cartStore.entries) != 0 {
		t.Error("owner removal did not delete the entry")
	}
}

func TestRemoveEntryUnknownID(t *testing.T) {
	svc := NewCartService(newFakeCartStore(), newFakeClassStore())

	err := svc.RemoveEntry(context.Background(), 42, "dancer@example.com")
	if !errors.Is(err, apperrors.ErrCartEntryNotFound) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}
