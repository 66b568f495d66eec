package services

import (
	"context"
	"errors"
	"testing"

	"github.com/mhasan/dancecamp/internal/app/auth"
	"github.com/mhasan/dancecamp/internal/app/models"
	"github.com/mhasan/dancecamp/internal/pkg/apperrors"
)

func newClassServiceForTest(store *fakeClassStore) *ClassService {
	return NewClassService(store, auth.NewAuthorizationService(newFakeUserStore(), store))
}

func seedClass(store *fakeClassStore, id int64, instructorEmail string, status models.ClassStatus, enrolled int) *models.Class {
	class := &models.Class{
		ID:               id,
		Name:             "Class",
		InstructorEmail:  instructorEmail,
		PriceCents:       4500,
		AvailableSeats:   20,
		EnrolledStudents: enrolled,
		Status:           status,
	}
	store.classes[id] = class
	return class
}

func TestCreateClassStartsPending(t *testing.T) {
	store := newFakeClassStore()
	svc := newClassServiceForTest(store)

	class := &models.Class{
		ID:               1,
		Name:             "Beginner Salsa",
		InstructorEmail:  "maria@example.com",
		PriceCents:       4500,
		AvailableSeats:   20,
		Status:           models.StatusApproved, // callers cannot pick a status
		EnrolledStudents: 7,
	}

	if err := svc.CreateClass(context.Background(), class); err != nil {
		t.Fatalf("CreateClass returned error: %v", err)
	}

	if class.Status != models.StatusPending {
		t.Errorf("new offering must start pending, got %s", class.Status)
	}
	if class.EnrolledStudents != 0 {
		t.Errorf("new offering must start with zero enrollment, got %d", class.EnrolledStudents)
	}
}

func TestUpdateClassRequiresOwnership(t *testing.T) {
	store := newFakeClassStore()
	seedClass(store, 1, "maria@example.com", models.StatusApproved, 0)
	svc := newClassServiceForTest(store)

	name := "Advanced Salsa"
	err := svc.UpdateClass(context.Background(), 1, "other@example.com", &name, nil, nil)
	if !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Fatalf("expected permission error for non-owner, got %v", err)
	}
	if store.classes[1].Name != "Class" {
		t.Error("non-owner update must not change the class")
	}

	if err := svc.UpdateClass(context.Background(), 1, "maria@example.com", &name, nil, nil); err != nil {
		t.Fatalf("owner update returned error: %v", err)
	}
	if store.classes[1].Name != "Advanced Salsa" {
		t.Error("owner update did not apply")
	}
}

func TestUpdateClassPartialMerge(t *testing.T) {
	store := newFakeClassStore()
	seedClass(store, 1, "maria@example.com", models.StatusApproved, 0)
	svc := newClassServiceForTest(store)

	price := int64(5500)
	if err := svc.UpdateClass(context.Background(), 1, "maria@example.com", nil, &price, nil); err != nil {
		t.Fatalf("UpdateClass returned error: %v", err)
	}

	class := store.classes[1]
	if class.PriceCents != 5500 {
		t.Errorf("price not updated: %d", class.PriceCents)
	}
	if class.Name != "Class" || class.AvailableSeats != 20 {
		t.Error("fields absent from the update were changed")
	}
}

func TestApplyStatusDecision(t *testing.T) {
	store := newFakeClassStore()
	seedClass(store, 1, "maria@example.com", models.StatusPending, 0)
	svc := newClassServiceForTest(store)

	status, err := svc.ApplyStatusDecision(context.Background(), 1, models.DecisionApprove)
	if err != nil {
		t.Fatalf("ApplyStatusDecision returned error: %v", err)
	}
	if status != models.StatusApproved || store.classes[1].Status != models.StatusApproved {
		t.Errorf("approve decision did not apply: %s", store.classes[1].Status)
	}

	status, err = svc.ApplyStatusDecision(context.Background(), 1, models.DecisionDeny)
	if err != nil {
		t.Fatalf("ApplyStatusDecision returned error: %v", err)
	}
	if status != models.StatusDenied {
		t.Errorf("deny decision did not apply: %s", status)
	}
}

func TestApplyStatusDecisionRejectsUnknownValue(t *testing.T) {
	store := newFakeClassStore()
	seedClass(store, 1, "maria@example.com", models.StatusPending, 0)
	svc := newClassServiceForTest(store)

	_, err := svc.ApplyStatusDecision(context.Background(), 1, models.StatusDecision("maybe"))
	if !errors.Is(err, apperrors.ErrBadRequest) {
		t.Fatalf("expected bad-request error for unknown decision, got %v", err)
	}
	if store.classes[1].Status != models.StatusPending {
		t.Error("class status changed despite rejected decision")
	}
}

func TestGetPopularClassesLimit(t *testing.T) {
	store := newFakeClassStore()
	for i := int64(1); i <= 8; i++ {
		seedClass(store, i, "maria@example.com", models.StatusApproved, int(i))
	}
	seedClass(store, 9, "maria@example.com", models.StatusPending, 100)
	svc := newClassServiceForTest(store)

	popular, err := svc.GetPopularClasses(context.Background())
	if err != nil {
		t.Fatalf("GetPopularClasses returned error: %v", err)
	}

	if len(popular) != popularClassLimit {
		t.Fatalf("expected %d popular classes, got %d", popularClassLimit, len(popular))
	}
	for _, class := range popular {
		if class.Status != models.StatusApproved {
			t.Errorf("pending class %d leaked into popular listing", class.ID)
		}
	}
	for i := 1; i < len(popular); i++ {
		if popular[i].EnrolledStudents > popular[i-1].EnrolledStudents {
			t.Error("popular listing not sorted by enrollment")
		}
	}
}
