package services

import (
	"context"
	"testing"

	"github.com/mhasan/dancecamp/internal/app/models"
)

func TestListInstructorsAggregatesTotals(t *testing.T) {
	userStore := newFakeUserStore()
	userStore.CreateIfAbsent(context.Background(), &models.User{Email: "maria@example.com", Name: "Maria Lopez", Role: models.RoleInstructor})
	userStore.CreateIfAbsent(context.Background(), &models.User{Email: "student@example.com", Name: "A Student", Role: models.RoleStudent})

	classStore := newFakeClassStore()
	seedClass(classStore, 1, "maria@example.com", models.StatusApproved, 12)
	seedClass(classStore, 2, "maria@example.com", models.StatusPending, 3)

	svc := NewInstructorService(userStore, classStore)

	summaries, err := svc.ListInstructors(context.Background())
	if err != nil {
		t.Fatalf("ListInstructors returned error: %v", err)
	}

	if len(summaries) != 1 {
		t.Fatalf("expected 1 instructor, got %d", len(summaries))
	}
	maria := summaries[0]
	if maria.Email != "maria@example.com" {
		t.Errorf("unexpected instructor %s", maria.Email)
	}
	if maria.TotalClasses != 2 {
		t.Errorf("expected 2 classes, got %d", maria.TotalClasses)
	}
	if maria.TotalEnrollmentStudents != 15 {
		t.Errorf("expected 15 enrolled students, got %d", maria.TotalEnrollmentStudents)
	}
}

func TestListInstructorsIncludesZeroClassInstructors(t *testing.T) {
	userStore := newFakeUserStore()
	userStore.CreateIfAbsent(context.Background(), &models.User{Email: "new@example.com", Name: "New Instructor", Role: models.RoleInstructor})

	svc := NewInstructorService(userStore, newFakeClassStore())

	summaries, err := svc.ListInstructors(context.Background())
	if err != nil {
		t.Fatalf("ListInstructors returned error: %v", err)
	}

	if len(summaries) != 1 {
		t.Fatalf("instructor without classes missing from listing")
	}
	if summaries[0].TotalClasses != 0 || summaries[0].TotalEnrollmentStudents != 0 {
		t.Errorf("zero-class instructor should carry zero totals: %+v", summaries[0])
	}
}
