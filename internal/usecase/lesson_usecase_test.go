package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/eslsoft/setu/internal/entity"
)

func pairLessons() *mockLessonRepo {
	return &mockLessonRepo{lessons: []entity.Lesson{
		{ID: "l1", Title: "Get Paid", SourceLang: entity.LanguageHindi, TargetLang: entity.LanguageKannada},
		{ID: "l2", Title: "At The Clinic", SourceLang: entity.LanguageHindi, TargetLang: entity.LanguageKannada},
		{ID: "l3", Title: "Renting a Room", SourceLang: entity.LanguageBengali, TargetLang: entity.LanguageMarathi},
	}}
}

func TestListSummaries_PreservesCatalogOrder(t *testing.T) {
	uc := NewLessonUsecase(pairLessons())
	summaries, err := uc.ListSummaries(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(summaries) != 3 {
		t.Fatalf("expected 3 summaries, got %d", len(summaries))
	}
	if summaries[0].ID != "l1" || summaries[2].ID != "l3" {
		t.Fatalf("catalog order not preserved: %+v", summaries)
	}
}

func TestListSummariesForPair_FiltersByLanguages(t *testing.T) {
	uc := NewLessonUsecase(pairLessons())

	summaries, err := uc.ListSummariesForPair(context.Background(), entity.LanguageHindi, entity.LanguageKannada)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("expected 2 Hindi→Kannada lessons, got %d", len(summaries))
	}
	for _, s := range summaries {
		if s.ID == "l3" {
			t.Fatal("Bengali/Marathi lesson must be excluded")
		}
	}

	// Unspecified pair returns everything.
	all, err := uc.ListSummariesForPair(context.Background(), entity.LanguageUnspecified, entity.LanguageUnspecified)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected full catalog, got %d", len(all))
	}
}

func TestGetLesson_UnknownID(t *testing.T) {
	uc := NewLessonUsecase(pairLessons())
	if _, err := uc.GetLesson(context.Background(), "unknown"); !errors.Is(err, entity.ErrLessonNotFound) {
		t.Fatalf("expected ErrLessonNotFound, got %v", err)
	}
	if _, err := uc.GetLesson(context.Background(), ""); !errors.Is(err, entity.ErrLessonNotFound) {
		t.Fatalf("expected ErrLessonNotFound for empty id, got %v", err)
	}
}
