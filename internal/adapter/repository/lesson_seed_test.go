package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/eslsoft/setu/internal/entity"
)

func TestSeedCatalog_IsValid(t *testing.T) {
	if _, err := NewSeedLessonRepository(); err != nil {
		t.Fatalf("seed catalog must validate: %v", err)
	}
}

func TestSeedCatalog_HindiKannadaLessons(t *testing.T) {
	repo, err := NewSeedLessonRepository()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	lessons, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	var matched []string
	for _, l := range lessons {
		if l.Summary().MatchesPair(entity.LanguageHindi, entity.LanguageKannada) {
			matched = append(matched, l.ID)
		}
	}
	want := []string{"665f3a9e1e9b4d3e8c9c7f01", "665f3a9e1e9b4d3e8c9c7f02"}
	if len(matched) != len(want) || matched[0] != want[0] || matched[1] != want[1] {
		t.Fatalf("expected Hindi→Kannada lessons %v, got %v", want, matched)
	}
}

func TestSeedCatalog_ClinicLessonHasOneQuestion(t *testing.T) {
	repo, err := NewSeedLessonRepository()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	lesson, err := repo.GetByID(context.Background(), "665f3a9e1e9b4d3e8c9c7f02")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !lesson.HasQuiz() || len(lesson.Quiz) != 1 {
		t.Fatalf("expected 1 quiz question, got %d", len(lesson.Quiz))
	}
	if lesson.Quiz[0].CorrectAnswer != "Nanage jwara bandide." {
		t.Fatalf("unexpected correct answer: %q", lesson.Quiz[0].CorrectAnswer)
	}
}

func TestGetByID_Unknown(t *testing.T) {
	repo, err := NewSeedLessonRepository()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, err := repo.GetByID(context.Background(), "missing"); !errors.Is(err, entity.ErrLessonNotFound) {
		t.Fatalf("expected ErrLessonNotFound, got %v", err)
	}
}

func TestNewSeedLessonRepository_RejectsBadExtras(t *testing.T) {
	bad := entity.Lesson{ID: "x1", Title: "No Phrases"}
	if _, err := NewSeedLessonRepository(bad); err == nil {
		t.Fatal("expected validation error for lesson without phrases")
	}

	duplicate := SeedCatalog[0]
	if _, err := NewSeedLessonRepository(duplicate); err == nil {
		t.Fatal("expected duplicate id error")
	}
}
