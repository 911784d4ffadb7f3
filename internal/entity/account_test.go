package entity

import (
	"errors"
	"testing"
	"time"
)

func TestAccountValidate(t *testing.T) {
	account := Account{Name: "Asha", SourceLang: LanguageHindi, TargetLang: LanguageKannada}
	if err := account.Validate(); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	account.Name = "   "
	if err := account.Validate(); !errors.Is(err, ErrInvalidAccountName) {
		t.Fatalf("expected ErrInvalidAccountName, got %v", err)
	}

	account.Name = "Asha"
	account.TargetLang = LanguageHindi
	if err := account.Validate(); !errors.Is(err, ErrSameLanguagePair) {
		t.Fatalf("expected ErrSameLanguagePair, got %v", err)
	}
}

func TestRecordProgress_UpsertsPerLesson(t *testing.T) {
	account := Account{}
	account.Normalize(time.Now())

	account.RecordProgress("l1", 40)
	account.RecordProgress("l2", 80)
	account.RecordProgress("l1", 90)

	if len(account.Progress) != 2 {
		t.Fatalf("expected 2 progress records, got %d", len(account.Progress))
	}
	first := account.Progress[0]
	if first.LessonID != "l1" || first.Score != 90 || !first.Completed {
		t.Fatalf("expected overwritten l1 record, got %+v", first)
	}
}

func TestCompletionPercent_EmptyProgressIsZero(t *testing.T) {
	profile := UserProfile{Progress: []ProgressItem{}}
	if got := profile.CompletionPercent(); got != 0 {
		t.Fatalf("expected 0 for empty progress, got %d", got)
	}

	profile.Progress = []ProgressItem{
		{LessonID: "l1", Completed: true},
		{LessonID: "l2", Completed: true},
		{LessonID: "l3", Completed: false},
	}
	if got := profile.CompletionPercent(); got != 67 {
		t.Fatalf("expected 67, got %d", got)
	}
}
