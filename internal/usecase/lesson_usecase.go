package usecase

import (
	"context"

	"github.com/samber/lo"

	"github.com/eslsoft/setu/internal/entity"
	"github.com/eslsoft/setu/internal/repository"
)

// LessonUsecase serves the read-only lesson catalog.
type LessonUsecase interface {
	// ListSummaries returns every lesson's listing fields in catalog order.
	ListSummaries(ctx context.Context) ([]entity.LessonSummary, error)
	// ListSummariesForPair narrows ListSummaries to one source→target pair.
	// An unspecified pair returns the full catalog.
	ListSummariesForPair(ctx context.Context, source, target entity.Language) ([]entity.LessonSummary, error)
	// GetLesson returns the full lesson including phrases and quiz.
	GetLesson(ctx context.Context, id string) (*entity.Lesson, error)
}

// NewLessonUsecase wires the catalog repository.
func NewLessonUsecase(lessons repository.LessonRepository) LessonUsecase {
	return &lessonUsecase{lessons: lessons}
}

type lessonUsecase struct {
	lessons repository.LessonRepository
}

func (u *lessonUsecase) ListSummaries(ctx context.Context) ([]entity.LessonSummary, error) {
	lessons, err := u.lessons.List(ctx)
	if err != nil {
		return nil, err
	}
	return lo.Map(lessons, func(l entity.Lesson, _ int) entity.LessonSummary {
		return l.Summary()
	}), nil
}

func (u *lessonUsecase) ListSummariesForPair(ctx context.Context, source, target entity.Language) ([]entity.LessonSummary, error) {
	summaries, err := u.ListSummaries(ctx)
	if err != nil {
		return nil, err
	}
	if source == entity.LanguageUnspecified && target == entity.LanguageUnspecified {
		return summaries, nil
	}
	return lo.Filter(summaries, func(s entity.LessonSummary, _ int) bool {
		return s.MatchesPair(source, target)
	}), nil
}

func (u *lessonUsecase) GetLesson(ctx context.Context, id string) (*entity.Lesson, error) {
	if id == "" {
		return nil, entity.ErrLessonNotFound
	}
	return u.lessons.GetByID(ctx, id)
}
