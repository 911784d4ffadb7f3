package repository

import (
	"context"

	"github.com/eslsoft/setu/internal/entity"
)

// LessonRepository serves the read-only lesson catalog. Implementations
// return entity.ErrLessonNotFound for unknown ids.
type LessonRepository interface {
	List(ctx context.Context) ([]entity.Lesson, error)
	GetByID(ctx context.Context, id string) (*entity.Lesson, error)
}
