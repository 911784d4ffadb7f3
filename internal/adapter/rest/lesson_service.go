package rest

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/eslsoft/setu/internal/entity"
	"github.com/eslsoft/setu/internal/usecase"
)

// LessonService exposes the read-only lesson catalog.
type LessonService struct {
	lessons usecase.LessonUsecase
	logger  *logrus.Logger
}

func NewLessonService(lessons usecase.LessonUsecase, logger *logrus.Logger) *LessonService {
	return &LessonService{lessons: lessons, logger: logger}
}

// List returns lesson summaries. Requests without a token get an empty list
// rather than an error; the optional source/target query parameters narrow
// the catalog to one language pair.
func (s *LessonService) List(w http.ResponseWriter, r *http.Request) {
	if TokenFromContext(r.Context()) == "" {
		respondJSON(w, http.StatusOK, []entity.LessonSummary{})
		return
	}

	source := entity.ParseLanguage(r.URL.Query().Get("source"))
	target := entity.ParseLanguage(r.URL.Query().Get("target"))
	summaries, err := s.lessons.ListSummariesForPair(r.Context(), source, target)
	if err != nil {
		respondError(w, s.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, summaries)
}

// Get returns one full lesson with phrases and quiz.
func (s *LessonService) Get(w http.ResponseWriter, r *http.Request) {
	if TokenFromContext(r.Context()) == "" {
		respondJSON(w, http.StatusUnauthorized, errorEnvelope{
			Error: ErrorBody{Kind: KindValidation, Message: "auth token not provided"},
		})
		return
	}

	lesson, err := s.lessons.GetLesson(r.Context(), mux.Vars(r)["lesson_id"])
	if err != nil {
		respondError(w, s.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, lesson)
}
