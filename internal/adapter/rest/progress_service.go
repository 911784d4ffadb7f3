package rest

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/eslsoft/setu/internal/entity"
	"github.com/eslsoft/setu/internal/usecase"
)

// ProgressService records quiz submissions.
type ProgressService struct {
	progress usecase.ProgressUsecase
	logger   *logrus.Logger
}

func NewProgressService(progress usecase.ProgressUsecase, logger *logrus.Logger) *ProgressService {
	return &ProgressService{progress: progress, logger: logger}
}

type submitQuizRequest struct {
	Score   int                 `json:"score"`
	Answers []entity.QuizAnswer `json:"answers"`
}

// SubmitQuiz upserts the caller's progress record for the lesson. The answer
// list is accepted but only the score and completion flag are stored.
func (s *ProgressService) SubmitQuiz(w http.ResponseWriter, r *http.Request) {
	token := TokenFromContext(r.Context())
	if token == "" {
		respondJSON(w, http.StatusUnauthorized, errorEnvelope{
			Error: ErrorBody{Kind: KindValidation, Message: "auth token not provided"},
		})
		return
	}

	var req submitQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorEnvelope{
			Error: ErrorBody{Kind: KindValidation, Message: "invalid request payload"},
		})
		return
	}

	result, err := s.progress.SubmitQuizResult(r.Context(), token, mux.Vars(r)["lesson_id"], req.Score, req.Answers)
	if err != nil {
		respondError(w, s.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}
