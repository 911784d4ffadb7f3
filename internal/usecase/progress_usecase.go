package usecase

import (
	"context"

	"github.com/eslsoft/setu/internal/entity"
	"github.com/eslsoft/setu/internal/repository"
)

// SubmitResult acknowledges a stored quiz submission.
type SubmitResult struct {
	Message string `json:"message"`
	Score   int    `json:"score"`
}

// ProgressUsecase records quiz outcomes against accounts.
type ProgressUsecase interface {
	// SubmitQuizResult upserts the progress record for the lesson: an
	// existing record is overwritten with completed=true and the new score,
	// last write wins. The per-question answers are accepted for symmetry
	// with the client but only the summary is persisted.
	SubmitQuizResult(ctx context.Context, token, lessonID string, score int, answers []entity.QuizAnswer) (*SubmitResult, error)
}

// NewProgressUsecase wires the account repository.
func NewProgressUsecase(accounts repository.AccountRepository) ProgressUsecase {
	return &progressUsecase{accounts: accounts}
}

type progressUsecase struct {
	accounts repository.AccountRepository
}

func (u *progressUsecase) SubmitQuizResult(ctx context.Context, token, lessonID string, score int, answers []entity.QuizAnswer) (*SubmitResult, error) {
	if score < 0 || score > 100 {
		return nil, entity.ErrInvalidScore
	}

	account, err := u.accounts.FindByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	account.RecordProgress(lessonID, score)
	if _, err := u.accounts.Update(ctx, account); err != nil {
		return nil, err
	}

	return &SubmitResult{Message: "Progress saved", Score: score}, nil
}
