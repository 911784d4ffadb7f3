package entity

import "errors"

// Domain errors for accounts, lessons and quiz attempts.
var (
	ErrInvalidAccountName = errors.New("account name is required")
	ErrSameLanguagePair   = errors.New("source and target language must differ")
	ErrAccountNotFound    = errors.New("account not found")
	ErrLessonNotFound     = errors.New("lesson not found")
	ErrLoginDisabled      = errors.New("login is disabled in this version")
	ErrEmptyQuiz          = errors.New("lesson has no quiz questions")
	ErrAnswerRequired     = errors.New("an answer must be selected first")
	ErrQuizFinished       = errors.New("quiz attempt already finished")
	ErrInvalidScore       = errors.New("score must be between 0 and 100")
)
