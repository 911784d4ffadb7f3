// Package quiz implements the linear progression engine for a lesson's
// multiple-choice quiz: one question at a time, an explicit answer selection
// step, and a single submission of the computed score at the end.
package quiz

import (
	"context"

	"github.com/eslsoft/setu/internal/entity"
)

// State enumerates the phases of a quiz attempt.
type State int

const (
	// StateAwaitingAnswer means the current question is displayed and no
	// advance happens until an answer is selected and Next is called.
	StateAwaitingAnswer State = iota
	// StateSubmitting means every question is answered and the result is
	// ready to be submitted. Submission failures return here, so the caller
	// may retry.
	StateSubmitting
	// StateFinished is terminal for the attempt.
	StateFinished
)

// SubmitFunc persists a finished attempt. The engine calls it exactly once
// per successful submission.
type SubmitFunc func(ctx context.Context, lessonID string, score int, answers []entity.QuizAnswer) error

// Session walks a lesson's ordered question list. It is not safe for
// concurrent use; all transitions are driven by a single caller.
type Session struct {
	lessonID  string
	questions []entity.Question

	state    State
	index    int
	selected string
	answered bool
	answers  []entity.QuizAnswer
	score    int
}

// NewSession starts an attempt over the lesson's quiz. Lessons without quiz
// questions are rejected; callers must check HasQuiz before offering the quiz.
func NewSession(lesson *entity.Lesson) (*Session, error) {
	if lesson == nil || !lesson.HasQuiz() {
		return nil, entity.ErrEmptyQuiz
	}
	return &Session{
		lessonID:  lesson.ID,
		questions: lesson.Quiz,
		answers:   []entity.QuizAnswer{},
	}, nil
}

// State returns the current phase of the attempt.
func (s *Session) State() State { return s.state }

// Index returns the zero-based position of the current question.
func (s *Session) Index() int { return s.index }

// Total returns the number of questions in the quiz.
func (s *Session) Total() int { return len(s.questions) }

// Current returns the question awaiting an answer, or nil outside
// StateAwaitingAnswer.
func (s *Session) Current() *entity.Question {
	if s.state != StateAwaitingAnswer {
		return nil
	}
	return &s.questions[s.index]
}

// Selected returns the pending answer for the current question ("" if none).
func (s *Session) Selected() string { return s.selected }

// Select records option as the pending answer without advancing. Selecting
// again replaces the previous choice.
func (s *Session) Select(option string) error {
	if s.state != StateAwaitingAnswer {
		return entity.ErrQuizFinished
	}
	s.selected = option
	s.answered = option != ""
	return nil
}

// Clear withdraws the pending answer, re-disabling advancement.
func (s *Session) Clear() {
	s.selected = ""
	s.answered = false
}

// Next evaluates the pending answer against the current question and either
// advances to the following question or, after the last one, moves the
// attempt to StateSubmitting. Without a pending answer it refuses.
func (s *Session) Next() error {
	if s.state != StateAwaitingAnswer {
		return entity.ErrQuizFinished
	}
	if !s.answered {
		return entity.ErrAnswerRequired
	}

	question := s.questions[s.index]
	s.answers = append(s.answers, entity.QuizAnswer{
		QuestionText: question.QuestionText,
		ChosenAnswer: s.selected,
		Correct:      question.IsCorrect(s.selected),
	})
	s.Clear()

	if s.index+1 < len(s.questions) {
		s.index++
		return nil
	}
	s.state = StateSubmitting
	return nil
}

// Submit computes the final score and hands it to submit. On success the
// attempt becomes Finished; on error it stays in StateSubmitting so the
// caller may retry. No automatic retries happen here.
func (s *Session) Submit(ctx context.Context, submit SubmitFunc) (int, error) {
	if s.state != StateSubmitting {
		return 0, entity.ErrQuizFinished
	}

	correct := 0
	for _, a := range s.answers {
		if a.Correct {
			correct++
		}
	}
	score := entity.Score(correct, len(s.answers))

	if err := submit(ctx, s.lessonID, score, s.Answers()); err != nil {
		return 0, err
	}
	s.score = score
	s.state = StateFinished
	return score, nil
}

// Score returns the submitted score; valid once Finished.
func (s *Session) Score() int { return s.score }

// Answers returns a copy of the accumulated per-question answers for review.
func (s *Session) Answers() []entity.QuizAnswer {
	out := make([]entity.QuizAnswer, len(s.answers))
	copy(out, s.answers)
	return out
}

// Restart resets the attempt to the first question with a fresh answer list.
// Only the last submitted score survives in the progress store.
func (s *Session) Restart() {
	s.state = StateAwaitingAnswer
	s.index = 0
	s.answers = []entity.QuizAnswer{}
	s.score = 0
	s.Clear()
}
