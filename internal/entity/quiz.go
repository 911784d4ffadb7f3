package entity

import (
	"fmt"
	"math"
)

// Question is one multiple-choice quiz question. Options are kept in display
// order and never shuffled.
type Question struct {
	ID            string   `json:"id"`
	QuestionText  string   `json:"question_text"`
	CorrectAnswer string   `json:"correct_answer"`
	Options       []string `json:"options"`
}

// QuizAnswer records one answered question of a quiz attempt.
type QuizAnswer struct {
	QuestionText string `json:"question_text"`
	ChosenAnswer string `json:"chosen_answer"`
	Correct      bool   `json:"correct"`
}

// IsCorrect evaluates an answer by exact string equality.
func (q *Question) IsCorrect(answer string) bool {
	return answer == q.CorrectAnswer
}

// Validate checks that the correct answer is actually offered as an option.
func (q *Question) Validate() error {
	if q.QuestionText == "" {
		return fmt.Errorf("question %s: text is required", q.ID)
	}
	if len(q.Options) == 0 {
		return fmt.Errorf("question %s: options are required", q.ID)
	}
	for _, opt := range q.Options {
		if opt == q.CorrectAnswer {
			return nil
		}
	}
	return fmt.Errorf("question %s: correct answer is not among the options", q.ID)
}

// Score computes the quiz score as round(100 * correct / total). Every
// submission recomputes it with this formula.
func Score(correct, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(correct) / float64(total)))
}
