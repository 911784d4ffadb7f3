package cmd

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/eslsoft/setu/internal/entity"
	"github.com/eslsoft/setu/internal/infrastructure/config"
	"github.com/eslsoft/setu/internal/quiz"
	"github.com/eslsoft/setu/pkg/client"
)

var quizCmd = &cobra.Command{
	Use:   "quiz <lesson-id>",
	Short: "Take a lesson's quiz",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		sess, err := openSession(cfg)
		if err != nil {
			return err
		}
		if err := requireSession(sess); err != nil {
			return err
		}

		api := newAPIClient(cfg, sess)
		wire, err := api.GetLesson(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		lesson := lessonFromWire(wire)
		if !lesson.HasQuiz() {
			cmd.Println("this lesson has no quiz")
			return nil
		}

		attempt, err := quiz.NewSession(&lesson)
		if err != nil {
			return err
		}

		cmd.Printf("%s — quiz, %d questions\n\n", lesson.Title, attempt.Total())
		scanner := bufio.NewScanner(cmd.InOrStdin())
		for attempt.State() == quiz.StateAwaitingAnswer {
			question := attempt.Current()
			cmd.Printf("question %d/%d: %s\n", attempt.Index()+1, attempt.Total(), question.QuestionText)
			for i, opt := range question.Options {
				cmd.Printf("  %d) %s\n", i+1, opt)
			}

			choice, err := readChoice(cmd, scanner, len(question.Options))
			if err != nil {
				return err
			}
			if err := attempt.Select(question.Options[choice-1]); err != nil {
				return err
			}
			if err := attempt.Next(); err != nil {
				return err
			}
			cmd.Println()
		}

		submit := func(ctx context.Context, lessonID string, score int, answers []entity.QuizAnswer) error {
			_, err := api.SubmitQuiz(ctx, lessonID, score, lo.Map(answers, func(a entity.QuizAnswer, _ int) client.QuizAnswer {
				return client.QuizAnswer{QuestionText: a.QuestionText, ChosenAnswer: a.ChosenAnswer, Correct: a.Correct}
			}))
			return err
		}
		score, err := attempt.Submit(cmd.Context(), submit)
		if err != nil {
			return fmt.Errorf("submit quiz: %w", err)
		}

		cmd.Printf("your score: %d/100\n\n", score)
		for _, a := range attempt.Answers() {
			mark := "✗"
			if a.Correct {
				mark = "✓"
			}
			cmd.Printf("%s %s\n    your answer: %s\n", mark, a.QuestionText, a.ChosenAnswer)
		}
		return nil
	},
}

// readChoice prompts until the user picks a valid option number.
func readChoice(cmd *cobra.Command, scanner *bufio.Scanner, options int) (int, error) {
	for {
		cmd.Printf("> ")
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return 0, err
			}
			return 0, fmt.Errorf("input closed before the quiz finished")
		}
		choice, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
		if err != nil || choice < 1 || choice > options {
			cmd.Printf("pick a number between 1 and %d\n", options)
			continue
		}
		return choice, nil
	}
}

func lessonFromWire(wire *client.Lesson) entity.Lesson {
	return entity.Lesson{
		ID:          wire.ID,
		Title:       wire.Title,
		Description: wire.Description,
		SourceLang:  entity.ParseLanguage(wire.SourceLang),
		TargetLang:  entity.ParseLanguage(wire.TargetLang),
		Phrases: lo.Map(wire.Phrases, func(p client.Phrase, _ int) entity.Phrase {
			return entity.Phrase{
				ID:             p.ID,
				PhraseID:       p.PhraseID,
				SourceText:     p.SourceText,
				TargetText:     p.TargetText,
				SourceAudioURL: p.SourceAudioURL,
				TargetAudioURL: p.TargetAudioURL,
			}
		}),
		Quiz: lo.Map(wire.Quiz, func(q client.Question, _ int) entity.Question {
			return entity.Question{
				ID:            q.ID,
				QuestionText:  q.QuestionText,
				CorrectAnswer: q.CorrectAnswer,
				Options:       q.Options,
			}
		}),
	}
}

func init() {
	rootCmd.AddCommand(quizCmd)
}
