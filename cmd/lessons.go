package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eslsoft/setu/internal/infrastructure/config"
)

var lessonsCmd = &cobra.Command{
	Use:   "lessons",
	Short: "List lessons for your language pair",
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")

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

		source, target := "", ""
		if !all {
			if user := sess.User(); user != nil {
				source = user.SourceLang.Code()
				target = user.TargetLang.Code()
			}
		}

		api := newAPIClient(cfg, sess)
		summaries, err := api.ListLessons(cmd.Context(), source, target)
		if err != nil {
			return err
		}
		if len(summaries) == 0 {
			cmd.Println("no lessons for your language pair yet")
			return nil
		}

		for _, s := range summaries {
			cmd.Printf("%s  %s\n    %s\n", s.ID, s.Title, s.Description)
		}
		return nil
	},
}

var phrasesCmd = &cobra.Command{
	Use:   "phrases <lesson-id>",
	Short: "Show a lesson's bilingual phrase cards",
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
		lesson, err := api.GetLesson(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		cmd.Printf("%s\n%s\n\n", lesson.Title, lesson.Description)
		for i, p := range lesson.Phrases {
			cmd.Printf("%2d. %s\n    %s\n", i+1, p.SourceText, p.TargetText)
		}
		if len(lesson.Quiz) > 0 {
			cmd.Printf("\nquiz available: setu quiz %s\n", lesson.ID)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(lessonsCmd)
	rootCmd.AddCommand(phrasesCmd)

	lessonsCmd.Flags().Bool("all", false, "list every lesson, not only your language pair")
}
