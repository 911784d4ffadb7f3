package cmd

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/eslsoft/setu/internal/entity"
	"github.com/eslsoft/setu/internal/infrastructure/config"
	"github.com/eslsoft/setu/pkg/client"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show your progress profile",
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
		wire, err := api.Profile(cmd.Context())
		if err != nil {
			return err
		}

		profile := entity.UserProfile{
			Name:       wire.Name,
			SourceLang: entity.ParseLanguage(wire.SourceLang),
			TargetLang: entity.ParseLanguage(wire.TargetLang),
			Progress: lo.Map(wire.Progress, func(p client.ProgressItem, _ int) entity.ProgressItem {
				return entity.ProgressItem{
					LessonID:    p.LessonID,
					LessonTitle: p.LessonTitle,
					Completed:   p.Completed,
					Score:       p.Score,
				}
			}),
		}

		cmd.Printf("%s — %s → %s\n", profile.Name,
			profile.SourceLang.Display(), profile.TargetLang.Display())
		cmd.Printf("completed %d of %d started lessons (%d%%)\n\n",
			profile.CompletedCount(), len(profile.Progress), profile.CompletionPercent())

		if len(profile.Progress) == 0 {
			cmd.Println("no quiz results yet")
			return nil
		}
		for _, item := range profile.Progress {
			cmd.Printf("%3d/100  %s\n", item.Score, item.LessonTitle)
		}
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and clear the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		sess, err := openSession(cfg)
		if err != nil {
			return err
		}
		if err := sess.Logout(); err != nil {
			return fmt.Errorf("clear session: %w", err)
		}
		cmd.Println("signed out")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(logoutCmd)
}
