package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eslsoft/setu/internal/entity"
	"github.com/eslsoft/setu/internal/infrastructure/config"
	"github.com/eslsoft/setu/pkg/client"
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and sign in",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		contact, _ := cmd.Flags().GetString("contact")
		source, _ := cmd.Flags().GetString("source")
		target, _ := cmd.Flags().GetString("target")

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		sess, err := openSession(cfg)
		if err != nil {
			return err
		}

		api := newAPIClient(cfg, sess)
		result, err := api.Register(cmd.Context(), client.RegisterInput{
			Name:       name,
			Contact:    contact,
			SourceLang: entity.ParseLanguage(source).Code(),
			TargetLang: entity.ParseLanguage(target).Code(),
		})
		if err != nil {
			return err
		}

		if err := sess.Login(result.Token, sessionUser(result.User)); err != nil {
			return fmt.Errorf("persist session: %w", err)
		}

		user := sessionUser(result.User)
		cmd.Printf("welcome %s! learning %s from %s\n",
			user.Name, user.TargetLang.Display(), user.SourceLang.Display())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(registerCmd)

	registerCmd.Flags().String("name", "", "your name")
	registerCmd.Flags().String("contact", "", "phone number or email")
	registerCmd.Flags().String("source", "", "language you speak (e.g. hi)")
	registerCmd.Flags().String("target", "", "language you want to learn (e.g. kn)")
	cobra.CheckErr(registerCmd.MarkFlagRequired("name"))
	cobra.CheckErr(registerCmd.MarkFlagRequired("source"))
	cobra.CheckErr(registerCmd.MarkFlagRequired("target"))
}
