package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Maxito7/studio_backend/internal/application"
	"github.com/Maxito7/studio_backend/internal/infrastructure/repository"
)

var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Show or flip the persisted light/dark theme",
}

var themeShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current theme",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withTheme(cmd, func(svc *application.ThemeService) error {
			fmt.Fprintln(cmd.OutOrStdout(), svc.Current())
			return nil
		})
	},
}

var themeToggleCmd = &cobra.Command{
	Use:   "toggle",
	Short: "Flip the theme and persist it",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withTheme(cmd, func(svc *application.ThemeService) error {
			theme, err := svc.Toggle(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), theme)
			return nil
		})
	},
}

func withTheme(cmd *cobra.Command, fn func(*application.ThemeService) error) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	database, err := e.openDB()
	if err != nil {
		return err
	}
	defer database.Close()

	svc := application.NewThemeService(repository.NewSettingsRepository(database), e.logger)
	if err := svc.Init(cmd.Context()); err != nil {
		return err
	}
	return fn(svc)
}
