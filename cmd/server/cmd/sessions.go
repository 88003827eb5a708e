package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"notebook/internal/app/server"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Обслуживание серверных сессий",
}

var sessionsPurgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Удалить истекшие сессии",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if !cfg.UsesSessions() {
			fmt.Println("Стратегия token не хранит сессий, удалять нечего.")
			return nil
		}

		app, err := server.New(cmd.Context(), cfg, log)
		if err != nil {
			return err
		}
		defer app.Close()

		n, err := app.Sessions.Purge(cmd.Context())
		if err != nil {
			return fmt.Errorf("ошибка очистки: %w", err)
		}

		fmt.Printf("✓ Удалено сессий: %d\n", n)
		return nil
	},
}

func init() {
	sessionsCmd.AddCommand(sessionsPurgeCmd)
}
