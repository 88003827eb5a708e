package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"notebook/internal/app/server"
	"notebook/internal/app/server/config"
	"notebook/internal/domain/user"
)

var identityFlag string

// userCmd - родительская команда для управления пользователями
var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Управление пользователями",
}

var userAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Зарегистрировать пользователя",
	Long: `Регистрирует пользователя напрямую в хранилище.

При AUTH_STRATEGY=password пароль запрашивается интерактивно.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		creds := user.Credentials{UID: identityFlag}

		if cfg.Auth.Strategy == config.StrategyPassword {
			creds = user.Credentials{Username: identityFlag}

			fmt.Print("Пароль: ")
			password, err := term.ReadPassword(int(os.Stdin.Fd()))
			if err != nil {
				return fmt.Errorf("ошибка чтения пароля: %w", err)
			}
			fmt.Println()

			fmt.Print("Повторите пароль: ")
			passwordConfirm, err := term.ReadPassword(int(os.Stdin.Fd()))
			if err != nil {
				return fmt.Errorf("ошибка чтения пароля: %w", err)
			}
			fmt.Println()

			if string(password) != string(passwordConfirm) {
				return fmt.Errorf("пароли не совпадают")
			}
			creds.Password = string(password)
		}

		app, err := server.New(cmd.Context(), cfg, log)
		if err != nil {
			return err
		}
		defer app.Close()

		u, err := app.Users.Register(cmd.Context(), creds)
		if err != nil {
			return fmt.Errorf("ошибка регистрации: %w", err)
		}

		fmt.Printf("✓ Пользователь %s создан (id=%d)\n", u.Identity, u.ID)
		return nil
	},
}

func init() {
	userAddCmd.Flags().StringVar(&identityFlag, "identity", "", "UID провайдера или имя пользователя")
	_ = userAddCmd.MarkFlagRequired("identity")

	userCmd.AddCommand(userAddCmd)
}
