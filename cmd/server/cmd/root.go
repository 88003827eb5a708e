package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/exp/slog"

	"notebook/internal/app/server/config"
	"notebook/internal/utils/logger"
)

var (
	cfg      *config.Config
	log      *slog.Logger
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "notebook",
	Short: "Notebook - сервер заметок, синтеза речи и словаря",
	Long: `Notebook - HTTP-бэкенд для заметок пользователя.

Предоставляет регистрацию и вход (JWT в cookie, серверные сессии или пароль),
хранение заметок, синтез речи через espeak-ng и прокси к публичному словарю.
Настройки читаются из .env и переменных окружения.`,
	PersistentPreRunE: setup,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Ошибка: %v\n", err)
		os.Exit(1)
	}
}

func setup(_ *cobra.Command, _ []string) error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("ошибка загрузки конфигурации: %w", err)
	}

	level := cfg.Logger.LogLevel
	if logLevel != "" {
		level = logLevel
	}
	log = logger.NewWithLevel(cfg.Env, level)

	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "уровень логирования (debug, info, warn, error)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(userCmd)
	rootCmd.AddCommand(sessionsCmd)
}
