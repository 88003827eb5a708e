package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"notebook/internal/app/server"
	"notebook/internal/utils/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Запустить HTTP-сервер",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		app, err := server.New(ctx, cfg, log)
		if err != nil {
			return err
		}
		defer func() {
			if err := app.Close(); err != nil {
				log.Error("close storage", logger.Err(err))
			}
		}()

		return app.Run(ctx)
	},
}
