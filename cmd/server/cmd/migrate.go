package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"notebook/internal/infrastructure/migration"
	"notebook/internal/infrastructure/storage"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Применить миграции схемы",
	Long: `Применяет миграции для DB_DRIVER.

Для sqlite и postgres используются встроенные SQL-миграции,
для mysql - AutoMigrate моделей.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := storage.Migrate(cmd.Context(), cfg, migration.DefaultEngine); err != nil {
			return fmt.Errorf("ошибка миграции: %w", err)
		}
		fmt.Printf("✓ Схема %s актуальна\n", cfg.DB.Driver)
		return nil
	},
}
