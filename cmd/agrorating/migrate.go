package main

import (
	"fmt"

	"github.com/ougirez/agrorating/internal/pkg/logger"
	"github.com/ougirez/agrorating/migrations"
	"github.com/spf13/cobra"
)

func newMigrateCommand(a *app) *cobra.Command {
	var down int

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations, or roll back with --down",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if a.cfg.Database.DSN == "" {
				return fmt.Errorf("database.dsn is not set")
			}

			var (
				version uint
				err     error
			)
			if down > 0 {
				version, err = migrations.Down(a.cfg.Database.DSN, down)
			} else {
				version, err = migrations.Up(a.cfg.Database.DSN)
			}
			if err != nil {
				return err
			}

			logger.Infof(cmd.Context(), "schema at version %d", version)
			return nil
		},
	}

	cmd.Flags().IntVar(&down, "down", 0, "number of migrations to roll back")

	return cmd
}
