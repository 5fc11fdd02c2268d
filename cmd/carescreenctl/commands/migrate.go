package commands

import (
	"github.com/spf13/cobra"

	"github.com/Nixie-Tech-LLC/carescreen/internal/db"
)

// MigrateCmd creates the migrate command
func MigrateCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Connect(); err != nil {
				return err
			}
			return db.RunMigrations(app.Cfg.MigrationsPath)
		},
	}
}
