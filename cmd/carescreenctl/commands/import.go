package commands

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Nixie-Tech-LLC/carescreen/internal/seed"
)

// ImportCmd creates the import command
func ImportCmd(app *AppContext) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Replace the stored display data with a JSON or YAML backup",
		Long:  `Sections missing from the file fall back to the built-in defaults.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := seed.LoadFile(file)
			if err != nil {
				return err
			}
			if err := app.Connect(); err != nil {
				return err
			}
			if _, err := app.Store.ReplaceAppData(cmd.Context(), data); err != nil {
				return fmt.Errorf("failed to store display data: %w", err)
			}
			app.Invalidate(cmd.Context())

			log.Info().Str("file", file).Str("display_id", app.Cfg.DisplayID).Msg("display data imported")
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "backup file to import")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
