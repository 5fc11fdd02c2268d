package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/Nixie-Tech-LLC/carescreen/cmd/carescreenctl/commands"
)

func main() {
	app := &commands.AppContext{}

	rootCmd := &cobra.Command{
		Use:   "carescreenctl",
		Short: "CareScreen CLI - Manage and preview facility display content",
		Long:  `A CLI tool for previewing display decisions, backing up and restoring display data, and running migrations.`,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			app.Close()
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(commands.PreviewCmd())
	rootCmd.AddCommand(commands.ExportCmd(app))
	rootCmd.AddCommand(commands.ImportCmd(app))
	rootCmd.AddCommand(commands.MigrateCmd(app))
	rootCmd.AddCommand(commands.CurrentCmd(app))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
