package main

import (
	"github.com/spf13/cobra"

	"github.com/coursedesk/coursedesk/storage/database"
)

func (cli *commandLine) migrateCmd() *cobra.Command {
	var down int

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Bring the database schema up to date",
		RunE: func(cmd *cobra.Command, args []string) error {
			if down > 0 {
				return database.Rollback(cli.conf.Database, down)
			}
			return database.Migrate(cli.conf.Database)
		},
	}
	cmd.Flags().IntVar(&down, "down", 0, "roll back this many migrations instead")
	return cmd
}
