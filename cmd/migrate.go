package cmd

import (
	"github.com/frahmantamala/expense-tracker/internal/storage/sqlite"
	"github.com/spf13/cobra"
)

func newMigrateCmd(opts *rootOptions) *cobra.Command {
	var rollback bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply the embedded storage migrations",
		Long:  `Storage is migrated on every start; use --rollback to undo the latest migration.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !rollback {
				return opts.deps.Renderer.Message("Storage is up to date.")
			}

			sqlDB, err := opts.deps.DB.DB()
			if err != nil {
				return err
			}
			if err := sqlite.Migrate(cmd.Context(), sqlDB, opts.deps.Config.Storage.MigrationsTable, true); err != nil {
				return err
			}
			return opts.deps.Renderer.Message("Rolled back the latest migration.")
		},
	}

	cmd.Flags().BoolVarP(&rollback, "rollback", "r", false, "roll back the latest migration")
	return cmd
}
