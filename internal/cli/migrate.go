package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kdgblogteam/blogapplication/internal/database"
)

// NewMigrateCommand creates the migrate command.
func NewMigrateCommand(rootOpts *RootOptions) *cobra.Command {
	flags := &serverFlags{}

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create the post and comment tables if they are missing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, rootOpts, flags)
			if err != nil {
				return err
			}
			logger := newLogger(cfg, rootOpts.Verbose)

			db, err := database.NewDatabase(database.Config{
				Driver: cfg.DBDriver,
				DSN:    cfg.DSN,
				Debug:  rootOpts.Verbose,
			})
			if err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			defer db.Close()

			logger.Info("schema is up to date", "driver", cfg.DBDriver, "dsn", database.RedactDSN(cfg.DBDriver, cfg.DSN))
			return nil
		},
	}

	flags.register(cmd)

	return cmd
}
