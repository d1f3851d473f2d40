package main

import (
	"database/sql"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/rateio/internal/app"
	"github.com/MrJamesThe3rd/rateio/internal/config"
	"github.com/MrJamesThe3rd/rateio/internal/database"
	"github.com/MrJamesThe3rd/rateio/internal/logging"
)

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "rateio",
		Short: "Household shared-expense tracker",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		newMigrateCommand(),
		newImportCommand(),
		newReportCommand(),
		newPeopleCommand(),
		newTokenCommand(),
	)

	return rootCmd
}

// loadConfig reads .env and the environment and installs the logger.
func loadConfig() (*config.Config, error) {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	logging.Setup(cfg.App.LogLevel)

	return cfg, nil
}

// openServices connects to the database and wires the services. The caller closes the returned db.
func openServices() (*app.Services, *sql.DB, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		return nil, nil, fmt.Errorf("connecting to database: %w", err)
	}

	return app.New(db, cfg), db, nil
}
