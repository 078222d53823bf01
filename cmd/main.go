package main

import (
	"context"
	"debt-ledger/internal/config"
	"debt-ledger/internal/domain/calculator"
	"debt-ledger/internal/infrastructure/database/postgres"
	"debt-ledger/internal/infrastructure/logging"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// @title Debt Ledger API
// @version 1.0
// @description Customer and debt ledger for small businesses: customers, debts, overdue tracking and WhatsApp collection messages.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:          "debt-ledger",
		Short:        "Customer and debt ledger service",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", ".", "directory containing config.yml")

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the HTTP API",
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, logger, err := initializeApp(configPath)
				if err != nil {
					return err
				}
				return runServer(cmd.Context(), cfg, logger)
			},
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Apply pending database migrations and exit",
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, logger, err := initializeApp(configPath)
				if err != nil {
					return err
				}
				return runMigrations(cmd.Context(), cfg, logger)
			},
		},
		&cobra.Command{
			Use:   "calc <keys...>",
			Short: "Press calculator keys in order and print the display",
			Example: "  debt-ledger calc 7 + 3 =\n" +
				"  debt-ledger calc 1 2 , 5 x 4 =",
			Args: cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runCalculator(cmd.OutOrStdout(), args)
			},
		},
	)
	return root
}

func initializeApp(configPath string) (*config.Config, *slog.Logger, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		return nil, nil, err
	}

	logger := setupLogger(cfg.Logger)
	slog.SetDefault(logger)
	logger.Info("Application starting...", "config_source", viper.ConfigFileUsed())

	return cfg, logger, nil
}

func setupLogger(cfg config.LoggerConfig) *slog.Logger {
	return logging.NewLogger(cfg)
}

func runMigrations(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	dbPool, err := postgres.NewConnectionPool(ctx, cfg.Database, logger)
	if err != nil {
		logger.Error("Failed to initialize database connection pool", "error", err)
		return err
	}
	defer closeDatabase(dbPool, logger)

	applied, err := postgres.ApplyMigrations(ctx, dbPool, logger)
	if err != nil {
		logger.Error("Migrations failed", "error", err)
		return err
	}
	logger.Info("Migrations complete", "applied", applied)
	return nil
}

func runCalculator(out io.Writer, keys []string) error {
	calc, err := calculator.Run(keys)
	if err != nil {
		return err
	}
	if expr := calc.Expression(); expr != "" {
		fmt.Fprintf(out, "%s %s\n", expr, calc.Display())
		return nil
	}
	fmt.Fprintln(out, calc.Display())
	return nil
}
