package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/auroraskincare/clinic-booking/internal/adapters/database"
	"github.com/auroraskincare/clinic-booking/internal/application/services"
	"github.com/auroraskincare/clinic-booking/internal/cli"
	"github.com/auroraskincare/clinic-booking/internal/infrastructure/clients/postgres"
	"github.com/auroraskincare/clinic-booking/internal/infrastructure/observability"
	"github.com/auroraskincare/clinic-booking/pkg/config"
)

func main() {
	root := &cobra.Command{
		Use:           "clinic",
		Short:         "Aurora Skin Care appointment booking console",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newRunCommand(), newMigrateCommand())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRunCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Start the interactive booking session",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cfg, client, err := bootstrap()
			if err != nil {
				return err
			}
			defer client.Close()

			logger := observability.GetLogger()

			adapter := database.NewAppointmentAdapter(client)
			if err := adapter.EnsureSchema(ctx); err != nil {
				return fmt.Errorf("failed to prepare schema: %w", err)
			}
			repo := database.NewSessionIndexedRepository(adapter)

			pricing := services.NewPricingService(cfg.Clinic)
			schedule := services.NewScheduleService()
			booking := services.NewBookingService(repo, pricing, *logger)

			workflow := cli.NewWorkflow(cfg.Clinic, os.Stdin, os.Stdout, repo, booking, schedule, pricing, *logger)
			return workflow.Run(ctx)
		},
	}
}

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the appointments schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			_, client, err := bootstrap()
			if err != nil {
				return err
			}
			defer client.Close()

			adapter := database.NewAppointmentAdapter(client)
			if err := adapter.EnsureSchema(ctx); err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}
			observability.GetLogger().Info().Msg("appointments schema is up to date")
			return nil
		},
	}
}

// bootstrap loads configuration, initializes logging and connects to the
// database. A missing .env file is fine; environment variables win.
func bootstrap() (*config.Config, *postgres.Client, error) {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	observability.InitLogger("clinic-booking", cfg.Log.Environment)

	client, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return cfg, client, nil
}
